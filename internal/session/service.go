package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"genietalk/internal/goal"
	"genietalk/internal/llm"
	"genietalk/internal/prompt"
)

// ErrEmptyInput rejects empty or whitespace-only messages before
// anything is sent. The history is not touched.
var ErrEmptyInput = errors.New("message is empty")

// Service handles one message at a time for a session: it composes the
// prompt, calls the model (directly in chat mode, through the goal
// chain in agentic mode), and appends the exchange on success. Errors
// pass through unchanged so the UI can show them verbatim.
type Service struct {
	client   llm.Client
	composer prompt.Composer
	executor *goal.Executor
	logger   *zap.Logger
}

// NewService wires a service around the given client. A nil logger
// disables logging.
func NewService(client llm.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		executor: goal.NewExecutor(client),
		logger:   logger,
	}
}

// Reply is the outcome of one handled message. Goal is set only in
// agentic mode and carries the parsed plan for richer display.
type Reply struct {
	Text string
	Goal *goal.Result
}

// HandleMessage runs one request against the session. On success the
// user message and the reply are appended to the history as a pair; on
// any failure the session state is exactly as it was before the call.
func (s *Service) HandleMessage(ctx context.Context, sess *Session, text string) (*Reply, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil, ErrEmptyInput
	}

	s.logger.Debug("handling message",
		zap.String("session_id", sess.ID),
		zap.String("mode", string(sess.Mode)),
		zap.String("persona", string(sess.Persona)),
		zap.Int("history_turns", len(sess.History)),
		zap.Bool("document_attached", sess.HasDocument()),
	)

	req := sess.PromptRequest(message)
	reply := &Reply{}

	switch sess.Mode {
	case ModeAgentic:
		res, err := s.executor.Run(ctx, s.composer.ComposeGoal(req))
		if err != nil {
			s.logger.Warn("goal run failed",
				zap.String("session_id", sess.ID), zap.Error(err))
			return nil, err
		}
		reply.Goal = res
		reply.Text = formatGoalReply(res)
	default:
		p := s.composer.Compose(req)
		out, err := s.client.CompleteWithSystem(ctx, p.System, p.User)
		if err != nil {
			s.logger.Warn("completion failed",
				zap.String("session_id", sess.ID), zap.Error(err))
			return nil, err
		}
		reply.Text = out
	}

	sess.AppendExchange(message, reply.Text)
	s.logger.Debug("reply recorded",
		zap.String("session_id", sess.ID),
		zap.Int("history_turns", len(sess.History)))
	return reply, nil
}

// formatGoalReply renders a goal result as the assistant turn: the
// plan with its tool labels, then the answer. The text is markdown so
// the chat view can style it.
func formatGoalReply(res *goal.Result) string {
	var b strings.Builder
	b.WriteString("**Plan**\n")
	if len(res.Steps) == 0 {
		b.WriteString(res.PlanText + "\n")
	}
	for i, step := range res.Steps {
		fmt.Fprintf(&b, "%d. %s [%s]\n", i+1, step.Description, step.Tool)
	}
	b.WriteString("\n**Answer**\n")
	b.WriteString(res.Answer)
	return b.String()
}
