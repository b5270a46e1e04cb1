// Package prompt composes the instruction text sent to the model.
//
// A composed prompt has two halves: a system half carrying the persona
// instruction, the optional reference document, and the reply-language
// directive, and a user half carrying the conversation history and the
// new message. Providers that support a system role send the halves
// separately; String joins them for providers that take a single string.
package prompt

import (
	"fmt"
	"strings"

	"genietalk/internal/persona"
)

// agenticHistoryTurns caps how much conversation history is carried into
// a goal prompt. Chat prompts always carry the full history.
const agenticHistoryTurns = 6

// Role identifies the author of a history turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior exchange entry rendered into the prompt.
type Turn struct {
	Role Role
	Text string
}

// Request carries everything that shapes one composed prompt.
type Request struct {
	Persona      persona.Persona
	Language     string
	Document     string // extracted text, empty when nothing is attached
	DocumentName string
	History      []Turn
	Message      string // the new user message, or the goal in agentic mode
}

// Prompt is the system instruction plus the user content for one model call.
type Prompt struct {
	System string
	User   string
}

// String returns the prompt as a single instruction string.
func (p Prompt) String() string {
	if p.System == "" {
		return p.User
	}
	return p.System + "\n\n" + p.User
}

// Composer builds prompts from session state. The zero value is ready to use.
type Composer struct{}

// Compose builds the chat prompt for one request. The persona instruction
// appears exactly once and leads the system half; the language directive
// appears exactly once and closes it. The full history is rendered on
// every call, oldest turn first.
func (c Composer) Compose(req Request) Prompt {
	var user strings.Builder
	if len(req.History) > 0 {
		user.WriteString("Conversation so far:\n")
		user.WriteString(renderTurns(req.History))
		user.WriteString("\n\n")
	}
	user.WriteString("New user message:\n")
	user.WriteString(req.Message)

	return Prompt{
		System: c.system(req),
		User:   user.String(),
	}
}

// ComposeGoal builds the prompt a goal run starts from. It shares the
// system half with Compose but carries only the most recent history
// turns, and states the goal instead of a chat message.
func (c Composer) ComposeGoal(req Request) Prompt {
	recent := req.History
	if len(recent) > agenticHistoryTurns {
		recent = recent[len(recent)-agenticHistoryTurns:]
	}

	var user strings.Builder
	if len(recent) > 0 {
		user.WriteString("Recent conversation:\n")
		user.WriteString(renderTurns(recent))
		user.WriteString("\n\n")
	}
	user.WriteString("Goal:\n")
	user.WriteString(req.Message)

	return Prompt{
		System: c.system(req),
		User:   user.String(),
	}
}

// system assembles the system half: persona instruction, then the
// document block when a document is attached, then the language
// directive. Parts are separated by blank lines.
func (c Composer) system(req Request) string {
	parts := []string{req.Persona.Instruction()}
	if strings.TrimSpace(req.Document) != "" {
		parts = append(parts, documentBlock(req.Document, req.DocumentName))
	}
	parts = append(parts, persona.Directive(req.Language))
	return strings.Join(parts, "\n\n")
}

// documentBlock wraps extracted document text in a labeled, delimited
// block. The whole text is included; nothing is truncated.
func documentBlock(text, name string) string {
	var b strings.Builder
	if name = strings.TrimSpace(name); name != "" {
		fmt.Fprintf(&b, "Reference document (%s):\n", name)
	} else {
		b.WriteString("Reference document:\n")
	}
	b.WriteString("---\n")
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n---")
	return b.String()
}

func renderTurns(turns []Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		label := "User"
		if t.Role == RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, label+": "+t.Text)
	}
	return strings.Join(lines, "\n")
}
