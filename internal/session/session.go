// Package session holds the in-memory state of one chat session and
// the service that drives a message through composition, the model
// call, and history bookkeeping. Nothing in this package touches disk;
// closing the app discards the session.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"genietalk/internal/persona"
	"genietalk/internal/prompt"
)

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Mode selects how a new message is handled.
type Mode string

const (
	// ModeChat sends each message as a single completion.
	ModeChat Mode = "chat"
	// ModeAgentic runs each message through the plan, tool-map, and
	// synthesize chain.
	ModeAgentic Mode = "agentic"
)

// ParseMode resolves user input to a mode. Empty input means chat.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chat", "":
		return ModeChat, nil
	case "agentic", "agent", "goal":
		return ModeAgentic, nil
	}
	return "", fmt.Errorf("unknown mode %q (valid: chat, agentic)", s)
}

// Turn is one conversation entry. History only grows; turns are never
// edited or reordered after they are appended.
type Turn struct {
	Role Role
	Text string
	Time time.Time
}

// Session is the state of one conversation: its settings, the attached
// document, and the transcript so far.
type Session struct {
	ID        string
	CreatedAt time.Time

	Persona  persona.Persona
	Language string
	Mode     Mode

	Document     string
	DocumentName string

	History []Turn

	now func() time.Time
}

// New returns an empty session with default settings.
func New() *Session {
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Persona:   persona.Default,
		Language:  persona.DefaultLanguage,
		Mode:      ModeChat,
		now:       time.Now,
	}
}

func (s *Session) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Append adds one turn to the end of the history.
func (s *Session) Append(role Role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text, Time: s.clock()})
}

// AppendExchange records a completed request as a user turn followed
// by the assistant's reply. Callers append the pair only after the
// model call succeeds, so a failed request leaves the history as it was.
func (s *Session) AppendExchange(userText, assistantText string) {
	s.Append(RoleUser, userText)
	s.Append(RoleAssistant, assistantText)
}

// Clear drops the conversation history. The attached document, the
// persona, and the other settings stay in place.
func (s *Session) Clear() {
	s.History = nil
}

// SetDocument replaces the attached document wholesale. Earlier
// document text is gone from every prompt composed afterwards.
func (s *Session) SetDocument(name, text string) {
	s.DocumentName = name
	s.Document = text
}

// ClearDocument detaches the document.
func (s *Session) ClearDocument() {
	s.DocumentName = ""
	s.Document = ""
}

// HasDocument reports whether document text is attached.
func (s *Session) HasDocument() bool {
	return strings.TrimSpace(s.Document) != ""
}

// PromptRequest builds the composition request for a new message from
// the current session state.
func (s *Session) PromptRequest(message string) prompt.Request {
	turns := make([]prompt.Turn, 0, len(s.History))
	for _, t := range s.History {
		turns = append(turns, prompt.Turn{Role: prompt.Role(t.Role), Text: t.Text})
	}
	return prompt.Request{
		Persona:      s.Persona,
		Language:     s.Language,
		Document:     s.Document,
		DocumentName: s.DocumentName,
		History:      turns,
		Message:      message,
	}
}

// Transcript renders the whole history as plain text, one "User:" and
// "Assistant:" line per turn with a blank line between exchanges.
func (s *Session) Transcript() string {
	if len(s.History) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range s.History {
		if t.Role == RoleAssistant {
			b.WriteString("Assistant: " + t.Text + "\n\n")
		} else {
			b.WriteString("User: " + t.Text + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
