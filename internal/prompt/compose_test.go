package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genietalk/internal/persona"
)

func TestComposePersonaInstructionOnce(t *testing.T) {
	var c Composer
	for _, p := range persona.All() {
		p := p
		t.Run(string(p), func(t *testing.T) {
			out := c.Compose(Request{
				Persona:  p,
				Language: "English",
				Message:  "hello",
			})
			inst := p.Instruction()
			require.NotEmpty(t, inst)
			full := out.String()
			assert.Equal(t, 1, strings.Count(full, inst),
				"persona instruction must appear exactly once")
			assert.True(t, strings.HasPrefix(out.System, inst),
				"persona instruction must lead the system half")
		})
	}
}

func TestComposeLanguageDirective(t *testing.T) {
	var c Composer
	tests := []struct {
		name     string
		language string
		want     string
	}{
		{"preset", "French", "Respond in French."},
		{"preset case folded", "french", "Respond in French."},
		{"free text passes through", "Pirate English", "Respond in Pirate English."},
		{"empty defaults to English", "", "Respond in English."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := c.Compose(Request{
				Persona:  persona.General,
				Language: tt.language,
				Message:  "hello",
			})
			full := out.String()
			assert.Equal(t, 1, strings.Count(full, tt.want),
				"language directive must appear exactly once")
			assert.True(t, strings.HasSuffix(out.System, tt.want),
				"language directive must close the system half")
		})
	}
}

func TestComposeDocumentBlock(t *testing.T) {
	var c Composer

	t.Run("absent without a document", func(t *testing.T) {
		out := c.Compose(Request{Persona: persona.General, Message: "hi"})
		assert.NotContains(t, out.String(), "Reference document")
	})

	t.Run("labeled with the file name", func(t *testing.T) {
		out := c.Compose(Request{
			Persona:      persona.General,
			Document:     "Quarterly revenue rose 12 percent.",
			DocumentName: "notes.txt",
			Message:      "summarize",
		})
		assert.Contains(t, out.System, "Reference document (notes.txt):")
		assert.Contains(t, out.System, "Quarterly revenue rose 12 percent.")
	})

	t.Run("unnamed document still labeled", func(t *testing.T) {
		out := c.Compose(Request{
			Persona:  persona.General,
			Document: "some text",
			Message:  "hi",
		})
		assert.Contains(t, out.System, "Reference document:\n")
	})

	t.Run("replacement drops the old content", func(t *testing.T) {
		req := Request{
			Persona:      persona.General,
			Document:     "alpha facts only",
			DocumentName: "a.txt",
			Message:      "hi",
		}
		first := c.Compose(req).String()
		require.Contains(t, first, "alpha facts only")

		req.Document = "beta facts only"
		req.DocumentName = "b.txt"
		second := c.Compose(req).String()
		assert.Contains(t, second, "beta facts only")
		assert.NotContains(t, second, "alpha facts only")
		assert.NotContains(t, second, "a.txt")
	})
}

func TestComposeHistory(t *testing.T) {
	var c Composer

	t.Run("empty history renders only the new message", func(t *testing.T) {
		out := c.Compose(Request{Persona: persona.General, Message: "hi"})
		assert.Equal(t, "New user message:\nhi", out.User)
	})

	t.Run("turns render oldest first", func(t *testing.T) {
		out := c.Compose(Request{
			Persona: persona.General,
			History: []Turn{
				{Role: RoleUser, Text: "What is Go?"},
				{Role: RoleAssistant, Text: "A programming language."},
			},
			Message: "Who made it?",
		})
		want := "Conversation so far:\n" +
			"User: What is Go?\n" +
			"Assistant: A programming language.\n\n" +
			"New user message:\nWho made it?"
		assert.Equal(t, want, out.User)
	})
}

func TestComposeDocumentQuestion(t *testing.T) {
	var c Composer
	out := c.Compose(Request{
		Persona:      persona.DocumentQA,
		Language:     "English",
		Document:     "The capital of France is Paris.",
		DocumentName: "geography.txt",
		Message:      "What is the capital of France?",
	})
	full := out.String()
	assert.Contains(t, full, "The capital of France is Paris.")
	assert.Contains(t, full, "What is the capital of France?")
	assert.Contains(t, full, "Answer using only the reference document",
		"document persona must restrict answers to the attached text")
}

func TestComposeGoal(t *testing.T) {
	var c Composer

	t.Run("shares the system half with chat prompts", func(t *testing.T) {
		req := Request{
			Persona:      persona.Coding,
			Language:     "German",
			Document:     "build notes",
			DocumentName: "build.txt",
			Message:      "ship the release",
		}
		assert.Equal(t, c.Compose(req).System, c.ComposeGoal(req).System)
	})

	t.Run("states the goal instead of a chat message", func(t *testing.T) {
		out := c.ComposeGoal(Request{Persona: persona.General, Message: "plan a trip"})
		assert.Equal(t, "Goal:\nplan a trip", out.User)
		assert.NotContains(t, out.User, "New user message:")
	})

	t.Run("carries only recent history", func(t *testing.T) {
		var history []Turn
		for i := 1; i <= 10; i++ {
			role := RoleUser
			if i%2 == 0 {
				role = RoleAssistant
			}
			history = append(history, Turn{Role: role, Text: fmt.Sprintf("m%02d", i)})
		}
		out := c.ComposeGoal(Request{
			Persona: persona.General,
			History: history,
			Message: "wrap up",
		})
		assert.Contains(t, out.User, "Recent conversation:")
		for i := 5; i <= 10; i++ {
			assert.Contains(t, out.User, fmt.Sprintf("m%02d", i))
		}
		for i := 1; i <= 4; i++ {
			assert.NotContains(t, out.User, fmt.Sprintf("m%02d", i))
		}
	})
}

func TestPromptString(t *testing.T) {
	assert.Equal(t, "sys\n\nusr", Prompt{System: "sys", User: "usr"}.String())
	assert.Equal(t, "usr", Prompt{User: "usr"}.String())
}
