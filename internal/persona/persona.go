package persona

import (
	"fmt"
	"strings"
)

// Persona selects a fixed instruction template. The value is the catalog id.
type Persona string

const (
	General          Persona = "general"
	Coding           Persona = "coding"
	Resume           Persona = "resume"
	DocumentQA       Persona = "document_qa"
	Translator       Persona = "translator"
	EmotionalSupport Persona = "emotional_support"
)

// Default is the persona every new session starts with.
const Default = General

// All returns every persona in catalog order.
func All() []Persona {
	load()
	out := make([]Persona, len(ordered))
	copy(out, ordered)
	return out
}

// Valid reports whether p exists in the catalog.
func (p Persona) Valid() bool {
	load()
	_, ok := byID[p]
	return ok
}

// Name returns the display name ("Coding Help").
func (p Persona) Name() string {
	load()
	return byID[p].Name
}

// Description returns the one-line UI description.
func (p Persona) Description() string {
	load()
	return byID[p].Description
}

// Instruction returns the system instruction template. Unknown personas fall
// back to the General template so a composed prompt always has a leading
// instruction.
func (p Persona) Instruction() string {
	load()
	if e, ok := byID[p]; ok {
		return strings.TrimSpace(e.Instruction)
	}
	return strings.TrimSpace(byID[General].Instruction)
}

// Parse resolves user input to a Persona. It accepts catalog ids, display
// names, and a few common shorthand spellings, case-insensitively.
func Parse(s string) (Persona, error) {
	load()
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")

	if p := Persona(key); p.Valid() {
		return p, nil
	}

	switch key {
	case "assistant", "default", "chat":
		return General, nil
	case "code", "coder", "programming", "coding_help":
		return Coding, nil
	case "resume_review", "cv", "career":
		return Resume, nil
	case "docqa", "doc_qa", "document", "doc":
		return DocumentQA, nil
	case "translate", "translation":
		return Translator, nil
	case "emotional", "support", "listener":
		return EmotionalSupport, nil
	}

	// Display-name match ("Document Q&A").
	for id, e := range byID {
		if strings.EqualFold(strings.TrimSpace(s), e.Name) {
			return id, nil
		}
	}

	return "", fmt.Errorf("unknown persona %q (available: %s)", s, strings.Join(names(), ", "))
}

func names() []string {
	load()
	out := make([]string, 0, len(ordered))
	for _, p := range ordered {
		out = append(out, string(p))
	}
	return out
}
