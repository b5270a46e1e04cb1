// Package persona defines the fixed persona and language catalog for
// GenieTalk. Personas are instruction templates baked into the binary;
// selecting one changes only the leading system instruction of a prompt,
// never the control flow.
package persona

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed personas.yaml
var catalogYAML []byte

// Entry is one persona in the catalog.
type Entry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Instruction string `yaml:"instruction"`
}

type catalogFile struct {
	Personas  []Entry  `yaml:"personas"`
	Languages []string `yaml:"languages"`
}

var (
	loadOnce sync.Once
	byID     map[Persona]Entry
	ordered  []Persona
	presets  []string
)

// load parses the embedded catalog exactly once. The catalog is compile-time
// data; a parse failure is a build defect, so it panics like a bad
// regexp.MustCompile pattern would.
func load() {
	loadOnce.Do(func() {
		var cf catalogFile
		if err := yaml.Unmarshal(catalogYAML, &cf); err != nil {
			panic(fmt.Sprintf("persona: embedded catalog is invalid: %v", err))
		}
		if len(cf.Personas) == 0 {
			panic("persona: embedded catalog has no personas")
		}
		byID = make(map[Persona]Entry, len(cf.Personas))
		ordered = make([]Persona, 0, len(cf.Personas))
		for _, e := range cf.Personas {
			p := Persona(e.ID)
			if _, dup := byID[p]; dup {
				panic(fmt.Sprintf("persona: duplicate catalog id %q", e.ID))
			}
			byID[p] = e
			ordered = append(ordered, p)
		}
		presets = cf.Languages
	})
}

// Catalog returns all personas in catalog order.
func Catalog() []Entry {
	load()
	entries := make([]Entry, 0, len(ordered))
	for _, p := range ordered {
		entries = append(entries, byID[p])
	}
	return entries
}
