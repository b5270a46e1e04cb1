package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLoads(t *testing.T) {
	entries := Catalog()
	require.Len(t, entries, 6)

	t.Run("every entry is complete", func(t *testing.T) {
		for _, e := range entries {
			assert.NotEmpty(t, e.ID)
			assert.NotEmpty(t, e.Name, "persona %s", e.ID)
			assert.NotEmpty(t, e.Description, "persona %s", e.ID)
			assert.NotEmpty(t, e.Instruction, "persona %s", e.ID)
		}
	})

	t.Run("general comes first", func(t *testing.T) {
		assert.Equal(t, string(General), entries[0].ID)
	})
}

func TestInstruction(t *testing.T) {
	t.Run("every persona has a GenieTalk identity line", func(t *testing.T) {
		for _, p := range All() {
			inst := p.Instruction()
			assert.Contains(t, inst, "You are GenieTalk", "persona %s", p)
			assert.False(t, strings.HasSuffix(inst, "\n"), "instruction should be trimmed")
		}
	})

	t.Run("document qa restricts to the document", func(t *testing.T) {
		inst := DocumentQA.Instruction()
		assert.Contains(t, inst, "only the reference document")
	})

	t.Run("unknown persona falls back to general", func(t *testing.T) {
		assert.Equal(t, General.Instruction(), Persona("nonsense").Instruction())
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Persona
		wantErr bool
	}{
		{name: "catalog id", input: "coding", want: Coding},
		{name: "uppercase id", input: "CODING", want: Coding},
		{name: "hyphenated", input: "document-qa", want: DocumentQA},
		{name: "display name", input: "Document Q&A", want: DocumentQA},
		{name: "display name resume", input: "Resume Review", want: Resume},
		{name: "alias docqa", input: "docqa", want: DocumentQA},
		{name: "alias translate", input: "translate", want: Translator},
		{name: "alias support", input: "support", want: EmotionalSupport},
		{name: "alias default", input: "default", want: General},
		{name: "surrounding space", input: "  resume  ", want: Resume},
		{name: "unknown", input: "astrologer", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown persona")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	require.Len(t, langs, 8)
	assert.Equal(t, "English", langs[0])

	t.Run("presets are detected case insensitively", func(t *testing.T) {
		assert.True(t, IsPreset("hindi"))
		assert.True(t, IsPreset("GERMAN"))
		assert.False(t, IsPreset("Klingon"))
	})

	t.Run("normalize maps presets to catalog spelling", func(t *testing.T) {
		assert.Equal(t, "Tamil", NormalizeLanguage("tamil"))
		assert.Equal(t, "English", NormalizeLanguage(""))
		assert.Equal(t, "Klingon", NormalizeLanguage(" Klingon "))
	})
}

func TestDirective(t *testing.T) {
	assert.Equal(t, "Respond in English.", Directive("english"))
	assert.Equal(t, "Respond in Klingon.", Directive("Klingon"))

	t.Run("directive appears once per compose input", func(t *testing.T) {
		d := Directive("French")
		assert.Equal(t, 1, strings.Count(d, "Respond in"))
	})
}
