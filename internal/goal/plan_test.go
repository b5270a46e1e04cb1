package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numbered steps",
			text: "1. Search for flights\n2. Compare prices\n3. Book the cheapest",
			want: []string{"Search for flights", "Compare prices", "Book the cheapest"},
		},
		{
			name: "parenthesis numbering",
			text: "1) First\n2) Second",
			want: []string{"First", "Second"},
		},
		{
			name: "bullet markers",
			text: "- Research hotels\n* Pick a district",
			want: []string{"Research hotels", "Pick a district"},
		},
		{
			name: "headings and blank lines skipped",
			text: "Here is the plan:\n\n1. Pack bags\n\n2. Leave early\n\nGood luck!",
			want: []string{"Pack bags", "Leave early"},
		},
		{
			name: "unmarked text becomes a single step",
			text: "Just answer the question directly.",
			want: []string{"Just answer the question directly."},
		},
		{
			name: "blank response yields no steps",
			text: "  \n\t\n",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := parsePlan(tt.text)
			got := make([]string, 0, len(steps))
			for _, s := range steps {
				assert.Equal(t, ToolNone, s.Tool, "fresh steps start unlabeled")
				got = append(got, s.Description)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTool(t *testing.T) {
	tests := []struct {
		in   string
		want Tool
	}{
		{"Search", ToolSearch},
		{"search", ToolSearch},
		{"web search", ToolSearch},
		{"`Calculator`", ToolCalculator},
		{"Calculator: add the costs", ToolCalculator},
		{"CodeRunner", ToolCodeRunner},
		{"code runner", ToolCodeRunner},
		{"Code_Runner", ToolCodeRunner},
		{"DocumentReader", ToolDocumentReader},
		{"document reader", ToolDocumentReader},
		{"Summarizer", ToolSummarizer},
		{"summarize", ToolSummarizer},
		{"Translator", ToolTranslator},
		{"translate", ToolTranslator},
		{"None", ToolNone},
		{"none.", ToolNone},
		{"no tool", ToolNone},
		{"N/A", ToolNone},
		{"Search - to find flight prices", ToolSearch},
		{"Teleporter", ToolNone},
		{"", ToolNone},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, normalizeTool(tt.in), "normalizeTool(%q)", tt.in)
	}
}

func TestParseToolLabels(t *testing.T) {
	t.Run("numbered lines in order", func(t *testing.T) {
		labels := parseToolLabels("1. Search\n2. Calculator\n3. None")
		assert.Equal(t, []Tool{ToolSearch, ToolCalculator, ToolNone}, labels)
	})

	t.Run("bare lines as fallback", func(t *testing.T) {
		labels := parseToolLabels("Search\nCalculator")
		assert.Equal(t, []Tool{ToolSearch, ToolCalculator}, labels)
	})

	t.Run("decorated labels still resolve", func(t *testing.T) {
		labels := parseToolLabels("1. `Search` - look up fares\n2. Calculator (sum totals)")
		assert.Equal(t, []Tool{ToolSearch, ToolCalculator}, labels)
	})

	t.Run("unknown labels become None", func(t *testing.T) {
		labels := parseToolLabels("1. TimeMachine\n2. Search")
		assert.Equal(t, []Tool{ToolNone, ToolSearch}, labels)
	})
}
