// Package goal runs a goal through a fixed three-stage chain: plan the
// steps, label each step with a tool name, then synthesize the final
// answer. Every stage is a single blocking model call; a failed stage
// aborts the run and surfaces its error unchanged.
package goal

import (
	"regexp"
	"strings"
)

// Tool is a descriptive label attached to a plan step. Tools are never
// invoked; the label only says what kind of capability a step calls for.
type Tool string

const (
	ToolSearch         Tool = "Search"
	ToolCalculator     Tool = "Calculator"
	ToolCodeRunner     Tool = "CodeRunner"
	ToolDocumentReader Tool = "DocumentReader"
	ToolSummarizer     Tool = "Summarizer"
	ToolTranslator     Tool = "Translator"
	ToolNone           Tool = "None"
)

// Tools returns the full label vocabulary in display order.
func Tools() []Tool {
	return []Tool{
		ToolSearch,
		ToolCalculator,
		ToolCodeRunner,
		ToolDocumentReader,
		ToolSummarizer,
		ToolTranslator,
		ToolNone,
	}
}

// PlanStep is one parsed step of the plan and its tool label.
type PlanStep struct {
	Description string
	Tool        Tool
}

// stepLine matches numbered steps ("1. do x", "2) do y") and bullets.
var stepLine = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]|[-*])\s*(.+)$`)

// parsePlan extracts plan steps from model output. Lines that carry a
// number or bullet marker become steps; when no line does, the whole
// response counts as a single step. Every step starts labeled None.
func parsePlan(text string) []PlanStep {
	var steps []PlanStep
	for _, match := range stepLine.FindAllStringSubmatch(text, -1) {
		desc := strings.TrimSpace(match[1])
		if desc == "" {
			continue
		}
		steps = append(steps, PlanStep{Description: desc, Tool: ToolNone})
	}
	if len(steps) == 0 {
		if whole := strings.TrimSpace(text); whole != "" {
			steps = append(steps, PlanStep{Description: whole, Tool: ToolNone})
		}
	}
	return steps
}

// parseToolLabels extracts one label per line from the tool-mapping
// response, preserving line order. Marked lines are preferred; a reply
// without markers falls back to its non-empty lines.
func parseToolLabels(text string) []Tool {
	var raw []string
	for _, match := range stepLine.FindAllStringSubmatch(text, -1) {
		raw = append(raw, match[1])
	}
	if len(raw) == 0 {
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				raw = append(raw, line)
			}
		}
	}

	labels := make([]Tool, 0, len(raw))
	for _, r := range raw {
		labels = append(labels, normalizeTool(r))
	}
	return labels
}

// toolAliases maps cleaned spellings the model tends to produce onto
// the canonical vocabulary.
var toolAliases = map[string]Tool{
	"websearch": ToolSearch,
	"lookup":    ToolSearch,
	"calc":      ToolCalculator,
	"math":      ToolCalculator,
	"code":      ToolCodeRunner,
	"runcode":   ToolCodeRunner,
	"docreader": ToolDocumentReader,
	"reader":    ToolDocumentReader,
	"summary":   ToolSummarizer,
	"summarize": ToolSummarizer,
	"translate": ToolTranslator,
	"notool":    ToolNone,
	"nothing":   ToolNone,
	"na":        ToolNone,
	"n/a":       ToolNone,
	"notneeded": ToolNone,
}

// normalizeTool maps a free-text label onto the vocabulary. Unknown
// labels become None. The model often decorates labels ("`Search`",
// "Search - to find prices"), so the text before any separator is
// tried first, then the whole string.
func normalizeTool(s string) Tool {
	if t, ok := lookupTool(s); ok {
		return t
	}
	if i := strings.IndexAny(s, ":-(,"); i > 0 {
		if t, ok := lookupTool(s[:i]); ok {
			return t
		}
	}
	return ToolNone
}

func lookupTool(s string) (Tool, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.Trim(key, "`\"'.,:;!* ")
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	for _, t := range Tools() {
		if key == strings.ToLower(string(t)) {
			return t, true
		}
	}
	if t, ok := toolAliases[key]; ok {
		return t, true
	}
	return "", false
}
