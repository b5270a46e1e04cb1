package goal

import (
	"context"
	"fmt"
	"strings"

	"genietalk/internal/llm"
	"genietalk/internal/prompt"
)

// Executor chains the three goal stages over one model client.
type Executor struct {
	client llm.Client
}

// NewExecutor returns an executor that calls the given client.
func NewExecutor(client llm.Client) *Executor {
	return &Executor{client: client}
}

// Result holds the output of a completed run. PlanText keeps the raw
// plan response for display; Steps pairs each parsed step with its
// tool label.
type Result struct {
	PlanText string
	Steps    []PlanStep
	Answer   string
}

// Run executes Plan, ToolMap, and Synthesize in order against the
// composed goal prompt. The first failing stage aborts the run; later
// stages are never reached. Steps the mapping response does not cover
// stay labeled None, and surplus labels are dropped.
func (e *Executor) Run(ctx context.Context, p prompt.Prompt) (*Result, error) {
	planText, err := e.client.CompleteWithSystem(ctx, p.System, p.User+"\n\n"+planInstruction)
	if err != nil {
		return nil, fmt.Errorf("plan stage: %w", err)
	}
	steps := parsePlan(planText)

	toolUser := p.User + "\n\nPlan:\n" + planText + "\n\n" + toolMapInstruction()
	toolText, err := e.client.CompleteWithSystem(ctx, p.System, toolUser)
	if err != nil {
		return nil, fmt.Errorf("tool mapping stage: %w", err)
	}
	for i, label := range parseToolLabels(toolText) {
		if i >= len(steps) {
			break
		}
		steps[i].Tool = label
	}

	synthUser := p.User +
		"\n\nPlan:\n" + planText +
		"\n\nTool for each step:\n" + labelLines(steps) +
		"\n\n" + synthesizeInstruction
	answer, err := e.client.CompleteWithSystem(ctx, p.System, synthUser)
	if err != nil {
		return nil, fmt.Errorf("synthesis stage: %w", err)
	}

	return &Result{PlanText: planText, Steps: steps, Answer: answer}, nil
}

func labelLines(steps []PlanStep) string {
	lines := make([]string, 0, len(steps))
	for i, s := range steps {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, s.Tool))
	}
	return strings.Join(lines, "\n")
}
