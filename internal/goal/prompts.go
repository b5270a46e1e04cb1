package goal

import "strings"

// Stage instructions appended to the goal prompt. Each stage is one
// model call; the earlier stage's output is quoted into the next
// stage's input.

const planInstruction = `Produce a numbered step-by-step plan for achieving the goal.
Write one step per line, starting each line with its number.
Do not carry out the plan yet.`

const synthesizeInstruction = `Using the plan and the tool labels above, produce the final answer to the goal.
Reply with the answer only.`

// toolMapInstruction names the fixed tool vocabulary. Labels are
// descriptive only; nothing is executed.
func toolMapInstruction() string {
	names := make([]string, 0, len(Tools()))
	for _, t := range Tools() {
		names = append(names, string(t))
	}
	return `For each step of the plan, name the single tool that best matches it.
Choose only from: ` + strings.Join(names, ", ") + `.
Reply with one line per step in the form "<step number>. <tool>".
Do not execute anything.`
}
