package agent

import (
	"fmt"
	"strings"
)

// systemPreamble is the fixed instruction block for the task loop. The tool
// list is injected so the dispatcher stays the single source of truth.
const systemPreamble = `You are a careful terminal assistant executing a task step by step.

On every turn reply with exactly one JSON object, nothing else:
{
  "thought": "<one sentence on what you are doing and why>",
  "action": {"tool_name": "<tool>", "tool_input": "<input for the tool>"},
  "task_finished": <true when the goal is fully accomplished>
}

Rules:
- Use one tool per turn and wait for its observation.
- Prefer read-only inspection before any modifying command.
- When task_finished is true the action is ignored.
- If you need information from the user, use the ask_user tool.

Available tools:
%s`

// closingSystem asks for the end-of-task summary.
const closingSystem = `You just finished a terminal task for the user. ` +
	`From the execution history, write one short friendly sentence ` +
	`summarizing what was accomplished. Plain text, no JSON.`

// ClosingFallback is shown when the closing-message call fails.
const ClosingFallback = "Task finished! Anything else I can do?"

// BuildPreamble renders the system instruction with the tool roster.
func BuildPreamble(tools []ToolInfo) string {
	var b strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
	}
	return fmt.Sprintf(systemPreamble, b.String())
}

// ToolInfo is the name/description pair shown to the model.
type ToolInfo struct {
	Name        string
	Description string
}

// BuildPrompt assembles the per-turn prompt from the goal and the budgeted
// ledger suffix.
func BuildPrompt(goal string, selected []Step, truncated bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n\n", goal)

	if truncated {
		b.WriteString("(older steps omitted to fit the context window)\n\n")
	}
	if len(selected) == 0 {
		b.WriteString("No steps taken yet.\n")
	} else {
		b.WriteString("Execution history:\n")
		for _, s := range selected {
			b.WriteString(RenderStep(s))
			b.WriteString("\n\n")
		}
	}

	b.WriteString("Decide the next step. Reply with the JSON object only.")
	return b.String()
}

// BuildClosingPrompt assembles the request for the end-of-task message,
// carrying the executed steps so the summary reflects what actually
// happened rather than just the goal.
func BuildClosingPrompt(goal string, steps []Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The goal was: %s\n\n", goal)
	if len(steps) == 0 {
		b.WriteString("No steps were needed.\n")
	} else {
		b.WriteString("What was done:\n")
		for _, s := range steps {
			b.WriteString(RenderStep(s))
			b.WriteString("\n\n")
		}
	}
	b.WriteString("Summarize the outcome for the user.")
	return b.String()
}
