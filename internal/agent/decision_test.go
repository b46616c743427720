package agent

import (
	"errors"
	"testing"
)

func TestParseDecisionPlainJSON(t *testing.T) {
	raw := `{"thought": "list the files", "action": {"tool_name": "shell", "tool_input": "ls -la"}, "task_finished": false}`
	d, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if d.Thought != "list the files" {
		t.Errorf("Thought = %q", d.Thought)
	}
	if d.Action.ToolName != "shell" || d.Action.ToolInput != "ls -la" {
		t.Errorf("Action = %+v", d.Action)
	}
	if d.TaskFinished {
		t.Error("TaskFinished = true")
	}
}

func TestParseDecisionWrappedInProse(t *testing.T) {
	raw := "Sure! Here is my decision:\n```json\n" +
		`{"thought": "done", "action": {"tool_name": "", "tool_input": ""}, "task_finished": true}` +
		"\n```\nLet me know if you need anything else."
	d, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if !d.TaskFinished {
		t.Error("TaskFinished = false")
	}
}

func TestParseDecisionBracesInsideStrings(t *testing.T) {
	raw := `{"thought": "grep for {pattern}", "action": {"tool_name": "shell", "tool_input": "grep '{' file \"}\""}, "task_finished": false}`
	d, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if d.Action.ToolInput != `grep '{' file "}"` {
		t.Errorf("ToolInput = %q", d.Action.ToolInput)
	}
}

func TestParseDecisionNoJSON(t *testing.T) {
	_, err := ParseDecision("I'm not sure what to do next.")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if pe.Raw != "I'm not sure what to do next." {
		t.Errorf("Raw = %q, want the original payload", pe.Raw)
	}
}

func TestParseDecisionMalformedJSON(t *testing.T) {
	_, err := ParseDecision(`{"thought": "x", "action": {`)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestDecisionUsable(t *testing.T) {
	tests := []struct {
		name string
		d    Decision
		want bool
	}{
		{"finished wins", Decision{TaskFinished: true}, true},
		{"named tool", Decision{Action: DecisionAction{ToolName: "shell"}}, true},
		{"empty tool", Decision{}, false},
		{"none tool", Decision{Action: DecisionAction{ToolName: "none"}}, false},
		{"whitespace tool", Decision{Action: DecisionAction{ToolName: "  "}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Usable(); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}
