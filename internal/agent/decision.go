package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decision is the structured choice the model returns each loop iteration.
type Decision struct {
	Thought      string         `json:"thought"`
	Action       DecisionAction `json:"action"`
	TaskFinished bool           `json:"task_finished"`
}

// DecisionAction names the tool to run and its input.
type DecisionAction struct {
	ToolName  string `json:"tool_name"`
	ToolInput string `json:"tool_input"`
}

// ParseError reports a model reply that carried no usable JSON decision.
// Raw preserves the payload so the user can see what came back.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no valid decision in model reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseDecision extracts the first JSON object from a model reply that may
// be wrapped in prose or code fences. Models routinely decorate their JSON;
// the scanner tolerates anything outside the braces.
func ParseDecision(raw string) (Decision, error) {
	payload, ok := extractObject(raw)
	if !ok {
		return Decision{}, &ParseError{Raw: raw, Err: fmt.Errorf("no JSON object found")}
	}

	var d Decision
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return Decision{}, &ParseError{Raw: raw, Err: err}
	}
	return d, nil
}

// Usable reports whether a parsed decision can drive the loop: either the
// task is finished or a tool is actually named.
func (d Decision) Usable() bool {
	if d.TaskFinished {
		return true
	}
	name := strings.ToLower(strings.TrimSpace(d.Action.ToolName))
	return name != "" && name != "none"
}

// extractObject returns the substring from the first '{' to its matching
// '}', honoring string literals and escapes.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
