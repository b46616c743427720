// Package safety decides whether a proposed shell command runs: read-only
// commands pass automatically, everything else needs the user's explicit
// confirmation. The whitelist is a convenience filter, not a sandbox; the
// confirmation prompt is the actual control.
package safety

import (
	"path/filepath"
	"strings"
)

// safeReadCommands auto-approve when they are the first token of the
// command line. Pipelines are judged by their leading command only.
var safeReadCommands = map[string]bool{
	"ls":      true,
	"cat":     true,
	"grep":    true,
	"find":    true,
	"which":   true,
	"command": true,
	"pwd":     true,
	"echo":    true,
	"head":    true,
	"tail":    true,
	"wc":      true,
	"file":    true,
	"stat":    true,
	"df":      true,
	"du":      true,
	"ps":      true,
}

// Decision is the outcome of reviewing a proposed command.
type Decision struct {
	Approved bool

	// Instruction carries the user's replacement guidance when they
	// answered the prompt with something other than yes or no.
	Instruction string
}

// PromptFunc asks the user one question and returns their reply. It returns
// an error (console.ErrInterrupted) when the user hits Ctrl-C.
type PromptFunc func(label string) (string, error)

// Gate reviews commands against the whitelist and the user.
type Gate struct {
	prompt PromptFunc
}

// NewGate builds a gate around the given prompt.
func NewGate(prompt PromptFunc) *Gate {
	return &Gate{prompt: prompt}
}

// IsSafeReadOnly reports whether the command's first token is whitelisted.
// A leading path is stripped, so /bin/ls counts as ls.
func IsSafeReadOnly(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	return safeReadCommands[filepath.Base(fields[0])]
}

// Review gates one proposed command:
//   - whitelisted → approved without asking
//   - "y"/"yes" → approved
//   - "n"/"no"/empty → rejected
//   - anything else → rejected, the reply becomes a replacement instruction
//   - interrupt → the error propagates and cancels the whole task
func (g *Gate) Review(command string) (Decision, error) {
	if IsSafeReadOnly(command) {
		return Decision{Approved: true}, nil
	}

	reply, err := g.prompt("execute? [y/N]")
	if err != nil {
		return Decision{}, err
	}

	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		return Decision{Approved: true}, nil
	case "", "n", "no":
		return Decision{Approved: false}, nil
	default:
		return Decision{Approved: false, Instruction: strings.TrimSpace(reply)}, nil
	}
}
