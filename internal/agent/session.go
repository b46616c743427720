package agent

import "strings"

// exitWords end the follow-up loop after a finished task.
var exitWords = map[string]bool{
	"":        true,
	"exit":    true,
	"quit":    true,
	"stop":    true,
	"no":      true,
	"nothing": true,
	"done":    true,
}

// IsExitWord reports whether a follow-up reply means "we're done here".
func IsExitWord(s string) bool {
	return exitWords[strings.ToLower(strings.TrimSpace(s))]
}
