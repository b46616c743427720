package agent

import (
	"fmt"
	"strings"
	"time"
)

// BoundaryIndex marks the synthetic step separating chained tasks.
const BoundaryIndex = -1

// Step is one entry in the task ledger: what was done and what came back.
type Step struct {
	Index       int
	Action      string
	Observation string
	At          time.Time
}

// RenderStep formats a step the way it appears in the model prompt. The
// budget allocator estimates against this same rendering so admission
// decisions match what is actually sent.
func RenderStep(s Step) string {
	if s.Index == BoundaryIndex {
		return s.Action
	}
	return fmt.Sprintf("step %d:\naction: %s\nobservation: %s", s.Index, s.Action, s.Observation)
}

// Ledger is the append-only execution history. Chained tasks share one
// ledger; a boundary step separates them and per-task indices restart.
type Ledger struct {
	steps []Step
	next  int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// BeginTask prepares the ledger for a new goal. On a non-empty ledger it
// appends the task boundary; the per-task index always restarts at zero.
func (l *Ledger) BeginTask(goal string) {
	if len(l.steps) > 0 {
		l.steps = append(l.steps, Step{
			Index:       BoundaryIndex,
			Action:      fmt.Sprintf("--- new task: %s ---", goal),
			Observation: "",
			At:          time.Now(),
		})
	}
	l.next = 0
}

// Append records a step and returns it. Indices within a task are strictly
// increasing, starting at 0 (the environment snapshot).
func (l *Ledger) Append(action, observation string) Step {
	s := Step{
		Index:       l.next,
		Action:      action,
		Observation: observation,
		At:          time.Now(),
	}
	l.next++
	l.steps = append(l.steps, s)
	return s
}

// AppendRejection folds a declined proposal into the ledger. Instruction is
// the user's replacement guidance, empty for a plain "no".
func (l *Ledger) AppendRejection(command, instruction string) Step {
	obs := "the user declined to run this command"
	if strings.TrimSpace(instruction) != "" {
		obs = "user instruction: " + instruction
	}
	return l.Append("proposal rejected: "+command, obs)
}

// Skip consumes the next index without recording a step. Used when the
// environment snapshot fails so action steps still start at one.
func (l *Ledger) Skip() {
	l.next++
}

// Steps returns a copy of the ledger contents.
func (l *Ledger) Steps() []Step {
	return append([]Step(nil), l.steps...)
}

// Len returns the total number of recorded steps, boundaries included.
func (l *Ledger) Len() int {
	return len(l.steps)
}
