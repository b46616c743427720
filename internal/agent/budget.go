package agent

import "unicode/utf8"

// reservePercent of the context window is held back for the model's reply.
const reservePercent = 8

// Estimator converts text to an estimated token count.
type Estimator func(string) int

// DefaultEstimate approximates tokens at ~4 characters per token, counting
// runes so multibyte text is not overcharged. Empty input costs nothing.
func DefaultEstimate(s string) int {
	if s == "" {
		return 0
	}
	runes := utf8.RuneCountInString(s)
	return (runes + 3) / 4
}

// BudgetPlan is the result of allocating the context window over a ledger.
type BudgetPlan struct {
	Window    int
	Preamble  int
	Prompt    int
	Reserve   int
	Available int

	// Selected is the chronological suffix of the ledger that fits.
	Selected []Step

	// Truncated reports whether at least one step was excluded.
	Truncated bool
}

// PlanBudget computes how much of the ledger fits alongside the preamble and
// prompt. Selection walks newest to oldest, admitting steps while the
// remaining budget allows, then re-emits them in chronological order. The
// ledger is never mutated.
func PlanBudget(window int, preamble, prompt string, ledger []Step, est Estimator) BudgetPlan {
	if est == nil {
		est = DefaultEstimate
	}

	plan := BudgetPlan{
		Window:   window,
		Preamble: est(preamble),
		Prompt:   est(prompt),
		Reserve:  window * reservePercent / 100,
	}
	plan.Available = window - plan.Preamble - plan.Prompt - plan.Reserve

	if plan.Available <= 0 {
		plan.Truncated = len(ledger) > 0
		plan.Selected = nil
		return plan
	}

	remaining := plan.Available
	cut := len(ledger) // first index admitted
	for i := len(ledger) - 1; i >= 0; i-- {
		cost := est(RenderStep(ledger[i]))
		if cost > remaining {
			break
		}
		remaining -= cost
		cut = i
	}

	plan.Truncated = cut > 0
	if cut < len(ledger) {
		plan.Selected = append([]Step(nil), ledger[cut:]...)
	}
	return plan
}
