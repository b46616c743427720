package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"aide/internal/console"
	"aide/internal/logging"
	"aide/internal/safety"
)

// Outcome is how a task ended.
type Outcome int

const (
	// Finished means the model declared the goal accomplished.
	Finished Outcome = iota
	// StepLimitReached means the per-task decision ceiling was hit.
	StepLimitReached
	// Cancelled means the user interrupted at a prompt.
	Cancelled
	// DispatchError means the loop could not continue: unparseable or
	// unusable decision, or a transport failure.
	DispatchError
)

func (o Outcome) String() string {
	switch o {
	case Finished:
		return "finished"
	case StepLimitReached:
		return "step limit reached"
	case Cancelled:
		return "cancelled"
	case DispatchError:
		return "dispatch error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result summarizes one task run.
type Result struct {
	Outcome Outcome
	Steps   int    // decisions dispatched this task
	Closing string // end-of-task message when finished
	Reason  string // detail for DispatchError
}

// UI is the slice of the console the executor needs.
type UI interface {
	Thought(string)
	Command(string)
	Warn(format string, args ...any)
	Info(format string, args ...any)
}

// Gate reviews a proposed shell command before execution.
type Gate interface {
	Review(command string) (safety.Decision, error)
}

// DispatchFunc routes a named tool call and returns its observation.
// Tool-level failures come back as observations; the error return is
// reserved for interrupts and context cancellation.
type DispatchFunc func(ctx context.Context, name, input string) (string, error)

// RunFunc executes an approved shell command and returns the ledger
// observation (already truncated for history).
type RunFunc func(ctx context.Context, command string) (string, error)

// SnapshotFunc captures the environment snapshot for step zero.
type SnapshotFunc func(ctx context.Context) (string, error)

// Executor drives the task loop: plan budget, ask the model, gate and run
// the chosen action, observe, repeat.
type Executor struct {
	LLM      llmClient
	Dispatch DispatchFunc
	Gate     Gate
	Run      RunFunc
	Snapshot SnapshotFunc
	UI       UI

	Ledger   *Ledger
	Preamble string
	Window   int
	MaxSteps int
	Estimate Estimator

	log *zap.Logger
}

// llmClient mirrors llm.Client without importing it, keeping this package
// free of SDK dependencies in tests.
type llmClient interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// NewExecutor wires an executor around a shared ledger.
func NewExecutor(client llmClient, ledger *Ledger) *Executor {
	return &Executor{
		LLM:    client,
		Ledger: ledger,
		log:    logging.L().Named("agent"),
	}
}

// RunTask executes one goal to completion. Chained goals reuse the same
// executor; the ledger carries history across the boundary.
func (e *Executor) RunTask(ctx context.Context, goal string) Result {
	e.Ledger.BeginTask(goal)
	e.takeSnapshot(ctx)

	basePrompt := BuildPrompt(goal, nil, false)

	for n := 1; n <= e.MaxSteps; n++ {
		plan := PlanBudget(e.Window, e.Preamble, basePrompt, e.Ledger.Steps(), e.Estimate)
		prompt := BuildPrompt(goal, plan.Selected, plan.Truncated)

		e.log.Debug("planning step",
			zap.Int("step", n),
			zap.Int("available", plan.Available),
			zap.Int("selected", len(plan.Selected)),
			zap.Bool("truncated", plan.Truncated))

		raw, err := e.LLM.Generate(ctx, e.Preamble, prompt)
		if err != nil {
			// Transport failure: the task ends without consuming a
			// ledger slot.
			if interrupted(err) {
				return Result{Outcome: Cancelled, Steps: n - 1}
			}
			e.UI.Warn("model call failed: %v", err)
			return Result{Outcome: DispatchError, Steps: n - 1, Reason: err.Error()}
		}

		decision, err := ParseDecision(raw)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				e.UI.Warn("could not parse the model's decision; raw reply:")
				e.UI.Info("%s", pe.Raw)
			}
			return Result{Outcome: DispatchError, Steps: n - 1, Reason: err.Error()}
		}

		if decision.Thought != "" {
			e.UI.Thought(decision.Thought)
		}

		if decision.TaskFinished {
			return Result{
				Outcome: Finished,
				Steps:   n - 1,
				Closing: e.closingMessage(ctx, goal),
			}
		}

		if !decision.Usable() {
			e.UI.Warn("the model proposed no tool and did not finish the task")
			return Result{Outcome: DispatchError, Steps: n - 1, Reason: "decision named no tool"}
		}

		outcome, done := e.dispatchStep(ctx, decision)
		if done {
			outcome.Steps = n
			return outcome
		}
	}

	return Result{Outcome: StepLimitReached, Steps: e.MaxSteps}
}

// dispatchStep runs one decision. done=true means the task ends now.
func (e *Executor) dispatchStep(ctx context.Context, d Decision) (Result, bool) {
	name := strings.TrimSpace(d.Action.ToolName)
	input := d.Action.ToolInput

	if name == "shell" {
		return e.runShell(ctx, input)
	}

	obs, err := e.Dispatch(ctx, name, input)
	if err != nil {
		if interrupted(err) {
			return Result{Outcome: Cancelled}, true
		}
		obs = fmt.Sprintf("tool error: %v", err)
	}
	e.Ledger.Append(fmt.Sprintf("%s: %s", name, input), obs)
	return Result{}, false
}

// runShell gates and executes a proposed command.
func (e *Executor) runShell(ctx context.Context, command string) (Result, bool) {
	if strings.TrimSpace(command) == "" {
		// Nothing to confirm or run; let the model see its mistake.
		e.UI.Warn("the shell tool was called without a command")
		e.Ledger.Append("shell: <no command>",
			"error: the shell tool was called without a command; provide a command line in tool_input")
		return Result{}, false
	}

	e.UI.Command(command)

	verdict, err := e.Gate.Review(command)
	if err != nil {
		return Result{Outcome: Cancelled}, true
	}

	if !verdict.Approved {
		e.Ledger.AppendRejection(command, verdict.Instruction)
		return Result{}, false
	}

	obs, err := e.Run(ctx, command)
	if err != nil {
		if interrupted(err) {
			return Result{Outcome: Cancelled}, true
		}
		obs = fmt.Sprintf("command failed to start: %v", err)
	}
	e.Ledger.Append("shell: "+command, obs)
	return Result{}, false
}

// takeSnapshot records the environment as step zero. Failure is non-fatal;
// the index is still consumed so action steps start at one either way.
func (e *Executor) takeSnapshot(ctx context.Context) {
	if e.Snapshot == nil {
		e.Ledger.Skip()
		return
	}
	snap, err := e.Snapshot(ctx)
	if err != nil {
		e.log.Debug("environment snapshot failed", zap.Error(err))
		e.Ledger.Skip()
		return
	}
	e.Ledger.Append("environment snapshot (pwd; ls -F)", snap)
}

// closingMessage asks the model to summarize the task from the ledger.
// The same budget walk as the main loop keeps the history within window.
func (e *Executor) closingMessage(ctx context.Context, goal string) string {
	plan := PlanBudget(e.Window, closingSystem, goal, e.Ledger.Steps(), e.Estimate)
	msg, err := e.LLM.Generate(ctx, closingSystem, BuildClosingPrompt(goal, plan.Selected))
	if err != nil || strings.TrimSpace(msg) == "" {
		return ClosingFallback
	}
	return msg
}

func interrupted(err error) bool {
	return errors.Is(err, console.ErrInterrupted) || errors.Is(err, context.Canceled)
}
