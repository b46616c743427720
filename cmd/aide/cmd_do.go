package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aide/internal/agent"
	"aide/internal/assist"
	"aide/internal/history"
	"aide/internal/llm"
	"aide/internal/remind"
	"aide/internal/safety"
	"aide/internal/search"
	"aide/internal/shell"
	"aide/internal/tools"
)

var (
	flagTimeout  int
	flagMaxSteps int
)

var doCmd = &cobra.Command{
	Use:   "do <goal...>",
	Short: "run a multi-step task with confirmation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDo(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	doCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "per-command timeout in seconds")
	doCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "maximum decisions per task")
	rootCmd.AddCommand(doCmd)
}

func runDo(ctx context.Context, goal string) error {
	model, err := newLLM(ctx)
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.CommandTimeoutSeconds) * time.Second
	if flagTimeout > 0 {
		timeout = time.Duration(flagTimeout) * time.Second
	}
	maxSteps := cfg.MaxSteps
	if flagMaxSteps > 0 {
		maxSteps = flagMaxSteps
	}

	exec, err := buildExecutor(model, timeout, maxSteps)
	if err != nil {
		return err
	}

	// Chained goals share the executor and its ledger.
	for {
		res := exec.RunTask(ctx, goal)

		switch res.Outcome {
		case agent.Finished:
			ui.Say(res.Closing)
		case agent.StepLimitReached:
			ui.Warn("stopped after %d steps without finishing; narrow the goal and try again", res.Steps)
		case agent.Cancelled:
			ui.Warn("task cancelled")
			return nil
		case agent.DispatchError:
			ui.Errorf("task aborted: %s", res.Reason)
			return nil
		}

		reply, err := ui.Prompt("anything else? >")
		if err != nil {
			return nil
		}
		if agent.IsExitWord(reply) {
			return nil
		}
		goal = reply
	}
}

// buildExecutor wires the task loop: gate, runner, and the tool roster the
// model may call.
func buildExecutor(model llm.Client, timeout time.Duration, maxSteps int) (*agent.Executor, error) {
	histPath, err := dataPath("history.json")
	if err != nil {
		return nil, err
	}
	assistant := &assist.Assistant{LLM: model, History: history.Open(histPath)}
	searcher := search.New(model)

	disp := tools.NewDispatcher()
	disp.MustRegister(&tools.Tool{
		Name:        "ask_user",
		Description: "ask the user a clarifying question; input is the question",
		Run: func(ctx context.Context, input string) (string, error) {
			reply, err := ui.Prompt(input + " >")
			if err != nil {
				return "", err
			}
			return "user replied: " + reply, nil
		},
	})
	disp.MustRegister(&tools.Tool{
		Name:        "search",
		Description: "search the web and get a synthesized answer; input is the query",
		Run: func(ctx context.Context, input string) (string, error) {
			return searcher.Run(ctx, input, search.Options{Depth: search.AgentDepth})
		},
	})
	disp.MustRegister(&tools.Tool{
		Name:        "remember_add",
		Description: "save a reminder; input is the reminder text, schedule words included",
		Run: func(ctx context.Context, input string) (string, error) {
			return addReminder(ctx, model, input)
		},
	})
	disp.MustRegister(&tools.Tool{
		Name:        "generate",
		Description: "generate code or text; input describes what to produce",
		Run:         assistant.Generate,
	})
	disp.MustRegister(&tools.Tool{
		Name:        "explain",
		Description: "explain a concept or command; input is the topic",
		Run:         assistant.Explain,
	})

	roster := []agent.ToolInfo{{
		Name:        "shell",
		Description: "run a shell command; input is the command line (read-only commands run without confirmation)",
	}}
	for _, t := range disp.Roster() {
		roster = append(roster, agent.ToolInfo{Name: t.Name, Description: t.Description})
	}

	runner := shell.NewRunner(ui.Out(), timeout)

	exec := agent.NewExecutor(model, agent.NewLedger())
	exec.Dispatch = disp.Dispatch
	exec.Gate = safety.NewGate(ui.Prompt)
	exec.Run = func(ctx context.Context, command string) (string, error) {
		res, err := runner.Run(ctx, command)
		if err != nil {
			return "", err
		}
		return res.Observation(), nil
	}
	exec.Snapshot = func(ctx context.Context) (string, error) {
		return shell.Capture(ctx, "pwd && ls -F")
	}
	exec.UI = ui
	exec.Preamble = agent.BuildPreamble(roster)
	exec.Window = cfg.ContextWindow
	exec.MaxSteps = maxSteps
	return exec, nil
}

// addReminder parses the schedule and stores the reminder; shared between
// the agent tool and the remember command.
func addReminder(ctx context.Context, model llm.Client, text string) (string, error) {
	dbPath, err := dataPath("reminders.db")
	if err != nil {
		return "", err
	}
	store, err := remind.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	kept, due := remind.ParseSchedule(ctx, model, text, time.Now())
	r, err := store.Add(kept, due)
	if err != nil {
		return "", err
	}
	if r.Due != nil {
		return fmt.Sprintf("reminder saved: %s (due %s)", r.Text, r.Due.Format("Mon 2006-01-02 15:04")), nil
	}
	return "reminder saved: " + r.Text, nil
}
