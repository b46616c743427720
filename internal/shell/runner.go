// Package shell runs agent-approved commands in a subshell, streaming
// output live while buffering it for the ledger.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"aide/internal/logging"
	"aide/internal/notify"
)

const (
	// DefaultTimeout bounds a single command run.
	DefaultTimeout = 300 * time.Second

	// waitDelay backstops Wait after a kill: if an orphaned grandchild
	// still holds the output pipe, Wait is forced to return anyway.
	waitDelay = 2 * time.Second

	// notifyAfter is the run duration past which a finished command
	// triggers an out-of-band notification, since the user has likely
	// wandered off.
	notifyAfter = 120 * time.Second

	// Ledger observations keep the first and last truncateKeep chars.
	truncateKeep = 400
)

// Result captures one command run.
type Result struct {
	Output   string
	ExitCode int
	Duration time.Duration
	Killed   bool
	// KillReason is set when the process was killed (timeout).
	KillReason string
}

// Observation renders the result for the ledger, truncated so one noisy
// command cannot flood the context window.
func (r *Result) Observation() string {
	out := Truncate(r.Output)
	switch {
	case r.Killed:
		return fmt.Sprintf("command killed (%s); partial output:\n%s", r.KillReason, out)
	case r.ExitCode != 0:
		return fmt.Sprintf("exit code %d; output:\n%s", r.ExitCode, out)
	case strings.TrimSpace(out) == "":
		return "command succeeded with no output"
	default:
		return out
	}
}

// Truncate keeps the head and tail of long output with a marker between.
// Output at or under 2*truncateKeep chars passes through untouched.
func Truncate(s string) string {
	if len(s) <= 2*truncateKeep {
		return s
	}
	return s[:truncateKeep] + "\n... [output truncated] ...\n" + s[len(s)-truncateKeep:]
}

// Runner executes command lines through `sh -c`.
type Runner struct {
	Timeout time.Duration
	// Stream receives combined output as it arrives.
	// Nil disables streaming (used for quiet snapshot captures).
	Stream io.Writer

	log *zap.Logger
}

// NewRunner builds a runner streaming to w with the given timeout.
func NewRunner(w io.Writer, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		Timeout: timeout,
		Stream:  w,
		log:     logging.L().Named("shell"),
	}
}

// Run executes one command line. The returned error is reserved for
// failures to start; command failures and timeouts are reported in the
// Result so the agent loop can observe them and continue.
//
// The command runs in its own process group and the whole group is killed
// on timeout, so compound commands and backgrounded children do not
// outlive the deadline or hold the run blocked on the output pipe.
func (r *Runner) Run(ctx context.Context, command string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// Negative pid signals the whole group.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	var buf strings.Builder
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		// A plain line scanner would abort on lines past its buffer
		// cap; ReadString grows as needed so nothing is dropped.
		br := bufio.NewReader(pr)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				buf.WriteString(line)
				if r.Stream != nil {
					fmt.Fprint(r.Stream, line)
				}
			}
			if err != nil {
				return
			}
		}
	}()

	start := time.Now()
	if err := cmd.Start(); err != nil {
		pw.Close()
		<-drained
		return nil, fmt.Errorf("starting command: %w", err)
	}

	waitErr := cmd.Wait()
	pw.Close()
	<-drained

	res := &Result{
		Output:   buf.String(),
		Duration: time.Since(start),
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Killed = true
		res.KillReason = fmt.Sprintf("timeout after %s", r.Timeout)
		res.ExitCode = -1
	case waitErr != nil:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
	}

	r.log.Debug("command finished",
		zap.String("command", command),
		zap.Int("exit", res.ExitCode),
		zap.Duration("duration", res.Duration),
		zap.Bool("killed", res.Killed))

	if res.Duration > notifyAfter {
		// Best effort; the user probably stopped watching.
		_ = notify.Send("aide", fmt.Sprintf("long command finished (exit %d): %s",
			res.ExitCode, firstLine(command)))
	}

	return res, nil
}

// Capture runs a command quietly and returns its output, for the
// environment snapshot.
func Capture(ctx context.Context, command string) (string, error) {
	r := &Runner{Timeout: 30 * time.Second, log: logging.L().Named("shell")}
	res, err := r.Run(ctx, command)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("snapshot command exited %d", res.ExitCode)
	}
	return res.Output, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
