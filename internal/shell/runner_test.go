package shell

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	short := strings.Repeat("a", 800)
	if got := Truncate(short); got != short {
		t.Error("output at the boundary must pass through untouched")
	}

	long := strings.Repeat("a", 400) + strings.Repeat("b", 200) + strings.Repeat("c", 400)
	got := Truncate(long)
	if !strings.HasPrefix(got, strings.Repeat("a", 400)) {
		t.Error("truncated output must keep the first 400 chars")
	}
	if !strings.HasSuffix(got, strings.Repeat("c", 400)) {
		t.Error("truncated output must keep the last 400 chars")
	}
	if !strings.Contains(got, "[output truncated]") {
		t.Error("truncated output must carry the marker")
	}
	if strings.Contains(got, "b") {
		t.Error("middle section must be dropped")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	var stream strings.Builder
	r := NewRunner(&stream, 30*time.Second)

	res, err := r.Run(context.Background(), "echo hello; echo world >&2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d", res.ExitCode)
	}
	if !strings.Contains(res.Output, "hello") || !strings.Contains(res.Output, "world") {
		t.Errorf("Output = %q, want combined stdout+stderr", res.Output)
	}
	if !strings.Contains(stream.String(), "hello") {
		t.Errorf("stream = %q, want live echo", stream.String())
	}
}

func TestRunExitCode(t *testing.T) {
	r := NewRunner(nil, 30*time.Second)
	res, err := r.Run(context.Background(), "exit 3")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func TestRunTimeoutKills(t *testing.T) {
	r := NewRunner(nil, 200*time.Millisecond)
	start := time.Now()
	res, err := r.Run(context.Background(), "sleep 10")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout did not kill the process promptly")
	}
	if !res.Killed {
		t.Error("Killed = false after timeout")
	}
	if !strings.Contains(res.KillReason, "timeout") {
		t.Errorf("KillReason = %q", res.KillReason)
	}
}

func TestRunTimeoutKillsCompoundCommand(t *testing.T) {
	// A compound command forks children that survive killing sh alone;
	// the whole process group must go down and release the output pipe.
	r := NewRunner(nil, 200*time.Millisecond)
	start := time.Now()
	res, err := r.Run(context.Background(), "sleep 10; echo done")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Run returned after %v; orphaned child held the pipe", elapsed)
	}
	if !res.Killed {
		t.Error("Killed = false after timeout")
	}
	if strings.Contains(res.Output, "done") {
		t.Error("command continued past the kill")
	}
}

func TestRunTimeoutKillsBackgroundedChild(t *testing.T) {
	r := NewRunner(nil, 200*time.Millisecond)
	start := time.Now()
	res, err := r.Run(context.Background(), "sleep 10 & wait")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Run returned after %v", elapsed)
	}
	if !res.Killed {
		t.Error("Killed = false after timeout")
	}
}

func TestRunVeryLongSingleLine(t *testing.T) {
	// One line past any fixed scanner buffer must still arrive intact.
	const n = 2 << 20 // 2 MiB, over the old 1 MiB line cap
	var stream strings.Builder
	r := NewRunner(&stream, 30*time.Second)

	res, err := r.Run(context.Background(), fmt.Sprintf("head -c %d /dev/zero | tr '\\0' x", n))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("ExitCode = %d", res.ExitCode)
	}
	if got := strings.Count(res.Output, "x"); got != n {
		t.Errorf("buffered %d chars, want %d", got, n)
	}
	if got := strings.Count(stream.String(), "x"); got != n {
		t.Errorf("streamed %d chars, want %d (live output must not be truncated)", got, n)
	}
}

func TestObservation(t *testing.T) {
	ok := &Result{Output: "fine\n"}
	if got := ok.Observation(); got != "fine\n" {
		t.Errorf("Observation = %q", got)
	}

	empty := &Result{Output: "  \n"}
	if !strings.Contains(empty.Observation(), "no output") {
		t.Errorf("empty Observation = %q", empty.Observation())
	}

	failed := &Result{Output: "nope\n", ExitCode: 2}
	if !strings.Contains(failed.Observation(), "exit code 2") {
		t.Errorf("failed Observation = %q", failed.Observation())
	}

	killed := &Result{Output: "partial\n", Killed: true, KillReason: "timeout after 5m0s"}
	obs := killed.Observation()
	if !strings.Contains(obs, "killed") || !strings.Contains(obs, "timeout") {
		t.Errorf("killed Observation = %q", obs)
	}
}

func TestCapture(t *testing.T) {
	out, err := Capture(context.Background(), "echo snapshot")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !strings.Contains(out, "snapshot") {
		t.Errorf("out = %q", out)
	}

	if _, err := Capture(context.Background(), "exit 1"); err == nil {
		t.Error("Capture must fail on non-zero exit")
	}
}
