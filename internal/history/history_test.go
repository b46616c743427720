package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFileIsEmpty(t *testing.T) {
	l := Open(filepath.Join(t.TempDir(), "nope.json"))
	if len(l.Entries()) != 0 {
		t.Errorf("entries = %d, want 0", len(l.Entries()))
	}
}

func TestOpenCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	l := Open(path)
	if len(l.Entries()) != 0 {
		t.Errorf("entries = %d, want 0 from corrupt file", len(l.Entries()))
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	l := Open(path)
	l.Append(RoleUser, "hello")
	l.Append(RoleAssistant, "hi there")
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	re := Open(path)
	entries := re.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Role != RoleUser || entries[0].Content != "hello" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Role != RoleAssistant {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestMemoryCap(t *testing.T) {
	l := Open(filepath.Join(t.TempDir(), "history.json"))
	for i := 0; i < memoryCap+50; i++ {
		l.Append(RoleUser, fmt.Sprintf("msg %d", i))
	}
	entries := l.Entries()
	if len(entries) != memoryCap {
		t.Fatalf("entries = %d, want cap %d", len(entries), memoryCap)
	}
	// Oldest entries are the ones dropped.
	if entries[0].Content != "msg 50" {
		t.Errorf("entries[0] = %q, want msg 50", entries[0].Content)
	}
}

func TestRecentSelectsNewestWithinBudget(t *testing.T) {
	l := Open(filepath.Join(t.TempDir(), "history.json"))
	l.Append(RoleUser, "oldest message that is quite long indeed")
	l.Append(RoleAssistant, "middle")
	l.Append(RoleUser, "newest")

	est := func(s string) int { return len(s) }

	// Budget fits the newest two only.
	got := l.Recent(30, est)
	if len(got) != 2 {
		t.Fatalf("selected %d entries, want 2", len(got))
	}
	if got[0].Content != "middle" || got[1].Content != "newest" {
		t.Errorf("selection = %q, %q; want chronological order", got[0].Content, got[1].Content)
	}

	if sel := l.Recent(0, est); sel != nil {
		t.Errorf("zero budget selected %d entries", len(sel))
	}
}
