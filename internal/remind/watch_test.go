package remind

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatcherFiresDueReminders(t *testing.T) {
	// go.opencensus.io (a transitive dependency of the notify/llm import
	// chain) starts a global stats worker goroutine at package init; it is
	// not owned by the watcher under test.
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	dbPath := filepath.Join(t.TempDir(), "reminders.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	past := time.Now().Add(-time.Minute)
	if _, err := store.Add("overdue", &past); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var fired []string
	w := NewWatcher(store, dbPath)
	w.interval = 10 * time.Millisecond
	w.send = func(title, body string) error {
		mu.Lock()
		fired = append(fired, body)
		mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() {
		// Startup scan fires the overdue reminder; stop once seen.
		for {
			mu.Lock()
			n := len(fired)
			mu.Unlock()
			if n > 0 || ctx.Err() != nil {
				cancel()
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	if err := w.Run(ctx); !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 || fired[0] != "overdue" {
		t.Errorf("fired = %v, want the overdue reminder once", fired)
	}

	// Fired reminders stay out of future scans.
	due, err := store.Due(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 0 {
		t.Errorf("reminder still due after firing: %+v", due)
	}
}

func TestWatcherSendFailureKeepsReminderDue(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reminders.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	past := time.Now().Add(-time.Minute)
	if _, err := store.Add("stubborn", &past); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(store, dbPath)
	w.send = func(title, body string) error { return errors.New("no backend") }
	w.fireDue()

	due, err := store.Due(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 {
		t.Errorf("due = %d, want reminder kept for retry", len(due))
	}
}
