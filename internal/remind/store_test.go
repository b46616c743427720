package remind

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "reminders.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndPendingOrder(t *testing.T) {
	s := openTestStore(t)
	later := time.Now().Add(2 * time.Hour)
	sooner := time.Now().Add(30 * time.Minute)

	if _, err := s.Add("unscheduled note", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("later", &later); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("sooner", &sooner); err != nil {
		t.Fatal(err)
	}

	pending, err := s.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 3 {
		t.Fatalf("pending = %d, want 3", len(pending))
	}
	// Scheduled first by due time, unscheduled last.
	if pending[0].Text != "sooner" || pending[1].Text != "later" || pending[2].Text != "unscheduled note" {
		t.Errorf("order = %q, %q, %q", pending[0].Text, pending[1].Text, pending[2].Text)
	}
	if pending[2].Due != nil {
		t.Error("unscheduled reminder has a due time")
	}
}

func TestDoneRenumbers(t *testing.T) {
	s := openTestStore(t)
	for _, text := range []string{"first", "second", "third"} {
		if _, err := s.Add(text, nil); err != nil {
			t.Fatal(err)
		}
	}

	done, err := s.Done(2)
	if err != nil {
		t.Fatal(err)
	}
	if done.Text != "second" {
		t.Errorf("Done(2) = %q, want second", done.Text)
	}

	pending, err := s.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	// Numbers are positions in the pending list, so #2 is now "third".
	r, err := s.Done(2)
	if err != nil {
		t.Fatal(err)
	}
	if r.Text != "third" {
		t.Errorf("renumbered Done(2) = %q, want third", r.Text)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Add("only", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Remove(0); err == nil {
		t.Error("Remove(0) accepted")
	}
	if _, err := s.Remove(2); err == nil {
		t.Error("Remove past end accepted")
	}
	if _, err := s.Remove(1); err != nil {
		t.Errorf("Remove(1): %v", err)
	}
}

func TestDueAndMarkFired(t *testing.T) {
	s := openTestStore(t)
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	overdue, err := s.Add("overdue", &past)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("upcoming", &future); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("note", nil); err != nil {
		t.Fatal(err)
	}

	due, err := s.Due(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 || due[0].Text != "overdue" {
		t.Fatalf("due = %+v, want just the overdue reminder", due)
	}

	if err := s.MarkFired(overdue.ID); err != nil {
		t.Fatal(err)
	}
	due, err = s.Due(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 0 {
		t.Errorf("fired reminder still reported due: %+v", due)
	}
}
