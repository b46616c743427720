// Package remind stores reminders in SQLite and watches for due ones.
package remind

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Reminder is one stored reminder. Due is nil for unscheduled notes.
type Reminder struct {
	ID      int64
	Text    string
	Due     *time.Time
	Created time.Time
	Done    bool
	Fired   bool
}

// Store wraps the reminder database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS reminders (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	text    TEXT NOT NULL,
	due     TIMESTAMP,
	created TIMESTAMP NOT NULL,
	done    INTEGER NOT NULL DEFAULT 0,
	fired   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(due) WHERE done = 0;
`

// Open opens (and migrates) the reminder database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening reminder db: %w", err)
	}
	// The CLI is single-user; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating reminder db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a reminder and returns it.
func (s *Store) Add(text string, due *time.Time) (*Reminder, error) {
	r := &Reminder{Text: text, Due: due, Created: time.Now()}
	res, err := s.db.Exec(
		`INSERT INTO reminders (text, due, created) VALUES (?, ?, ?)`,
		r.Text, nullable(due), r.Created,
	)
	if err != nil {
		return nil, fmt.Errorf("adding reminder: %w", err)
	}
	r.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Pending lists undone reminders, scheduled ones first by due time.
func (s *Store) Pending() ([]Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, text, due, created, done, fired FROM reminders
		 WHERE done = 0
		 ORDER BY due IS NULL, due ASC, created ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()
	return scan(rows)
}

// Due returns unfired reminders whose schedule has passed.
func (s *Store) Due(now time.Time) ([]Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, text, due, created, done, fired FROM reminders
		 WHERE done = 0 AND fired = 0 AND due IS NOT NULL AND due <= ?
		 ORDER BY due ASC`, now)
	if err != nil {
		return nil, fmt.Errorf("querying due reminders: %w", err)
	}
	defer rows.Close()
	return scan(rows)
}

// MarkFired records that a reminder's notification went out.
func (s *Store) MarkFired(id int64) error {
	_, err := s.db.Exec(`UPDATE reminders SET fired = 1 WHERE id = ?`, id)
	return err
}

// Done marks the n-th pending reminder (1-based, as shown by `remember ls`)
// as completed.
func (s *Store) Done(n int) (*Reminder, error) {
	r, err := s.nth(n)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`UPDATE reminders SET done = 1 WHERE id = ?`, r.ID); err != nil {
		return nil, fmt.Errorf("completing reminder: %w", err)
	}
	return r, nil
}

// Remove deletes the n-th pending reminder (1-based).
func (s *Store) Remove(n int) (*Reminder, error) {
	r, err := s.nth(n)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, r.ID); err != nil {
		return nil, fmt.Errorf("removing reminder: %w", err)
	}
	return r, nil
}

func (s *Store) nth(n int) (*Reminder, error) {
	pending, err := s.Pending()
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(pending) {
		return nil, fmt.Errorf("no reminder #%d (have %d)", n, len(pending))
	}
	return &pending[n-1], nil
}

func scan(rows *sql.Rows) ([]Reminder, error) {
	var out []Reminder
	for rows.Next() {
		var r Reminder
		var due sql.NullTime
		if err := rows.Scan(&r.ID, &r.Text, &due, &r.Created, &r.Done, &r.Fired); err != nil {
			return nil, err
		}
		if due.Valid {
			t := due.Time
			r.Due = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullable(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
