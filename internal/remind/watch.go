package remind

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"aide/internal/logging"
	"aide/internal/notify"
)

// Watcher polls the store for due reminders and fires notifications. A
// filesystem watch on the database wakes it early when another aide
// invocation adds a reminder.
type Watcher struct {
	store    *Store
	dbPath   string
	interval time.Duration
	send     func(title, body string) error
	log      *zap.Logger
}

// NewWatcher builds a watcher over the store at dbPath.
func NewWatcher(store *Store, dbPath string) *Watcher {
	return &Watcher{
		store:    store,
		dbPath:   dbPath,
		interval: 30 * time.Second,
		send:     notify.Send,
		log:      logging.L().Named("remind"),
	}
}

// Run blocks until ctx is cancelled, scanning on a ticker and on database
// changes. Notification failures are logged, never fatal.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err == nil {
		if werr := fw.Add(w.dbPath); werr != nil {
			w.log.Debug("db watch unavailable, ticker only", zap.Error(werr))
		}
		defer fw.Close()
	} else {
		w.log.Debug("fsnotify unavailable, ticker only", zap.Error(err))
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.fireDue() // catch anything already overdue at startup

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.fireDue()
		case ev, ok := <-w.events(fw):
			if !ok {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				w.fireDue()
			}
		}
	}
}

func (w *Watcher) events(fw *fsnotify.Watcher) <-chan fsnotify.Event {
	if fw == nil {
		return nil // nil channel blocks forever in select
	}
	return fw.Events
}

func (w *Watcher) fireDue() {
	due, err := w.store.Due(time.Now())
	if err != nil {
		w.log.Warn("scanning due reminders", zap.Error(err))
		return
	}
	for _, r := range due {
		if err := w.send("aide reminder", r.Text); err != nil {
			w.log.Warn("notification failed",
				zap.Int64("id", r.ID), zap.Error(err))
			continue
		}
		if err := w.store.MarkFired(r.ID); err != nil {
			w.log.Warn("marking reminder fired",
				zap.Int64("id", r.ID), zap.Error(err))
		}
	}
}
