// Package notify delivers best-effort out-of-band notifications through
// whatever notifier the host offers (termux-notification on Android,
// notify-send on desktop Linux).
package notify

import (
	"fmt"
	"os/exec"

	"github.com/google/uuid"
)

// Send pushes a notification. It tries termux first, then notify-send, and
// reports an error only when no notifier is available or both fail.
func Send(title, body string) error {
	if path, err := exec.LookPath("termux-notification"); err == nil {
		// A fresh id keeps repeated notifications from replacing each
		// other in the shade.
		return exec.Command(path,
			"--id", uuid.NewString(),
			"--title", title,
			"--content", body,
		).Run()
	}

	if path, err := exec.LookPath("notify-send"); err == nil {
		return exec.Command(path, title, body).Run()
	}

	return fmt.Errorf("no notification backend found")
}
