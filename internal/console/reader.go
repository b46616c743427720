package console

import (
	"bufio"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ErrInterrupted is returned by prompt reads when the user hits Ctrl-C.
// Callers turn it into a cancelled outcome instead of dying mid-task.
var ErrInterrupted = errors.New("interrupted")

// lineReader delivers stdin lines over a channel so a prompt can race the
// read against SIGINT. The reading goroutine lives for the whole process;
// os.Stdin reads cannot be unblocked once issued, so it is started once and
// shared by every prompt.
type lineReader struct {
	lines  chan string
	errs   chan error
	sigs   chan os.Signal
	closed chan struct{}
}

func newLineReader(in io.Reader) *lineReader {
	r := &lineReader{
		lines:  make(chan string),
		errs:   make(chan error, 1),
		sigs:   make(chan os.Signal, 1),
		closed: make(chan struct{}),
	}
	signal.Notify(r.sigs, syscall.SIGINT)

	go func() {
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case r.lines <- sc.Text():
			case <-r.closed:
				return
			}
		}
		if err := sc.Err(); err != nil {
			r.errs <- err
		} else {
			r.errs <- io.EOF
		}
	}()

	return r
}

// ReadLine blocks until a full line arrives or the user interrupts.
func (r *lineReader) ReadLine() (string, error) {
	select {
	case line := <-r.lines:
		return line, nil
	case err := <-r.errs:
		return "", err
	case <-r.sigs:
		return "", ErrInterrupted
	}
}

func (r *lineReader) Close() {
	signal.Stop(r.sigs)
	close(r.closed)
}
