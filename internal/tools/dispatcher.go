// Package tools routes agent tool calls to their collaborators and
// normalizes every result into an observation string.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"aide/internal/console"
	"aide/internal/logging"
)

// RunFunc executes a tool against its input.
type RunFunc func(ctx context.Context, input string) (string, error)

// Tool is one dispatchable capability offered to the model.
type Tool struct {
	Name        string
	Description string
	Run         RunFunc
}

// Dispatcher holds the tool roster. It is safe for concurrent use,
// although the agent loop itself is single-threaded.
type Dispatcher struct {
	mu    sync.RWMutex
	tools map[string]*Tool

	log *zap.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		tools: make(map[string]*Tool),
		log:   logging.L().Named("tools"),
	}
}

// Register adds a tool. Duplicate names are a programming error.
func (d *Dispatcher) Register(t *Tool) error {
	if t.Name == "" || t.Run == nil {
		return fmt.Errorf("tool needs a name and a run function")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tools[t.Name]; exists {
		return fmt.Errorf("tool already registered: %s", t.Name)
	}
	d.tools[t.Name] = t
	return nil
}

// MustRegister registers a tool and panics on error, for static wiring.
func (d *Dispatcher) MustRegister(t *Tool) {
	if err := d.Register(t); err != nil {
		panic(err)
	}
}

// Names lists registered tools alphabetically.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Roster returns name/description pairs for the model preamble.
func (d *Dispatcher) Roster() []Tool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	roster := make([]Tool, 0, len(d.tools))
	for _, t := range d.tools {
		roster = append(roster, Tool{Name: t.Name, Description: t.Description})
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })
	return roster
}

// Dispatch runs the named tool. Unknown tools and tool failures come back
// as observations so the loop can continue and the model can self-correct;
// the error return is reserved for user interrupts and context
// cancellation, which end the task.
func (d *Dispatcher) Dispatch(ctx context.Context, name, input string) (string, error) {
	d.mu.RLock()
	tool, ok := d.tools[name]
	d.mu.RUnlock()

	if !ok {
		return fmt.Sprintf("unknown tool %q; available: %s",
			name, strings.Join(d.Names(), ", ")), nil
	}

	d.log.Debug("dispatching tool", zap.String("tool", name))
	result, err := tool.Run(ctx, input)
	if err != nil {
		if isHard(ctx, err) {
			return "", err
		}
		return fmt.Sprintf("tool %s failed: %v", name, err), nil
	}
	if strings.TrimSpace(result) == "" {
		return fmt.Sprintf("tool %s returned no output", name), nil
	}
	return result, nil
}

func isHard(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, console.ErrInterrupted)
}
