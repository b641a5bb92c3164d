// Package teatest steps bubbletea models synchronously in tests.
//
// Update is called directly and the Cmds it returns are run in place, so a
// test observes every state change in order. A Cmd that does not return
// within the driver's timeout (timers, blinking cursors) is dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds how many Cmds one Send may run, so a model that keeps
// scheduling work cannot hang a test.
const MaxSteps = 500

// DefaultCmdTimeout is how long a single Cmd may take before it is dropped.
// Progress writes against an in-process fake finish well inside it.
const DefaultCmdTimeout = 100 * time.Millisecond

// Driver feeds messages to a tea.Model and runs the resulting Cmds.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd produced tea.QuitMsg. Later sends are
	// ignored, as the runtime would have stopped.
	Quitting bool
	// Seen lists every message delivered to Update, oldest first.
	Seen []tea.Msg

	timeout time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else. Cmds it returns
// are discarded, as with the first resize of a real program.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.deliver(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout overrides DefaultCmdTimeout.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.timeout = timeout }
}

// New wraps model. Call DrainInit to run the model's Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init())
}

// Send delivers msg and runs the resulting Cmds to completion.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.run(d.deliver(msg))
}

// Press sends the key k times.
func (d *Driver) Press(k tea.KeyType, times int) {
	d.T.Helper()
	for i := 0; i < times; i++ {
		d.Send(tea.KeyMsg{Type: k})
	}
}

// Key sends one key.
func (d *Driver) Key(k tea.KeyType) {
	d.T.Helper()
	d.Press(k, 1)
}

// Rune sends a printable key such as 'q'.
func (d *Driver) Rune(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Rune(r)
	}
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

// LastMsg returns the most recent delivered message of type T.
func LastMsg[T tea.Msg](d *Driver) (T, bool) {
	for i := len(d.Seen) - 1; i >= 0; i-- {
		if m, ok := d.Seen[i].(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}

func (d *Driver) deliver(msg tea.Msg) tea.Cmd {
	d.Seen = append(d.Seen, msg)
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	return cmd
}

// run executes cmd and every Cmd it leads to, breadth first.
func (d *Driver) run(cmd tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxSteps {
			d.T.Logf("teatest: stopped after %d cmds", MaxSteps)
			return
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := d.exec(next).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.Quitting = true
			d.deliver(msg)
			return
		default:
			if isCursorBlink(msg) {
				continue
			}
			queue = append(queue, d.deliver(msg))
		}
	}
}

// exec runs cmd, giving up after the driver's timeout.
func (d *Driver) exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(d.timeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor,
// which chain into timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
