package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// slowAfter is when the spinner starts showing elapsed seconds.
const slowAfter = 2 * time.Second

// Spinner animates a message on one terminal line while a request runs.
// It borrows its frames and rate from a bubbles spinner but draws
// directly, since commands print outside a Bubble Tea program.
type Spinner struct {
	w       io.Writer
	message string
	kind    spinner.Spinner

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		kind:    spinner.Dot,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation. Call Stop to end it.
func (s *Spinner) Start() {
	started := time.Now()
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.kind.FPS)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprint(s.w, "\r"+s.line(frame, time.Since(started)))
			}
		}
	}()
}

func (s *Spinner) line(frame int, elapsed time.Duration) string {
	glyph := s.kind.Frames[frame%len(s.kind.Frames)]
	msg := s.message
	if elapsed >= slowAfter {
		msg = fmt.Sprintf("%s (%ds)", msg, int(elapsed.Seconds()))
	}
	return "  " + StylePurple.Render(glyph) + " " + Dim(msg)
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// StartSpinner starts a spinner on w and returns its stop function.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
