package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// slowAfter is when the spinner starts showing how long the call has taken.
const slowAfter = time.Second

// Spinner animates a single status line on w while a save or lookup is in
// flight. Calls slower than a second also show the elapsed time.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation. Call Stop to end it.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	began := time.Now()
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprint(s.w, spinnerLine(i, s.message, time.Since(began)))
			}
		}
	}()
}

func spinnerLine(tick int, message string, elapsed time.Duration) string {
	frame := StylePurple.Render(spinnerFrames[tick%len(spinnerFrames)])
	if elapsed < slowAfter {
		return fmt.Sprintf("\r  %s %s", frame, Dim(message))
	}
	return fmt.Sprintf("\r  %s %s %s", frame, Dim(message), Dim("("+FormatLatency(elapsed.Milliseconds())+")"))
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stop:
		return
	default:
		close(s.stop)
	}
	if s.started {
		<-s.done
	}
}

// StartSpinner creates and starts a spinner on w. Call the returned function to stop it.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
