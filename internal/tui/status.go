package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const statusInterval = 100 * time.Millisecond

// StatusWriter renders a single spinner line while a short network call runs,
// e.g. fetching the version index for `zigup list`.
type StatusWriter struct {
	w       io.Writer
	mu      sync.Mutex
	message string
	started time.Time
	done    chan struct{}
	exited  chan struct{}
	stopped bool
}

// NewStatusWriter starts the spinner on w with an initial message.
func NewStatusWriter(w io.Writer, message string) *StatusWriter {
	sw := &StatusWriter{
		w:       w,
		message: message,
		started: time.Now(),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go sw.loop()
	return sw
}

// Update replaces the message and restarts the elapsed timer.
func (sw *StatusWriter) Update(message string) {
	sw.mu.Lock()
	sw.message = message
	sw.started = time.Now()
	sw.mu.Unlock()
}

// Stop clears the spinner line. It is safe to call more than once.
func (sw *StatusWriter) Stop() {
	sw.mu.Lock()
	if sw.stopped {
		sw.mu.Unlock()
		return
	}
	sw.stopped = true
	sw.mu.Unlock()
	close(sw.done)
	<-sw.exited
	fmt.Fprint(sw.w, "\r\033[K")
}

func (sw *StatusWriter) loop() {
	defer close(sw.exited)
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for tick := 0; ; tick++ {
		select {
		case <-sw.done:
			return
		case <-ticker.C:
			sw.mu.Lock()
			msg, started := sw.message, sw.started
			sw.mu.Unlock()
			fmt.Fprintf(sw.w, "\r\033[K%s %s (%s)", spinnerFrames[tick%len(spinnerFrames)], msg, formatElapsed(time.Since(started)))
		}
	}
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
