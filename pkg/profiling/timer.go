// Package profiling times named phases of a command and writes pprof
// profiles on request.
package profiling

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Stopper ends a timed span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	depth    int
	start    time.Time
	duration time.Duration
	timer    *Timer
}

func (s *span) Stop() {
	s.timer.end(s)
}

// Timer records nested spans in start order. The zero value is disabled and
// hands out no-op stoppers.
type Timer struct {
	mu      sync.Mutex
	enabled bool
	started time.Time
	spans   []*span
	open    int
	now     func() time.Time
}

var defaultTimer = &Timer{}

// Enable turns on the process-wide timer.
func Enable() {
	defaultTimer.Enable()
}

// Start opens a span on the process-wide timer.
func Start(name string) Stopper {
	return defaultTimer.Start(name)
}

// Summarize writes the process-wide timer's spans.
func Summarize(w io.Writer) {
	defaultTimer.Summarize(w)
}

// Enable starts recording. Calling it again keeps the spans so far.
func (t *Timer) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.enabled {
		return
	}
	if t.now == nil {
		t.now = time.Now
	}
	t.enabled = true
	t.started = t.now()
}

// Start opens a span nested under every span still open.
func (t *Timer) Start(name string) Stopper {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return noopStopper{}
	}
	s := &span{name: name, depth: t.open, start: t.now(), timer: t}
	t.spans = append(t.spans, s)
	t.open++
	return s
}

func (t *Timer) end(s *span) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s.duration != 0 {
		return
	}
	s.duration = t.now().Sub(s.start)
	if t.open > 0 {
		t.open--
	}
}

// Summarize writes one line per span with its share of the time since Enable.
func (t *Timer) Summarize(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}

	total := t.now().Sub(t.started)
	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, s := range t.spans {
		pct := 0.0
		if total > 0 {
			pct = float64(s.duration) / float64(total) * 100
		}
		fmt.Fprintf(w, "%*s- %s (%v, %.1f%%)\n", s.depth*2, "", s.name, s.duration.Round(100*time.Microsecond), pct)
	}
	fmt.Fprintln(w, "----------------------")
}

type noopStopper struct{}

func (noopStopper) Stop() {}
