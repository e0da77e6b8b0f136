package main

import (
	"fmt"
	"io"
	"time"

	"github.com/coder/quartz"
)

const progressDots = 40

// DotsMonitor prints a fixed-width row of dots as games complete, then a
// throughput line. The simulator serialises calls.
type DotsMonitor struct {
	w        io.Writer
	clock    quartz.Clock
	start    time.Time
	printed  int
	done     int
	finished bool
}

func NewDotsMonitor(w io.Writer, clock quartz.Clock) *DotsMonitor {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &DotsMonitor{w: w, clock: clock, start: clock.Now("progress")}
}

func (m *DotsMonitor) OnGameComplete(done, total int) {
	// completions can arrive out of order across workers
	m.done = max(m.done, done)
	if total < 1 {
		total = 1
	}

	target := min(m.done, total) * progressDots / total
	for ; m.printed < target; m.printed++ {
		fmt.Fprint(m.w, ".")
	}

	if m.done >= total && !m.finished {
		m.finished = true
		elapsed := m.clock.Since(m.start, "progress")
		rate := float64(total) / max(elapsed.Seconds(), 1e-9)
		fmt.Fprintf(m.w, " %d games in %.1fs (%.0f/sec)\n", total, elapsed.Seconds(), rate)
	}
}
