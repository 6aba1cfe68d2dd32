package engine

import "math"

// Reveal sweeps the 3-D view in from the left after a start or reset.
// Columns at or past Ready() are painted with the background only.
type Reveal struct {
	enabled bool
	rate    float64 // columns per second
	total   int
	ready   float64
}

// NewReveal creates a sweep over total columns. A disabled sweep reports
// every column ready.
func NewReveal(enabled bool, columnsPerSecond float64, total int) *Reveal {
	r := &Reveal{enabled: enabled, rate: columnsPerSecond, total: total}
	if !enabled {
		r.ready = float64(total)
	}
	return r
}

// Advance moves the sweep forward by dt seconds.
func (r *Reveal) Advance(dt float64) {
	if !r.enabled || dt <= 0 {
		return
	}
	r.ready = math.Min(r.ready+dt*r.rate, float64(r.total))
}

// Ready returns the number of columns that are fully revealed.
func (r *Reveal) Ready() int {
	return int(r.ready)
}

// Done reports whether every column is revealed.
func (r *Reveal) Done() bool {
	return r.Ready() >= r.total
}

// Reset restarts the sweep from the left edge.
func (r *Reveal) Reset() {
	if r.enabled {
		r.ready = 0
	}
}
