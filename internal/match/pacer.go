package match

import "time"

// Pacer gates ticks on wall time. Due reports at most one tick per call and
// carries the remainder forward, so a slow host drops ticks rather than
// running them twice.
type Pacer struct {
	interval time.Duration
	last     time.Time
	primed   bool
}

func NewPacer(hz float64) *Pacer {
	if hz <= 0 {
		hz = 60
	}
	return &Pacer{interval: time.Duration(float64(time.Second) / hz)}
}

func (p *Pacer) Interval() time.Duration { return p.interval }

// Reset makes the next Due call start a fresh timeline.
func (p *Pacer) Reset() { p.primed = false }

func (p *Pacer) Due(now time.Time) bool {
	if !p.primed {
		p.last, p.primed = now, true
		return false
	}
	elapsed := now.Sub(p.last)
	if elapsed <= p.interval {
		return false
	}
	p.last = now.Add(-(elapsed % p.interval))
	return true
}
