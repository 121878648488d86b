package main

import (
	"math"
	"time"
)

const (
	wheelWarmupEvents   = 4
	wheelInitialMaxRate = 10
	wheelMaxInterval    = 100 * time.Millisecond
	wheelOutputScale    = 2.5
)

type wheelKind int

const (
	wheelUnknown wheelKind = iota
	wheelNotched
	wheelSmooth
)

// wheelNormalizer maps raw wheel deltas to roughly [-1, 1] per event.
// Notched wheels repeat the same absolute delta and are mapped to ±1;
// smooth wheels (touchpads) are scaled by a decaying peak rate.
type wheelNormalizer struct {
	events int
	kind   wheelKind

	repeat  int
	lastAbs float64

	peakRate float64
	last     time.Time
	sum      float64
}

// Normalize returns the normalized delta and whether the normalizer has
// seen enough events to classify the wheel.
func (n *wheelNormalizer) Normalize(d float64, now time.Time) (float64, bool) {
	ready := n.events > wheelWarmupEvents
	if !ready {
		n.events++
	}

	abs := math.Abs(d)
	if abs == 0 {
		return 0, ready
	}
	n.classify(abs)
	n.trackRate(d, now)

	if n.kind == wheelNotched {
		return math.Copysign(1, d), ready
	}
	return d * wheelOutputScale / n.peakRate, ready
}

func (n *wheelNormalizer) classify(abs float64) {
	if abs == n.lastAbs {
		n.repeat++
	} else {
		n.repeat = 0
	}
	n.lastAbs = abs

	kind := wheelSmooth
	if n.repeat > wheelWarmupEvents {
		kind = wheelNotched
	}
	if kind != n.kind {
		n.peakRate = wheelInitialMaxRate
	}
	n.kind = kind
}

func (n *wheelNormalizer) trackRate(d float64, now time.Time) {
	n.sum += d
	dt := now.Sub(n.last)
	if dt > 0 {
		if dt > wheelMaxInterval {
			dt = wheelMaxInterval
		}
		rate := math.Abs(n.sum / dt.Seconds())
		n.sum = 0
		n.last = now
		if rate > n.peakRate {
			// Low-pass to suppress spikes.
			n.peakRate = n.peakRate*0.5 + rate*0.5
		}
		n.peakRate *= 0.95
	}
	if n.peakRate < 1 {
		n.peakRate = 1
	}
}
