package main

import (
	"time"
)

// tween linearly advances from 0 to 1 over its duration.
// onUpdate returning false stops the tween without completing it.
type tween struct {
	duration   time.Duration
	start      time.Time
	started    bool
	stopped    bool
	onUpdate   func(t float64) bool
	onComplete func()
}

func (t *tween) Stop() {
	t.stopped = true
}

// tweenGroup holds running tweens. It is advanced once per frame.
type tweenGroup struct {
	tweens []*tween
}

func (g *tweenGroup) Add(d time.Duration, onUpdate func(float64) bool, onComplete func()) *tween {
	tw := &tween{
		duration:   d,
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
	g.tweens = append(g.tweens, tw)
	return tw
}

func (g *tweenGroup) Len() int {
	return len(g.tweens)
}

func (g *tweenGroup) Update(now time.Time) {
	running := g.tweens
	g.tweens = nil

	var kept []*tween
	for _, tw := range running {
		if tw.stopped {
			continue
		}
		if !tw.started {
			tw.start = now
			tw.started = true
		}
		t := 1.0
		if tw.duration > 0 {
			t = float64(now.Sub(tw.start)) / float64(tw.duration)
		}
		if t > 1 {
			t = 1
		} else if t < 0 {
			t = 0
		}
		if tw.onUpdate != nil && !tw.onUpdate(t) {
			tw.stopped = true
			continue
		}
		if t < 1 {
			kept = append(kept, tw)
			continue
		}
		tw.stopped = true
		if tw.onComplete != nil {
			tw.onComplete()
		}
	}
	// Tweens added by callbacks during this update start on the next one.
	g.tweens = append(kept, g.tweens...)
}
