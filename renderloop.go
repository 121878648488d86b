package main

import (
	"time"
)

// scene is the set of drawable views.
type scene struct {
	nodes *nodeView
	links *linkView
}

type drawer interface {
	Draw(s *scene, c *camera)
	SetSize(width, height int)
}

type renderFunc func(s *scene, c *camera)

type renderCallback struct {
	fn      renderFunc
	removed bool
}

// renderLoop draws the scene once per frame and runs per-frame callbacks,
// animations and deferred tasks, in that order.
type renderLoop struct {
	scene  *scene
	camera *camera
	drawer drawer
	tweens *tweenGroup

	callbacks []*renderCallback
	deferred  []func()
}

func newRenderLoop(s *scene, c *camera, d drawer, tweens *tweenGroup) *renderLoop {
	return &renderLoop{
		scene:  s,
		camera: c,
		drawer: d,
		tweens: tweens,
	}
}

// OnRender registers fn to be called every frame with the scene and camera.
// Callbacks are called in registration order. The returned function removes
// the callback.
func (l *renderLoop) OnRender(fn renderFunc) func() {
	cb := &renderCallback{fn: fn}
	l.callbacks = append(l.callbacks, cb)
	return func() {
		if cb.removed {
			return
		}
		cb.removed = true
		for i, c := range l.callbacks {
			if c == cb {
				l.callbacks = append(l.callbacks[:i:i], l.callbacks[i+1:]...)
				return
			}
		}
	}
}

// Defer schedules fn to run once at the end of the current frame.
func (l *renderLoop) Defer(fn func()) {
	l.deferred = append(l.deferred, fn)
}

func (l *renderLoop) Frame(now time.Time) {
	if l.drawer != nil {
		l.drawer.Draw(l.scene, l.camera)
	}

	cbs := l.callbacks
	for _, cb := range cbs {
		if cb.removed {
			continue
		}
		cb.fn(l.scene, l.camera)
	}

	l.tweens.Update(now)

	tasks := l.deferred
	l.deferred = nil
	for _, task := range tasks {
		task()
	}
}

func (l *renderLoop) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	l.camera.SetAspect(float64(width) / float64(height))
	if l.drawer != nil {
		l.drawer.SetSize(width, height)
	}
}
