package main

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultStandoff       = 100.0
	defaultFlyDuration    = 400 * time.Millisecond
	defaultRotateDuration = 300 * time.Millisecond
)

// autoPilot flies the camera to a point and stops at a standoff distance
// from it, turning to face the point on the way.
type autoPilot struct {
	camera *camera
	tweens *tweenGroup

	flyDuration    time.Duration
	rotateDuration time.Duration

	generation int
	flying     bool
	// aborted is called if the current flight is superseded.
	aborted func()
}

func newAutoPilot(c *camera, tweens *tweenGroup) *autoPilot {
	return &autoPilot{
		camera:         c,
		tweens:         tweens,
		flyDuration:    defaultFlyDuration,
		rotateDuration: defaultRotateDuration,
	}
}

func (p *autoPilot) Flying() bool {
	return p.flying
}

// Cancel drops the flight in progress. Its done callback is never called,
// its aborted callback is.
func (p *autoPilot) Cancel() {
	p.generation++
	p.flying = false
	if fn := p.aborted; fn != nil {
		p.aborted = nil
		fn()
	}
}

// FlyTo moves the camera to standoff units away from to. A standoff <= 0
// uses the default. done is called once, after the position animation
// finishes. If another FlyTo or Cancel supersedes this flight, aborted is
// called instead. Both may be nil.
func (p *autoPilot) FlyTo(to mgl64.Vec3, standoff float64, done, aborted func()) {
	if standoff <= 0 {
		standoff = defaultStandoff
	}
	p.Cancel()
	gen := p.generation
	p.flying = true
	p.aborted = aborted

	from := p.camera.position
	end := standoffPoint(from, to, standoff)

	p.tweens.Add(p.flyDuration,
		func(t float64) bool {
			if gen != p.generation {
				return false
			}
			p.camera.position = from.Add(end.Sub(from).Mul(t))
			return true
		},
		func() {
			if gen != p.generation {
				return
			}
			p.flying = false
			p.aborted = nil
			if done != nil {
				done()
			}
		},
	)

	startRot := p.camera.orientation
	endRot := p.camera.lookAtOrientation(to)
	if startRot.Dot(endRot) < 0 {
		endRot = endRot.Scale(-1)
	}
	p.tweens.Add(p.rotateDuration,
		func(t float64) bool {
			if gen != p.generation {
				return false
			}
			p.camera.orientation = lerpQuat(startRot, endRot, t)
			return true
		},
		nil,
	)
}

// standoffPoint returns the point at distance r from to, on the ray from to
// through from. If from and to coincide, the point is placed on +Z of to.
func standoffPoint(from, to mgl64.Vec3, r float64) mgl64.Vec3 {
	d := from.Sub(to)
	r1 := d.Len()
	if r1 == 0 || math.IsNaN(r1) {
		return to.Add(mgl64.Vec3{0, 0, r})
	}
	c := d[2] / r1
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	theta := math.Acos(c)
	phi := math.Atan2(d[1], d[0])

	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	return mgl64.Vec3{
		r*st*cp + to[0],
		r*st*sp + to[1],
		r*ct + to[2],
	}
}

// lerpQuat interpolates quaternion components independently.
func lerpQuat(a, b mgl64.Quat, t float64) mgl64.Quat {
	return mgl64.Quat{
		W: a.W + (b.W-a.W)*t,
		V: a.V.Add(b.V.Sub(a.V).Mul(t)),
	}.Normalize()
}
