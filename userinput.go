package main

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	dragRotateRate = 0.005 // rad/px
	dragPanRate    = 1.0   // units/px
	keyMoveSpeed   = 300.0 // units/s
	keyRotateSpeed = 1.2   // rad/s
	steerRate      = 1.5   // rad/s at the canvas edge
	zoomStep       = 25.0  // units per normalized wheel step
	maxFrameDelta  = 100 * time.Millisecond
)

const (
	mouseButtonLeft   = 0
	mouseButtonMiddle = 1
	mouseButtonRight  = 2
)

// userInput steers the camera from mouse, wheel and keyboard input.
// In steering mode the camera turns toward the pointer every frame and node
// picking is disabled.
type userInput struct {
	camera *camera

	steering bool
	keys     map[string]bool

	dragging   bool
	dragButton int
	x0, y0     int
	pos0       mgl64.Vec3
	rot0       mgl64.Quat

	x, y          int
	width, height int

	wheel wheelNormalizer
	now   func() time.Time
	last  time.Time

	onSteeringModeChanged []func(bool)
	onToggleLinks         []func()
	onManualControl       []func()
}

func newUserInput(c *camera) *userInput {
	return &userInput{
		camera: c,
		keys:   make(map[string]bool),
		now:    time.Now,
	}
}

func (u *userInput) OnSteeringModeChanged(fn func(bool)) {
	u.onSteeringModeChanged = append(u.onSteeringModeChanged, fn)
}

func (u *userInput) OnToggleLinks(fn func()) {
	u.onToggleLinks = append(u.onToggleLinks, fn)
}

// OnManualControl registers fn to be called when the user starts moving
// the camera by drag, wheel or movement keys.
func (u *userInput) OnManualControl(fn func()) {
	u.onManualControl = append(u.onManualControl, fn)
}

func (u *userInput) manualControl() {
	for _, fn := range u.onManualControl {
		fn()
	}
}

func (u *userInput) SetViewport(width, height int) {
	u.width, u.height = width, height
}

func (u *userInput) Steering() bool {
	return u.steering
}

func (u *userInput) ToggleSteering() {
	u.steering = !u.steering
	for _, fn := range u.onSteeringModeChanged {
		fn(u.steering)
	}
}

func (u *userInput) MouseDown(x, y, button int) {
	u.manualControl()
	u.dragging = true
	u.dragButton = button
	u.x0, u.y0 = x, y
	u.pos0 = u.camera.position
	u.rot0 = u.camera.orientation
}

func (u *userInput) MouseMove(x, y int) {
	u.x, u.y = x, y
	if !u.dragging {
		return
	}
	dx := float64(x - u.x0)
	dy := float64(y - u.y0)
	switch u.dragButton {
	case mouseButtonLeft:
		u.camera.orientation = yawPitch(u.rot0, -dragRotateRate*dx, -dragRotateRate*dy)
	case mouseButtonMiddle, mouseButtonRight:
		q := u.rot0.Normalize()
		right := q.Rotate(localRight)
		up := q.Rotate(localUp)
		u.camera.position = u.pos0.
			Add(right.Mul(-dragPanRate * dx)).
			Add(up.Mul(dragPanRate * dy))
	}
}

func (u *userInput) MouseUp(x, y int) {
	if !u.dragging {
		return
	}
	u.MouseMove(x, y)
	u.dragging = false
}

func (u *userInput) Wheel(deltaY float64) {
	d, _ := u.wheel.Normalize(deltaY, u.now())
	u.manualControl()
	c := u.camera
	c.position = c.position.Add(c.forward().Mul(-d * zoomStep))
}

func boundKey(code string) bool {
	switch code {
	case "Space", "KeyL",
		"KeyW", "KeyS", "KeyA", "KeyD", "KeyQ", "KeyE",
		"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight":
		return true
	}
	return false
}

// KeyDown returns false if the key is not bound.
func (u *userInput) KeyDown(code string) bool {
	if !boundKey(code) {
		return false
	}
	switch code {
	case "Space":
		u.ToggleSteering()
	case "KeyL":
		for _, fn := range u.onToggleLinks {
			fn()
		}
	default:
		if !u.keys[code] {
			u.manualControl()
		}
		u.keys[code] = true
	}
	return true
}

func (u *userInput) KeyUp(code string) {
	delete(u.keys, code)
}

// ReleaseAll forgets held keys and drags, e.g. when the canvas loses focus.
func (u *userInput) ReleaseAll() {
	u.keys = make(map[string]bool)
	u.dragging = false
}

func (u *userInput) Update(_ *scene, c *camera) {
	now := u.now()
	if u.last.IsZero() {
		u.last = now
		return
	}
	dt := now.Sub(u.last)
	u.last = now
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	sec := dt.Seconds()

	var move mgl64.Vec3
	var yaw, pitch float64
	for code := range u.keys {
		switch code {
		case "KeyW":
			move = move.Add(localForward)
		case "KeyS":
			move = move.Sub(localForward)
		case "KeyA":
			move = move.Sub(localRight)
		case "KeyD":
			move = move.Add(localRight)
		case "KeyQ":
			move = move.Sub(localUp)
		case "KeyE":
			move = move.Add(localUp)
		case "ArrowLeft":
			yaw += keyRotateSpeed * sec
		case "ArrowRight":
			yaw -= keyRotateSpeed * sec
		case "ArrowUp":
			pitch += keyRotateSpeed * sec
		case "ArrowDown":
			pitch -= keyRotateSpeed * sec
		}
	}
	if u.steering && u.width > 0 && u.height > 0 {
		yaw -= steerRate * sec * (2*float64(u.x)/float64(u.width) - 1)
		pitch -= steerRate * sec * (2*float64(u.y)/float64(u.height) - 1)
	}
	if move.Len() > 0 {
		c.position = c.position.Add(
			c.orientation.Normalize().Rotate(move.Normalize()).Mul(keyMoveSpeed * sec))
	}
	if yaw != 0 || pitch != 0 {
		c.orientation = yawPitch(c.orientation, yaw, pitch)
	}
}

// yawPitch turns q around the world vertical axis and then around its own
// horizontal axis.
func yawPitch(q mgl64.Quat, yaw, pitch float64) mgl64.Quat {
	yq := mgl64.QuatRotate(yaw, worldUp)
	pq := mgl64.QuatRotate(pitch, localRight)
	return yq.Mul(q).Mul(pq).Normalize()
}
