package main

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestInput() (*userInput, *camera, *fakeClock) {
	c := newCamera(defaultFOV, 1, defaultNear, defaultFar)
	clock := &fakeClock{now: time.Unix(1000, 0)}
	u := newUserInput(c)
	u.now = clock.Now
	u.SetViewport(200, 100)
	return u, c, clock
}

func TestUserInput_KeyMove(t *testing.T) {
	testCases := map[string]struct {
		key      string
		expected mgl64.Vec3
	}{
		"Forward":  {"KeyW", mgl64.Vec3{0, 0, -keyMoveSpeed * 0.05}},
		"Backward": {"KeyS", mgl64.Vec3{0, 0, keyMoveSpeed * 0.05}},
		"Left":     {"KeyA", mgl64.Vec3{-keyMoveSpeed * 0.05, 0, 0}},
		"Right":    {"KeyD", mgl64.Vec3{keyMoveSpeed * 0.05, 0, 0}},
		"Down":     {"KeyQ", mgl64.Vec3{0, -keyMoveSpeed * 0.05, 0}},
		"Up":       {"KeyE", mgl64.Vec3{0, keyMoveSpeed * 0.05, 0}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			u, c, clock := newTestInput()
			if !u.KeyDown(tt.key) {
				t.Fatal("Key must be bound")
			}
			u.Update(nil, c)
			clock.now = clock.now.Add(50 * time.Millisecond)
			u.Update(nil, c)
			if !c.position.ApproxEqualThreshold(tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, c.position)
			}

			u.KeyUp(tt.key)
			clock.now = clock.now.Add(50 * time.Millisecond)
			u.Update(nil, c)
			if !c.position.ApproxEqualThreshold(tt.expected, 1e-9) {
				t.Errorf("Released key must stop the camera, got %v", c.position)
			}
		})
	}
}

func TestUserInput_FrameDeltaClamp(t *testing.T) {
	u, c, clock := newTestInput()
	u.KeyDown("KeyD")
	u.Update(nil, c)
	clock.now = clock.now.Add(10 * time.Second)
	u.Update(nil, c)
	if x := c.position[0]; math.Abs(x-keyMoveSpeed*maxFrameDelta.Seconds()) > 1e-9 {
		t.Errorf("Long frames must be clamped, moved %f", x)
	}
}

func TestUserInput_UnboundKey(t *testing.T) {
	u, _, _ := newTestInput()
	if u.KeyDown("KeyZ") {
		t.Error("KeyZ must not be bound")
	}
}

func TestUserInput_Drag(t *testing.T) {
	t.Run("Rotate", func(t *testing.T) {
		u, c, _ := newTestInput()
		u.MouseDown(100, 50, mouseButtonLeft)
		u.MouseMove(110, 50)
		u.MouseUp(110, 50)

		f := c.forward()
		if f[0] <= 0 {
			t.Errorf("Dragging right must turn the camera right, forward %v", f)
		}
		if c.position != (mgl64.Vec3{}) {
			t.Errorf("Rotation must not move the camera, got %v", c.position)
		}

		before := c.orientation
		u.MouseMove(200, 50)
		if c.orientation != before {
			t.Error("Moves after release must not rotate")
		}
	})
	t.Run("Pan", func(t *testing.T) {
		u, c, _ := newTestInput()
		u.MouseDown(100, 50, mouseButtonRight)
		u.MouseMove(110, 40)
		u.MouseUp(110, 40)

		expected := mgl64.Vec3{-10 * dragPanRate, -10 * dragPanRate, 0}
		if !c.position.ApproxEqualThreshold(expected, 1e-9) {
			t.Errorf("Expected %v, got %v", expected, c.position)
		}
	})
}

func TestUserInput_Wheel(t *testing.T) {
	u, c, _ := newTestInput()
	u.Wheel(1)
	if c.position[2] <= 0 {
		t.Errorf("Scrolling down must move the camera backward, got %v", c.position)
	}
}

func TestUserInput_Steering(t *testing.T) {
	u, c, clock := newTestInput()

	var modes []bool
	u.OnSteeringModeChanged(func(on bool) { modes = append(modes, on) })
	var toggled int
	u.OnToggleLinks(func() { toggled++ })

	u.MouseMove(200, 50)
	u.Update(nil, c)
	clock.now = clock.now.Add(50 * time.Millisecond)
	u.Update(nil, c)
	if c.orientation != mgl64.QuatIdent() {
		t.Fatal("Camera must not turn without steering")
	}

	u.KeyDown("Space")
	if !u.Steering() {
		t.Fatal("Space must enable steering")
	}
	clock.now = clock.now.Add(50 * time.Millisecond)
	u.Update(nil, c)
	if f := c.forward(); f[0] <= 0 {
		t.Errorf("Pointer on the right edge must turn the camera right, forward %v", f)
	}

	u.KeyDown("Space")
	u.KeyDown("KeyL")
	if len(modes) != 2 || !modes[0] || modes[1] {
		t.Errorf("Unexpected steering events %v", modes)
	}
	if toggled != 1 {
		t.Errorf("Expected one link toggle, got %d", toggled)
	}
}

func TestUserInput_ManualControl(t *testing.T) {
	testCases := map[string]struct {
		input    func(u *userInput)
		expected int
	}{
		"Drag":       {func(u *userInput) { u.MouseDown(0, 0, mouseButtonLeft) }, 1},
		"Wheel":      {func(u *userInput) { u.Wheel(1) }, 1},
		"MoveKey":    {func(u *userInput) { u.KeyDown("KeyW") }, 1},
		"Steering":   {func(u *userInput) { u.KeyDown("Space") }, 0},
		"ToggleLink": {func(u *userInput) { u.KeyDown("KeyL") }, 0},
		"Hover":      {func(u *userInput) { u.MouseMove(10, 10) }, 0},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			u, _, _ := newTestInput()
			var n int
			u.OnManualControl(func() { n++ })
			tt.input(u)
			if n != tt.expected {
				t.Errorf("Expected %d notifications, got %d", tt.expected, n)
			}
		})
	}

	t.Run("HeldKey", func(t *testing.T) {
		u, _, _ := newTestInput()
		var n int
		u.OnManualControl(func() { n++ })
		u.KeyDown("KeyW")
		u.KeyDown("KeyW")
		if n != 1 {
			t.Errorf("Key repeat must not notify again, got %d", n)
		}
	})
}

func TestUserInput_ReleaseAll(t *testing.T) {
	u, c, clock := newTestInput()
	u.KeyDown("KeyW")
	u.MouseDown(0, 0, mouseButtonLeft)
	u.ReleaseAll()

	u.Update(nil, c)
	clock.now = clock.now.Add(50 * time.Millisecond)
	u.Update(nil, c)
	u.MouseMove(100, 100)
	if c.position != (mgl64.Vec3{}) || c.orientation != mgl64.QuatIdent() {
		t.Errorf("Released input must not move the camera, got %v %v", c.position, c.orientation)
	}
}

func TestPointerInput(t *testing.T) {
	u, c, _ := newTestInput()
	h := newHitTest()
	p := pointerInput{hit: h, input: u}

	p.PointerDown(100, 50)
	p.DragStart(100, 50, mouseButtonRight)
	p.PointerMove(120, 50)
	p.DragEnd(120, 50)
	p.PointerUp()

	if !h.guard.Dragged() {
		t.Error("Pointer drag must reach the click guard")
	}
	if c.position[0] >= 0 {
		t.Errorf("Right drag must pan the camera, got %v", c.position)
	}

	z := c.position[2]
	p.Zoom(1)
	if c.position[2] <= z {
		t.Error("Zoom must reach the camera")
	}
}
