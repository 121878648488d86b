package main

import (
	"time"
)

const (
	clickGuardDuration = 100 * time.Millisecond
	clickGuardSlop     = 3
)

// clickGuard rejects the click fired by the browser at the end of a drag.
// Pointer jitter within clickGuardSlop pixels is not a drag.
type clickGuard struct {
	deadline time.Time
	moved    bool
	dragging bool
	x0, y0   int
}

func (c *clickGuard) DragStart(x, y int) {
	c.moved = false
	c.dragging = true
	c.x0, c.y0 = x, y
}

func (c *clickGuard) Move(x, y int) {
	if !c.dragging {
		return
	}
	dx, dy := x-c.x0, y-c.y0
	if dx*dx+dy*dy > clickGuardSlop*clickGuardSlop {
		c.moved = true
	}
}

func (c *clickGuard) DragEnd() {
	c.dragging = false
	c.deadline = time.Now().Add(clickGuardDuration)
}

// Dragged reports whether the current or last drag moved the pointer.
func (c *clickGuard) Dragged() bool {
	return c.moved
}

func (c *clickGuard) Click() bool {
	return c.deadline.IsZero() || !c.moved || c.deadline.Before(time.Now())
}
