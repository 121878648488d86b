package main

import (
	"math"

	webgl "github.com/seqsense/webgl-go"
)

type gestureMode int

const (
	gestureNone gestureMode = iota
	gestureDrag
	gesturePinch
	gesturePan
)

const pinchZoomRate = 0.1

type gestureHandler interface {
	PointerDown(x, y int)
	PointerUp()
	PointerMove(x, y int)
	DragStart(x, y, button int)
	DragEnd(x, y int)
	Zoom(deltaY float64)
}

// gesture maps mouse and touch pointers to drags and zoom. One pointer
// drags with its own button, two pointers pinch to zoom and three pointers
// pan.
type gesture struct {
	handler gestureHandler

	pointers map[int]webgl.PointerEvent
	pointer0 webgl.PointerEvent

	mode      gestureMode
	distance0 float64
}

func newGesture(h gestureHandler) *gesture {
	return &gesture{
		handler:  h,
		pointers: make(map[int]webgl.PointerEvent),
	}
}

func (g *gesture) pointerDown(e webgl.PointerEvent) {
	g.pointers[e.PointerId] = e

	switch len(g.pointers) {
	case 1:
		g.pointer0 = e
		g.handler.PointerDown(e.OffsetX, e.OffsetY)
	case 2:
		g.distance0 = g.pinchDistance()
	}
}

func (g *gesture) pointerUp(e webgl.PointerEvent) {
	delete(g.pointers, e.PointerId)
	if len(g.pointers) > 0 {
		return
	}
	if e.IsPrimary {
		g.pointer0 = e
	}
	switch g.mode {
	case gestureDrag, gesturePan:
		g.handler.DragEnd(g.pointer0.OffsetX, g.pointer0.OffsetY)
	}
	g.mode = gestureNone
	g.handler.PointerUp()
}

func (g *gesture) pointerMove(e webgl.PointerEvent) {
	if _, ok := g.pointers[e.PointerId]; !ok {
		if e.IsPrimary {
			g.handler.PointerMove(e.OffsetX, e.OffsetY)
		}
		return
	}
	g.pointers[e.PointerId] = e

	if g.mode == gestureNone {
		switch len(g.pointers) {
		case 1:
			g.handler.DragStart(g.pointer0.OffsetX, g.pointer0.OffsetY, int(g.pointer0.Button))
			g.mode = gestureDrag
		case 2:
			g.mode = gesturePinch
		case 3:
			g.handler.DragStart(g.pointer0.OffsetX, g.pointer0.OffsetY, mouseButtonMiddle)
			g.mode = gesturePan
		}
	}
	switch g.mode {
	case gestureDrag, gesturePan:
		if e.IsPrimary {
			g.handler.PointerMove(e.OffsetX, e.OffsetY)
		}
	case gesturePinch:
		if len(g.pointers) != 2 {
			break
		}
		d := g.pinchDistance()
		g.handler.Zoom((g.distance0 - d) * pinchZoomRate)
		g.distance0 = d
	}
	if e.IsPrimary {
		g.pointer0 = e
	}
}

func (g *gesture) pinchDistance() float64 {
	var pp []webgl.PointerEvent
	for _, p := range g.pointers {
		pp = append(pp, p)
	}
	if len(pp) < 2 {
		return 0
	}
	return math.Hypot(float64(pp[0].OffsetX-pp[1].OffsetX), float64(pp[0].OffsetY-pp[1].OffsetY))
}
