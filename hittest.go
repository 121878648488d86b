package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// nodeHit is a picking result. NodeIndex is the index in the node view, or
// -1 when the pointer is not over a node.
type nodeHit struct {
	NodeIndex int
	X, Y      int
}

type pickKind int

const (
	pickClick pickKind = iota
	pickDblClick
)

type pendingPick struct {
	kind pickKind
	x, y int
}

// hitTest turns pointer input over the canvas into node hover, click and
// double click notifications. Picking runs once per frame from Update.
type hitTest struct {
	width, height int

	x, y    int
	inside  bool
	moved   bool
	pending []pendingPick
	hovered int

	postponed bool
	active    bool

	guard clickGuard

	onOver     []func(nodeHit)
	onClick    []func(nodeHit)
	onDblClick []func(nodeHit)
}

func newHitTest() *hitTest {
	return &hitTest{
		hovered: -1,
		active:  true,
	}
}

func (h *hitTest) OnNodeOver(fn func(nodeHit))     { h.onOver = append(h.onOver, fn) }
func (h *hitTest) OnNodeClick(fn func(nodeHit))    { h.onClick = append(h.onClick, fn) }
func (h *hitTest) OnNodeDblClick(fn func(nodeHit)) { h.onDblClick = append(h.onDblClick, fn) }

func (h *hitTest) SetViewport(width, height int) {
	h.width, h.height = width, height
}

func (h *hitTest) PointerMove(x, y int) {
	h.x, h.y = x, y
	h.inside = true
	h.moved = true
	h.guard.Move(x, y)
}

func (h *hitTest) PointerLeave() {
	h.inside = false
	h.moved = true
}

func (h *hitTest) PointerDown(x, y int) {
	h.guard.DragStart(x, y)
}

func (h *hitTest) PointerUp() {
	h.guard.DragEnd()
}

func (h *hitTest) Click(x, y int) {
	if !h.guard.Click() {
		return
	}
	h.pending = append(h.pending, pendingPick{kind: pickClick, x: x, y: y})
}

func (h *hitTest) DblClick(x, y int) {
	h.pending = append(h.pending, pendingPick{kind: pickDblClick, x: x, y: y})
}

// Postpone stops picking until Resume or Reset.
func (h *hitTest) Postpone() {
	h.postponed = true
}

func (h *hitTest) Resume() {
	h.postponed = false
	h.moved = true
}

// SetActive enables or disables picking, e.g. while steering the camera.
func (h *hitTest) SetActive(active bool) {
	h.active = active
	h.moved = true
}

// Reset forgets hover state and queued clicks.
func (h *hitTest) Reset() {
	h.hovered = -1
	h.pending = nil
	h.postponed = false
	h.moved = true
}

func (h *hitTest) Update(s *scene, c *camera) {
	if h.postponed || !h.active || s.nodes == nil || h.width <= 0 || h.height <= 0 {
		h.pending = nil
		return
	}

	pending := h.pending
	h.pending = nil
	for _, p := range pending {
		i, ok := h.pick(s.nodes, c, p.x, p.y)
		if !ok {
			continue
		}
		hit := nodeHit{NodeIndex: i, X: p.x, Y: p.y}
		switch p.kind {
		case pickClick:
			for _, fn := range h.onClick {
				fn(hit)
			}
		case pickDblClick:
			for _, fn := range h.onDblClick {
				fn(hit)
			}
		}
	}

	if !h.moved || (h.guard.dragging && h.guard.Dragged()) {
		return
	}
	h.moved = false
	i := -1
	if h.inside {
		if j, ok := h.pick(s.nodes, c, h.x, h.y); ok {
			i = j
		}
	}
	if i == h.hovered {
		return
	}
	h.hovered = i
	hit := nodeHit{NodeIndex: i, X: h.x, Y: h.y}
	for _, fn := range h.onOver {
		fn(hit)
	}
}

func (h *hitTest) pick(v *nodeView, c *camera, x, y int) (int, bool) {
	origin, dir, ok := pickRay(c, x, y, h.width, h.height)
	if !ok {
		return -1, false
	}
	it, ok := v.positions()
	if !ok {
		return -1, false
	}
	return selectNode(it, v.sizes, origin, dir)
}

// pickRay returns the ray from the camera through the pixel (x, y), with y
// growing downward.
func pickRay(c *camera, x, y, width, height int) (mat.Vec3, mat.Vec3, bool) {
	win := mgl64.Vec3{float64(x), float64(height - y), 0}
	obj, err := mgl64.UnProject(win, c.viewMatrix64(), c.projectionMatrix64(), 0, 0, width, height)
	if err != nil {
		return mat.Vec3{}, mat.Vec3{}, false
	}
	d := obj.Sub(c.position)
	if d.Len() == 0 {
		return mat.Vec3{}, mat.Vec3{}, false
	}
	return toVec3(c.position), toVec3(d.Normalize()), true
}

// selectNode returns the closest node in front of origin whose drawn sphere
// (diameter from sizes) is crossed by the ray.
func selectNode(it pc.Vec3Iterator, sizes []float32, origin, dir mat.Vec3) (int, bool) {
	selected := -1
	distSqMin := float32(math.MaxFloat32)
	for i := 0; it.IsValid(); i++ {
		p := it.Vec3()
		it.Incr()

		pRel := origin.Sub(p)
		dot := pRel.Dot(dir)
		if dot >= 0 {
			continue
		}
		r := float32(baseNodeSize) / 2
		if i < len(sizes) {
			r = sizes[i] / 2
		}
		distSq := pRel.NormSq()
		dSq := distSq - dot*dot
		if dSq < r*r && distSq < distSqMin {
			distSqMin = distSq
			selected = i
		}
	}
	return selected, selected >= 0
}
