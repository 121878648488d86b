package main

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/seqsense/pcgol/mat"
)

func TestSelectNode(t *testing.T) {
	pp := newVec3LabelCloud(3)
	it, err := pp.Vec3Iterator()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []mat.Vec3{{0, 0, -100}, {0, 0, -50}, {0, 0, 50}} {
		it.SetVec3(p)
		it.Incr()
	}

	testCases := map[string]struct {
		origin, dir mat.Vec3
		sizes       []float32
		expected    int
	}{
		"Closest": {
			origin: mat.Vec3{}, dir: mat.Vec3{0, 0, -1},
			sizes: []float32{10, 10, 10}, expected: 1,
		},
		"Behind": {
			origin: mat.Vec3{}, dir: mat.Vec3{0, 0, 1},
			sizes: []float32{10, 10, 10}, expected: 2,
		},
		"Offset": {
			origin: mat.Vec3{4, 0, 0}, dir: mat.Vec3{0, 0, -1},
			sizes: []float32{20, 4, 4}, expected: 0,
		},
		"Miss": {
			origin: mat.Vec3{40, 0, 0}, dir: mat.Vec3{0, 0, -1},
			sizes: []float32{10, 10, 10}, expected: -1,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			it, err := pp.Vec3Iterator()
			if err != nil {
				t.Fatal(err)
			}
			i, ok := selectNode(it, tt.sizes, tt.origin, tt.dir)
			if i != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, i)
			}
			if ok != (tt.expected >= 0) {
				t.Errorf("Unexpected ok %v", ok)
			}
		})
	}
}

// newPickingScene returns a scene with nodes on the view axis of a camera
// at the origin looking down -Z.
func newPickingScene(t *testing.T) (*scene, *camera) {
	t.Helper()
	m := newGraphModel()
	if err := m.SetNodes(
		[]string{"far", "near", "side"},
		[]mat.Vec3{{0, 0, -300}, {0, 0, -100}, {200, 0, -100}},
	); err != nil {
		t.Fatal(err)
	}
	v := newNodeView(nil)
	v.initialize(m)
	c := newCamera(defaultFOV, 1, defaultNear, defaultFar)
	return &scene{nodes: v}, c
}

func TestHitTest_Click(t *testing.T) {
	s, c := newPickingScene(t)
	h := newHitTest()
	h.SetViewport(200, 200)

	var clicked, dbl []int
	h.OnNodeClick(func(hit nodeHit) { clicked = append(clicked, hit.NodeIndex) })
	h.OnNodeDblClick(func(hit nodeHit) { dbl = append(dbl, hit.NodeIndex) })

	h.Click(100, 100)
	h.Click(5, 5)
	h.DblClick(100, 100)
	h.Update(s, c)

	if len(clicked) != 1 || clicked[0] != 1 {
		t.Errorf("Expected a click on the nearest node 1, got %v", clicked)
	}
	if len(dbl) != 1 || dbl[0] != 1 {
		t.Errorf("Expected a double click on node 1, got %v", dbl)
	}
}

func TestHitTest_ClickAfterDrag(t *testing.T) {
	s, c := newPickingScene(t)
	h := newHitTest()
	h.SetViewport(200, 200)

	var clicked int
	h.OnNodeClick(func(nodeHit) { clicked++ })

	h.PointerDown(10, 10)
	h.PointerMove(100, 100)
	h.PointerUp()
	h.Click(100, 100)
	h.Update(s, c)
	if clicked != 0 {
		t.Error("Click right after a drag must be ignored")
	}

	time.Sleep(2 * clickGuardDuration)
	h.Click(100, 100)
	h.Update(s, c)
	if clicked != 1 {
		t.Errorf("Click after the guard must be accepted, got %d", clicked)
	}
}

func TestHitTest_Hover(t *testing.T) {
	s, c := newPickingScene(t)
	h := newHitTest()
	h.SetViewport(200, 200)

	var over []nodeHit
	h.OnNodeOver(func(hit nodeHit) { over = append(over, hit) })

	h.PointerMove(100, 100)
	h.Update(s, c)
	h.PointerMove(101, 100)
	h.Update(s, c)
	h.PointerLeave()
	h.Update(s, c)

	if len(over) != 2 {
		t.Fatalf("Expected enter and leave, got %v", over)
	}
	if over[0].NodeIndex != 1 || over[0].X != 100 || over[0].Y != 100 {
		t.Errorf("Unexpected enter %+v", over[0])
	}
	if over[1].NodeIndex != -1 {
		t.Errorf("Expected leave, got %+v", over[1])
	}
}

func TestHitTest_Inactive(t *testing.T) {
	s, c := newPickingScene(t)
	h := newHitTest()
	h.SetViewport(200, 200)

	var clicked int
	h.OnNodeClick(func(nodeHit) { clicked++ })

	h.SetActive(false)
	h.Click(100, 100)
	h.Update(s, c)
	h.SetActive(true)
	h.Update(s, c)

	h.Postpone()
	h.Click(100, 100)
	h.Update(s, c)
	h.Resume()
	h.Update(s, c)

	if clicked != 0 {
		t.Errorf("Clicks while picking is off must be dropped, got %d", clicked)
	}
}

func TestPickRay(t *testing.T) {
	c := newCamera(defaultFOV, 2, defaultNear, defaultFar)
	c.position = mgl64.Vec3{10, 20, 30}
	c.lookAt(mgl64.Vec3{10, 20, 0})

	origin, dir, ok := pickRay(c, 200, 100, 400, 200)
	if !ok {
		t.Fatal("Ray must be available")
	}
	if origin != (mat.Vec3{10, 20, 30}) {
		t.Errorf("Ray must start at the camera, got %v", origin)
	}
	if d := dir.Sub(mat.Vec3{0, 0, -1}).Norm(); d > 1e-4 {
		t.Errorf("Ray through the center must follow the view axis, got %v", dir)
	}

	_, dir, _ = pickRay(c, 400, 100, 400, 200)
	if dir[0] <= 0 {
		t.Errorf("Ray through the right edge must point right, got %v", dir)
	}
	_, dir, _ = pickRay(c, 200, 0, 400, 200)
	if dir[1] <= 0 {
		t.Errorf("Ray through the top edge must point up, got %v", dir)
	}
}
