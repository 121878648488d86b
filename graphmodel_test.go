package main

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/seqsense/pcgol/mat"
)

func int32Stream(vals ...int32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(v))
	}
	return b
}

// newTestModel returns
//
//	app -> lib -> core
//	app -> core
//	tool (isolated)
func newTestModel(t *testing.T) *graphModel {
	t.Helper()
	m := newGraphModel()
	labels := []string{"app", "lib", "core", "tool"}
	positions := []mat.Vec3{
		{0, 0, 0},
		{100, 0, 0},
		{0, 100, 0},
		{0, 0, 100},
	}
	if err := m.SetNodes(labels, positions); err != nil {
		t.Fatal(err)
	}
	if err := m.SetLinks(int32Stream(-1, 2, 3, -2, 3)); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestParsePositions(t *testing.T) {
	pos, err := parsePositions(int32Stream(1, -2, 3, 400, 500, -600))
	if err != nil {
		t.Fatal(err)
	}
	expected := []mat.Vec3{{1, -2, 3}, {400, 500, -600}}
	if !reflect.DeepEqual(expected, pos) {
		t.Errorf("Expected %v, got %v", expected, pos)
	}

	if _, err := parsePositions(int32Stream(1, 2)); !errors.Is(err, errPositionsSize) {
		t.Errorf("Expected errPositionsSize, got %v", err)
	}
}

func TestParseLabels(t *testing.T) {
	labels, err := parseLabels([]byte(`["a","b/c"]`))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual([]string{"a", "b/c"}, labels) {
		t.Errorf("Unexpected labels %v", labels)
	}
	if _, err := parseLabels([]byte(`{"a":1}`)); err == nil {
		t.Error("Expected error for non-array labels")
	}
}

func TestGraphModel_Links(t *testing.T) {
	m := newTestModel(t)

	testCases := map[string]struct {
		id           int64
		dependencies int
		dependents   int
	}{
		"app":  {0, 2, 0},
		"lib":  {1, 1, 1},
		"core": {2, 0, 2},
		"tool": {3, 0, 0},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if n := m.Dependencies(tt.id); n != tt.dependencies {
				t.Errorf("Expected %d dependencies, got %d", tt.dependencies, n)
			}
			if n := m.Dependents(tt.id); n != tt.dependents {
				t.Errorf("Expected %d dependents, got %d", tt.dependents, n)
			}
		})
	}

	var links [][2]int64
	m.VisibleLinks(func(from, to int64) {
		links = append(links, [2]int64{from, to})
	})
	expected := [][2]int64{{0, 1}, {0, 2}, {1, 2}}
	if !reflect.DeepEqual(expected, links) {
		t.Errorf("Expected links %v, got %v", expected, links)
	}
}

func TestGraphModel_SetLinksErrors(t *testing.T) {
	testCases := map[string]struct {
		stream []byte
		err    error
	}{
		"NoSource":  {int32Stream(2), errLinkNoSource},
		"Truncated": {[]byte{1, 2, 3}, errLinksSize},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			m := newGraphModel()
			if err := m.SetNodes([]string{"a", "b"}, []mat.Vec3{{}, {}}); err != nil {
				t.Fatal(err)
			}
			if err := m.SetLinks(tt.stream); !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}

	t.Run("OutOfRange", func(t *testing.T) {
		m := newGraphModel()
		if err := m.SetNodes([]string{"a"}, []mat.Vec3{{}}); err != nil {
			t.Fatal(err)
		}
		if err := m.SetLinks(int32Stream(-1, 5)); err == nil {
			t.Error("Expected out of range error")
		}
	})
	t.Run("NotLoaded", func(t *testing.T) {
		if err := newGraphModel().SetLinks(int32Stream(-1, 1)); !errors.Is(err, errNodesNotLoaded) {
			t.Errorf("Expected errNodesNotLoaded, got %v", err)
		}
	})
}

func TestGraphModel_ReadyCallbacks(t *testing.T) {
	m := newGraphModel()
	var events []string
	m.OnNodesReady(func(*graphModel) { events = append(events, "nodes") })
	m.OnLinksReady(func(*graphModel) { events = append(events, "links") })

	if err := m.SetNodes([]string{"a", "b"}, []mat.Vec3{{}, {}}); err != nil {
		t.Fatal(err)
	}
	if err := m.SetLinks(int32Stream(-1, 2)); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual([]string{"nodes", "links"}, events) {
		t.Errorf("Unexpected callback order %v", events)
	}
}

func TestGraphModel_Filter(t *testing.T) {
	testCases := map[string]struct {
		pattern  string
		expected []int64
	}{
		"Empty":           {"", []int64{0, 1, 2, 3}},
		"Substring":       {"o", []int64{2, 3}},
		"CaseInsensitive": {"APP", []int64{0}},
		"Regexp":          {"^(app|core)$", []int64{0, 2}},
		"InvalidRegexp":   {"(", []int64{}},
		"NoMatch":         {"zzz", []int64{}},
		"Whitespace":      {" ", []int64{}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			m := newTestModel(t)
			m.Filter(tt.pattern)
			if ids := m.VisibleNodes(); !reflect.DeepEqual(tt.expected, ids) {
				t.Errorf("Expected %v, got %v", tt.expected, ids)
			}
		})
	}

	t.Run("LinksBetweenVisibleOnly", func(t *testing.T) {
		m := newTestModel(t)
		m.Filter("app|core")
		var n int
		m.VisibleLinks(func(from, to int64) {
			n++
			if from != 0 || to != 2 {
				t.Errorf("Unexpected link %d -> %d", from, to)
			}
		})
		if n != 1 {
			t.Errorf("Expected 1 link, got %d", n)
		}
	})
}

func TestGraphModel_Subgraph(t *testing.T) {
	m := newTestModel(t)

	if m.Subgraph("unknown") {
		t.Error("Unknown package must not change the view")
	}
	if ids := m.VisibleNodes(); len(ids) != 4 {
		t.Errorf("Expected all nodes visible, got %v", ids)
	}

	if !m.Subgraph("lib") {
		t.Fatal("Subgraph failed")
	}
	if ids := m.VisibleNodes(); !reflect.DeepEqual([]int64{1, 2}, ids) {
		t.Errorf("Expected lib and core, got %v", ids)
	}
}

func TestGraphModel_PackagePosition(t *testing.T) {
	m := newTestModel(t)

	p, ok := m.PackagePosition("lib")
	if !ok {
		t.Fatal("lib must have a position")
	}
	if p[0] != 100 || p[1] != 0 || p[2] != 0 {
		t.Errorf("Unexpected position %v", p)
	}
	if _, ok := m.PackagePosition("missing"); ok {
		t.Error("Missing package must not have a position")
	}
}
