package main

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/seqsense/pcgol/mat"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

var (
	errPositionsSize  = errors.New("positions must be a sequence of int32 triples")
	errLinksSize      = errors.New("links must be a sequence of int32")
	errLinkNoSource   = errors.New("link target without source")
	errNodesNotLoaded = errors.New("nodes are not loaded")
)

// graphModel is a dependency graph with a position per package.
// A link points from a package to one of its dependencies.
type graphModel struct {
	g         *simple.DirectedGraph
	labels    []string
	positions []mat.Vec3
	byName    map[string]int64

	// visible is nil when no filter is applied.
	visible map[int64]bool
	pattern string

	onNodesReady []func(*graphModel)
	onLinksReady []func(*graphModel)
}

func newGraphModel() *graphModel {
	return &graphModel{
		g:      simple.NewDirectedGraph(),
		byName: make(map[string]int64),
	}
}

func (m *graphModel) OnNodesReady(fn func(*graphModel)) {
	m.onNodesReady = append(m.onNodesReady, fn)
}

func (m *graphModel) OnLinksReady(fn func(*graphModel)) {
	m.onLinksReady = append(m.onLinksReady, fn)
}

func parseLabels(b []byte) ([]string, error) {
	var labels []string
	if err := json.Unmarshal(b, &labels); err != nil {
		return nil, fmt.Errorf("parsing labels: %w", err)
	}
	return labels, nil
}

func parsePositions(b []byte) ([]mat.Vec3, error) {
	if len(b)%12 != 0 {
		return nil, errPositionsSize
	}
	n := len(b) / 12
	pos := make([]mat.Vec3, n)
	for i := range pos {
		for j := 0; j < 3; j++ {
			v := int32(binary.LittleEndian.Uint32(b[(i*3+j)*4:]))
			pos[i][j] = float32(v)
		}
	}
	return pos, nil
}

// SetNodes replaces the graph with unconnected nodes.
func (m *graphModel) SetNodes(labels []string, positions []mat.Vec3) error {
	if len(labels) != len(positions) {
		return fmt.Errorf("%d labels for %d positions", len(labels), len(positions))
	}
	m.g = simple.NewDirectedGraph()
	m.byName = make(map[string]int64, len(labels))
	for i, l := range labels {
		m.g.AddNode(simple.Node(i))
		if _, ok := m.byName[l]; !ok {
			m.byName[l] = int64(i)
		}
	}
	m.labels = labels
	m.positions = positions
	m.applyFilter()

	for _, fn := range m.onNodesReady {
		fn(m)
	}
	return nil
}

// SetLinks adds links from an int32 stream. A negative value -(i+1) selects
// source node i, and each following positive value j+1 adds a link to j.
func (m *graphModel) SetLinks(b []byte) error {
	if m.labels == nil {
		return errNodesNotLoaded
	}
	if len(b)%4 != 0 {
		return errLinksSize
	}
	n := int64(len(m.labels))
	src := int64(-1)
	for i := 0; i < len(b); i += 4 {
		v := int64(int32(binary.LittleEndian.Uint32(b[i:])))
		switch {
		case v < 0:
			src = -v - 1
			if src >= n {
				return fmt.Errorf("source node %d out of range", src)
			}
		case v > 0:
			if src < 0 {
				return errLinkNoSource
			}
			dst := v - 1
			if dst >= n {
				return fmt.Errorf("target node %d out of range", dst)
			}
			if dst == src {
				continue
			}
			m.g.SetEdge(simple.Edge{F: simple.Node(src), T: simple.Node(dst)})
		}
	}

	for _, fn := range m.onLinksReady {
		fn(m)
	}
	return nil
}

func (m *graphModel) Len() int {
	return len(m.labels)
}

func (m *graphModel) Label(id int64) (string, bool) {
	if id < 0 || id >= int64(len(m.labels)) {
		return "", false
	}
	return m.labels[id], true
}

func (m *graphModel) NodeByName(name string) (int64, bool) {
	id, ok := m.byName[name]
	return id, ok
}

func (m *graphModel) Position(id int64) mat.Vec3 {
	return m.positions[id]
}

// PackagePosition returns the position of the named package.
func (m *graphModel) PackagePosition(name string) (mgl64.Vec3, bool) {
	id, ok := m.byName[name]
	if !ok || id >= int64(len(m.positions)) {
		return mgl64.Vec3{}, false
	}
	return fromVec3(m.positions[id]), true
}

// Dependencies returns the number of packages the node depends on.
func (m *graphModel) Dependencies(id int64) int {
	return m.g.From(id).Len()
}

// Dependents returns the number of packages depending on the node.
func (m *graphModel) Dependents(id int64) int {
	return m.g.To(id).Len()
}

func (m *graphModel) Visible(id int64) bool {
	if m.visible == nil {
		return id >= 0 && id < int64(len(m.labels))
	}
	return m.visible[id]
}

func (m *graphModel) Pattern() string {
	return m.pattern
}

// Filter shows only packages whose name matches the case-insensitive
// regular expression. Invalid expressions match as plain substrings.
// An empty pattern shows every package.
func (m *graphModel) Filter(pattern string) {
	m.pattern = pattern
	m.applyFilter()
}

func (m *graphModel) applyFilter() {
	if m.pattern == "" {
		m.visible = nil
		return
	}
	match := matcher(m.pattern)
	m.visible = make(map[int64]bool)
	for i, l := range m.labels {
		if match(l) {
			m.visible[int64(i)] = true
		}
	}
}

func matcher(pattern string) func(string) bool {
	re, err := regexp.Compile("(?i)" + pattern)
	if err == nil {
		return re.MatchString
	}
	lower := strings.ToLower(pattern)
	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), lower)
	}
}

// Subgraph shows only the named package and its transitive dependencies.
func (m *graphModel) Subgraph(name string) bool {
	id, ok := m.byName[name]
	if !ok {
		return false
	}
	visible := make(map[int64]bool)
	bf := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			visible[n.ID()] = true
		},
	}
	bf.Walk(m.g, simple.Node(id), nil)
	m.visible = visible
	m.pattern = ""
	return true
}

// VisibleNodes returns visible node IDs in ascending order.
func (m *graphModel) VisibleNodes() []int64 {
	if m.visible == nil {
		ids := make([]int64, len(m.labels))
		for i := range ids {
			ids[i] = int64(i)
		}
		return ids
	}
	ids := make([]int64, 0, len(m.visible))
	for id := range m.visible {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// VisibleLinks calls fn for every link between two visible nodes.
func (m *graphModel) VisibleLinks(fn func(from, to int64)) {
	for _, id := range m.VisibleNodes() {
		var to []int64
		for it := m.g.From(id); it.Next(); {
			if t := it.Node().ID(); m.Visible(t) {
				to = append(to, t)
			}
		}
		sort.Slice(to, func(i, j int) bool { return to[i] < to[j] })
		for _, t := range to {
			fn(id, t)
		}
	}
}
