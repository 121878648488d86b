package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
	"github.com/seqsense/pcgol/pc/storage/kdtree"
)

const (
	defaultNodeColor = 0xffffff
	baseNodeSize     = 15.0
	nodeSizeRange    = 100.0
	defaultMaxDegree = 7402.0
)

// geometryUploader sends view geometry to the GPU.
type geometryUploader interface {
	UploadNodes(pp *pc.PointCloud, sizes []float32)
	UploadLinks(pp *pc.PointCloud)
}

// nodeSize maps a dependent count to a drawn node size. maxDegree is the
// count that gets the largest size.
func nodeSize(count int, maxDegree float64) float64 {
	if maxDegree <= 0 {
		return baseNodeSize
	}
	return nodeSizeRange*float64(count)/maxDegree + baseNodeSize
}

func newVec3LabelCloud(n int) *pc.PointCloud {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version: 0.7,
			Fields:  []string{"x", "y", "z", "label"},
			Size:    []int{4, 4, 4, 4},
			Type:    []string{"F", "F", "F", "U"},
			Count:   []int{1, 1, 1, 1},
			Width:   n,
			Height:  1,
		},
		Points: n,
	}
	pp.Data = make([]byte, n*pp.Stride())
	return pp
}

// nodeView owns the drawn nodes: positions and colors in a point cloud
// (label field holds 0xRRGGBB) and one size per node.
type nodeView struct {
	uploader geometryUploader

	pp     *pc.PointCloud
	ids    []int64
	index  map[int64]int
	colors []uint32
	sizes  []float32

	nearestFn func(p mat.Vec3, maxRange float32) int
}

func newNodeView(u geometryUploader) *nodeView {
	return &nodeView{
		uploader: u,
		pp:       newVec3LabelCloud(0),
		index:    make(map[int64]int),
	}
}

// initialize rebuilds the view from the visible nodes of the model.
func (v *nodeView) initialize(m *graphModel) {
	ids := m.VisibleNodes()
	pp := newVec3LabelCloud(len(ids))
	v.ids = ids
	v.index = make(map[int64]int, len(ids))
	v.colors = make([]uint32, len(ids))
	v.sizes = make([]float32, len(ids))
	v.nearestFn = nil

	if len(ids) > 0 {
		it, err := pp.Vec3Iterator()
		if err != nil {
			panic(err)
		}
		for i, id := range ids {
			v.index[id] = i
			v.colors[i] = defaultNodeColor
			v.sizes[i] = baseNodeSize
			it.SetVec3(m.Position(id))
			it.Incr()
		}
	}
	v.pp = pp
	v.refresh()
}

func (v *nodeView) Len() int {
	return len(v.ids)
}

func (v *nodeView) nodeID(i int) (int64, bool) {
	if i < 0 || i >= len(v.ids) {
		return 0, false
	}
	return v.ids[i], true
}

func (v *nodeView) setNodeUI(id int64, color uint32, size float64) {
	i, ok := v.index[id]
	if !ok {
		return
	}
	v.colors[i] = color
	v.sizes[i] = float32(size)
}

// refresh writes colors into the point cloud and uploads it.
func (v *nodeView) refresh() {
	if v.pp.Points > 0 {
		it, err := v.pp.Uint32Iterator("label")
		if err != nil {
			panic(err)
		}
		for _, c := range v.colors {
			it.SetUint32(c)
			it.Incr()
		}
	}
	if v.uploader != nil {
		v.uploader.UploadNodes(v.pp, v.sizes)
	}
}

func (v *nodeView) positions() (pc.Vec3Iterator, bool) {
	if v.pp.Points == 0 {
		return nil, false
	}
	it, err := v.pp.Vec3Iterator()
	if err != nil {
		return nil, false
	}
	return it, true
}

// boundingSphere returns the center of the bounding box of the nodes and
// the largest distance of a node from it.
func (v *nodeView) boundingSphere() (mgl64.Vec3, float64, bool) {
	it, ok := v.positions()
	if !ok {
		return mgl64.Vec3{}, 0, false
	}
	min, max, err := pc.MinMaxVec3(it)
	if err != nil {
		return mgl64.Vec3{}, 0, false
	}
	center := min.Add(max).Mul(0.5)
	var rSq float32
	for it, _ = v.positions(); it.IsValid(); it.Incr() {
		if d := it.Vec3().Sub(center).NormSq(); d > rSq {
			rSq = d
		}
	}
	return fromVec3(center), math.Sqrt(float64(rSq)), true
}

// nearest returns the index of the node closest to p within maxRange.
func (v *nodeView) nearest(p mat.Vec3, maxRange float32) (int, bool) {
	if v.nearestFn == nil {
		it, ok := v.positions()
		if !ok {
			return -1, false
		}
		vecs := make(pc.Vec3Slice, 0, v.pp.Points)
		for ; it.IsValid(); it.Incr() {
			vecs = append(vecs, it.Vec3())
		}
		kdt := kdtree.New(vecs)
		v.nearestFn = func(p mat.Vec3, maxRange float32) int {
			return kdt.Nearest(p, maxRange).ID
		}
	}
	id := v.nearestFn(p, maxRange)
	return id, id >= 0
}
