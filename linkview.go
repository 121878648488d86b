package main

import (
	"github.com/seqsense/pcgol/pc"
)

const defaultLinkColor = 0x3a5f8a

// linkView owns line segments for the links between visible nodes.
// Each link is two consecutive points of the cloud.
type linkView struct {
	uploader geometryUploader

	pp      *pc.PointCloud
	visible bool
}

func newLinkView(u geometryUploader, visible bool) *linkView {
	return &linkView{
		uploader: u,
		pp:       newVec3LabelCloud(0),
		visible:  visible,
	}
}

func (v *linkView) initialize(m *graphModel) {
	var n int
	m.VisibleLinks(func(_, _ int64) { n++ })

	pp := newVec3LabelCloud(2 * n)
	if n > 0 {
		it, err := pp.Vec3Iterator()
		if err != nil {
			panic(err)
		}
		itL, err := pp.Uint32Iterator("label")
		if err != nil {
			panic(err)
		}
		m.VisibleLinks(func(from, to int64) {
			it.SetVec3(m.Position(from))
			it.Incr()
			it.SetVec3(m.Position(to))
			it.Incr()
			itL.SetUint32(defaultLinkColor)
			itL.Incr()
			itL.SetUint32(defaultLinkColor)
			itL.Incr()
		})
	}
	v.pp = pp
	if v.uploader != nil {
		v.uploader.UploadLinks(pp)
	}
}

// Len returns the number of links.
func (v *linkView) Len() int {
	return v.pp.Points / 2
}

func (v *linkView) linksVisible() bool {
	return v.visible
}

func (v *linkView) setLinksVisible(visible bool) {
	v.visible = visible
}

func (v *linkView) toggleLinks() bool {
	v.visible = !v.visible
	return v.visible
}
