package main

import (
	"github.com/seqsense/pcgol/pc"
	webgl "github.com/seqsense/webgl-go"
)

const (
	aVertexPosition = 0
	aVertexColor    = 1
	aVertexSize     = 2

	pointSizeMax = 256.0
	linkAlpha    = 0.4
)

// glRenderer draws the link lines and node points with WebGL2.
type glRenderer struct {
	gl *webgl.WebGL

	nodeProgram, linkProgram webgl.Program

	uNodeProjection, uNodeModelView webgl.Location
	uNodePointScale, uNodePointMax  webgl.Location
	uLinkProjection, uLinkModelView webgl.Location
	uLinkAlpha                      webgl.Location

	nodeBuf, sizeBuf, linkBuf webgl.Buffer

	nNodes, nodeStride int
	nLinks, linkStride int
	height             int
}

func newRenderer(gl *webgl.WebGL) (*glRenderer, error) {
	nodeProgram, err := newProgram(gl, "node", vsNodeSource, fsNodeSource)
	if err != nil {
		return nil, err
	}
	linkProgram, err := newProgram(gl, "link", vsLinkSource, fsLinkSource)
	if err != nil {
		return nil, err
	}
	r := &glRenderer{
		gl:          gl,
		nodeProgram: nodeProgram,
		linkProgram: linkProgram,

		uNodeProjection: gl.GetUniformLocation(nodeProgram, "uProjectionMatrix"),
		uNodeModelView:  gl.GetUniformLocation(nodeProgram, "uModelViewMatrix"),
		uNodePointScale: gl.GetUniformLocation(nodeProgram, "uPointScale"),
		uNodePointMax:   gl.GetUniformLocation(nodeProgram, "uPointSizeMax"),
		uLinkProjection: gl.GetUniformLocation(linkProgram, "uProjectionMatrix"),
		uLinkModelView:  gl.GetUniformLocation(linkProgram, "uModelViewMatrix"),
		uLinkAlpha:      gl.GetUniformLocation(linkProgram, "uAlpha"),

		nodeBuf: gl.CreateBuffer(),
		sizeBuf: gl.CreateBuffer(),
		linkBuf: gl.CreateBuffer(),
	}

	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.ClearDepth(1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.EnableVertexAttribArray(aVertexPosition)
	gl.EnableVertexAttribArray(aVertexColor)
	return r, nil
}

func (r *glRenderer) UploadNodes(pp *pc.PointCloud, sizes []float32) {
	gl := r.gl
	r.nNodes = pp.Points
	r.nodeStride = pp.Stride()
	if pp.Points == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.nodeBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.ByteArrayBuffer(pp.Data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.sizeBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(sizes), gl.STATIC_DRAW)
}

func (r *glRenderer) UploadLinks(pp *pc.PointCloud) {
	gl := r.gl
	r.nLinks = pp.Points
	r.linkStride = pp.Stride()
	if pp.Points == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.linkBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.ByteArrayBuffer(pp.Data), gl.STATIC_DRAW)
}

func (r *glRenderer) SetSize(width, height int) {
	gl := r.gl
	gl.Canvas.SetWidth(width)
	gl.Canvas.SetHeight(height)
	gl.Viewport(0, 0, width, height)
	r.height = height
}

func (r *glRenderer) Draw(s *scene, c *camera) {
	gl := r.gl
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	projectionMatrix := c.projectionMatrix()
	modelViewMatrix := c.viewMatrix()

	if s.links != nil && s.links.linksVisible() && r.nLinks > 0 {
		gl.UseProgram(r.linkProgram)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.linkBuf)
		gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, r.linkStride, 0)
		gl.VertexAttribIPointer(aVertexColor, 1, gl.UNSIGNED_INT, r.linkStride, 3*4)
		gl.UniformMatrix4fv(r.uLinkProjection, false, projectionMatrix)
		gl.UniformMatrix4fv(r.uLinkModelView, false, modelViewMatrix)
		gl.Uniform1f(r.uLinkAlpha, linkAlpha)
		gl.DrawArrays(gl.LINES, 0, r.nLinks)
	}

	if s.nodes != nil && r.nNodes > 0 {
		gl.UseProgram(r.nodeProgram)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.nodeBuf)
		gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, r.nodeStride, 0)
		gl.VertexAttribIPointer(aVertexColor, 1, gl.UNSIGNED_INT, r.nodeStride, 3*4)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.sizeBuf)
		gl.VertexAttribPointer(aVertexSize, 1, gl.FLOAT, false, 4, 0)
		// Enabled once a size buffer is bound; only the node program reads it.
		gl.EnableVertexAttribArray(aVertexSize)
		gl.UniformMatrix4fv(r.uNodeProjection, false, projectionMatrix)
		gl.UniformMatrix4fv(r.uNodeModelView, false, modelViewMatrix)
		gl.Uniform1f(r.uNodePointScale, c.pointScale(r.height))
		gl.Uniform1f(r.uNodePointMax, pointSizeMax)
		gl.DrawArrays(gl.POINTS, 0, r.nNodes)
	}
}
