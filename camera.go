package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/seqsense/pcgol/mat"
)

const (
	defaultFOV  = 45.0
	defaultNear = 0.1
	defaultFar  = 20000.0
)

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldUpAlt   = mgl64.Vec3{0, 0, 1}
	localForward = mgl64.Vec3{0, 0, -1}
	localRight   = mgl64.Vec3{1, 0, 0}
	localUp      = mgl64.Vec3{0, 1, 0}
)

// camera is a perspective camera whose pose is a world position and an
// orientation rotating camera local axes (looking down -Z) into world axes.
type camera struct {
	position    mgl64.Vec3
	orientation mgl64.Quat

	fov, aspect, near, far float64
}

func newCamera(fov, aspect, near, far float64) *camera {
	return &camera{
		orientation: mgl64.QuatIdent(),
		fov:         fov,
		aspect:      aspect,
		near:        near,
		far:         far,
	}
}

func (c *camera) SetAspect(aspect float64) {
	c.aspect = aspect
}

func (c *camera) forward() mgl64.Vec3 {
	return c.orientation.Normalize().Rotate(localForward)
}

func (c *camera) right() mgl64.Vec3 {
	return c.orientation.Normalize().Rotate(localRight)
}

func (c *camera) up() mgl64.Vec3 {
	return c.orientation.Normalize().Rotate(localUp)
}

// lookAtOrientation returns the orientation facing target from the current
// position. The pose is not modified.
func (c *camera) lookAtOrientation(target mgl64.Vec3) mgl64.Quat {
	dir := target.Sub(c.position)
	if dir.Len() < 1e-9 {
		return c.orientation
	}
	up := worldUp
	if dir.Normalize().Cross(up).Len() < 1e-6 {
		up = worldUpAlt
	}
	view := mgl64.LookAtV(c.position, target, up)
	return mgl64.Mat4ToQuat(view).Conjugate().Normalize()
}

func (c *camera) lookAt(target mgl64.Vec3) {
	c.orientation = c.lookAtOrientation(target)
}

func (c *camera) viewMatrix64() mgl64.Mat4 {
	p := c.position
	return c.orientation.Normalize().Conjugate().Mat4().
		Mul4(mgl64.Translate3D(-p[0], -p[1], -p[2]))
}

func (c *camera) projectionMatrix64() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.fov), c.aspect, c.near, c.far)
}

func (c *camera) viewMatrix() mat.Mat4 {
	return toMat4(c.viewMatrix64())
}

func (c *camera) projectionMatrix() mat.Mat4 {
	return toMat4(c.projectionMatrix64())
}

// fitDistance returns the distance at which a sphere of the given radius
// fills the vertical field of view.
func (c *camera) fitDistance(radius float64) float64 {
	return radius / math.Tan(math.Pi/180.0*c.fov*0.5)
}

// pointScale converts a world size at unit distance into pixels for a
// viewport of the given height.
func (c *camera) pointScale(height int) float32 {
	return float32(float64(height) / (2 * math.Tan(math.Pi/180.0*c.fov*0.5)))
}

func toMat4(m mgl64.Mat4) mat.Mat4 {
	var out mat.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

func toVec3(v mgl64.Vec3) mat.Vec3 {
	return mat.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func fromVec3(v mat.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
