package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFovY float32 = math.Pi / 4
	near        float32 = 0.01
	far         float32 = 10
)

// Projector maps world directions to screen pixels for a camera at the
// origin, and back.
type Projector struct {
	FovY          float32
	Width, Height float32

	proj mgl32.Mat4
}

func NewProjector(fovY float32, width, height int) *Projector {
	p := &Projector{FovY: fovY}
	p.Resize(width, height)
	return p
}

// Resize updates the viewport. Zero sizes are clamped to one pixel.
func (p *Projector) Resize(width, height int) {
	p.Width = float32(max(width, 1))
	p.Height = float32(max(height, 1))
	p.proj = mgl32.Perspective(p.FovY, p.Width/p.Height, near, far)
}

// Project returns the pixel position of dir seen through rotation. ok is
// false for directions behind the camera.
func (p *Projector) Project(rotation mgl32.Quat, dir mgl32.Vec3) (x, y float32, ok bool) {
	local := rotation.Inverse().Rotate(dir)
	if local.Z() >= -1e-4 {
		return 0, 0, false
	}
	clip := p.proj.Mul4x1(local.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()
	x = (ndcX + 1) / 2 * p.Width
	y = (1 - ndcY) / 2 * p.Height
	return x, y, true
}

// Ray returns the unit world direction under pixel (x, y).
func (p *Projector) Ray(rotation mgl32.Quat, x, y float32) mgl32.Vec3 {
	f := float32(1 / math.Tan(float64(p.FovY)/2))
	aspect := p.Width / p.Height
	ndcX := 2*x/p.Width - 1
	ndcY := 1 - 2*y/p.Height
	local := mgl32.Vec3{ndcX * aspect / f, ndcY / f, -1}.Normalize()
	return rotation.Rotate(local)
}

// Visible reports whether pixel (x, y) lies inside the viewport, with margin
// pixels of slack on every side.
func (p *Projector) Visible(x, y, margin float32) bool {
	return x >= -margin && y >= -margin && x <= p.Width+margin && y <= p.Height+margin
}
