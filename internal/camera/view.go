package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// View is the live camera: where it points, how it projects, and how it
// eases toward targets. The game keeps one as a singleton.
type View struct {
	Orientation
	Projector

	Follow float32
	Settle float32
	Gain   float32
}

func NewView(fovY float32, width, height int) View {
	return View{
		Orientation: NewOrientation(),
		Projector:   *NewProjector(fovY, width, height),
		Follow:      DefaultFollow,
		Settle:      DefaultSettle,
		Gain:        DragGain,
	}
}

// Step advances any eased motion by one frame.
func (v *View) Step() bool {
	return v.Orientation.Follow(v.Follow, v.Settle)
}

// ProjectWorld projects dir through the current rotation.
func (v *View) ProjectWorld(dir mgl32.Vec3) (x, y float32, ok bool) {
	return v.Project(v.Rotation, dir)
}

// RayAt is the world direction under pixel (x, y).
func (v *View) RayAt(x, y float32) mgl32.Vec3 {
	return v.Ray(v.Rotation, x, y)
}

// Drag rotates the sky so the direction under from ends up under to.
func (v *View) Drag(fromX, fromY, toX, toY float32) {
	a := v.RayAt(toX, toY)
	b := v.RayAt(fromX, fromY)
	target := AlignRays(a, b, v.Gain).Mul(v.Rotation)
	v.SetTarget(target)
}
