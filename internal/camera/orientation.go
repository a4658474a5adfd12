// Package camera holds the rotation math for a camera sitting at the centre
// of the celestial sphere.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/astraea/internal/sky"
)

const (
	DefaultFollow float32 = 0.1
	DefaultSettle float32 = 0.01
	TurnStep      float32 = math.Pi / 60
	DragGain      float32 = 6
)

var (
	up      = mgl32.Vec3{0, 1, 0}
	right   = mgl32.Vec3{1, 0, 0}
	forward = mgl32.Vec3{0, 0, -1}
)

// Orientation is the camera rotation plus an optional rotation it is
// easing toward.
type Orientation struct {
	Rotation mgl32.Quat
	Target   *mgl32.Quat
}

// NewOrientation starts looking down -Z with no target.
func NewOrientation() Orientation {
	return Orientation{Rotation: mgl32.QuatIdent()}
}

// Forward is the world direction at the centre of the view.
func (o *Orientation) Forward() mgl32.Vec3 {
	return o.Rotation.Rotate(forward)
}

// SetTarget starts easing toward q.
func (o *Orientation) SetTarget(q mgl32.Quat) {
	q = q.Normalize()
	o.Target = &q
}

// Follow moves the rotation factor of the way toward the target along the
// shortest arc. The target is dropped once within settle radians. It
// reports whether a target is still active.
func (o *Orientation) Follow(factor, settle float32) bool {
	if o.Target == nil {
		return false
	}
	o.Rotation = Slerp(o.Rotation, *o.Target, factor)
	if AngleBetween(o.Rotation, *o.Target) < settle {
		o.Target = nil
	}
	return o.Target != nil
}

// Rotate post-multiplies a camera-local rotation.
func (o *Orientation) Rotate(local mgl32.Quat) {
	o.Rotation = o.Rotation.Mul(local).Normalize()
}

// Turn yaws about the camera's own up axis and cancels any target.
func (o *Orientation) Turn(yaw float32) {
	o.Rotate(mgl32.QuatRotate(yaw, up))
	o.Target = nil
}

// Drift applies the idle title-screen motion: a yaw then a pitch, both
// camera-local.
func (o *Orientation) Drift(yaw, pitch float32) {
	o.Rotate(mgl32.QuatRotate(yaw, up).Mul(mgl32.QuatRotate(pitch, right)))
}

// Slerp interpolates along the shorter of the two arcs between a and b.
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, t).Normalize()
}

// AngleBetween is the rotation angle separating two unit quaternions.
func AngleBetween(a, b mgl32.Quat) float32 {
	d := float64(a.Normalize().Dot(b.Normalize()))
	d = math.Min(math.Abs(d), 1)
	return float32(2 * math.Acos(d))
}

// LookAt returns the rotation taking the camera forward axis onto dir.
func LookAt(dir mgl32.Vec3) mgl32.Quat {
	if dir.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, 1}, dir.Mul(-1)).Normalize()
}

// CentreOf looks at the mean direction of a constellation's stars.
func CentreOf(c *sky.Constellation) mgl32.Quat {
	return LookAt(c.MeanDirection())
}

// AlignRays rotates about a×b by gain times the angle between a and b.
// Parallel or degenerate inputs give the identity.
func AlignRays(a, b mgl32.Vec3, gain float32) mgl32.Quat {
	if a.Len() == 0 || b.Len() == 0 {
		return mgl32.QuatIdent()
	}
	a, b = a.Normalize(), b.Normalize()

	axis := a.Cross(b)
	if axis.Dot(axis) < 1e-12 {
		return mgl32.QuatIdent()
	}

	dot := math.Max(-1, math.Min(1, float64(a.Dot(b))))
	angle := float32(math.Acos(dot)) * gain
	if math.IsNaN(float64(angle)) || math.IsInf(float64(angle), 0) {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(angle, axis.Normalize())
}
