package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/astraea/internal/sky"
)

func vecNear(t *testing.T, want, got mgl32.Vec3, eps float32) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, eps), "want %v got %v", want, got)
}

func TestLookAt(t *testing.T) {
	for _, dir := range []mgl32.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, -1},
		{0, 0, 1},
		sky.CelestialToCartesian(5.9, 7.4),
		sky.CelestialToCartesian(12.4, -63),
	} {
		q := LookAt(dir)
		o := Orientation{Rotation: q}
		vecNear(t, dir.Normalize(), o.Forward(), 1e-5)
	}
	assert.Equal(t, mgl32.QuatIdent(), LookAt(mgl32.Vec3{}))
}

func TestCentreOf(t *testing.T) {
	c := &sky.Constellation{Stars: []sky.Member{
		{RA: 0, Dec: 10},
		{RA: 0, Dec: -10},
	}}
	o := Orientation{Rotation: CentreOf(c)}
	vecNear(t, mgl32.Vec3{1, 0, 0}, o.Forward(), 1e-5)
}

func TestFollowConverges(t *testing.T) {
	o := NewOrientation()
	o.SetTarget(LookAt(mgl32.Vec3{1, 0, 0}))

	frames := 0
	for o.Follow(DefaultFollow, DefaultSettle) {
		frames++
		require.Less(t, frames, 500)
	}
	assert.Nil(t, o.Target)
	assert.Less(t, AngleBetween(o.Rotation, LookAt(mgl32.Vec3{1, 0, 0})), DefaultSettle)
	assert.False(t, o.Follow(DefaultFollow, DefaultSettle))
}

func TestFollowTakesShortestArc(t *testing.T) {
	o := NewOrientation()
	target := mgl32.QuatRotate(0.2, up).Scale(-1)
	o.SetTarget(target)

	o.Follow(0.5, DefaultSettle)
	assert.InDelta(t, 0.1, AngleBetween(o.Rotation, mgl32.QuatIdent()), 1e-4)
}

func TestTurnCancelsTarget(t *testing.T) {
	o := NewOrientation()
	o.SetTarget(LookAt(mgl32.Vec3{0, 1, 0}))

	o.Turn(TurnStep)
	assert.Nil(t, o.Target)

	want := mgl32.Vec3{-float32(math.Sin(float64(TurnStep))), 0, -float32(math.Cos(float64(TurnStep)))}
	vecNear(t, want, o.Forward(), 1e-5)

	o.Turn(-TurnStep)
	vecNear(t, forward, o.Forward(), 1e-5)
}

func TestDrift(t *testing.T) {
	o := NewOrientation()
	for i := 0; i < 1000; i++ {
		o.Drift(math.Pi/6000, -math.Pi/2000)
	}
	assert.InDelta(t, 1, o.Rotation.Len(), 1e-4)
	assert.Greater(t, AngleBetween(o.Rotation, mgl32.QuatIdent()), float32(0.5))
}

func TestAlignRays(t *testing.T) {
	a := mgl32.Vec3{1, 0, 0}
	b := mgl32.Vec3{float32(math.Cos(0.01)), float32(math.Sin(0.01)), 0}

	q := AlignRays(a, b, 1)
	vecNear(t, b, q.Rotate(a), 1e-4)

	q = AlignRays(a, b, DragGain)
	assert.InDelta(t, 0.06, AngleBetween(q, mgl32.QuatIdent()), 1e-4)

	assert.Equal(t, mgl32.QuatIdent(), AlignRays(a, a, DragGain))
	assert.Equal(t, mgl32.QuatIdent(), AlignRays(a, a.Mul(-1), DragGain))
	assert.Equal(t, mgl32.QuatIdent(), AlignRays(a, mgl32.Vec3{}, DragGain))
}

func TestProjectorRoundTrip(t *testing.T) {
	p := NewProjector(DefaultFovY, 800, 600)
	rotation := LookAt(sky.CelestialToCartesian(6, 20))

	x, y, ok := p.Project(rotation, rotation.Rotate(forward))
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-2)
	assert.InDelta(t, 300, y, 1e-2)

	for _, px := range [][2]float32{{0, 0}, {799, 10}, {123, 456}, {400, 300}} {
		ray := p.Ray(rotation, px[0], px[1])
		assert.InDelta(t, 1, ray.Len(), 1e-5)
		x, y, ok := p.Project(rotation, ray)
		require.True(t, ok)
		assert.InDelta(t, px[0], x, 0.05)
		assert.InDelta(t, px[1], y, 0.05)
		assert.True(t, p.Visible(x, y, 1))
	}

	_, _, ok = p.Project(rotation, rotation.Rotate(forward).Mul(-1))
	assert.False(t, ok, "behind the camera")
}

func TestProjectorAxes(t *testing.T) {
	p := NewProjector(DefaultFovY, 100, 100)
	ident := mgl32.QuatIdent()

	x, y, ok := p.Project(ident, mgl32.Vec3{0.1, 0.1, -1}.Normalize())
	require.True(t, ok)
	assert.Greater(t, x, float32(50), "+X is right")
	assert.Less(t, y, float32(50), "+Y is up")

	p.Resize(0, 0)
	assert.Equal(t, float32(1), p.Width)
	assert.False(t, p.Visible(10, 10, 0))
}

func TestViewDragFollowsCursor(t *testing.T) {
	v := NewView(DefaultFovY, 1280, 720)
	assert.Equal(t, DragGain, v.Gain)
	assert.False(t, v.Step(), "no target")

	v.Gain = 1
	grabbed := v.RayAt(640, 360)
	v.Drag(640, 360, 700, 330)
	require.NotNil(t, v.Target)

	v.Rotation = *v.Target
	x, y, ok := v.ProjectWorld(grabbed)
	require.True(t, ok)
	assert.InDelta(t, 700, x, 0.5)
	assert.InDelta(t, 330, y, 0.5)
}

func TestViewStepEases(t *testing.T) {
	v := NewView(DefaultFovY, 800, 600)
	v.SetTarget(LookAt(mgl32.Vec3{0, 1, 0}))

	frames := 0
	for v.Step() {
		frames++
		require.Less(t, frames, 500)
	}
	vecNear(t, mgl32.Vec3{0, 1, 0}, v.Forward(), 0.02)
}
