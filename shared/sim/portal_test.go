package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbitwine/rabbitwine-mp/shared/terrain"
)

// portalWorld builds two 20x20 levels with a level-change cell on A's west
// border at (0, 10).
func portalWorld() stubSource {
	a := terrain.NewStore(20, 20)
	a.SetTile(0, 10, terrain.TileLevelChange)
	a.SetPortalDest(0, 10, "b")
	a.RebuildCache()

	b := terrain.NewStore(20, 20)
	b.RebuildCache()

	return stubSource{"a": a, "b": b}
}

func TestBorderPortalTransition(t *testing.T) {
	world := portalWorld()
	s := newTestSim(t, world, "a", -9.5, 0, 0.5)
	s.player.Yaw = -math.Pi / 2 // faces -X, into the border
	s.player.Speed = 2.5

	s.Step(Intent{}, 0.01)
	events := s.DrainEvents()

	require.Equal(t, "b", s.Level())
	p := s.Player()

	// Exit through the opposite (east) border, inset inward.
	assert.InDelta(t, 10-PortalExitInset, p.X, 1e-9)
	assert.InDelta(t, 0.5, p.Z, 1e-9)

	// Kinematic state survives the transition; the frame's deceleration had
	// already applied before the portal fired.
	assert.InDelta(t, -math.Pi/2, p.Yaw, 1e-9)
	assert.InDelta(t, 2.5-DecelRate*0.01, p.Speed, 1e-9)
	assert.InDelta(t, PortalCooldown, p.PortalCooldown, 1e-9)

	require.Len(t, events, 1)
	assert.Equal(t, EventPortal, events[0].Kind)
	assert.Equal(t, "a", events[0].FromLevel)
	assert.Equal(t, "b", events[0].ToLevel)
}

func TestBorderPortalRedirectsOutwardDirection(t *testing.T) {
	world := portalWorld()
	s := newTestSim(t, world, "a", -9.5, 0, 0.5)
	s.player.Yaw = math.Pi / 2 // faces +X, away from the border

	s.Step(Intent{}, 0.01)
	require.Equal(t, "b", s.Level())

	// The exit direction snaps to the destination border's inward normal.
	p := s.Player()
	assert.InDelta(t, 10-PortalExitInset, p.X, 1e-9)
	assert.InDelta(t, -math.Pi/2, p.Yaw, 1e-9)
}

func TestPortalWithoutDestinationIsNoOp(t *testing.T) {
	a := terrain.NewStore(20, 20)
	a.SetTile(0, 10, terrain.TileLevelChange)
	a.RebuildCache()

	s := newTestSim(t, stubSource{"a": a}, "a", -9.5, 0, 0.5)
	s.Step(Intent{}, 0.01)

	assert.Equal(t, "a", s.Level())
	assert.Empty(t, s.DrainEvents())
	assert.Zero(t, s.Player().PortalCooldown)
}

func TestPortalUnknownLevelIsNoOp(t *testing.T) {
	a := terrain.NewStore(20, 20)
	a.SetTile(0, 10, terrain.TileLevelChange)
	a.SetPortalDest(0, 10, "missing")
	a.RebuildCache()

	s := newTestSim(t, stubSource{"a": a}, "a", -9.5, 0, 0.5)
	s.Step(Intent{}, 0.01)

	assert.Equal(t, "a", s.Level())
	assert.Empty(t, s.DrainEvents())
}

func TestPortalCooldownSuppressesRetrigger(t *testing.T) {
	world := portalWorld()
	s := newTestSim(t, world, "a", -9.5, 0, 0.5)
	s.player.PortalCooldown = 0.5

	s.Step(Intent{}, 0.01)
	assert.Equal(t, "a", s.Level())
	assert.Empty(t, s.DrainEvents())
}

func TestPortalSpanTriggersInsideVerticalRange(t *testing.T) {
	a := terrain.NewStore(20, 20)
	a.SetSpans(10, 10, []terrain.Span{{Base: 0, Height: 2, Kind: terrain.KindPortal}})
	a.SetPortalDest(10, 10, "b")
	a.RebuildCache()
	b := terrain.NewStore(20, 20)
	b.RebuildCache()
	world := stubSource{"a": a, "b": b}

	s := newTestSim(t, world, "a", 0.5, 0, 0.5)
	s.Step(Intent{}, 0.01)
	require.Equal(t, "b", s.Level())

	// Interior trigger: exit one cell forward of the trigger's centre.
	p := s.Player()
	assert.InDelta(t, 0.5, p.X, 1e-9)
	assert.InDelta(t, -0.5, p.Z, 1e-9)
}

func TestPortalSpanIgnoredAboveItsRange(t *testing.T) {
	a := terrain.NewStore(20, 20)
	a.SetSpans(10, 10, []terrain.Span{{Base: 0, Height: 2, Kind: terrain.KindPortal}})
	a.SetPortalDest(10, 10, "b")
	a.RebuildCache()
	b := terrain.NewStore(20, 20)
	b.RebuildCache()

	s := newTestSim(t, stubSource{"a": a, "b": b}, "a", 0.5, 5, 0.5)
	s.player.Motion = MotionState{Kind: MotionFrozen} // hold altitude above the span
	s.Step(Intent{}, 0.01)
	assert.Equal(t, "a", s.Level())
}

func TestPortalLiftsPlayerToDestinationFloor(t *testing.T) {
	world := portalWorld()
	b, _ := world.Level("b")
	// The exit cell on B's east border is raised terrain.
	b.SetTile(19, 10, terrain.TileWall)
	b.RebuildCache()

	s := newTestSim(t, world, "a", -9.5, 0, 0.5)
	s.player.Yaw = -math.Pi / 2

	s.Step(Intent{}, 0.01)
	require.Equal(t, "b", s.Level())

	p := s.Player()
	assert.InDelta(t, 1, p.Y, 1e-9)
	assert.GreaterOrEqual(t, p.VY, 0.0)
}
