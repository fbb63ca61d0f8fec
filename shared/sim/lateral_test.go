package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbitwine/rabbitwine-mp/shared/terrain"
)

// wallStore returns a 40x40 open store with a tall solid column directly
// north (-Z) of the map centre cell.
func wallStore() *terrain.Store {
	s := terrain.NewStore(40, 40)
	s.SetSpans(20, 19, []terrain.Span{{Base: 0, Height: 6}})
	s.RebuildCache()
	return s
}

func TestSpeedRampWarmupThenFull(t *testing.T) {
	s := newTestSim(t, stubSource{"a": openStore(40, 40)}, "a", 0.5, 0, 0.5)

	s.Step(Intent{Accelerate: true}, 0.1)
	assert.InDelta(t, WarmupRate*0.1, s.Player().Speed, 1e-9)
	s.Step(Intent{Accelerate: true}, 0.1)
	assert.InDelta(t, WarmupRate*0.2, s.Player().Speed, 1e-9)

	// Past the warm-up window the ramp reaches full speed quickly.
	for i := 0; i < 40; i++ {
		s.Step(Intent{Accelerate: true}, 0.1)
	}
	assert.InDelta(t, DefaultConfig().BaseSpeed, s.Player().Speed, 1e-9)

	// Releasing decays at the (faster) deceleration rate.
	s.Step(Intent{}, 0.1)
	assert.InDelta(t, DefaultConfig().BaseSpeed-DecelRate*0.1, s.Player().Speed, 1e-9)
}

func TestMovesAlongYawDirection(t *testing.T) {
	s := newTestSim(t, stubSource{"a": openStore(40, 40)}, "a", 0.5, 0, 0.5)
	s.player.Speed = 2
	s.player.Yaw = math.Pi / 2 // faces +X

	s.Step(Intent{Accelerate: true}, 0.1)
	p := s.Player()
	assert.Greater(t, p.X, 0.5)
	assert.InDelta(t, 0.5, p.Z, 1e-9)
}

func TestAutoWallJump(t *testing.T) {
	s := newTestSim(t, stubSource{"a": wallStore()}, "a", 0.5, 0, 0.05)

	dt := 0.05
	s.Step(Intent{Jump: true, Accelerate: true}, dt)

	jumped := false
	for i := 0; i < 40 && !jumped; i++ {
		s.Step(Intent{Accelerate: true}, dt)
		jumped = hasEvent(s.DrainEvents(), EventWallJump)
	}
	require.True(t, jumped, "wall-jump never fired")

	p := s.Player()
	assert.InDelta(t, math.Pi, p.Yaw, 1e-9, "yaw flips away from the wall")
	assert.InDelta(t, JumpImpulse+Gravity*dt, p.VY, 1e-9)
	assert.InDelta(t, WallJumpCooldown, p.WallJumpCooldown, 1e-9)
	assert.False(t, p.DashUsed)

	// The jump start height resets at the wall, so only the post-jump rise of
	// this one tick remains.
	assert.InDelta(t, (JumpImpulse+Gravity*dt)*dt, p.Y-p.JumpStartY, 1e-9)
}

func TestWallJumpRearmsRiseGate(t *testing.T) {
	s := newTestSim(t, stubSource{"a": wallStore()}, "a", 0.5, 2, 0.05)
	s.player.Motion = MotionState{Kind: MotionAirborne}
	s.player.VY = 5
	s.player.JumpStartY = 0
	s.player.Speed = 3

	s.Step(Intent{Accelerate: true}, 0.05)
	require.True(t, hasEvent(s.DrainEvents(), EventWallJump))

	// Turn straight back into the wall with the cooldown forced clear. The
	// player has barely risen since the wall-jump, so it must not chain.
	s.player.Yaw = 0
	s.player.WallJumpCooldown = 0
	s.Step(Intent{Accelerate: true}, 0.05)
	assert.False(t, hasEvent(s.DrainEvents(), EventWallJump))
}

func TestNoWallJumpWithoutRise(t *testing.T) {
	s := newTestSim(t, stubSource{"a": wallStore()}, "a", 0.5, 0, 0.05)

	// Running into the wall on the ground slides along it, nothing more.
	for i := 0; i < 20; i++ {
		s.Step(Intent{Accelerate: true}, 0.05)
		assert.False(t, hasEvent(s.DrainEvents(), EventWallJump))
	}
	p := s.Player()
	assert.True(t, p.Grounded())
	assert.GreaterOrEqual(t, p.Z, 0.0, "blocked at the wall face")
}

func TestNoWallJumpWhileAbilityLocked(t *testing.T) {
	s := newTestSim(t, stubSource{"a": wallStore()}, "a", 0.5, 0, 0.05)
	s.SetAbilities(true, true, false, true)

	s.Step(Intent{Jump: true, Accelerate: true}, 0.05)
	for i := 0; i < 40; i++ {
		s.Step(Intent{Accelerate: true}, 0.05)
		assert.False(t, hasEvent(s.DrainEvents(), EventWallJump))
	}
}

func TestDashIntoWallCancelsIntoWallJump(t *testing.T) {
	s := newTestSim(t, stubSource{"a": wallStore()}, "a", 0.5, 1, 0.05)
	s.player.Motion = MotionState{
		Kind:      MotionDashing,
		DashTimer: DashDuration,
		DashDirZ:  -1,
	}
	s.player.Speed = 5
	s.player.DashUsed = true

	s.Step(Intent{Accelerate: true}, 0.05)
	events := s.DrainEvents()
	require.True(t, hasEvent(events, EventWallJump))

	p := s.Player()
	assert.NotEqual(t, MotionDashing, p.Motion.Kind)
	assert.InDelta(t, 0.5, p.X, 1e-9, "frame movement undone")
	assert.InDelta(t, 0.05, p.Z, 1e-9, "frame movement undone")
	assert.InDelta(t, math.Pi, p.Yaw, 1e-9)
	assert.False(t, p.DashUsed)
}

func TestDashIntoWallClampsSpeedWhenWallJumpLocked(t *testing.T) {
	s := newTestSim(t, stubSource{"a": wallStore()}, "a", 0.5, 1, 0.05)
	s.SetAbilities(true, true, false, true)
	s.player.Motion = MotionState{
		Kind:      MotionDashing,
		DashTimer: DashDuration,
		DashDirZ:  -1,
	}
	s.player.Speed = 6

	s.Step(Intent{Accelerate: true}, 0.05)
	assert.False(t, hasEvent(s.DrainEvents(), EventWallJump))

	p := s.Player()
	assert.Equal(t, MotionAirborne, p.Motion.Kind)
	assert.InDelta(t, DefaultConfig().BaseSpeed, p.Speed, 1e-9)
	assert.InDelta(t, 0.05, p.Z, 1e-9)
}

func TestWallJumpCooldownBlocksImmediateRetrigger(t *testing.T) {
	s := newTestSim(t, stubSource{"a": wallStore()}, "a", 0.5, 2, 0.05)
	s.player.Motion = MotionState{Kind: MotionAirborne}
	s.player.VY = 5
	s.player.JumpStartY = 0
	s.player.WallJumpCooldown = WallJumpCooldown
	s.player.Speed = 3

	s.Step(Intent{Accelerate: true}, 0.05)
	assert.False(t, hasEvent(s.DrainEvents(), EventWallJump))
}
