package sim

import (
	"math"

	"github.com/rabbitwine/rabbitwine-mp/shared/gamemath"
)

// stepLateral ramps speed toward the mode target and moves the player on the
// ground plane, one axis at a time so wall contact becomes a slide instead of
// a dead stop. Handles the auto wall-jump and dash-into-wall outcomes.
func (s *Sim) stepLateral(dt float64) {
	p := &s.player
	if p.Motion.Kind == MotionFrozen {
		return
	}

	target := 0.0
	if p.Mode == ModeAccelerate {
		target = s.cfg.maxRunSpeed()
	}
	if p.Motion.Kind == MotionDashing {
		target = s.cfg.maxRunSpeed() * DashMultiplier
	}

	rate := DecelRate
	if target > p.Speed {
		rate = AccelRate
		if s.warmupTimer > 0 {
			rate = WarmupRate
		}
	}
	p.Speed = gamemath.Approach(p.Speed, target, rate*dt)

	dirX, dirZ := gamemath.YawDirection(p.Yaw)
	if p.Motion.Kind == MotionDashing {
		dirX, dirZ = p.Motion.DashDirX, p.Motion.DashDirZ
	}

	oldX, oldZ := p.X, p.Z
	collided := false

	if nz := p.Z + dirZ*p.Speed*dt; s.store.IsWallAt(p.X, nz, p.Y) {
		collided = true
	} else {
		p.Z = nz
	}
	if nx := p.X + dirX*p.Speed*dt; s.store.IsWallAt(nx, p.Z, p.Y) {
		collided = true
	} else {
		p.X = nx
	}

	if !collided {
		return
	}

	if p.Motion.Kind == MotionDashing {
		// Dash into a wall: undo the whole frame's movement, cancel the dash.
		p.X, p.Z = oldX, oldZ
		p.Motion = MotionState{Kind: MotionAirborne}
		if p.CanWallJump {
			s.wallJump()
		} else {
			p.Speed = math.Min(p.Speed, s.cfg.maxRunSpeed())
		}
		return
	}

	if p.Motion.Kind == MotionAirborne && p.VY > 0 &&
		p.WallJumpCooldown <= 0 &&
		p.Y-p.JumpStartY >= WallJumpMinRise &&
		p.CanWallJump {
		s.wallJump()
	}
}

// wallJump flips the player away from the wall and reissues the jump impulse.
// The jump start height resets here: a chained wall-jump must climb the
// minimum rise again, the same as any fresh jump.
func (s *Sim) wallJump() {
	p := &s.player
	p.Yaw = gamemath.WrapAngle(p.Yaw + math.Pi)
	p.VY = JumpImpulse
	p.DashUsed = false
	p.JumpStartY = p.Y
	p.WallJumpCooldown = WallJumpCooldown
	s.emit(Event{Kind: EventWallJump, X: p.X, Y: p.Y, Z: p.Z})
}
