// Package sim is the per-player movement simulation: gravity integration,
// lateral collision response, dash/wall-jump handling, and portal transitions
// across levels. One Sim instance owns one player and steps it once per server
// tick; steps are deterministic for a given state and dt.
package sim

// MotionKind tags the player's motion state.
type MotionKind int

const (
	// MotionGrounded: standing or running on a surface.
	MotionGrounded MotionKind = iota
	// MotionAirborne: falling or rising under gravity.
	MotionAirborne
	// MotionDashing: airborne with gravity suspended and direction locked.
	MotionDashing
	// MotionFrozen: airborne, gravity suspended, no movement.
	MotionFrozen
	// MotionBall: terminal hazard state; the sim stops driving position.
	MotionBall
)

// MotionState is the tagged motion union. The dash fields are only meaningful
// while Kind == MotionDashing; keeping them inside the state (rather than as
// loose player booleans) makes invalid flag combinations unrepresentable.
type MotionState struct {
	Kind      MotionKind
	DashTimer float64
	DashDirX  float64
	DashDirZ  float64
}

// MoveMode is the player's requested movement mode.
type MoveMode int

const (
	ModeStationary MoveMode = iota
	ModeAccelerate
)

// Player is the kinematic and ability state of one player. It is created once
// per session and mutated in place by Sim.Step; portal transitions reposition
// it but never recreate it.
type Player struct {
	X, Y, Z float64
	VY      float64
	Yaw     float64
	Speed   float64
	Mode    MoveMode
	Motion  MotionState

	DashUsed   bool
	JumpStartY float64

	CanTurn     bool
	CanJump     bool
	CanWallJump bool
	CanDash     bool

	WallJumpCooldown float64
	PortalCooldown   float64
}

// Grounded reports whether the player currently stands on a surface.
func (p Player) Grounded() bool {
	return p.Motion.Kind == MotionGrounded
}

// Ball reports whether the player has entered the terminal hazard state.
func (p Player) Ball() bool {
	return p.Motion.Kind == MotionBall
}

// Intent is one frame of decoded player input. The input layer produces it;
// the sim only consumes it.
type Intent struct {
	Turn       float64 // yaw delta in radians
	Jump       bool
	Dash       bool
	Accelerate bool
}
