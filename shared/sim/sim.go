package sim

import (
	"github.com/rabbitwine/rabbitwine-mp/shared/gamemath"
	"github.com/rabbitwine/rabbitwine-mp/shared/terrain"
)

// TerrainSource resolves level names to terrain stores. The server's level
// registry implements it; portal transitions use it to switch the active
// store.
type TerrainSource interface {
	Level(name string) (*terrain.Store, bool)
}

// Sim steps one player against the active level terrain. It is single-threaded
// and frame-stepped: the server calls Step once per tick with the elapsed
// delta, then drains the event queue.
type Sim struct {
	source TerrainSource
	store  *terrain.Store
	level  string

	player Player
	cfg    Config
	events []Event

	// Session-scoped warm-up state. Lives on the Sim, not the player, so a
	// portal transition cannot re-arm it.
	accelSeen   bool
	warmupTimer float64
}

// New creates a simulation for one player on the named level. The player
// spawns grounded at the given world position with all abilities enabled.
func New(source TerrainSource, level string, x, y, z float64, cfg Config) (*Sim, bool) {
	store, ok := source.Level(level)
	if !ok {
		return nil, false
	}
	s := &Sim{
		source: source,
		store:  store,
		level:  level,
		cfg:    cfg,
		player: Player{
			X: x, Y: y, Z: z,
			Motion:      MotionState{Kind: MotionGrounded},
			CanTurn:     true,
			CanJump:     true,
			CanWallJump: true,
			CanDash:     true,
		},
	}
	return s, true
}

// Player returns a copy of the player state for read-only consumers.
func (s *Sim) Player() Player {
	return s.player
}

// Level returns the name of the player's active level.
func (s *Sim) Level() string {
	return s.level
}

// Respawn resets the player onto a spawn position on the current level.
// Ability flags survive; kinematics, cooldowns, and ball mode do not. The
// session warm-up is not re-armed.
func (s *Sim) Respawn(x, y, z, yaw float64) {
	p := s.player
	s.player = Player{
		X: x, Y: y, Z: z,
		Yaw:         yaw,
		Motion:      MotionState{Kind: MotionGrounded},
		CanTurn:     p.CanTurn,
		CanJump:     p.CanJump,
		CanWallJump: p.CanWallJump,
		CanDash:     p.CanDash,
	}
}

// SetAbilities gates which movement abilities the player may use; levels
// unlock them progressively.
func (s *Sim) SetAbilities(turn, jump, wallJump, dash bool) {
	s.player.CanTurn = turn
	s.player.CanJump = jump
	s.player.CanWallJump = wallJump
	s.player.CanDash = dash
}

// Freeze suspends the player mid-air (gravity off, no movement). A no-op in
// ball mode.
func (s *Sim) Freeze() {
	if s.player.Motion.Kind == MotionBall {
		return
	}
	s.player.Motion = MotionState{Kind: MotionFrozen}
}

// Unfreeze resumes normal airborne motion.
func (s *Sim) Unfreeze() {
	if s.player.Motion.Kind != MotionFrozen {
		return
	}
	s.player.Motion = MotionState{Kind: MotionAirborne}
}

// Step advances the simulation by dt seconds. It never fails: malformed
// terrain degrades to legacy-tile geometry inside the terrain package, and a
// malformed frame still yields a valid player state.
func (s *Sim) Step(intent Intent, dt float64) {
	if dt <= 0 {
		return
	}
	p := &s.player

	if p.WallJumpCooldown > 0 {
		p.WallJumpCooldown -= dt
	}
	if p.PortalCooldown > 0 {
		p.PortalCooldown -= dt
	}
	if s.warmupTimer > 0 {
		s.warmupTimer -= dt
	}

	s.applyIntent(intent)

	if p.Motion.Kind == MotionBall {
		// Terminal state: the sim no longer drives position.
		return
	}

	s.stepLateral(dt)
	s.stepVertical(dt)
	s.stepPortal()
}

func (s *Sim) applyIntent(intent Intent) {
	p := &s.player
	if p.Motion.Kind == MotionBall {
		return
	}

	if intent.Accelerate {
		p.Mode = ModeAccelerate
		if !s.accelSeen {
			s.accelSeen = true
			s.warmupTimer = WarmupDuration
		}
	} else {
		p.Mode = ModeStationary
	}

	if intent.Turn != 0 && p.CanTurn &&
		p.Motion.Kind != MotionDashing && p.Motion.Kind != MotionFrozen {
		p.Yaw = gamemath.WrapAngle(p.Yaw + intent.Turn)
	}

	if intent.Jump && p.CanJump && p.Motion.Kind == MotionGrounded {
		p.VY = JumpImpulse
		p.JumpStartY = p.Y
		p.Motion = MotionState{Kind: MotionAirborne}
	}

	if intent.Dash && p.CanDash && !p.DashUsed && p.Motion.Kind == MotionAirborne {
		dirX, dirZ := gamemath.YawDirection(p.Yaw)
		p.DashUsed = true
		p.VY = 0
		p.Motion = MotionState{
			Kind:      MotionDashing,
			DashTimer: DashDuration,
			DashDirX:  dirX,
			DashDirZ:  dirZ,
		}
	}
}
