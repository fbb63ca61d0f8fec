package sim

// Tuning constants for player movement. Grouped here the way the client keeps
// its config values so the whole feel of the game is visible in one place.
const (
	// Gravity is the vertical acceleration in units/s².
	Gravity = -12.5
	// JumpImpulse is the vertical velocity applied by jumps and wall-jumps.
	JumpImpulse = 8.5
	// CeilingSpike is the downward velocity applied when the player bonks a
	// hazardous ceiling.
	CeilingSpike = -4.0
	// ContactEps is the clearance kept between the player and a ceiling after
	// a bonk, and the general surface-contact tolerance.
	ContactEps = 1e-3

	// AccelRate and DecelRate are the lateral speed ramps in units/s².
	AccelRate = 10.0
	DecelRate = 12.0
	// WarmupRate replaces AccelRate during the session's one-time warm-up
	// window right after the very first acceleration input.
	WarmupRate = 1.5
	// WarmupDuration is how long the warm-up window lasts.
	WarmupDuration = 2.0

	// DashMultiplier scales the accelerate target speed while dashing.
	DashMultiplier = 1.25
	// DashDuration is how long a dash holds before expiring on its own.
	DashDuration = 0.25

	// WallJumpMinRise is the height the player must have gained since the
	// current jump/fall began before the auto wall-jump may fire.
	WallJumpMinRise = 1.5
	// WallJumpCooldown spaces successive wall-jumps apart.
	WallJumpCooldown = 0.22

	// PortalCooldown suppresses immediate re-triggering after a transition.
	PortalCooldown = 0.6
	// PortalExitInset is how far inside the destination border the player is
	// placed after a border portal.
	PortalExitInset = 0.52
	// PortalClearance is the downward tolerance when testing whether a portal
	// span overlaps the player.
	PortalClearance = 0.5
)

// Config carries the per-server movement tuning that is not a fixed constant.
type Config struct {
	// BaseSpeed is the full running speed in units/s.
	BaseSpeed float64
	// SeamFactor scales BaseSpeed per level seam; 1 outside seams.
	SeamFactor float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		BaseSpeed:  4.0,
		SeamFactor: 1.0,
	}
}

// maxRunSpeed is the non-dash speed ceiling for the current config.
func (c Config) maxRunSpeed() float64 {
	return c.BaseSpeed * c.SeamFactor
}
