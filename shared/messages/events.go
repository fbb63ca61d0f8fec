package messages

// One-shot gameplay events broadcast by the server. The simulation queues
// them; the server forwards them after each tick so clients can drive audio
// and notification effects. None of them feed back into physics.

// LandedEvent is broadcast when a player touches down from the air.
type LandedEvent struct {
	NetworkID uint
	X, Y, Z   float64
}

// BallEvent is broadcast when a player contacts a hazardous surface and
// enters ball mode.
type BallEvent struct {
	NetworkID uint
	X, Y, Z   float64
}

// CeilingBonkEvent is broadcast when a rising player hits a safe ceiling.
type CeilingBonkEvent struct {
	NetworkID uint
	X, Y, Z   float64
}

// WallJumpEvent is broadcast when a player's auto wall-jump fires.
type WallJumpEvent struct {
	NetworkID uint
	X, Y, Z   float64
}

// PortalEvent is broadcast when a player transitions between levels.
type PortalEvent struct {
	NetworkID uint
	FromLevel string
	ToLevel   string
	X, Y, Z   float64
}
