// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on any graphics
// library so the dedicated server binary stays headless.
package netconfig

// StateID identifies a player's presence state.
type StateID int

const (
	// StateGood: normal play; the player drives their own movement.
	StateGood StateID = iota
	// StateBall: terminal hazard state; the player tumbles as a ball until
	// respawn.
	StateBall
)

// StateToName maps StateID to its presence wire name.
var StateToName = map[StateID]string{
	StateGood: "good",
	StateBall: "ball",
}

const (
	// DefaultChannel is the presence channel used when a client names none.
	DefaultChannel = "default"

	// StaleAfterSeconds is how long a client may go silent before the server
	// prunes its player.
	StaleAfterSeconds = 3.0
)
