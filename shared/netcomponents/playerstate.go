package netcomponents

import (
	"github.com/rabbitwine/rabbitwine-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	StateID      netconfig.StateID
	Frozen       bool
	Rotation     float64 // ball-mode spin, presentation only
	Channel      string  // presence channel the player is scoped to
	Level        string  // active level name
	LastSequence uint32  // last intent sequence processed by the server
	IsLocal      bool    // client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
