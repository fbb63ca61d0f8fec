package core

import (
	"github.com/rabbitwine/rabbitwine-mp/shared/messages"
	"github.com/rabbitwine/rabbitwine-mp/shared/sim"
)

// convertEvents maps drained simulation events onto broadcast messages,
// stamping them with the player's network id.
func convertEvents(netID uint, events []sim.Event) []any {
	if len(events) == 0 {
		return nil
	}

	out := make([]any, 0, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventLanded:
			out = append(out, messages.LandedEvent{
				NetworkID: netID, X: ev.X, Y: ev.Y, Z: ev.Z,
			})
		case sim.EventBall:
			out = append(out, messages.BallEvent{
				NetworkID: netID, X: ev.X, Y: ev.Y, Z: ev.Z,
			})
		case sim.EventCeilingBonk:
			out = append(out, messages.CeilingBonkEvent{
				NetworkID: netID, X: ev.X, Y: ev.Y, Z: ev.Z,
			})
		case sim.EventWallJump:
			out = append(out, messages.WallJumpEvent{
				NetworkID: netID, X: ev.X, Y: ev.Y, Z: ev.Z,
			})
		case sim.EventPortal:
			out = append(out, messages.PortalEvent{
				NetworkID: netID,
				FromLevel: ev.FromLevel,
				ToLevel:   ev.ToLevel,
				X:         ev.X, Y: ev.Y, Z: ev.Z,
			})
		}
	}
	return out
}
