package sim

// EventKind identifies a one-shot simulation event.
type EventKind int

const (
	// EventLanded fires on the airborne-to-grounded edge.
	EventLanded EventKind = iota
	// EventBall fires when the player contacts a hazardous surface and enters
	// ball mode.
	EventBall
	// EventCeilingBonk fires on contact with a non-hazardous ceiling.
	EventCeilingBonk
	// EventWallJump fires when the auto wall-jump triggers.
	EventWallJump
	// EventPortal fires after a completed portal transition.
	EventPortal
)

// Event is a one-shot signal appended by the physics step. The step itself
// performs no side effects; the server drains the queue after each tick and
// forwards events to the audio/notification consumers.
type Event struct {
	Kind    EventKind
	X, Y, Z float64

	// Portal transitions only.
	FromLevel string
	ToLevel   string
}

func (s *Sim) emit(ev Event) {
	s.events = append(s.events, ev)
}

// DrainEvents returns the events queued since the last drain and clears the
// queue. The returned slice is owned by the caller.
func (s *Sim) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}
