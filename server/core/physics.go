package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/yohamta/donburi"

	"github.com/rabbitwine/rabbitwine-mp/shared/netcomponents"
	"github.com/rabbitwine/rabbitwine-mp/shared/netconfig"
	"github.com/rabbitwine/rabbitwine-mp/shared/sim"
)

// ballSpinRadius converts travel distance into ball-mode spin. Presentation
// only; physics never reads the rotation back.
const ballSpinRadius = 0.25

// ballRespawnSeconds is how long a player stays in ball mode before being put
// back on a spawn point.
const ballRespawnSeconds = 2.5

// scopedEvent pairs an outbound one-shot event with the (channel, level)
// scope its source player occupied when it fired.
type scopedEvent struct {
	channel string
	level   string
	msg     any
}

// updatePhysics advances every joined player's simulation by one tick,
// publishes the results to the synced components, and collects the one-shot
// events to broadcast. Called once per server tick with a fixed dt.
func (s *Server) updatePhysics(dt float64) {
	now := time.Now()

	var stale []*router.NetworkClient
	var outbound []scopedEvent

	s.mu.Lock()
	for client, sess := range s.sessions {
		if now.Sub(sess.lastSeen).Seconds() > netconfig.StaleAfterSeconds {
			stale = append(stale, client)
			continue
		}
		if !s.world.Valid(sess.entity) {
			continue
		}

		intent := sim.Intent{
			Turn:       sess.turnAccum,
			Jump:       sess.jumpPending,
			Dash:       sess.dashPending,
			Accelerate: sess.accelerate,
		}
		sess.turnAccum = 0
		sess.jumpPending = false
		sess.dashPending = false

		sess.sim.Step(intent, dt)
		s.maybeRespawn(sess, now)

		entry := s.world.Entry(sess.entity)
		s.publishPlayer(entry, sess, dt)

		// Portal transitions switch the level mid-step; the post-step level
		// is where the player (and their events) now live.
		level := sess.sim.Level()
		for _, msg := range convertEvents(uint(networkIDOf(entry)), sess.sim.DrainEvents()) {
			outbound = append(outbound, scopedEvent{channel: sess.channel, level: level, msg: msg})
		}
	}
	s.mu.Unlock()

	// Broadcast outside the lock; broadcastEvent takes its own read lock.
	for _, ev := range outbound {
		s.broadcastEvent(ev.channel, ev.level, ev.msg)
	}
	for _, client := range stale {
		log.Printf("[core] pruning stale client %s", client.Id())
		s.removeSession(client)
	}
}

// maybeRespawn puts a player back on their level's first spawn point once
// they have been in ball mode long enough. Called with s.mu held.
func (s *Server) maybeRespawn(sess *session, now time.Time) {
	if !sess.sim.Player().Ball() {
		sess.ballSince = time.Time{}
		return
	}
	if sess.ballSince.IsZero() {
		sess.ballSince = now
		return
	}
	if now.Sub(sess.ballSince).Seconds() < ballRespawnSeconds {
		return
	}

	sess.ballSince = time.Time{}
	if srvLevel, ok := s.levels.Get(sess.sim.Level()); ok {
		spawn := srvLevel.SpawnFor(0)
		sess.sim.Respawn(spawn.X, spawn.Y, spawn.Z, spawn.Yaw)
	}
}

// publishPlayer copies the simulation state onto the entity's synced
// components.
func (s *Server) publishPlayer(entry *donburi.Entry, sess *session, dt float64) {
	p := sess.sim.Player()

	pos := netcomponents.NetPosition.Get(entry)
	pos.X, pos.Y, pos.Z = p.X, p.Y, p.Z

	kin := netcomponents.NetKinematics.Get(entry)
	kin.VY = p.VY
	kin.Speed = p.Speed
	kin.Yaw = p.Yaw

	state := netcomponents.NetPlayerState.Get(entry)
	state.Level = sess.sim.Level()
	state.Frozen = p.Motion.Kind == sim.MotionFrozen
	state.LastSequence = sess.lastSeq
	if p.Ball() {
		state.StateID = netconfig.StateBall
		state.Rotation += p.Speed * dt / ballSpinRadius
	} else {
		state.StateID = netconfig.StateGood
		state.Rotation = 0
	}
}

// networkIDOf returns the entity's sync id, or 0 before sync assignment.
func networkIDOf(entry *donburi.Entry) esync.NetworkId {
	if nid := esync.GetNetworkId(entry); nid != nil {
		return *nid
	}
	return 0
}
