package core

import (
	"log"
	"sync"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"

	"github.com/rabbitwine/rabbitwine-mp/shared/messages"
	"github.com/rabbitwine/rabbitwine-mp/shared/netcomponents"
	"github.com/rabbitwine/rabbitwine-mp/shared/netconfig"
	"github.com/rabbitwine/rabbitwine-mp/shared/sim"
)

// session is the server-side record for one connected client: its entity, its
// authoritative simulation, and the intent state accumulated between ticks.
type session struct {
	entity donburi.Entity
	sim    *sim.Sim

	// Intent accumulation. Edge-triggered intents (jump, dash) latch until
	// the next tick consumes them so a fast press between ticks is not lost.
	turnAccum   float64
	jumpPending bool
	dashPending bool
	accelerate  bool
	lastSeq     uint32

	channel    string
	playerName string
	lastSeen   time.Time
	ballSince  time.Time
}

// Server manages the game state and client connections.
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport

	levels *LevelRegistry
	cfg    sim.Config

	name    string
	version string
	joined  int // total joins, for spawn-point cycling

	mu       sync.RWMutex
	sessions map[*router.NetworkClient]*session
}

// NewServer creates a new game server over the given level registry.
func NewServer(tickRate int, name, version string, levels *LevelRegistry, cfg sim.Config) *Server {
	world := donburi.NewWorld()

	s := &Server{
		world:    world,
		levels:   levels,
		cfg:      cfg,
		name:     name,
		version:  version,
		sessions: make(map[*router.NetworkClient]*session),
	}
	s.loop = NewGameLoop(s, tickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.setupRouterCallbacks()

	return s
}

// Start begins the server on the given port.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[core] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoinRequest(client, req)
	})

	router.On(func(client *router.NetworkClient, intent messages.PlayerIntent) {
		s.onPlayerIntent(client, intent)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[core] client error: %v", err)
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	if s.version != "" && req.Version != s.version {
		s.sendTo(client, messages.JoinRejected{Reason: "version mismatch"})
		return
	}

	level := req.Level
	if _, ok := s.levels.Get(level); !ok {
		level = s.levels.DefaultName()
	}
	channel := req.Channel
	if channel == "" {
		channel = netconfig.DefaultChannel
	}

	srvLevel, ok := s.levels.Get(level)
	if !ok {
		s.sendTo(client, messages.JoinRejected{Reason: "no levels loaded"})
		return
	}

	s.mu.Lock()
	spawn := srvLevel.SpawnFor(s.joined)
	s.joined++
	s.mu.Unlock()

	playerSim, ok := sim.New(s.levels, level, spawn.X, spawn.Y, spawn.Z, s.cfg)
	if !ok {
		s.sendTo(client, messages.JoinRejected{Reason: "level unavailable"})
		return
	}

	entity := s.world.Create(
		netcomponents.NetPosition,
		netcomponents.NetKinematics,
		netcomponents.NetPlayerState,
	)
	entry := s.world.Entry(entity)

	netcomponents.NetPosition.Set(entry, &netcomponents.NetPositionData{
		X: spawn.X, Y: spawn.Y, Z: spawn.Z,
	})
	netcomponents.NetKinematics.Set(entry, &netcomponents.NetKinematicsData{
		Yaw: spawn.Yaw,
	})
	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		StateID: netconfig.StateGood,
		Channel: channel,
		Level:   level,
	})

	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetKinematics),
		netcomponents.NetPlayerState,
	); err != nil {
		log.Printf("[core] failed to set up network sync: %v", err)
		s.world.Remove(entity)
		s.sendTo(client, messages.JoinRejected{Reason: "internal error"})
		return
	}

	s.mu.Lock()
	s.sessions[client] = &session{
		entity:     entity,
		sim:        playerSim,
		channel:    channel,
		playerName: req.PlayerName,
		lastSeen:   time.Now(),
	}
	s.mu.Unlock()

	netID := networkIDOf(entry)
	s.sendTo(client, messages.JoinAccepted{
		NetworkID:  netID,
		ServerName: s.name,
		TickRate:   s.loop.tickRate,
		Level:      level,
	})

	log.Printf("[core] player %q joined on level %s (channel %s)",
		req.PlayerName, level, channel)
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[core] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[core] client %s disconnected", client.Id())
	}
	s.removeSession(client)
}

func (s *Server) onPlayerIntent(client *router.NetworkClient, intent messages.PlayerIntent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[client]
	if !ok {
		return
	}
	sess.turnAccum += intent.Turn
	sess.jumpPending = sess.jumpPending || intent.Jump
	sess.dashPending = sess.dashPending || intent.Dash
	sess.accelerate = intent.Accelerate
	sess.lastSeq = intent.Sequence
	sess.lastSeen = time.Now()
}

func (s *Server) removeSession(client *router.NetworkClient) {
	s.mu.Lock()
	sess, ok := s.sessions[client]
	if ok {
		delete(s.sessions, client)
	}
	s.mu.Unlock()

	if ok && s.world.Valid(sess.entity) {
		s.world.Remove(sess.entity)
	}
}

// PlayerCount returns the number of joined players.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// World returns the ECS world.
func (s *Server) World() donburi.World {
	return s.world
}

func (s *Server) sendTo(client *router.NetworkClient, msg any) {
	payload, err := router.Serialize(msg)
	if err != nil {
		log.Printf("[core] serialize %T: %v", msg, err)
		return
	}
	if err := client.SendMessage(payload); err != nil {
		log.Printf("[core] send %T: %v", msg, err)
	}
}

// broadcastEvent serializes a one-shot event and sends it to every session
// sharing the source scope. Players never hear events from another channel
// or level, matching how presence is partitioned.
func (s *Server) broadcastEvent(channel, level string, msg any) {
	payload, err := router.Serialize(msg)
	if err != nil {
		log.Printf("[core] serialize %T: %v", msg, err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for client, sess := range s.sessions {
		if !sess.inScope(channel, level) {
			continue
		}
		if err := client.SendMessage(payload); err != nil {
			log.Printf("[core] broadcast to %s: %v", client.Id(), err)
		}
	}
}

// inScope reports whether the session should receive traffic addressed to
// the given channel and level.
func (sess *session) inScope(channel, level string) bool {
	return sess.channel == channel && sess.sim.Level() == level
}
