package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

type GameLoop struct {
	server   *Server
	tickRate int
	running  bool
	stopChan chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	if tickRate < 1 {
		tickRate = 1
	}
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[core] game loop started at %d ticks/second", g.tickRate)

	dt := 1.0 / float64(g.tickRate)
	for {
		select {
		case <-g.stopChan:
			g.running = false
			log.Println("[core] game loop stopped")
			return
		case <-ticker.C:
			g.tick(dt)
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) tick(dt float64) {
	g.server.updatePhysics(dt)

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[core] sync error: %v", err)
	}
}
