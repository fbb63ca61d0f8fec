package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rabbitwine/rabbitwine-mp/server/core"
	"github.com/rabbitwine/rabbitwine-mp/shared/protocol"
	"github.com/rabbitwine/rabbitwine-mp/shared/sim"
)

func main() {
	port := flag.Uint("port", 42666, "Server port")
	tickRate := flag.Int("tickrate", 30, "Server tick rate (updates per second)")
	name := flag.String("name", "Rabbit Wine Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	assetsDir := flag.String("assets", "assets", "Assets directory containing levels/*.tmx")
	baseSpeed := flag.Float64("basespeed", 4.0, "Player base run speed")
	seamFactor := flag.Float64("seamfactor", 1.0, "Speed seam factor")
	masterURL := flag.String("master", "", "Master server URL (empty = no registration)")
	region := flag.String("region", "", "Region label reported to the master")
	address := flag.String("address", "", "Public address reported to the master")
	maxPlayers := flag.Int("maxplayers", 32, "Player cap reported to the master")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	levels, err := core.LoadAllServerLevels(*assetsDir)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	cfg := sim.Config{
		BaseSpeed:  *baseSpeed,
		SeamFactor: *seamFactor,
	}
	server := core.NewServer(*tickRate, *name, *version, levels, cfg)

	var registration *core.Registration
	if *masterURL != "" {
		registration = core.NewRegistration(
			*masterURL, *name, *address, *version, *region, *maxPlayers,
			levels.Names(), server)
		registration.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if registration != nil {
			registration.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting Rabbit Wine server %q on port %d (tick rate: %d/s, version: %s)",
		*name, *port, *tickRate, *version)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
