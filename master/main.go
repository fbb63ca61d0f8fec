package main

import (
	"flag"
	"log"
	"net/http"
	"time"
)

func main() {
	addr := flag.String("addr", ":42670", "HTTP listen address")
	ttl := flag.Duration("ttl", 90*time.Second, "server TTL before expiry")
	flag.Parse()

	reg := NewRegistry(*ttl)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /servers", ListServers(reg))
	mux.HandleFunc("POST /servers/register", RegisterServer(reg))
	mux.HandleFunc("POST /servers/heartbeat", Heartbeat(reg))
	mux.HandleFunc("GET /health", Health())

	log.Printf("[master] listening on %s (TTL=%s)", *addr, *ttl)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("[master] fatal: %v", err)
	}
}
