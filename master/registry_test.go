package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRegistryRegisterAndHeartbeat(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	id := reg.Register(ServerInfo{Name: "alpha", Address: "ws://a:42666", Levels: []string{"plaza"}})
	if id == "" {
		t.Fatal("expected a non-empty id")
	}

	if !reg.Heartbeat(id, 5) {
		t.Fatal("heartbeat for a known id must succeed")
	}
	if reg.Heartbeat("bogus", 1) {
		t.Fatal("heartbeat for an unknown id must fail")
	}

	servers := reg.List()
	if len(servers) != 1 {
		t.Fatalf("expected 1 server, got %d", len(servers))
	}
	if servers[0].Players != 5 {
		t.Fatalf("heartbeat must update the player count, got %d", servers[0].Players)
	}
	if len(servers[0].Levels) != 1 || servers[0].Levels[0] != "plaza" {
		t.Fatalf("levels not preserved: %v", servers[0].Levels)
	}
}

func TestRegisterHandler(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	body := `{"name":"alpha","address":"ws://a:42666","maxPlayers":32,"levels":["plaza","hub"]}`
	req := httptest.NewRequest(http.MethodPost, "/servers/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	RegisterServer(reg)(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var resp registerResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("expected an id in the response")
	}

	servers := reg.List()
	if len(servers) != 1 || len(servers[0].Levels) != 2 {
		t.Fatalf("unexpected registry state: %+v", servers)
	}
}

func TestRegisterHandlerRejectsIncomplete(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	req := httptest.NewRequest(http.MethodPost, "/servers/register", strings.NewReader(`{"name":"x"}`))
	w := httptest.NewRecorder()
	RegisterServer(reg)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHeartbeatHandlerUnknownServer(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()

	req := httptest.NewRequest(http.MethodPost, "/servers/heartbeat", strings.NewReader(`{"id":"nope","players":1}`))
	w := httptest.NewRecorder()
	Heartbeat(reg)(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListHandler(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()
	reg.Register(ServerInfo{Name: "alpha", Address: "ws://a"})

	req := httptest.NewRequest(http.MethodGet, "/servers", nil)
	w := httptest.NewRecorder()
	ListServers(reg)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var servers []ServerInfo
	if err := json.NewDecoder(w.Body).Decode(&servers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(servers) != 1 || servers[0].Name != "alpha" {
		t.Fatalf("unexpected list: %+v", servers)
	}
}

func TestListIsSortedByName(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()
	reg.Register(ServerInfo{Name: "zeta", Address: "ws://z"})
	reg.Register(ServerInfo{Name: "alpha", Address: "ws://a"})

	servers := reg.List()
	if len(servers) != 2 || servers[0].Name != "alpha" || servers[1].Name != "zeta" {
		t.Fatalf("expected name-sorted list, got %+v", servers)
	}
}

func TestListHandlerLevelFilter(t *testing.T) {
	reg := NewRegistry(time.Minute)
	defer reg.Stop()
	reg.Register(ServerInfo{Name: "alpha", Address: "ws://a", Levels: []string{"plaza", "hub"}})
	reg.Register(ServerInfo{Name: "beta", Address: "ws://b", Levels: []string{"void"}})
	reg.Register(ServerInfo{Name: "gamma", Address: "ws://c"})

	req := httptest.NewRequest(http.MethodGet, "/servers?level=plaza", nil)
	w := httptest.NewRecorder()
	ListServers(reg)(w, req)

	var servers []ServerInfo
	if err := json.NewDecoder(w.Body).Decode(&servers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(servers) != 2 {
		t.Fatalf("expected the plaza host and the unreported host, got %+v", servers)
	}
	if servers[0].Name != "alpha" || servers[1].Name != "gamma" {
		t.Fatalf("unexpected filter result: %+v", servers)
	}
}
