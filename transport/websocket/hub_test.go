package websocket

import (
	"encoding/json"
	"testing"

	"github.com/proofgrid/proofgrid/game/board"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.sessions["test-session"]; !exists {
		t.Error("Session was not created")
	}

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}

	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	client2 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", len(hub.sessions[sessionID]))
	}

	if !hub.sessions[sessionID][client2] {
		t.Error("Expected client2 to remain registered")
	}
}

func TestBroadcastBoard(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-session"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	other := &Client{
		hub:       hub,
		sessionID: "other-session",
		send:      make(chan []byte, 256),
	}
	hub.registerClient(client)
	hub.registerClient(other)

	b := board.New(10, 10)
	b.Place(board.NewAssumption("P", 2, 5))
	hub.BroadcastBoard(sessionID, b)

	select {
	case data := <-client.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if msg.SessionID != sessionID {
			t.Errorf("Expected session %s, got %s", sessionID, msg.SessionID)
		}
		if msg.Event != "board_update" {
			t.Errorf("Expected board_update event, got %s", msg.Event)
		}
		if msg.Board == nil || msg.Board.PieceCount() != 1 {
			t.Errorf("Expected board with 1 piece, got %+v", msg.Board)
		}
	default:
		t.Fatal("Expected a message on the client's send channel")
	}

	// Clients of other sessions receive nothing.
	select {
	case <-other.send:
		t.Error("Expected no message for a different session")
	default:
	}
}

func TestBroadcastBoardFullChannelEvictsClient(t *testing.T) {
	hub := NewHub()
	sessionID := "full-session"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte), // unbuffered: always full
	}
	hub.registerClient(client)

	hub.BroadcastBoard(sessionID, board.New(5, 5))

	if _, exists := hub.sessions[sessionID]; exists {
		t.Error("Expected blocked client to be evicted")
	}
}
