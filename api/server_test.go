package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/packs"
	"github.com/proofgrid/proofgrid/game/service"
	"github.com/proofgrid/proofgrid/game/session"
	"github.com/proofgrid/proofgrid/game/verify"
	"github.com/proofgrid/proofgrid/transport/websocket"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	packMgr, err := packs.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create pack manager: %v", err)
	}
	sessionMgr := session.NewManager()
	svc := service.NewProofService(sessionMgr, packMgr, verify.New(nil))

	hub := websocket.NewHub()
	go hub.Run()

	return NewServer(svc, hub)
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func createSession(t *testing.T, srv *Server) service.SessionInfo {
	t.Helper()

	rr := doJSON(t, srv, "POST", "/api/sessions", map[string]interface{}{
		"pack_id":  "tutorial",
		"level_id": 1,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var info service.SessionInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("Failed to decode session info: %v", err)
	}
	return info
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, "GET", "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rr.Code)
	}
}

func TestCreateAndGetSession(t *testing.T) {
	srv := newTestServer(t)

	info := createSession(t, srv)
	if info.LevelName != "First Steps" {
		t.Errorf("Unexpected level: %q", info.LevelName)
	}
	if info.Board == nil || info.Board.PieceCount() != 3 {
		t.Errorf("Expected 3 initial pieces, got %+v", info.Board)
	}

	rr := doJSON(t, srv, "GET", "/api/sessions/"+info.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, srv, "GET", "/api/sessions/zzzz", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", rr.Code)
	}
}

func TestListSessions(t *testing.T) {
	srv := newTestServer(t)
	createSession(t, srv)
	createSession(t, srv)

	rr := doJSON(t, srv, "GET", "/api/sessions?limit=1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if resp.Count != 1 || len(resp.Sessions) != 1 {
		t.Errorf("Expected limit applied, got %+v", resp)
	}
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t)
	info := createSession(t, srv)

	rr := doJSON(t, srv, "DELETE", "/api/sessions/"+info.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, srv, "GET", "/api/sessions/"+info.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", rr.Code)
	}
}

func TestPlaceRemoveMovePiece(t *testing.T) {
	srv := newTestServer(t)
	info := createSession(t, srv)

	// Place an AND gate.
	rr := doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/pieces",
		board.NewGate(board.KindAndIntro, 3, 4))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var placeResult service.PlaceResult
	if err := json.Unmarshal(rr.Body.Bytes(), &placeResult); err != nil {
		t.Fatalf("Failed to decode place result: %v", err)
	}
	if !placeResult.Success {
		t.Fatalf("Expected placement to succeed: %+v", placeResult.Error)
	}

	// Overlapping placement is a reported failure, not an HTTP error.
	rr = doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/pieces",
		board.NewGate(board.KindOrIntro, 3, 4))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &placeResult); err != nil {
		t.Fatalf("Failed to decode place result: %v", err)
	}
	if placeResult.Success || placeResult.Error == nil {
		t.Errorf("Expected overlap failure, got %+v", placeResult)
	}

	// Move the goal.
	rr = doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/pieces/move", map[string]interface{}{
		"from": board.Position{X: 8, Y: 4},
		"to":   board.Position{X: 5, Y: 4},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var moveResult service.MoveResult
	if err := json.Unmarshal(rr.Body.Bytes(), &moveResult); err != nil {
		t.Fatalf("Failed to decode move result: %v", err)
	}
	if !moveResult.Success {
		t.Fatalf("Expected move to succeed: %s", moveResult.Message)
	}

	// Remove the gate.
	rr = doJSON(t, srv, "DELETE", "/api/sessions/"+info.ID+"/pieces", map[string]int{"x": 3, "y": 4})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var removeResult service.RemoveResult
	if err := json.Unmarshal(rr.Body.Bytes(), &removeResult); err != nil {
		t.Fatalf("Failed to decode remove result: %v", err)
	}
	if !removeResult.Success || removeResult.Removed.Kind != board.KindAndIntro {
		t.Errorf("Expected removed AND gate, got %+v", removeResult)
	}
}

func TestValidateAndVerifyFlow(t *testing.T) {
	srv := newTestServer(t)
	info := createSession(t, srv)

	rr := doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/validate", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var report board.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if !report.IsValid {
		t.Errorf("Expected valid initial board, got %+v", report.Errors)
	}

	// Unproven board verifies to false.
	rr = doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/verify", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var result service.VerifyResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode verify result: %v", err)
	}
	if result.Proven {
		t.Error("Expected unproven board")
	}

	// Export is rejected before solving.
	rr = doJSON(t, srv, "GET", "/api/sessions/"+info.ID+"/proof?player=p1", nil)
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected 409 before solving, got %d", rr.Code)
	}

	// Solve: goal near the gate, gate near both assumptions.
	doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/pieces/move", map[string]interface{}{
		"from": board.Position{X: 8, Y: 4},
		"to":   board.Position{X: 5, Y: 4},
	})
	doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/pieces",
		board.NewGate(board.KindAndIntro, 3, 4))

	rr = doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/verify", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode verify result: %v", err)
	}
	if !result.Proven {
		t.Fatalf("Expected proof to verify: %s", result.Message)
	}

	// Export now succeeds.
	rr = doJSON(t, srv, "GET", "/api/sessions/"+info.ID+"/proof?player=p1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var proof verify.ExportedProof
	if err := json.Unmarshal(rr.Body.Bytes(), &proof); err != nil {
		t.Fatalf("Failed to decode proof: %v", err)
	}
	if proof.PlayerID != "p1" || proof.LevelID != 1 {
		t.Errorf("Unexpected proof: %+v", proof)
	}
	if proof.ProofSMT2 == "" {
		t.Error("Expected an SMT script in the exported proof")
	}
}

func TestResetBoard(t *testing.T) {
	srv := newTestServer(t)
	info := createSession(t, srv)

	doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/pieces",
		board.NewGate(board.KindAndIntro, 3, 4))

	rr := doJSON(t, srv, "POST", "/api/sessions/"+info.ID+"/reset", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	rr = doJSON(t, srv, "GET", "/api/sessions/"+info.ID+"/board", nil)
	var b board.Board
	if err := json.Unmarshal(rr.Body.Bytes(), &b); err != nil {
		t.Fatalf("Failed to decode board: %v", err)
	}
	if b.PieceCount() != 3 {
		t.Errorf("Expected 3 pieces after reset, got %d", b.PieceCount())
	}
}

func TestPackEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, "GET", "/api/packs", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var infos []service.PackInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &infos); err != nil {
		t.Fatalf("Failed to decode pack list: %v", err)
	}
	if len(infos) != 1 || infos[0].PackID != "tutorial" {
		t.Errorf("Expected builtin pack, got %+v", infos)
	}

	rr = doJSON(t, srv, "GET", "/api/packs/tutorial", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var pack board.LevelPack
	if err := json.Unmarshal(rr.Body.Bytes(), &pack); err != nil {
		t.Fatalf("Failed to decode pack: %v", err)
	}
	if len(pack.Levels) != 4 {
		t.Errorf("Expected 4 levels, got %d", len(pack.Levels))
	}

	for levelID, name := range map[int]string{1: "First Steps", 4: "Chain of Logic"} {
		rr = doJSON(t, srv, "GET", fmt.Sprintf("/api/packs/tutorial/levels/%d", levelID), nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200 for level %d, got %d", levelID, rr.Code)
		}
		var level board.Level
		if err := json.Unmarshal(rr.Body.Bytes(), &level); err != nil {
			t.Fatalf("Failed to decode level: %v", err)
		}
		if level.Name != name {
			t.Errorf("Expected level %d to be %q, got %q", levelID, name, level.Name)
		}
	}

	rr = doJSON(t, srv, "GET", "/api/packs/missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing pack, got %d", rr.Code)
	}
}

func TestWebSocketRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	rr := doJSON(t, srv, "GET", "/ws", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without session parameter, got %d", rr.Code)
	}

	rr = doJSON(t, srv, "GET", "/ws?session=zzzz", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", rr.Code)
	}
}
