// Command desktop is a graphical ProofGrid client. It renders session boards
// in a window, lets the player place and move logic pieces with the keyboard,
// and submits arrangements for verification. Board updates arrive over
// WebSocket with HTTP polling as a fallback.
package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellSize     = 48
	headerHeight = 96
	footerHeight = 48
	screenWidth  = 800
	screenHeight = 720
	baseURL      = "http://localhost:8080"
	flashPeriod  = 400 * time.Millisecond // proven-banner blink period
)

// ScreenType represents different screens in the app
type ScreenType int

const (
	ScreenWelcome ScreenType = iota
	ScreenBoard
)

// Position represents a board coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece mirrors the server's piece representation
type Piece struct {
	Kind     string   `json:"kind"`
	Position Position `json:"position"`
	Formula  string   `json:"formula,omitempty"`
	Variable string   `json:"variable,omitempty"`
}

// Board mirrors the server's board representation
type Board struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Pieces []Piece `json:"pieces"`
}

// pieceAt returns the piece at a cell, or nil
func (b *Board) pieceAt(x, y int) *Piece {
	for i := range b.Pieces {
		if b.Pieces[i].Position.X == x && b.Pieces[i].Position.Y == y {
			return &b.Pieces[i]
		}
	}
	return nil
}

// WSMessage represents WebSocket message wrapper
type WSMessage struct {
	SessionID string `json:"session_id"`
	Board     *Board `json:"board,omitempty"`
	Event     string `json:"event,omitempty"`
}

// SessionInfo mirrors the server's session payload
type SessionInfo struct {
	ID        string `json:"id"`
	PackID    string `json:"pack_id"`
	LevelID   int    `json:"level_id"`
	LevelName string `json:"level_name"`
	Theorem   string `json:"theorem"`
	Board     *Board `json:"board"`
	Completed bool   `json:"completed"`
}

// VerifyResponse is the server's verdict on a verification attempt
type VerifyResponse struct {
	Proven  bool   `json:"proven"`
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
}

// PackListItem represents a level pack from the server
type PackListItem struct {
	PackID      string `json:"pack_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LevelCount  int    `json:"level_count"`
}

// SessionData holds data for a single session
type SessionData struct {
	sessionID  string
	levelName  string
	theorem    string
	board      *Board
	wsConn     *websocket.Conn
	lastUpdate time.Time
	statusMsg  string    // last verify/edit outcome shown in the footer
	proven     bool      // verified at least once
	provenAt   time.Time // when the proven banner started
}

// Game represents the desktop client
type Game struct {
	sessions      []*SessionData
	activeSession int
	stateMutex    sync.RWMutex
	currentScreen ScreenType
	welcomeScreen *WelcomeScreen

	cursor    Position // board cursor for editing
	carryFrom *Position
	gateKinds []string
	gateIndex int
}

// WelcomeScreen manages the welcome screen state
type WelcomeScreen struct {
	availableSessions []SessionInfo
	availablePacks    []PackListItem
	cursorPos         int
	loading           bool
	errorMsg          string
}

// NewGame creates a new client instance with initial sessions
func NewGame(sessionIDs []string) *Game {
	g := &Game{
		sessions:      make([]*SessionData, 0),
		activeSession: 0,
		currentScreen: ScreenWelcome,
		gateKinds:     []string{"and_intro", "or_intro", "implies_intro", "not_intro"},
		welcomeScreen: &WelcomeScreen{
			availableSessions: make([]SessionInfo, 0),
			availablePacks:    make([]PackListItem, 0),
		},
	}

	// If session IDs provided, skip welcome screen and go straight to the board
	if len(sessionIDs) > 0 {
		for _, sid := range sessionIDs {
			g.addSession(sid)
		}
		g.currentScreen = ScreenBoard
	} else {
		g.loadWelcomeData()
	}

	return g
}

// addSession attaches a session (creating one when the ID is empty)
func (g *Game) addSession(sessionID string) {
	session := &SessionData{
		sessionID:  sessionID,
		lastUpdate: time.Now(),
	}

	if sessionID == "" {
		if err := g.createSession(session, "", 0); err != nil {
			log.Printf("Failed to create session: %v", err)
			return
		}
	}

	g.sessions = append(g.sessions, session)

	// Connect to WebSocket
	if err := g.connectWebSocket(session); err != nil {
		log.Printf("Failed to connect WebSocket for %s: %v (falling back to polling)", session.sessionID, err)
	} else {
		go g.listenWebSocket(session)
	}

	// Initial state fetch
	g.fetchSession(session)
}

// createSession creates a new session on the server
func (g *Game) createSession(session *SessionData, packID string, levelID int) error {
	payload := map[string]interface{}{}
	if packID != "" {
		payload["pack_id"] = packID
	}
	if levelID != 0 {
		payload["level_id"] = levelID
	}
	data, _ := json.Marshal(payload)

	resp, err := http.Post(fmt.Sprintf("%s/api/sessions", baseURL), "application/json", strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var info SessionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return fmt.Errorf("failed to parse session response: %v (body: %s)", err, string(body))
	}

	session.sessionID = info.ID
	session.levelName = info.LevelName
	session.theorem = info.Theorem
	session.board = info.Board
	log.Printf("Created new session: %s (level: %s)", session.sessionID, session.levelName)
	return nil
}

// connectWebSocket establishes the WebSocket connection
func (g *Game) connectWebSocket(session *SessionData) error {
	if session.sessionID == "" {
		return fmt.Errorf("no session ID set")
	}

	wsURL := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	q := wsURL.Query()
	q.Set("session", session.sessionID)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	session.wsConn = conn
	log.Printf("WebSocket connected for session %s", session.sessionID)
	return nil
}

// listenWebSocket listens for board updates
func (g *Game) listenWebSocket(session *SessionData) {
	defer func() {
		if session.wsConn != nil {
			session.wsConn.Close()
		}
	}()

	for {
		_, message, err := session.wsConn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error for %s: %v", session.sessionID, err)
			return
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			log.Printf("WebSocket JSON parse error: %v", err)
			continue
		}

		g.stateMutex.Lock()
		if wsMsg.Board != nil {
			session.board = wsMsg.Board
			session.lastUpdate = time.Now()
		}
		if wsMsg.Event == "proven" {
			session.proven = true
			session.provenAt = time.Now()
			session.statusMsg = "PROVEN!"
		}
		g.stateMutex.Unlock()
	}
}

// fetchSession gets the current session state from the server
func (g *Game) fetchSession(session *SessionData) error {
	if session.sessionID == "" {
		return fmt.Errorf("no session ID set")
	}

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions/%s", baseURL, session.sessionID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var info SessionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return fmt.Errorf("failed to parse JSON: %v (body: %s)", err, string(body))
	}

	g.stateMutex.Lock()
	session.levelName = info.LevelName
	session.theorem = info.Theorem
	session.board = info.Board
	session.proven = info.Completed
	session.lastUpdate = time.Now()
	g.stateMutex.Unlock()

	return nil
}

// loadWelcomeData fetches available sessions and packs from the server
func (g *Game) loadWelcomeData() {
	g.welcomeScreen.loading = true
	g.welcomeScreen.errorMsg = ""

	resp, err := http.Get(fmt.Sprintf("%s/api/sessions", baseURL))
	if err != nil {
		g.welcomeScreen.errorMsg = fmt.Sprintf("Error loading sessions: %v", err)
		g.welcomeScreen.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var sessionsResp struct {
		Sessions []SessionInfo `json:"sessions"`
	}
	if err := json.Unmarshal(body, &sessionsResp); err == nil {
		g.welcomeScreen.availableSessions = sessionsResp.Sessions
	}

	resp, err = http.Get(fmt.Sprintf("%s/api/packs", baseURL))
	if err != nil {
		g.welcomeScreen.errorMsg = fmt.Sprintf("Error loading packs: %v", err)
		g.welcomeScreen.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ = io.ReadAll(resp.Body)
	var packs []PackListItem
	if err := json.Unmarshal(body, &packs); err == nil {
		g.welcomeScreen.availablePacks = packs
	}

	g.welcomeScreen.loading = false
}

// activeBoard returns the active session and its board, or nils
func (g *Game) activeBoard() (*SessionData, *Board) {
	if len(g.sessions) == 0 {
		return nil, nil
	}
	session := g.sessions[g.activeSession]
	return session, session.board
}

// postJSON posts a payload to a session endpoint and refreshes state
func (g *Game) postJSON(session *SessionData, path string, payload interface{}) ([]byte, error) {
	data := "{}"
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		data = string(raw)
	}

	endpoint := fmt.Sprintf("%s/api/sessions/%s%s", baseURL, session.sessionID, path)
	resp, err := http.Post(endpoint, "application/json", strings.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// placeGate places the currently selected gate kind at the cursor
func (g *Game) placeGate(session *SessionData) {
	piece := Piece{Kind: g.gateKinds[g.gateIndex], Position: g.cursor}
	if _, err := g.postJSON(session, "/pieces", piece); err != nil {
		session.statusMsg = fmt.Sprintf("place failed: %v", err)
		return
	}
	session.statusMsg = fmt.Sprintf("placed %s at (%d,%d)", piece.Kind, g.cursor.X, g.cursor.Y)
	g.fetchSession(session)
}

// removeAtCursor deletes the piece under the cursor
func (g *Game) removeAtCursor(session *SessionData) {
	payload := map[string]int{"x": g.cursor.X, "y": g.cursor.Y}
	req, _ := json.Marshal(payload)

	endpoint := fmt.Sprintf("%s/api/sessions/%s/pieces", baseURL, session.sessionID)
	httpReq, err := http.NewRequest("DELETE", endpoint, strings.NewReader(string(req)))
	if err != nil {
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		session.statusMsg = fmt.Sprintf("remove failed: %v", err)
		return
	}
	resp.Body.Close()

	session.statusMsg = fmt.Sprintf("removed piece at (%d,%d)", g.cursor.X, g.cursor.Y)
	g.fetchSession(session)
}

// moveCarried picks up the piece under the cursor or drops a carried one
func (g *Game) moveCarried(session *SessionData, b *Board) {
	if g.carryFrom == nil {
		if b.pieceAt(g.cursor.X, g.cursor.Y) == nil {
			session.statusMsg = "nothing to pick up here"
			return
		}
		from := g.cursor
		g.carryFrom = &from
		session.statusMsg = fmt.Sprintf("carrying piece from (%d,%d)", from.X, from.Y)
		return
	}

	payload := map[string]Position{"from": *g.carryFrom, "to": g.cursor}
	if _, err := g.postJSON(session, "/pieces/move", payload); err != nil {
		session.statusMsg = fmt.Sprintf("move failed: %v", err)
	} else {
		session.statusMsg = fmt.Sprintf("moved to (%d,%d)", g.cursor.X, g.cursor.Y)
	}
	g.carryFrom = nil
	g.fetchSession(session)
}

// verify submits the board for verification
func (g *Game) verify(session *SessionData) {
	body, err := g.postJSON(session, "/verify", nil)
	if err != nil {
		session.statusMsg = fmt.Sprintf("verify failed: %v", err)
		return
	}

	var result VerifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		session.statusMsg = "verify: unreadable response"
		return
	}

	if result.Proven {
		session.proven = true
		session.provenAt = time.Now()
		session.statusMsg = "PROVEN!"
	} else {
		session.statusMsg = "not proven: " + result.Message
	}
}

// reset restores the level's initial board
func (g *Game) reset(session *SessionData) {
	if _, err := g.postJSON(session, "/reset", nil); err != nil {
		session.statusMsg = fmt.Sprintf("reset failed: %v", err)
		return
	}
	session.statusMsg = "board reset"
	g.carryFrom = nil
	g.fetchSession(session)
}

// Update updates client logic
func (g *Game) Update() error {
	switch g.currentScreen {
	case ScreenWelcome:
		return g.updateWelcomeScreen()
	case ScreenBoard:
		return g.updateBoardScreen()
	}
	return nil
}

// updateWelcomeScreen handles welcome screen input
func (g *Game) updateWelcomeScreen() error {
	ws := g.welcomeScreen

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.loadWelcomeData()
	}

	total := len(ws.availableSessions)
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && ws.cursorPos < total-1 {
		ws.cursorPos++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && ws.cursorPos > 0 {
		ws.cursorPos--
	}

	// N creates a fresh session on the default pack
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.addSession("")
		if len(g.sessions) > 0 {
			g.currentScreen = ScreenBoard
		}
		return nil
	}

	// Enter joins the highlighted session
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && total > 0 {
		g.addSession(ws.availableSessions[ws.cursorPos].ID)
		if len(g.sessions) > 0 {
			g.currentScreen = ScreenBoard
		}
	}

	return nil
}

// updateBoardScreen handles board editing input
func (g *Game) updateBoardScreen() error {
	session, b := g.activeBoard()
	if session == nil || b == nil {
		return nil
	}

	// Cursor movement
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && g.cursor.X < b.Width-1 {
		g.cursor.X++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && g.cursor.X > 0 {
		g.cursor.X--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && g.cursor.Y < b.Height-1 {
		g.cursor.Y++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && g.cursor.Y > 0 {
		g.cursor.Y--
	}

	// Tab cycles the gate kind to place
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.gateIndex = (g.gateIndex + 1) % len(g.gateKinds)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.placeGate(session)
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.removeAtCursor(session)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.moveCarried(session, b)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.verify(session)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reset(session)
	}

	// Bracket keys switch between attached sessions
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) && len(g.sessions) > 1 {
		g.activeSession = (g.activeSession + 1) % len(g.sessions)
		g.carryFrom = nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && len(g.sessions) > 1 {
		g.activeSession = (g.activeSession - 1 + len(g.sessions)) % len(g.sessions)
		g.carryFrom = nil
	}

	// Escape returns to the welcome screen
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.currentScreen = ScreenWelcome
		g.loadWelcomeData()
	}

	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	switch g.currentScreen {
	case ScreenWelcome:
		g.drawWelcomeScreen(screen)
	case ScreenBoard:
		g.drawBoardScreen(screen)
	}
}

// drawWelcomeScreen renders the session/pack chooser
func (g *Game) drawWelcomeScreen(screen *ebiten.Image) {
	screen.Fill(color.RGBA{25, 25, 35, 255})
	ws := g.welcomeScreen

	ebitenutil.DebugPrintAt(screen, "ProofGrid", 20, 20)
	ebitenutil.DebugPrintAt(screen, "Enter: join session  N: new session  F5: refresh", 20, 40)

	if ws.loading {
		ebitenutil.DebugPrintAt(screen, "Loading...", 20, 70)
		return
	}
	if ws.errorMsg != "" {
		ebitenutil.DebugPrintAt(screen, ws.errorMsg, 20, 70)
		return
	}

	y := 80
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Sessions (%d):", len(ws.availableSessions)), 20, y)
	y += 20
	for i, s := range ws.availableSessions {
		marker := "  "
		if i == ws.cursorPos {
			marker = "> "
		}
		status := ""
		if s.Completed {
			status = " [solved]"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s%s - %s%s", marker, s.ID, s.LevelName, status), 20, y)
		y += 18
	}

	y += 20
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Packs (%d):", len(ws.availablePacks)), 20, y)
	y += 20
	for _, p := range ws.availablePacks {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("  %s - %s (%d levels)", p.PackID, p.Name, p.LevelCount), 20, y)
		y += 18
	}
}

// drawBoardScreen renders the active session's board
func (g *Game) drawBoardScreen(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 18, 28, 255})

	g.stateMutex.RLock()
	defer g.stateMutex.RUnlock()

	session, b := g.activeBoard()
	if session == nil || b == nil {
		ebitenutil.DebugPrintAt(screen, "No session attached", 20, 20)
		return
	}

	// Header
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Session %s (%d/%d)  Level: %s",
		session.sessionID, g.activeSession+1, len(g.sessions), session.levelName), 20, 10)
	ebitenutil.DebugPrintAt(screen, "Theorem: "+session.theorem, 20, 30)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Gate: %s  [Space place  D delete  M pick/drop  V verify  R reset  Tab gate  ] next]",
		g.gateKinds[g.gateIndex]), 20, 50)

	if session.proven {
		// Blink the banner for a while after proving
		if time.Since(session.provenAt) < 10*time.Second &&
			(time.Since(session.provenAt)/flashPeriod)%2 == 0 {
			ebitenutil.DebugPrintAt(screen, "*** PROVEN ***", 340, 70)
		} else if time.Since(session.provenAt) >= 10*time.Second {
			ebitenutil.DebugPrintAt(screen, "proven", 340, 70)
		}
	}

	// Grid
	offsetX := (screenWidth - b.Width*cellSize) / 2
	offsetY := headerHeight

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cx := float64(offsetX + x*cellSize)
			cy := float64(offsetY + y*cellSize)

			cellColor := color.RGBA{40, 40, 55, 255}
			if (x+y)%2 == 0 {
				cellColor = color.RGBA{46, 46, 62, 255}
			}
			ebitenutil.DrawRect(screen, cx, cy, cellSize-1, cellSize-1, cellColor)

			if p := b.pieceAt(x, y); p != nil {
				ebitenutil.DrawRect(screen, cx+3, cy+3, cellSize-7, cellSize-7, getPieceColor(p.Kind))
				ebitenutil.DebugPrintAt(screen, pieceLabel(p), int(cx)+6, int(cy)+6)
			}
		}
	}

	// Cursor
	cx := float64(offsetX + g.cursor.X*cellSize)
	cy := float64(offsetY + g.cursor.Y*cellSize)
	ebitenutil.DrawRect(screen, cx, cy, cellSize-1, 2, color.White)
	ebitenutil.DrawRect(screen, cx, cy+cellSize-3, cellSize-1, 2, color.White)
	ebitenutil.DrawRect(screen, cx, cy, 2, cellSize-1, color.White)
	ebitenutil.DrawRect(screen, cx+cellSize-3, cy, 2, cellSize-1, color.White)

	// Carried piece marker
	if g.carryFrom != nil {
		mx := float64(offsetX + g.carryFrom.X*cellSize)
		my := float64(offsetY + g.carryFrom.Y*cellSize)
		ebitenutil.DrawRect(screen, mx+cellSize/2-3, my+cellSize/2-3, 6, 6, color.RGBA{255, 255, 0, 255})
	}

	// Footer
	if session.statusMsg != "" {
		ebitenutil.DebugPrintAt(screen, session.statusMsg, 20, screenHeight-footerHeight+10)
	}
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// getPieceColor maps piece kinds to board colors
func getPieceColor(kind string) color.Color {
	switch kind {
	case "assumption":
		return color.RGBA{80, 160, 255, 255} // blue
	case "goal":
		return color.RGBA{80, 220, 120, 255} // green
	case "and_intro":
		return color.RGBA{255, 170, 60, 255} // orange
	case "or_intro":
		return color.RGBA{255, 210, 80, 255} // yellow
	case "implies_intro":
		return color.RGBA{200, 120, 255, 255} // purple
	case "not_intro":
		return color.RGBA{255, 100, 100, 255} // red
	case "forall_intro", "exists_intro":
		return color.RGBA{120, 220, 220, 255} // cyan
	case "wire":
		return color.RGBA{150, 150, 150, 255} // gray
	default:
		return color.RGBA{100, 100, 100, 255}
	}
}

// pieceLabel returns the short in-cell label for a piece
func pieceLabel(p *Piece) string {
	switch p.Kind {
	case "assumption", "goal":
		if len(p.Formula) > 5 {
			return p.Formula[:5]
		}
		return p.Formula
	case "and_intro":
		return "AND"
	case "or_intro":
		return "OR"
	case "implies_intro":
		return "=>"
	case "not_intro":
		return "NOT"
	case "forall_intro":
		return "ALL " + p.Variable
	case "exists_intro":
		return "EX " + p.Variable
	case "wire":
		return "-"
	}
	return "?"
}

func main() {
	// Any arguments are session IDs to attach immediately
	sessionIDs := os.Args[1:]

	game := NewGame(sessionIDs)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ProofGrid")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
