// Command bruteforcer drives the ProofGrid REST API with a systematic
// placement search: it enumerates candidate gate positions near the
// assumptions, optionally relocates the goal into gate range, and submits
// each arrangement for verification until one is proven.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Piece struct {
	Kind     string   `json:"kind"`
	Position Position `json:"position"`
	Formula  string   `json:"formula,omitempty"`
}

type Board struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Pieces []Piece `json:"pieces"`
}

type SessionResponse struct {
	ID        string `json:"id"`
	LevelName string `json:"level_name"`
	Theorem   string `json:"theorem"`
	Board     *Board `json:"board"`
}

type PlaceResponse struct {
	Success bool   `json:"success"`
	Board   *Board `json:"board"`
}

type MoveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Board   *Board `json:"board"`
}

type ResetResponse struct {
	Message string `json:"message"`
	Board   *Board `json:"board"`
}

type VerifyResponse struct {
	Proven      bool    `json:"proven"`
	Ready       bool    `json:"ready"`
	Message     string  `json:"message"`
	ElapsedSecs float64 `json:"elapsed_secs,omitempty"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(packID string, levelID int) (*Board, error) {
	reqBody, err := json.Marshal(map[string]interface{}{
		"pack_id":  packID,
		"level_id": levelID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	log.Printf("Level: %s (%s)", session.LevelName, session.Theorem)
	return session.Board, nil
}

func (c *Client) GetBoard() (*Board, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/board", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get board failed: %s", resp.Status)
	}

	var b Board
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	return &b, nil
}

func (c *Client) PlacePiece(piece Piece) (*Board, error) {
	body, err := json.Marshal(piece)
	if err != nil {
		return nil, fmt.Errorf("marshal piece: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/pieces", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("place piece: %w", err)
	}
	defer resp.Body.Close()

	var placeResp PlaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&placeResp); err != nil {
		return nil, fmt.Errorf("parse place response: %w", err)
	}

	if !placeResp.Success {
		return placeResp.Board, fmt.Errorf("placement rejected at (%d,%d)", piece.Position.X, piece.Position.Y)
	}
	return placeResp.Board, nil
}

func (c *Client) MovePiece(from, to Position) (*Board, error) {
	body, err := json.Marshal(map[string]Position{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("marshal move: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/pieces/move", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("move piece: %w", err)
	}
	defer resp.Body.Close()

	var moveResp MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&moveResp); err != nil {
		return nil, fmt.Errorf("parse move response: %w", err)
	}

	if !moveResp.Success {
		return moveResp.Board, fmt.Errorf("move failed: %s", moveResp.Message)
	}
	return moveResp.Board, nil
}

func (c *Client) Reset() (*Board, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}
	return resetResp.Board, nil
}

func (c *Client) Verify() (*VerifyResponse, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/verify", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	defer resp.Body.Close()

	var verifyResp VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verifyResp); err != nil {
		return nil, fmt.Errorf("parse verify response: %w", err)
	}
	return &verifyResp, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "ProofGrid server URL")
	packID := flag.String("pack", "tutorial", "Level pack ID")
	levelID := flag.Int("level", 1, "Level number within the pack")
	continueSession := flag.String("continue", "", "Resume an existing session by ID")
	maxAttempts := flag.Int("max-attempts", 500, "Maximum placement attempts before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between attempts in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to ProofGrid server at %s", *serverURL)
	client := NewClient(*serverURL)

	var boardState *Board
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		// Use explicitly provided session
		savedSessionID = *continueSession
	} else {
		// Try to load saved session
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		// Resume existing session
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		boardState, err = client.GetBoard()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = "" // Force create new
		}
	}

	if savedSessionID == "" {
		// Create new session
		boardState, err = client.CreateSession(*packID, *levelID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	log.Printf("Board: %dx%d with %d pieces", boardState.Width, boardState.Height, len(boardState.Pieces))

	// RESET the board at the beginning of each run
	log.Printf("🔄 Resetting board...")
	boardState, err = client.Reset()
	if err != nil {
		log.Fatalf("Failed to reset board: %v", err)
	}

	// Initialize systematic strategy
	strategy := NewSystematicStrategy(boardState)
	log.Printf("Strategy prepared %d candidate arrangements", strategy.Remaining())

	attemptNum := 0
	for attemptNum < *maxAttempts {
		plan, ok := strategy.NextPlan()
		if !ok {
			log.Printf("⚠️  Strategy exhausted all candidate arrangements")
			break
		}
		attemptNum++

		// Reset the board for this attempt
		if attemptNum > 1 {
			if _, err := client.Reset(); err != nil {
				log.Printf("Failed to reset: %v", err)
				break
			}
		}

		if *verbose {
			log.Printf("=== 🧩 Attempt %d/%d: %s ===", attemptNum, *maxAttempts, plan)
		}

		// Relocate the goal into gate range when the plan calls for it
		if plan.GoalMove != nil {
			if _, err := client.MovePiece(plan.GoalMove.From, plan.GoalMove.To); err != nil {
				if *verbose {
					log.Printf("Goal move failed: %v", err)
				}
				continue
			}
		}

		// Place the gate
		gate := Piece{Kind: plan.GateKind, Position: plan.GatePos}
		if _, err := client.PlacePiece(gate); err != nil {
			if *verbose {
				log.Printf("Placement failed: %v", err)
			}
			continue
		}

		// Submit for verification
		result, err := client.Verify()
		if err != nil {
			log.Printf("Verification request failed: %v", err)
			continue
		}

		if result.Proven {
			log.Printf("\n🎉 PROVEN! Arrangement found in attempt %d: %s", attemptNum, plan)
			if result.ElapsedSecs > 0 {
				log.Printf("Solve time: %.1fs", result.ElapsedSecs)
			}
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)
		}

		if *verbose {
			log.Printf("Attempt %d: not proven (%s)", attemptNum, result.Message)
		}

		// Add delay if specified
		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	// Failed to prove after all attempts
	log.Printf("\n❌ Failed to prove after %d attempts", attemptNum)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
