package network

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/proofgrid/proofgrid/game/verify"
)

// DefaultServerURL is the central proof server
const DefaultServerURL = "https://api.proofgrid.game"

// ProofSubmission wraps an exported proof with its signature
type ProofSubmission struct {
	Proof     verify.ExportedProof `json:"proof"`
	Signature string               `json:"signature"`
}

// ServerResponse is the server's verdict on a submitted proof
type ServerResponse struct {
	Accepted      bool   `json:"accepted"`
	PointsAwarded int    `json:"points_awarded"`
	GlobalRank    *int   `json:"global_rank,omitempty"`
	Message       string `json:"message,omitempty"`
}

// LeaderboardEntry is one row of the global leaderboard
type LeaderboardEntry struct {
	PlayerName      string  `json:"player_name"`
	SteamID         *string `json:"steam_id,omitempty"`
	ProofsCompleted int     `json:"proofs_completed"`
	TotalPoints     int     `json:"total_points"`
	Rank            int     `json:"rank"`
}

// PlayerStatsResponse summarizes one player's standing
type PlayerStatsResponse struct {
	TotalProofs     int `json:"total_proofs"`
	TotalPoints     int `json:"total_points"`
	GlobalRank      int `json:"global_rank"`
	LevelsCompleted int `json:"levels_completed"`
}

// Client talks to the central proof server
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the default proof server
func NewClient(apiKey string) *Client {
	return NewClientWithURL(DefaultServerURL, apiKey)
}

// NewClientWithURL creates a client against a specific server URL
func NewClientWithURL(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SubmitProof signs and uploads a verified proof
func (c *Client) SubmitProof(ctx context.Context, proof verify.ExportedProof) (*ServerResponse, error) {
	signature, err := SignProof(proof, c.apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign proof: %w", err)
	}

	submission := ProofSubmission{
		Proof:     proof,
		Signature: signature,
	}

	var response ServerResponse
	if err := c.post(ctx, "/api/v1/proofs", submission, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetLeaderboard fetches up to limit leaderboard rows. A limit of 0 asks
// for the server default of 100 entries.
func (c *Client) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	var entries []LeaderboardEntry
	path := fmt.Sprintf("/api/v1/leaderboard?limit=%d", limit)
	if err := c.get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetPlayerStats fetches the calling player's standing
func (c *Client) GetPlayerStats(ctx context.Context) (*PlayerStatsResponse, error) {
	var stats PlayerStatsResponse
	if err := c.get(ctx, "/api/v1/player/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SignProof computes the submission signature: a SHA-256 digest over the
// proof's JSON encoding followed by the API key bytes, hex encoded.
func SignProof(proof verify.ExportedProof, apiKey string) (string, error) {
	data, err := json.Marshal(proof)
	if err != nil {
		return "", err
	}

	hasher := sha256.New()
	hasher.Write(data)
	hasher.Write([]byte(apiKey))
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.serverURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, result)
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.serverURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}
