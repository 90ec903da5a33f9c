package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/service"
	"github.com/proofgrid/proofgrid/game/verify"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"ProofGrid",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`ProofGrid - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Arrange logic pieces on a grid so the goal formula follows from the
assumptions. Verification is done by an SMT solver: the proof is accepted
when the negated goal is unsatisfiable together with the assumptions.

AVAILABLE TOOLS:
- create_session: Start a session on a pack level
- get_session / list_sessions: Session details and listing
- board_state: ASCII view of the current board
- place_piece / remove_piece / move_piece: Edit the board
- reset_board: Restore the level's initial state
- validate_board: Structural validation report (errors and warnings)
- verify_proof: Attempt solver verification of the board
- export_proof: Export the SMT-LIB2 proof artifact after solving
- list_packs / level_info: Browse available levels
- game_instructions: Comprehensive rules and piece reference

WORKFLOW: create_session, then place gates between assumptions and the
goal (adjacency within 2 cells connects pieces), validate_board until
clean, then verify_proof.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new puzzle session on a level of a pack",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pack_id": map[string]interface{}{
					"type":        "string",
					"description": "Pack identifier (optional, defaults to the tutorial pack)",
				},
				"level_id": map[string]interface{}{
					"type":        "integer",
					"description": "Level number within the pack (optional, defaults to 1)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active puzzle sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Board operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board as an ASCII grid with a piece legend",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_piece",
		Description: "Place a piece on the board. Gates connect to pieces within 2 cells.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"kind": map[string]interface{}{
					"type": "string",
					"enum": []string{
						"assumption", "goal", "and_intro", "or_intro",
						"implies_intro", "not_intro", "forall_intro",
						"exists_intro", "wire",
					},
					"description": "Piece kind",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (0-based column)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (0-based row)",
				},
				"formula": map[string]interface{}{
					"type":        "string",
					"description": "Formula text (required for assumption and goal pieces)",
				},
				"variable": map[string]interface{}{
					"type":        "string",
					"description": "Bound variable name (required for quantifier pieces)",
				},
			},
			Required: []string{"session_id", "kind", "x", "y"},
		},
	}, c.handlePlacePiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "remove_piece",
		Description: "Remove the piece at a board position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the piece to remove",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the piece to remove",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleRemovePiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_piece",
		Description: "Move a piece from one position to another",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"from_x": map[string]interface{}{"type": "integer", "description": "Source X"},
				"from_y": map[string]interface{}{"type": "integer", "description": "Source Y"},
				"to_x":   map[string]interface{}{"type": "integer", "description": "Destination X"},
				"to_y":   map[string]interface{}{"type": "integer", "description": "Destination Y"},
			},
			Required: []string{"session_id", "from_x", "from_y", "to_x", "to_y"},
		},
	}, c.handleMovePiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Reset the board to the level's initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleResetBoard)

	// Proof operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "validate_board",
		Description: "Run structural validation and return the error/warning report",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleValidateBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "verify_proof",
		Description: "Attempt solver verification of the current board arrangement",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleVerifyProof)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "export_proof",
		Description: "Export the SMT-LIB2 proof artifact for a solved session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Player identifier stamped into the artifact (optional)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleExportProof)

	// Level packs
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_packs",
		Description: "List available level packs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPacks)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "level_info",
		Description: "Get details of one level in a pack, including its theorem and goal",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pack_id": map[string]interface{}{
					"type":        "string",
					"description": "Pack identifier",
				},
				"level_id": map[string]interface{}{
					"type":        "integer",
					"description": "Level number within the pack",
				},
			},
			Required: []string{"pack_id", "level_id"},
		},
	}, c.handleLevelInfo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and the piece reference",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	packID, _ := args["pack_id"].(string)
	levelID := intArg(args, "level_id")

	body := map[string]interface{}{}
	if packID != "" {
		body["pack_id"] = packID
	}
	if levelID != 0 {
		body["level_id"] = levelID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nLevel: %s (pack %s, level %d)\nTheorem: %s\n\n%s",
		session.ID, session.LevelName, session.PackID, session.LevelID,
		session.Theorem, formatBoard(session.Board))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.Completed {
			status = fmt.Sprintf("solved in %.1fs", s.SolveTimeSecs)
		}
		result += fmt.Sprintf("- %s (Level: %s, %s, Created: %s)\n",
			s.ID, s.LevelName, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var b board.Board
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/board", sessionID), nil, &b)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoard(&b)), nil
}

func (c *Client) handlePlacePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	kind, _ := args["kind"].(string)
	formula, _ := args["formula"].(string)
	variable, _ := args["variable"].(string)
	x := intArg(args, "x")
	y := intArg(args, "y")

	piece := board.Piece{
		Kind:     board.Kind(kind),
		Position: board.Position{X: x, Y: y},
		Formula:  formula,
		Variable: variable,
	}

	var result service.PlaceResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/pieces", sessionID), piece, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Success {
		msg := "Placement rejected"
		if result.Error != nil {
			msg = fmt.Sprintf("Placement rejected: %s", result.Error.Message)
		}
		return mcp.NewToolResultText(msg + "\n\n" + formatBoard(result.Board)), nil
	}

	response := fmt.Sprintf("✓ Placed %s at (%d,%d)\n", kind, x, y)
	response += formatEvents(result.Events)
	response += "\n" + formatBoard(result.Board)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRemovePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := intArg(args, "x")
	y := intArg(args, "y")

	body := map[string]int{"x": x, "y": y}

	var result service.RemoveResult
	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s/pieces", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Success {
		return mcp.NewToolResultText(fmt.Sprintf("No piece at (%d,%d)", x, y)), nil
	}

	response := fmt.Sprintf("✓ Removed %s from (%d,%d)\n\n%s",
		result.Removed.Kind, x, y, formatBoard(result.Board))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleMovePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{
		"from": board.Position{X: intArg(args, "from_x"), Y: intArg(args, "from_y")},
		"to":   board.Position{X: intArg(args, "to_x"), Y: intArg(args, "to_y")},
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/pieces/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Success {
		return mcp.NewToolResultText(fmt.Sprintf("✗ Move failed: %s\n\n%s",
			result.Message, formatBoard(result.Board))), nil
	}

	return mcp.NewToolResultText("✓ Move successful\n\n" + formatBoard(result.Board)), nil
}

func (c *Client) handleResetBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string       `json:"message"`
		Board   *board.Board `json:"board"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatBoard(response.Board))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleValidateBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var report board.Report
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/validate", sessionID), nil, &report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatReport(&report)), nil
}

func (c *Client) handleVerifyProof(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.VerifyResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/verify", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatVerifyResult(&result)), nil
}

func (c *Client) handleExportProof(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	playerID, _ := args["player_id"].(string)

	path := fmt.Sprintf("/api/sessions/%s/proof", sessionID)
	if playerID != "" {
		path += "?player=" + playerID
	}

	var proof verify.ExportedProof
	err := c.apiCall("GET", path, nil, &proof)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Proof for level %d (player %q, solved in %.1fs):\n\n%s",
		proof.LevelID, proof.PlayerID, proof.TimeTakenSecs, proof.ProofSMT2)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var packs []service.PackInfo
	err := c.apiCall("GET", "/api/packs", nil, &packs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Level Packs:\n\n"
	for _, pack := range packs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Levels: %d, Difficulty: %d\n\n",
			pack.Name, pack.PackID, pack.Description, pack.LevelCount, pack.Difficulty)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLevelInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	packID, _ := args["pack_id"].(string)
	levelID := intArg(args, "level_id")

	var level board.Level
	err := c.apiCall("GET", fmt.Sprintf("/api/packs/%s/levels/%d", packID, levelID), nil, &level)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Level %d: %s\n%s\nTheorem: %s\nGoal: %s\n\n%s",
		level.ID, level.Name, level.Description, level.Theorem,
		formatGoal(&level.Goal), formatBoard(&level.InitialState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🧩 ProofGrid - Complete Instructions

GAME OBJECTIVE:
Arrange logic pieces on a 2D grid so that the goal formula provably
follows from the assumptions. The arrangement is checked by an SMT
solver: your proof is accepted when the solver reports that the negated
goal is unsatisfiable given the assumptions (a refutation proof).

BOARD LEGEND:
• A - Assumption (carries a formula you may use as a premise)
• G - Goal (the formula you must derive)
• & - AND gate (conjunction introduction)
• | - OR gate (disjunction introduction)
• > - IMPLIES gate (implication introduction)
• ~ - NOT gate (negation introduction)
• V - FORALL gate (universal quantifier, carries a bound variable)
• E - EXISTS gate (existential quantifier, carries a bound variable)
• + - Wire (connects two distant positions)
• . - Empty cell

CONNECTIVITY:
Two pieces are connected when they are within 2 cells of each other in
both axes (diagonals count). A gate between an assumption and the goal
links them into a proof step. Use wires to bridge longer distances.

WORKFLOW:
1. create_session - pick a pack and level
2. board_state - study the initial arrangement
3. place_piece - put gates between assumptions and the goal
4. validate_board - fix any reported errors (overlaps, out of bounds,
   missing assumptions or goals, malformed formulas)
5. verify_proof - submit the arrangement to the solver
6. export_proof - retrieve the SMT-LIB2 artifact once solved

VALIDATION RULES:
- Pieces must be inside the board bounds
- At most one piece per cell
- Wires must have distinct endpoints, both in bounds
- Formulas must start with a letter, digit, or '('
- Verification requires a valid board with at least 3 pieces

VERIFICATION:
The server builds an SMT-LIB2 script from the board: one declaration
per distinct formula symbol, one assertion per assumption, and the
negated goal. An "unsat" verdict means the goal follows - the proof is
accepted. "sat" or "unknown" means the arrangement does not establish
the goal. A gate must be adjacent to the relevant assumptions AND the
goal for the step to count.

SESSION MANAGEMENT:
- Multiple puzzle sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent board state
- The first successful verification records your solve time

Good luck proving! 🧩✅`

	return mcp.NewToolResultText(instructions), nil
}

// intArg extracts an integer argument (JSON numbers decode as float64)
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	status := "in progress"
	if session.Completed {
		status = fmt.Sprintf("solved in %.1fs", session.SolveTimeSecs)
	}
	return fmt.Sprintf("Session: %s\nLevel: %s (pack %s, level %d)\nTheorem: %s\nStatus: %s\nCreated: %s\n\n%s",
		session.ID, session.LevelName, session.PackID, session.LevelID,
		session.Theorem, status,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatBoard(session.Board))
}

// formatBoard renders the board as an ASCII grid plus a piece legend
func formatBoard(b *board.Board) string {
	if b == nil {
		return "No board available"
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Board %dx%d (%d pieces):\n", b.Width, b.Height, b.PieceCount()))

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if p := b.PieceAt(x, y); p != nil {
				result.WriteString(pieceChar(p))
			} else {
				result.WriteString(".")
			}
		}
		result.WriteString("\n")
	}

	if b.PieceCount() > 0 {
		result.WriteString("\nPieces:\n")
		for i := range b.Pieces {
			p := &b.Pieces[i]
			result.WriteString(fmt.Sprintf("- %s (%d,%d): %s\n",
				pieceChar(p), p.Position.X, p.Position.Y, describePiece(p)))
		}
	}

	return result.String()
}

// pieceChar returns the single-character grid representation of a piece
func pieceChar(p *board.Piece) string {
	switch p.Kind {
	case board.KindAssumption:
		return "A"
	case board.KindGoal:
		return "G"
	case board.KindAndIntro:
		return "&"
	case board.KindOrIntro:
		return "|"
	case board.KindImpliesIntro:
		return ">"
	case board.KindNotIntro:
		return "~"
	case board.KindForallIntro:
		return "V"
	case board.KindExistsIntro:
		return "E"
	case board.KindWire:
		return "+"
	default:
		return "?"
	}
}

func describePiece(p *board.Piece) string {
	switch {
	case p.IsTerminal():
		return fmt.Sprintf("%s %q", p.Kind, p.Formula)
	case p.IsQuantifier():
		return fmt.Sprintf("%s %s", p.Kind, p.Variable)
	case p.Kind == board.KindWire:
		return fmt.Sprintf("wire to (%d,%d)", p.WireTo.X, p.WireTo.Y)
	default:
		return string(p.Kind)
	}
}

func formatGoal(g *board.GoalCondition) string {
	switch g.Kind {
	case board.GoalConnectNodes:
		if g.Start != nil && g.End != nil {
			return fmt.Sprintf("connect (%d,%d) to (%d,%d)", g.Start.X, g.Start.Y, g.End.X, g.End.Y)
		}
		return "connect nodes"
	case board.GoalProveFormula:
		return fmt.Sprintf("prove %q", g.Formula)
	case board.GoalBuildProofTree:
		return fmt.Sprintf("build a proof tree of depth %d", g.Depth)
	}
	return string(g.Kind)
}

func formatReport(report *board.Report) string {
	var result strings.Builder

	if report.IsValid {
		result.WriteString("✓ Board is structurally valid\n")
	} else {
		result.WriteString(fmt.Sprintf("✗ Board has %d error(s)\n", len(report.Errors)))
	}

	for _, e := range report.Errors {
		result.WriteString(fmt.Sprintf("- ERROR [%s] at (%d,%d): %s\n",
			e.Code, e.Position.X, e.Position.Y, e.Message))
	}
	for _, w := range report.Warnings {
		result.WriteString(fmt.Sprintf("- WARNING: %s\n", w))
	}

	return result.String()
}

func formatVerifyResult(result *service.VerifyResult) string {
	var b strings.Builder

	if result.Proven {
		b.WriteString("🎉 PROVEN! The solver accepted your arrangement.\n")
		if result.ElapsedSecs > 0 {
			b.WriteString(fmt.Sprintf("Solve time: %.1fs\n", result.ElapsedSecs))
		}
	} else if !result.Ready {
		b.WriteString("✗ Board is not ready for verification\n")
	} else {
		b.WriteString("✗ Not proven: the arrangement does not establish the goal\n")
	}

	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatReport(&result.Report))
	b.WriteString(formatEvents(result.Events))

	if result.Proof != nil {
		b.WriteString("\nSMT-LIB2 proof:\n")
		b.WriteString(result.Proof.ProofSMT2)
	}

	return b.String()
}

func formatEvents(events []service.GameEvent) string {
	if len(events) == 0 {
		return ""
	}
	result := "Events:\n"
	for _, event := range events {
		result += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
	}
	return result
}
