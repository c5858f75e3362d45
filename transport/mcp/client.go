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

	"github.com/gridlock-game/gridlock/game/puzzle"
	"github.com/gridlock-game/gridlock/game/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
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
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Gridlock Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Gridlock Sliding-Block Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide pieces along their axis until the marked piece (X) covers the goal tile.

AVAILABLE TOOLS:
- board_state: Get the current board as an ASCII grid
- legal_moves: List every legal slide from the current position
- play_move: Slide a piece (direction + origin tile + steps) - requires intent explanation
- undo_move: Take back the most recent slide
- reset_game: Reset to the initial board
- solve_puzzle: Run the solver and get the shortest solution
- move_history: View past slides
- create_session: Create new puzzle session
- get_session: Get session details
- list_sessions: List all active sessions
- list_puzzles: List available puzzle definitions
- game_instructions: Get comprehensive rules and coordinate conventions

NOTE: The 'intent' parameter on play_move serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new puzzle session with optional puzzle selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the puzzle to load (optional, defaults to the classic board)",
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

	// Play operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board state as an ASCII grid",
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
		Name:        "legal_moves",
		Description: "List every legal slide from the current position",
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
	}, c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "play_move",
		Description: "Slide a piece. Identify the piece by its origin tile (top-left occupied tile) and give a direction and step count.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"dir": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"left", "right", "up", "down"},
					"description": "Direction to slide",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the piece's origin tile (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the piece's origin tile (0-based)",
				},
				"steps": map[string]interface{}{
					"type":        "integer",
					"description": "Number of tiles to slide (must be a legal move)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "dir", "x", "y", "steps"},
		},
	}, c.handlePlayMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo_move",
		Description: "Take back the most recent slide",
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
	}, c.handleUndoMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the session to its initial board",
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
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Run the solver and report the shortest solution from the current position",
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
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List available puzzle definitions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
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
	puzzleID, _ := args["puzzle_id"].(string)

	body := map[string]string{}
	if puzzleID != "" {
		body["puzzle_id"] = puzzleID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPuzzle: %s\n\n%s",
		session.ID, session.PuzzleName, formatBoardState(session.BoardState))
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
		won := ""
		if s.BoardState != nil && s.BoardState.Won {
			won = ", WON"
		}
		result += fmt.Sprintf("- %s (Puzzle: %s, Created: %s%s)\n",
			s.ID, s.PuzzleName, s.CreatedAt.Format("15:04:05"), won)
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

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state service.BoardState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatBoardState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Count int                  `json:"count"`
		Moves []service.MoveRecord `json:"moves"`
	}

	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/moves", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Legal moves (%d):\n", response.Count)
	for _, m := range response.Moves {
		result += fmt.Sprintf("- %s (%d,%d) by %d\n", m.Dir, m.X, m.Y, m.Steps)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlayMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	dir, _ := args["dir"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	steps, _ := args["steps"].(float64)

	body := service.MoveRecord{
		Dir:   dir,
		X:     int(x),
		Y:     int(y),
		Steps: int(steps),
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleUndoMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/undo", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string              `json:"message"`
		State   *service.BoardState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatBoardState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var info service.SolveInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/solve", sessionID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSolveInfo(&info)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var puzzles []puzzle.Info
	err := c.apiCall("GET", "/api/puzzles", nil, &puzzles)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Puzzles:\n\n"
	for _, p := range puzzles {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Pieces: %d\n\n",
			p.Name, p.PuzzleID, p.Description, p.Width, p.Height, p.PieceCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Gridlock Sliding-Block Puzzle - Complete Instructions

GAME OBJECTIVE:
Slide pieces along their axis until the marked piece (X) covers the goal tile.

BOARD MECHANICS:
• Coordinates: (x,y) with x growing rightward and y growing downward, 0-based
• Pieces: each piece is a straight segment of tiles, horizontal or vertical
• Origin tile: a piece is identified by its top-left occupied tile
• Movement: a piece slides only along its own axis, any number of empty tiles
• Blocking: a piece cannot pass through another piece or leave the board
• Victory: the marked piece covers the goal tile

GRID LEGEND:
• . - Empty tile
• * - The goal tile (when uncovered)
• X - The marked piece you must bring to the goal
• a-z - Other pieces (one letter per piece, stable within a snapshot)

PLAYING A MOVE:
A move names the direction, the piece's origin tile BEFORE the slide, and
the number of tiles to slide. Example: slide the piece whose origin is
(3,1) down by 2 tiles:
  play_move session_id=ab12 dir=down x=3 y=1 steps=2

Use legal_moves first - the server rejects any slide that is not in the
current legal move list.

STRATEGY FOR AGENTS:
1. Read the grid character by character; letters are piece identities only
   within a single snapshot, so always address pieces by origin tile.
2. The marked piece X moves along one axis only. Identify which pieces
   block its path to the goal, then work out which slides free them.
3. Use undo_move liberally - every slide is reversible.
4. When stuck, call solve_puzzle; it returns the shortest solution from
   the CURRENT position, not from the initial board.

SESSION MANAGEMENT:
- Multiple puzzle sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent board state and history
- Sessions persist across server restarts

SOLVER:
- solve_puzzle runs a breadth-first search over board states
- The result is optimal: no shorter sequence of slides reaches the goal
- Unsolvable positions are reported as such, not as an error`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	solved := ""
	if session.Solved {
		solved = "\nSolution: cached (see solve_puzzle)"
	}
	return fmt.Sprintf("Session: %s\nPuzzle: %s\nCreated: %s%s\n\n%s",
		session.ID, session.PuzzleName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		solved,
		formatBoardState(session.BoardState))
}

func formatBoardState(state *service.BoardState) string {
	if state == nil {
		return "No board state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Board: %dx%d | Goal: (%d,%d) | Moves: %d\n\n",
		state.Width, state.Height, state.Goal.X, state.Goal.Y, state.MoveCount))

	for _, row := range state.Grid {
		result.WriteString(row)
		result.WriteString("\n")
	}

	if state.Won {
		result.WriteString("\nSOLVED! The marked piece covers the goal.")
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "Move successful\n"
	} else {
		response = "Move failed\n"
	}

	if result.Move != nil {
		m := result.Move
		response += fmt.Sprintf("Played: %s (%d,%d) by %d\n", m.Dir, m.X, m.Y, m.Steps)
	}

	if result.Message != "" {
		response += fmt.Sprintf("Message: %s\n", result.Message)
	}

	response += "\n" + formatBoardState(result.BoardState)
	return response
}

func formatSolveInfo(info *service.SolveInfo) string {
	if !info.Solvable {
		return "No solution exists from the current position."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Solvable in %d moves (expanded %d states in %dms)\n\n", info.Plies, info.Expanded, info.ElapsedMS))
	for i, m := range info.Moves {
		b.WriteString(fmt.Sprintf("%d. %s (%d,%d) by %d\n", i+1, m.Dir, m.X, m.Y, m.Steps))
	}
	if info.Final != nil {
		b.WriteString("\nFinal board:\n")
		b.WriteString(formatBoardState(info.Final))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) | Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		result += fmt.Sprintf("%d. %s (%d,%d) by %d\n",
			move.MoveNumber, move.Dir, move.X, move.Y, move.Steps)
	}

	return result
}
