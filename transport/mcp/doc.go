// Package mcp exposes the puzzle service over the Model Context Protocol.
//
// The client here is deliberately thin: every tool call is proxied to the
// REST API, so MCP clients and HTTP clients always observe the same state.
// There is no puzzle logic in this package, only request plumbing and
// plain-text formatting of API responses.
//
// Registered tools:
//
//	create_session    - create a session, optionally naming a puzzle
//	list_sessions     - list active sessions
//	get_session       - session details plus current board
//	board_state       - current board rendered as an ASCII grid
//	legal_moves       - every legal slide from the current position
//	play_move         - slide a piece (direction, origin tile, steps)
//	undo_move         - take back the most recent slide
//	reset_game        - restore the initial board
//	solve_puzzle      - run the solver and report the shortest solution
//	move_history      - paginated history of slides played
//	list_puzzles      - available puzzle definitions
//	game_instructions - rules and coordinate conventions
//
// The MCP server can be served over stdio or mounted on the HTTP server as
// a streamable endpoint; both paths are wired in main.
package mcp
