// Package service defines the application-level API for Gridlock: session
// lifecycle, interactive play, solving, and puzzle management.
//
// PuzzleService is the contract consumed by the REST and MCP transports.
// The service layer is where move legality is enforced: the board package
// trusts callers to submit moves from AllMoves, so Move checks every request
// against the current board's generated moves before applying it.
//
// The DTO types in this package are the wire representation; the immutable
// board.Board never crosses the transport boundary directly.
package service
