// Package api implements the REST interface for the Gridlock puzzle server.
//
// Routes (all under /api):
//
//	POST   /sessions                create a session (optional puzzle_id)
//	GET    /sessions                list sessions (sort, order, limit)
//	GET    /sessions/{id}           session details
//	DELETE /sessions/{id}           delete a session
//	GET    /sessions/{id}/state     current board state
//	GET    /sessions/{id}/moves     legal moves on the current board
//	POST   /sessions/{id}/move      play a move {dir, x, y, steps}
//	POST   /sessions/{id}/undo      undo the last move
//	POST   /sessions/{id}/reset     restore the initial board
//	POST   /sessions/{id}/solve     run the solver from the current board
//	GET    /sessions/{id}/history   paginated move history
//	GET    /puzzles                 list puzzle definitions
//	POST   /puzzles                 save a puzzle definition
//	GET    /puzzles/{name}          fetch a puzzle definition
//
// State-changing handlers broadcast the new board to WebSocket clients
// subscribed to the session (see /ws?session=<id>).
package api
