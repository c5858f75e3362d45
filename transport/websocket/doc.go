// Package websocket provides real-time board updates for Gridlock sessions.
//
// The Hub tracks connected clients per session ID and pushes board state
// snapshots whenever a move, undo, reset or solve changes a session. Clients
// connect via /ws?session=<id>; the hub handles ping/pong keepalive and
// drops clients whose send buffers back up.
package websocket
