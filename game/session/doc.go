// Package session manages the lifecycle of Gridlock puzzle sessions.
//
// The Manager keeps sessions in memory behind an RWMutex, generates short
// random IDs, and optionally persists sessions through the
// SessionPersistence interface. The file-backed implementation stores only
// the puzzle ID and the move records; on load it rebuilds the board by
// replaying the recorded moves from the puzzle's initial position, which
// keeps the persisted form small and the board construction in one place.
package session
