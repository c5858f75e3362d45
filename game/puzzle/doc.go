// Package puzzle loads, validates and manages Gridlock puzzle definitions.
//
// A Puzzle is the JSON description of an instance: board dimensions, the
// goal tile, and the ordered piece list. The Manager loads definitions from
// a directory, caches them, and serves a built-in classic instance when no
// files are available.
//
// Validation happens here, at the boundary: the board package itself trusts
// its input, so every definition is checked for bounds, overlaps and a
// single marked piece before a Board is ever constructed from it.
package puzzle
