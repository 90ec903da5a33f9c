// Package board implements the puzzle board model: positions, logic pieces,
// levels, and the structural validation rules that gate proof verification.
//
// A Board is a bounded grid holding an ordered list of pieces. Every piece has
// exactly one canonical position (wires use their "from" endpoint), which is
// what occupancy and adjacency queries operate on. The package is purely a
// data model: it performs no I/O and knows nothing about solvers or
// transports.
package board
