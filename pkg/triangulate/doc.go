// Package triangulate converts 2D polygon boundaries into triangle
// lists. A polygon is an ordered counter-clockwise ring of points; the
// output is a list of index triples into that ring, counter-clockwise,
// with no Steiner points.
//
// Several algorithms with different speed/quality tradeoffs are
// available behind a single dispatcher; Auto picks one based on input
// size. Positions use the sdfx v2 vector type so results plug directly
// into the rest of the geometry stack.
package triangulate
