// Package hemesh implements a half-edge mesh for open, possibly
// non-manifold, piecewise-linear surfaces. Connectivity is stored in
// dense arenas indexed by opaque integer ids; vertex payloads are a
// generic type parameter the core never interprets. All mutation goes
// through an exclusive Builder while any number of shared cursors may
// read concurrently with each other.
package hemesh
