// Package arbor holds the pieces shared by the commands: the seeded,
// atomically written output files, a vector canvas for the 2D turtle,
// TOML settings and preview helpers.
package arbor
