// Package assets holds the drawable payloads: hand silhouettes for the
// pointer and the brace outline. Coordinates are opaque data to the rest of
// the program.
package assets
