// Package anvil renders templates into files.
//
// The library lives in subpackages: forge for the append and generate file
// operations, render for binding pongo2 and text/template templates to them,
// and filters for the case filters templates use. The anvil command in
// cmd/anvil drives them from a manifest.
package anvil

// Version is the current anvil release.
const Version = "0.3.0"
