// Package gamedata provides the embedded JSON content definitions —
// the type chart, species roster, and skill list — plus the loader
// and registry types that turn them into the domain types the battle
// engine operates on.
package gamedata

import "embed"

// dataFS embeds every JSON content file from this directory at build
// time, so a deployed binary needs no external data directory.
//
//go:embed *.json
var dataFS embed.FS
