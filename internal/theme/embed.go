// Package theme provides the embedded glyphs and colors used to draw a board.
package theme

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
