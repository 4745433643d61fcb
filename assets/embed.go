// Package assets embeds the bundled content packs.
package assets

import "embed"

// Packs holds the JSON content packs shipped with the binary.
//
//go:embed packs
var Packs embed.FS

// PacksRoot is the directory inside Packs where pack files live.
const PacksRoot = "packs"
