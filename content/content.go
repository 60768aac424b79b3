// Package content embeds the sample Lua content shipped with cardfight.
package content

import "embed"

// FS holds the sample .lua files at its root.
//
//go:embed *.lua
var FS embed.FS
