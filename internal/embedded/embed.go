// Package embedded holds the capability tables compiled into the binary.
package embedded

import (
	"embed"
	"io/fs"
)

// FS embeds one capability table per provider family.
//
//go:embed capabilities/*.yaml
var FS embed.FS

// Capabilities returns the capability tables rooted at their directory.
func Capabilities() fs.FS {
	sub, err := fs.Sub(FS, "capabilities")
	if err != nil {
		panic(err)
	}
	return sub
}
