package main

import (
	"embed"
	"io/fs"
	"path"
)

//go:embed embed/version.txt
var embeddedVersion string

//go:embed embed/template
var embeddedTemplateFS embed.FS

// embeddedStaticFS also contains the wasm_exec.js and main.wasm files, which are copied into the folder by the build.
//go:embed embed/static
var embeddedStaticFS embed.FS

// unembedFS returns the embed/subdirectory subdirectory of the file system.
func unembedFS(fsys fs.FS, subdirectory string) (fs.FS, error) {
	dir := path.Join("embed", subdirectory)
	return fs.Sub(fsys, dir)
}
