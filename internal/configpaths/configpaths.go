// Package configpaths resolves where the mapping file lives. Unlike a
// conventional CLI config, mouseplay's canonical mapping file is not a
// user-config-directory lookup: spec.md §6 derives it from the injected
// library's own module directory ("the library discovers its own directory
// via the OS module-filename primitive applied to its image base").
package configpaths

import (
	"os"
	"path/filepath"
)

// DefaultMappingsFile is the canonical mapping file name placed next to the
// injected library (spec.md §6).
const DefaultMappingsFile = "mappings.json"

// ResolveMappingsPath joins a library directory with DefaultMappingsFile.
func ResolveMappingsPath(libraryDir string) string {
	return filepath.Join(libraryDir, DefaultMappingsFile)
}

// EnsureDir makes sure the directory containing filePath exists, creating it
// (and any parents) if necessary. Used by mouseplayctl's init command before
// writing a scaffolded mapping file.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
