package scenario

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	SCENARIO_FILE_PATTERN = "**/*.{yaml,yml}"
	BUILTIN_DIR           = "builtin"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Discover returns the paths of the scenario files located in root, in natural order.
// If root is a file it is returned as is.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(root), SCENARIO_FILE_PATTERN, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(matches))
	for i, match := range matches {
		paths[i] = filepath.Join(root, filepath.FromSlash(match))
	}
	sortNaturally(paths)
	return paths, nil
}

// DiscoverAll calls Discover for each root, duplicate paths are ignored.
func DiscoverAll(roots []string) ([]string, error) {
	var paths []string
	seen := map[string]bool{}

	for _, root := range roots {
		found, err := Discover(root)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths, nil
}

// LoadBuiltin returns the scenarios embedded in the binary.
func LoadBuiltin() ([]*Scenario, error) {
	entries, err := fs.ReadDir(builtinFS, BUILTIN_DIR)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sortNaturally(names)

	var scenarios []*Scenario
	for _, name := range names {
		filePath := path.Join(BUILTIN_DIR, name)
		content, err := builtinFS.ReadFile(filePath)
		if err != nil {
			return nil, err
		}

		loaded, err := Parse(string(content), filePath)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, loaded...)
	}
	return scenarios, nil
}
