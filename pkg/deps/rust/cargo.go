package rust

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// ManifestFile is the file looked up when a manifest path is a directory.
const ManifestFile = "Cargo.toml"

// Manifest holds the parts of a Cargo.toml that graph loading needs.
type Manifest struct {
	Package      string   // [package] name, empty for workspaces
	Version      string   // [package] version
	Dependencies []string // [dependencies] names in declaration order
	Skipped      int      // lines the fallback scanner could not use
	Lenient      bool     // true when the file was not valid TOML
}

// Workspace members may inherit package fields ("version.workspace = true"),
// so [package] values are decoded loosely and only plain strings are used.
type cargoFile struct {
	Package map[string]any `toml:"package"`
}

func stringField(table map[string]any, key string) string {
	s, _ := table[key].(string)
	return s
}

// ParseManifest extracts the [dependencies] table from Cargo.toml content.
//
// TOML gives no order guarantee for tables, so names are taken from the
// decoder's key metadata, which lists keys in document order. If the content
// is not valid TOML, a line scanner takes over: it reads "name = ..." lines
// between the [dependencies] header and the next section and skips lines it
// cannot use.
func ParseManifest(data []byte) *Manifest {
	var cargo cargoFile
	md, err := toml.Decode(string(data), &cargo)
	if err != nil {
		return scanManifest(data)
	}

	m := &Manifest{
		Package: stringField(cargo.Package, "name"),
		Version: stringField(cargo.Package, "version"),
	}
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != "dependencies" || seen[key[1]] {
			continue
		}
		seen[key[1]] = true
		m.Dependencies = append(m.Dependencies, key[1])
	}
	return m
}

func scanManifest(data []byte) *Manifest {
	m := &Manifest{Lenient: true}
	seen := make(map[string]bool)
	inDeps := false

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "[dependencies]"):
			inDeps = true
			continue
		case strings.HasPrefix(line, "["):
			if inDeps {
				return m
			}
			continue
		case !inDeps || line == "" || strings.HasPrefix(line, "#"):
			continue
		}

		name, _, ok := strings.Cut(line, "=")
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		// serde.workspace = true
		name, _, _ = strings.Cut(name, ".")
		if !ok || errors.ValidateGraphName(name) != nil {
			m.Skipped++
			continue
		}
		if !seen[name] {
			seen[name] = true
			m.Dependencies = append(m.Dependencies, name)
		}
	}
	return m
}

// ManifestPath resolves path to a Cargo.toml file: directories are joined
// with [ManifestFile], files are returned unchanged.
func ManifestPath(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, ManifestFile)
	}
	return path
}

// ManifestLoader loads Cargo manifests from [deps.Request.Path]. The result
// is a one-level graph rooted at [deps.ManifestRoot].
type ManifestLoader struct{}

func (ManifestLoader) Name() string { return "cargo" }

// Supports reports whether filename names a Cargo manifest.
func (ManifestLoader) Supports(filename string) bool {
	return strings.EqualFold(filepath.Base(filename), ManifestFile)
}

func (ManifestLoader) Load(ctx context.Context, req deps.Request) (*dag.Graph, error) {
	if req.Path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "manifest mode requires --path")
	}
	path := ManifestPath(req.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "read %s", path)
	}

	m := ParseManifest(data)
	if m.Lenient {
		req.Logf("%s is not valid TOML, scanned [dependencies] line by line (%d lines skipped)", path, m.Skipped)
	}
	return deps.Direct(deps.ManifestRoot, m.Dependencies), nil
}

var _ deps.Loader = ManifestLoader{}
