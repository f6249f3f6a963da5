// Package sources selects a graph loader by mode or by path.
//
// This package exists to break import cycles: the individual loader packages
// (testgraph, rust) import pkg/deps, so pkg/deps cannot import them back.
// Consumers that need to pick a loader at runtime import this package.
package sources

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/depgraph/pkg/cache"
	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/deps/rust"
	"github.com/matzehuels/depgraph/pkg/deps/testgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
	graphio "github.com/matzehuels/depgraph/pkg/io"
)

// Source modes accepted by [ForMode].
const (
	ModeTest     = "test"     // path decides: .txt, .json or Cargo manifest
	ModeManifest = "manifest" // Cargo.toml file or directory
	ModeRegistry = "registry" // crates.io lookup
	ModeReal     = "real"     // alias of ModeRegistry
	ModeJSON     = "json"     // JSON graph document
)

// Modes lists every accepted mode, for flag help and validation.
var Modes = []string{ModeTest, ModeManifest, ModeRegistry, ModeJSON, ModeReal}

// Options carries what registry-backed loaders need.
type Options struct {
	Cache    cache.Cache
	CacheTTL time.Duration
}

// JSONLoader loads JSON graph documents from [deps.Request.Path].
type JSONLoader struct{}

func (JSONLoader) Name() string { return "json" }

func (JSONLoader) Load(ctx context.Context, req deps.Request) (*dag.Graph, error) {
	if req.Path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "json mode requires --path")
	}
	return graphio.ImportJSON(req.Path)
}

// Detect picks a file loader from the path: ".txt" files are test
// descriptions, ".json" files are graph documents, and anything else is
// treated as a Cargo manifest or a directory holding one.
func Detect(path string) deps.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return testgraph.Loader{}
	case ".json":
		return JSONLoader{}
	default:
		return rust.ManifestLoader{}
	}
}

// ForMode returns the loader for mode. In [ModeTest] the loader is chosen
// by [Detect] from path.
func ForMode(mode, path string, opts Options) (deps.Loader, error) {
	switch mode {
	case ModeTest:
		return Detect(path), nil
	case ModeManifest:
		return rust.ManifestLoader{}, nil
	case ModeJSON:
		return JSONLoader{}, nil
	case ModeRegistry, ModeReal:
		return rust.RegistryLoader{Cache: opts.Cache, CacheTTL: opts.CacheTTL}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q (available: %s)", mode, strings.Join(Modes, ", "))
	}
}

// NeedsPath reports whether mode reads a local file.
func NeedsPath(mode string) bool {
	return slices.Contains([]string{ModeTest, ModeManifest, ModeJSON}, mode)
}
