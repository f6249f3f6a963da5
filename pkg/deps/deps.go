package deps

import (
	"context"
	"time"

	"github.com/matzehuels/depgraph/pkg/dag"
)

const (
	// ManifestRoot is the synthetic package that manifest and registry
	// loaders attach direct dependencies to.
	ManifestRoot = "main"

	DefaultCacheTTL = 24 * time.Hour // Default registry cache duration
)

// Request describes what a [Loader] should load. Each loader reads the
// fields it needs and ignores the rest.
type Request struct {
	Package string               // Registry package name (registry loaders)
	Path    string               // File or directory (file loaders)
	URL     string               // Registry base URL override, empty for default
	Version string               // Package version, empty or "latest" for newest
	Refresh bool                 // Bypass cached registry responses
	Logger  func(string, ...any) // Debug callback for skipped records (optional)
}

// Logf forwards a debug message to the request's logger, if any.
func (r Request) Logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger(format, args...)
	}
}

// Loader builds a dependency graph from one kind of source.
type Loader interface {
	// Name returns the loader identifier (e.g., "testgraph", "cargo").
	Name() string
	// Load reads the source described by req.
	Load(ctx context.Context, req Request) (*dag.Graph, error)
}

// LoaderFunc adapts a function to the [Loader] interface.
type LoaderFunc struct {
	ID string
	Fn func(ctx context.Context, req Request) (*dag.Graph, error)
}

func (f LoaderFunc) Name() string { return f.ID }

func (f LoaderFunc) Load(ctx context.Context, req Request) (*dag.Graph, error) {
	return f.Fn(ctx, req)
}

// Direct builds the one-level graph used for manifests and registry
// lookups: root depends on every name in direct, and each of those is
// declared with no dependencies. Repeated names keep their first position.
func Direct(root string, direct []string) *dag.Graph {
	seen := make(map[string]bool, len(direct))
	var uniq []string
	for _, d := range direct {
		if !seen[d] {
			seen[d] = true
			uniq = append(uniq, d)
		}
	}

	g := dag.New()
	g.Declare(root, uniq...)
	for _, d := range uniq {
		if d != root {
			g.Declare(d)
		}
	}
	return g
}
