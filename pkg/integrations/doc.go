// Package integrations provides the HTTP plumbing for package registry APIs.
//
// [Client] wraps net/http with the behaviour every registry client needs:
//
//   - JSON decoding of GET responses
//   - status mapping to [ErrNotFound] and [ErrNetwork]
//   - retry of transient failures via [httputil.Retry]
//   - response caching through any [cache.Cache] backend
//
// Registry-specific clients embed [Client]; see [crates] for crates.io.
//
//	client := crates.NewClient(cache.NewNullCache(), 24*time.Hour, "")
//	info, err := client.FetchCrate(ctx, "serde", "", false)
//
// [httputil.Retry]: github.com/matzehuels/depgraph/pkg/httputil.Retry
// [cache.Cache]: github.com/matzehuels/depgraph/pkg/cache.Cache
// [crates]: github.com/matzehuels/depgraph/pkg/integrations/crates
package integrations
