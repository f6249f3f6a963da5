// Package deps defines how dependency graphs are loaded from their sources.
//
// # Overview
//
// A [Loader] turns one kind of source into a [dag.Graph]:
//
//   - [testgraph]: line-oriented test descriptions ("A: B C")
//   - [rust]: Cargo.toml manifests and the crates.io registry
//   - [sources]: JSON graph documents, plus selection by mode or path
//
// Every loader receives the same [Request]; fields a loader does not need
// are ignored.
//
//	loader := sources.Detect("testdata/graph.txt")
//	g, err := loader.Load(ctx, deps.Request{Path: "testdata/graph.txt"})
//
// # Synthetic root
//
// Manifests and registry responses only know direct dependencies. Their
// loaders build a one-level graph rooted at [ManifestRoot] ("main"), with
// each dependency declared without dependencies of its own. See [Direct].
//
// # Errors
//
// A source that cannot be read fails with SOURCE_UNAVAILABLE (NOT_FOUND or
// NETWORK_ERROR for registries). Individual malformed records are skipped and
// reported through [Request.Logger]; they never fail a load.
//
// [dag.Graph]: github.com/matzehuels/depgraph/pkg/dag.Graph
// [testgraph]: github.com/matzehuels/depgraph/pkg/deps/testgraph
// [rust]: github.com/matzehuels/depgraph/pkg/deps/rust
// [sources]: github.com/matzehuels/depgraph/pkg/deps/sources
package deps
