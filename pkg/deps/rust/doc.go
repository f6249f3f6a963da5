// Package rust loads dependency graphs for Rust crates.
//
// Two loaders are provided:
//
//   - [ManifestLoader] reads a local Cargo.toml (or a directory holding one)
//   - [RegistryLoader] asks crates.io for a published crate's dependencies
//
// Both only know direct dependencies, so both return the one-level graph
// described in [deps.Direct]:
//
//	g, _ := rust.ManifestLoader{}.Load(ctx, deps.Request{Path: "."})
//	g.Neighbors("main") // [serde tokio ...] in Cargo.toml order
//
// Only the [dependencies] table is read. Dev, build, and target-specific
// dependencies are not part of the graph.
//
// [deps.Direct]: github.com/matzehuels/depgraph/pkg/deps.Direct
package rust
