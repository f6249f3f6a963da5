// Package dag provides the dependency graph model shared by every analysis in
// depgraph.
//
// # Overview
//
// A [Graph] maps each package name to the ordered list of packages it
// depends on. The name is the identity: there is no separate node type.
// Loaders build a graph once with [New] and [Graph.Declare] (or [FromMap])
// and hand it to the analysis packages, which only ever read it.
//
//	g := dag.New()
//	g.Declare("app", "http", "log")
//	g.Declare("http", "log")
//
// # Sparse Lookups
//
// Leaf dependencies usually have no entry of their own. They are still
// nodes: [Graph.Nodes] lists them, and [Graph.Neighbors] returns an empty
// slice for them, exactly as it does for names the graph has never seen.
// No lookup fails.
//
// # Cycles
//
// The graph does not reject cycles or self-loops. Whether a cycle matters is
// decided by the analysis: breadth-first reachability ([walk]) tolerates
// them, load ordering ([order]) reports them.
//
// # Concurrency
//
// Graph is not safe for concurrent mutation. Once construction is finished
// it may be read from multiple goroutines.
//
// [walk]: github.com/matzehuels/depgraph/pkg/dag/walk
// [order]: github.com/matzehuels/depgraph/pkg/dag/order
package dag
