package dag

import (
	"maps"
	"slices"
)

// Edge is a directed "depends-on" relation from a package to one of its
// declared dependencies.
type Edge struct {
	From string `json:"from"` // Dependent package
	To   string `json:"to"`   // Dependency
}

// Graph is a dependency graph keyed by package name.
//
// Every package maps to an ordered list of dependency names. Declaration
// order and duplicate entries are preserved. A name that only ever appears as
// a dependency is a valid node with no dependencies of its own.
//
// The zero value is not usable - use [New] or [FromMap].
type Graph struct {
	adj   map[string][]string
	nodes []string            // first-appearance order, keys and values alike
	seen  map[string]struct{} // membership for nodes
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		adj:  make(map[string][]string),
		seen: make(map[string]struct{}),
	}
}

// FromMap builds a graph from an adjacency mapping. Since Go maps carry no
// order, keys are declared in sorted order; each dependency list keeps the
// order it has in the map.
func FromMap(m map[string][]string) *Graph {
	g := New()
	for _, name := range slices.Sorted(maps.Keys(m)) {
		g.Declare(name, m[name]...)
	}
	return g
}

// Declare records the dependency list of name, replacing any list recorded
// earlier for the same name. It is the only mutation method and is meant for
// loaders building a graph; once handed to analysis code a graph is treated
// as read-only.
func (g *Graph) Declare(name string, deps ...string) {
	g.touch(name)
	g.edges -= len(g.adj[name])
	list := make([]string, 0, len(deps))
	for _, d := range deps {
		g.touch(d)
		list = append(list, d)
	}
	g.adj[name] = list
	g.edges += len(list)
}

func (g *Graph) touch(name string) {
	if _, ok := g.seen[name]; ok {
		return
	}
	g.seen[name] = struct{}{}
	g.nodes = append(g.nodes, name)
}

// Neighbors returns the declared dependencies of name in declaration order.
// Unknown names and names without a recorded entry yield an empty slice.
// The returned slice must not be modified.
func (g *Graph) Neighbors(name string) []string {
	if deps, ok := g.adj[name]; ok {
		return deps
	}
	return []string{}
}

// Nodes returns every package name in the graph: each declared key and each
// name referenced as a dependency, in order of first appearance.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodes) }

// Has reports whether name appears anywhere in the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.seen[name]
	return ok
}

// Declared reports whether name has its own dependency entry, as opposed to
// only being referenced as somebody's dependency.
func (g *Graph) Declared(name string) bool {
	_, ok := g.adj[name]
	return ok
}

// NodeCount returns the number of distinct package names.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of declared edges, duplicates included.
func (g *Graph) EdgeCount() int { return g.edges }

// Edges returns every declared edge, grouped by dependent in node order and
// in declaration order within each group.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, n := range g.nodes {
		for _, d := range g.adj[n] {
			out = append(out, Edge{From: n, To: d})
		}
	}
	return out
}

// Adjacency returns a deep copy of the declared mapping. Names that are only
// referenced as dependencies have no key.
func (g *Graph) Adjacency() map[string][]string {
	out := make(map[string][]string, len(g.adj))
	for k, v := range g.adj {
		out[k] = slices.Clone(v)
	}
	return out
}

// Sources returns nodes no other node depends on, in node order.
func (g *Graph) Sources() []string {
	dependedOn := make(map[string]bool, len(g.nodes))
	for _, deps := range g.adj {
		for _, d := range deps {
			dependedOn[d] = true
		}
	}
	var out []string
	for _, n := range g.nodes {
		if !dependedOn[n] {
			out = append(out, n)
		}
	}
	return out
}
