// Package walk computes breadth-first reachability over a dependency graph.
//
// [BFS] visits every package reachable from a root by following dependency
// edges and records the edges it crosses. The edge list is the induced
// subgraph handed to diagram exporters.
package walk

import "github.com/matzehuels/depgraph/pkg/dag"

// Result is the outcome of a breadth-first walk.
type Result struct {
	Root  string     `json:"root"`
	Order []string   `json:"order"` // first-visit order, root first
	Edges []dag.Edge `json:"edges"` // crossed edges in visitation order
}

// BFS walks g breadth-first from root.
//
// Each dequeued package that has not been visited yet is appended to the
// order; then every dependency, in declared order, contributes one edge and
// is enqueued unless it has already been visited. A package may sit in the
// frontier more than once but is only emitted on its first dequeue. Edges
// are never deduplicated.
//
// A root unknown to g is still visited: the result is just [root] with no
// edges.
func BFS(g *dag.Graph, root string) Result {
	res := Result{Root: root, Order: []string{}, Edges: []dag.Edge{}}
	visited := make(map[string]bool)
	queue := []string{root}

	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if visited[pkg] {
			continue
		}
		visited[pkg] = true
		res.Order = append(res.Order, pkg)

		for _, dep := range g.Neighbors(pkg) {
			res.Edges = append(res.Edges, dag.Edge{From: pkg, To: dep})
			if !visited[dep] {
				queue = append(queue, dep)
			}
		}
	}
	return res
}

// Reachable reports the set of packages reachable from root, root included.
func Reachable(g *dag.Graph, root string) map[string]bool {
	out := make(map[string]bool)
	for _, n := range BFS(g, root).Order {
		out[n] = true
	}
	return out
}

// Subgraph returns a new graph holding only the edges crossed by a walk, in
// crossing order. Visited leaves without crossed edges stay referenced as
// dependencies; a lone root is declared with no dependencies.
func (r Result) Subgraph() *dag.Graph {
	g := dag.New()
	lists := make(map[string][]string)
	var order []string
	for _, n := range r.Order {
		order = append(order, n)
		lists[n] = nil
	}
	for _, e := range r.Edges {
		lists[e.From] = append(lists[e.From], e.To)
	}
	for _, n := range order {
		if deps := lists[n]; len(deps) > 0 || n == r.Root {
			g.Declare(n, deps...)
		}
	}
	return g
}
