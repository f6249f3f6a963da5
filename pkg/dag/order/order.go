// Package order computes a dependency-first load order for a dependency
// graph and reports what a cycle prevents from being ordered.
//
// # Algorithm
//
// [Resolve] runs Kahn's algorithm over every node of the graph, not just the
// nodes reachable from one root. Each package starts with a pending count
// equal to its number of distinct dependencies. Packages with nothing pending
// are queued; placing a package releases one pending dependency of each of
// its dependents, found through a reverse index built once up front.
//
// # Cycles
//
// When a cycle exists some packages never reach zero. All of them are
// reported in [Result.CycleNodes]: that is the full blocked set, which
// includes packages that merely depend on a cycle, not the minimal cycle.
//
// # Tie-breaking
//
// Packages that become ready at the same time are placed first-in-first-out,
// seeded in the graph's node order (first appearance). The result is
// deterministic for a given graph.
package order

import "github.com/matzehuels/depgraph/pkg/dag"

// Result is a load order with its cycle report.
type Result struct {
	// Order lists packages so that every dependency precedes its dependents.
	// When HasCycle is true it only covers the packages that could be placed.
	Order []string `json:"order"`
	// HasCycle reports whether some packages could not be placed.
	HasCycle bool `json:"has_cycle"`
	// CycleNodes lists the packages left unplaced, in node order.
	CycleNodes []string `json:"cycle_nodes"`
	// Residual maps each unplaced package to its pending dependency count at
	// termination. Every value is positive.
	Residual map[string]int `json:"residual,omitempty"`
}

// Complete reports whether every package was placed.
func (r Result) Complete() bool { return !r.HasCycle }

// Blocked returns the diagnostic list of packages that could not be ordered.
// When no package at all could be placed it is the whole graph.
func (r Result) Blocked() []string { return r.CycleNodes }

// Resolve computes the load order of g.
func Resolve(g *dag.Graph) Result {
	nodes := g.Nodes()
	pending := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))

	for _, p := range nodes {
		seen := make(map[string]bool)
		for _, d := range g.Neighbors(p) {
			if seen[d] {
				continue
			}
			seen[d] = true
			pending[p]++
			dependents[d] = append(dependents[d], p)
		}
	}

	var queue []string
	for _, n := range nodes {
		if pending[n] == 0 {
			queue = append(queue, n)
		}
	}

	res := Result{Order: make([]string, 0, len(nodes)), CycleNodes: []string{}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		res.Order = append(res.Order, n)

		for _, p := range dependents[n] {
			pending[p]--
			if pending[p] == 0 {
				queue = append(queue, p)
			}
		}
	}

	if len(res.Order) == len(nodes) {
		return res
	}

	res.HasCycle = true
	res.Residual = make(map[string]int)
	for _, n := range nodes {
		if pending[n] > 0 {
			res.CycleNodes = append(res.CycleNodes, n)
			res.Residual[n] = pending[n]
		}
	}
	return res
}
