// Package pkg provides the libraries behind depgraph, a dependency graph
// analyzer.
//
// # Overview
//
// depgraph loads a package dependency graph, walks it breadth-first from a
// root, computes the order packages must be loaded in and exports edge lists
// as D2 diagrams. The pkg directory is organized into four areas:
//
//  1. [dag] - The graph model and its algorithms ([walk], [order])
//  2. [deps] - Graph sources: test descriptions, Cargo manifests, crates.io
//  3. [render] - D2 text, the d2 binary and the in-process Graphviz renderer
//  4. [pipeline] - Orchestration (load → analyze → export)
//
// Supporting packages: [cache] (file, Redis and null caches), [integrations]
// (registry HTTP clients), [httputil] (retry with backoff), [io] (JSON graph
// documents), [errors] (coded errors and validators), [observability]
// (instrumentation hooks) and [buildinfo].
//
// # Architecture
//
//	Test description / Cargo.toml / JSON / crates.io
//	         ↓
//	    [deps] loaders (build one read-only dag.Graph)
//	         ↓
//	    [walk].BFS or [order].Resolve
//	         ↓
//	    [render/d2] text → d2 binary or Graphviz
//	         ↓
//	    .d2 + SVG/PNG/PDF
//
// # Quick Start
//
//	g := dag.FromMap(map[string][]string{"app": {"lib"}, "lib": {"core"}})
//
//	res := walk.BFS(g, "app")
//	fmt.Println(res.Order) // [app lib core]
//
//	lo := order.Resolve(g)
//	fmt.Println(lo.Order) // [core lib app]
//
//	fmt.Println(d2.Text(res.Edges))
//	// app -> lib
//	// lib -> core
//
// Or run the whole sequence through the pipeline:
//
//	runner := pipeline.NewRunner(nil, logger)
//	report, err := runner.Execute(ctx, pipeline.Options{
//	    Operation: pipeline.OperationOrder,
//	    Request:   deps.Request{Path: "graph.txt"},
//	})
//
// [dag]: github.com/matzehuels/depgraph/pkg/dag
// [walk]: github.com/matzehuels/depgraph/pkg/dag/walk
// [order]: github.com/matzehuels/depgraph/pkg/dag/order
// [deps]: github.com/matzehuels/depgraph/pkg/deps
// [render]: github.com/matzehuels/depgraph/pkg/render
// [render/d2]: github.com/matzehuels/depgraph/pkg/render/d2
// [pipeline]: github.com/matzehuels/depgraph/pkg/pipeline
// [cache]: github.com/matzehuels/depgraph/pkg/cache
// [integrations]: github.com/matzehuels/depgraph/pkg/integrations
// [httputil]: github.com/matzehuels/depgraph/pkg/httputil
// [io]: github.com/matzehuels/depgraph/pkg/io
// [errors]: github.com/matzehuels/depgraph/pkg/errors
// [observability]: github.com/matzehuels/depgraph/pkg/observability
// [buildinfo]: github.com/matzehuels/depgraph/pkg/buildinfo
package pkg
