package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depgraph/pkg/cache"
	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/dag/order"
	"github.com/matzehuels/depgraph/pkg/dag/walk"
	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/deps/sources"
	"github.com/matzehuels/depgraph/pkg/errors"
	"github.com/matzehuels/depgraph/pkg/observability"
	"github.com/matzehuels/depgraph/pkg/render/d2"
)

// Runner executes pipeline runs. It holds no per-run state, so one Runner
// can serve concurrent runs with different options.
type Runner struct {
	Cache    cache.Cache   // registry response cache
	CacheTTL time.Duration // registry cache lifetime, 0 for the loader default
	Logger   *log.Logger
	D2       d2.Binary // d2 executable used by the d2 renderer
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → analyze → export pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	g, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	report := r.ExecuteGraph(ctx, g, opts)
	report.Stats.LoadTime = loadTime
	return report, nil
}

// ExecuteGraph runs the analyze and export stages over an already loaded
// graph. Callers that load with [Runner.Load] and then choose a root use it
// to finish the run.
func (r *Runner) ExecuteGraph(ctx context.Context, g *dag.Graph, opts Options) *Report {
	report := r.Analyze(ctx, g, opts)
	if opts.Output != "" && opts.Operation != OperationBFS {
		edges, highlight := report.Edges, []string(nil)
		if report.LoadOrder != nil {
			edges, highlight = g.Edges(), report.LoadOrder.CycleNodes
		}
		r.Export(ctx, report, edges, highlight, opts)
	}
	return report
}

// Load builds the graph for opts using the loader selected by its mode.
func (r *Runner) Load(ctx context.Context, opts Options) (*dag.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	loader, err := sources.ForMode(opts.Mode, opts.Request.Path, sources.Options{Cache: r.Cache, CacheTTL: r.CacheTTL})
	if err != nil {
		return nil, err
	}
	req := opts.Request
	if req.Logger == nil {
		req.Logger = logger.Debugf
	}

	source := opts.Source()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, loader.Name(), source)
	start := time.Now()

	g, err := loader.Load(ctx, req)
	nodes := 0
	if g != nil {
		nodes = g.NodeCount()
	}
	hooks.OnLoadComplete(ctx, loader.Name(), source, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded graph",
		"loader", loader.Name(),
		"source", source,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))
	return g, nil
}

// Analyze runs the operation of opts over g. It never fails: an unknown
// root yields a one-node walk plus a note, an empty graph without a root
// yields an empty walk plus a note, a cycle yields a partial order.
func (r *Runner) Analyze(ctx context.Context, g *dag.Graph, opts Options) *Report {
	logger := r.logger(opts)
	report := &Report{
		Operation: opts.Operation,
		Mode:      opts.Mode,
		Source:    opts.Source(),
		Stats:     Stats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()},
	}

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, opts.Operation, g.NodeCount())
	start := time.Now()

	switch opts.Operation {
	case OperationOrder:
		res := order.Resolve(g)
		report.LoadOrder = &res
		if res.HasCycle {
			report.CycleEdges = order.BackEdges(g)
			logger.Warn("dependency cycle", "blocked", res.CycleNodes, "cut", report.CycleEdges)
		}
	default:
		root := opts.Root
		if root == "" {
			root = DefaultRoot(g)
			if root == "" {
				report.Notes = append(report.Notes, "graph is empty, nothing to walk")
				logger.Info("graph is empty, nothing to walk")
				break
			}
			logger.Info("no root given", "root", root)
		}
		report.Root = root
		if !g.Has(root) {
			msg := fmt.Sprintf("root %q does not appear in the graph", root)
			report.Notes = append(report.Notes, msg)
			logger.Info(msg, "code", errors.ErrCodeUnknownRoot)
		}
		res := walk.BFS(g, root)
		report.Visit, report.Edges = res.Order, res.Edges
		report.D2 = d2.Text(res.Edges)
	}

	report.Stats.AnalyzeTime = time.Since(start)
	hooks.OnAnalyzeComplete(ctx, opts.Operation, report.Stats.AnalyzeTime)
	logger.Debug("analyzed graph", "operation", opts.Operation, "duration", report.Stats.AnalyzeTime)
	return report
}

// DefaultRoot picks a traversal root when none was given: the synthetic
// manifest root if present, else the first package nothing depends on,
// else the first package. An empty graph yields "".
func DefaultRoot(g *dag.Graph) string {
	if g.Has(deps.ManifestRoot) {
		return deps.ManifestRoot
	}
	if src := g.Sources(); len(src) > 0 {
		return src[0]
	}
	if nodes := g.Nodes(); len(nodes) > 0 {
		return nodes[0]
	}
	return ""
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
