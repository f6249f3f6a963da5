// Package pipeline runs depgraph's load → analyze → export sequence.
//
// The same [Runner] backs the CLI and the HTTP API so both report identical
// results for identical input.
//
// # Stages
//
//  1. Load: pick a loader for the source mode and build the graph
//  2. Analyze: breadth-first walk from the root, or load order of the graph
//  3. Export: write the D2 edge list and render it to an image
//
// Export failures never fail a run. They are recorded in [Report.Warnings]
// with code EXPORT_TARGET_FAILURE and the .d2 file stays on disk.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	report, err := runner.Execute(ctx, pipeline.Options{
//	    Operation: pipeline.OperationVisualize,
//	    Mode:      "test",
//	    Root:      "A",
//	    Request:   deps.Request{Path: "graph.txt"},
//	    Output:    "graph.svg",
//	})
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/deps/sources"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// Operations.
const (
	OperationVisualize = "visualize" // walk from root, export and render edges
	OperationBFS       = "bfs"       // walk from root, report only
	OperationOrder     = "order"     // load order of the whole graph
)

// Renderers.
const (
	RendererD2       = "d2"       // external d2 binary
	RendererGraphviz = "graphviz" // in-process Graphviz
	RendererNone     = "none"     // write the .d2 file only
)

const (
	// DefaultOutput is the artifact written by visualize when no output is set.
	DefaultOutput = "graph.svg"

	// DefaultMode reads the source named by the path, as the original tool did.
	DefaultMode = sources.ModeTest
)

// Operations lists accepted operations in help order.
var Operations = []string{OperationVisualize, OperationBFS, OperationOrder}

// Renderers lists accepted renderers in help order.
var Renderers = []string{RendererD2, RendererGraphviz, RendererNone}

// Options configures a pipeline run.
type Options struct {
	Operation string       `json:"operation"`
	Mode      string       `json:"mode"`
	Root      string       `json:"root,omitempty"`   // traversal root; see DefaultRoot
	Request   deps.Request `json:"-"`                // passed to the loader
	Output    string       `json:"output,omitempty"` // image path; the .d2 file is written beside it
	Renderer  string       `json:"renderer,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Operation == "" {
		o.Operation = OperationVisualize
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Renderer == "" {
		o.Renderer = RendererD2
	}
	if err := ValidateOperation(o.Operation); err != nil {
		return err
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	if o.Operation == OperationVisualize && o.Output == "" {
		o.Output = DefaultOutput
	}

	if sources.NeedsPath(o.Mode) {
		if o.Request.Path == "" {
			return errors.New(errors.ErrCodeInvalidInput, "mode %q requires --path", o.Mode)
		}
	} else {
		if o.Request.Package == "" {
			o.Request.Package = o.Root
		}
		if o.Request.Package == "" {
			return errors.New(errors.ErrCodeInvalidInput, "mode %q requires --package", o.Mode)
		}
		o.Root = deps.ManifestRoot
	}
	if o.Root != "" {
		if err := errors.ValidateGraphName(o.Root); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPackage, err, "invalid root")
		}
	}
	o.validated = true
	return nil
}

// Source describes where the graph comes from, for logs and reports.
func (o Options) Source() string {
	if sources.NeedsPath(o.Mode) {
		return o.Request.Path
	}
	if o.Request.Version != "" {
		return o.Request.Package + "@" + o.Request.Version
	}
	return o.Request.Package
}

// ValidateOperation checks that op is a known operation.
func ValidateOperation(op string) error {
	if !slices.Contains(Operations, op) {
		return errors.New(errors.ErrCodeInvalidOperation, "invalid operation: %q (must be one of: %s)", op, strings.Join(Operations, ", "))
	}
	return nil
}

// ValidateMode checks that mode is a known source mode.
func ValidateMode(mode string) error {
	if !slices.Contains(sources.Modes, mode) {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: %s)", mode, strings.Join(sources.Modes, ", "))
	}
	return nil
}

// ValidateRenderer checks that r is a known renderer.
func ValidateRenderer(r string) error {
	if !slices.Contains(Renderers, r) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid renderer: %q (must be one of: %s)", r, strings.Join(Renderers, ", "))
	}
	return nil
}

// Stats holds timing and size information for a run.
type Stats struct {
	NodeCount   int           `json:"node_count"`
	EdgeCount   int           `json:"edge_count"`
	LoadTime    time.Duration `json:"load_time"`
	AnalyzeTime time.Duration `json:"analyze_time"`
	ExportTime  time.Duration `json:"export_time"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, %d edges", s.NodeCount, s.EdgeCount)
}
