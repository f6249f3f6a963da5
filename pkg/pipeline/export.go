package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/errors"
	"github.com/matzehuels/depgraph/pkg/observability"
	"github.com/matzehuels/depgraph/pkg/render"
	"github.com/matzehuels/depgraph/pkg/render/d2"
	"github.com/matzehuels/depgraph/pkg/render/nodelink"
)

// Export writes edges as D2 text next to opts.Output and renders the image
// with opts.Renderer. Problems are recorded as report warnings; the .d2 file
// is kept whatever happens to rendering.
//
// When the d2 executable is missing, the graphviz renderer is used instead.
func (r *Runner) Export(ctx context.Context, report *Report, edges []dag.Edge, highlight []string, opts Options) {
	logger := r.logger(opts)
	start := time.Now()
	defer func() { report.Stats.ExportTime = time.Since(start) }()

	text := d2.Text(edges)
	report.D2 = text

	src := d2.SourcePath(opts.Output)
	if err := d2.WriteFile(src, text); err != nil {
		report.warn(errors.ErrCodeExportTarget, err.Error())
		logger.Warn("could not save D2 file", "path", src, "err", err)
		return
	}
	report.addArtifact("d2", src)
	logger.Info("saved D2 file", "path", src, "edges", len(edges))

	renderer := opts.Renderer
	if renderer == RendererNone {
		return
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, renderer)
	renderStart := time.Now()

	var err error
	if renderer == RendererD2 {
		err = r.D2.Render(ctx, src, opts.Output)
		if stderrors.Is(err, d2.ErrNotInstalled) {
			report.warn(errors.ErrCodeExportTarget, "d2 is not installed; rendered with graphviz instead")
			logger.Warn("d2 not found, falling back to graphviz")
			renderer = RendererGraphviz
		}
	}
	if renderer == RendererGraphviz {
		err = renderGraphviz(ctx, edges, report.Root, highlight, opts.Output)
	}
	hooks.OnRenderComplete(ctx, renderer, time.Since(renderStart), err)

	if err != nil {
		report.warn(errors.ErrCodeExportTarget, fmt.Sprintf("render %s: %v", opts.Output, err))
		logger.Warn("rendering failed, kept D2 file", "renderer", renderer, "path", src, "err", err)
		return
	}
	report.addArtifact(render.FormatOf(opts.Output), opts.Output)
	logger.Info("rendered image", "renderer", renderer, "path", opts.Output)
}

func renderGraphviz(ctx context.Context, edges []dag.Edge, root string, highlight []string, output string) error {
	dot := nodelink.ToDOT(edges, nodelink.Options{Root: root, Highlight: highlight})
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return err
	}
	data, err := render.Convert(svg, render.FormatOf(output))
	if err != nil {
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
