package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/deps/sources"
	"github.com/matzehuels/depgraph/pkg/errors"
	"github.com/matzehuels/depgraph/pkg/pipeline"
)

// Output formats of the analyze command.
const (
	formatText = "text"
	formatJSON = "json"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	operation string
	mode      string
	pkg       string // traversal root, or crate name in registry modes
	path      string
	url       string
	version   string
	output    string
	renderer  string
	format    string
	refresh   bool
	noCache   bool
	pick      bool // offer the root picker when no root is given
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	opts := analyzeOpts{
		operation: pipeline.OperationVisualize,
		mode:      pipeline.DefaultMode,
		format:    formatText,
		pick:      true,
	}

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Visualize, walk or order a dependency graph",
		Long: `Load a dependency graph and run one operation over it.

Operations:
  visualize  walk from the root, write the edges as D2 and render an image
  bfs        walk from the root and print the visit order and edges
  order      print the order packages can be loaded in and report cycles

Sources (--mode):
  test       decided by --path: .txt test graph, .json document, else Cargo.toml
  manifest   Cargo.toml file or a directory containing one
  json       JSON graph document
  registry   crate on crates.io named by --package (alias: real)

Examples:
  depgraph analyze graph.txt --package A
  depgraph analyze --operation order --path deps.json
  depgraph analyze --mode manifest --path . -o deps.png
  depgraph analyze --mode registry --package serde --version 1.0.200`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if opts.path != "" && opts.path != args[0] {
					return errors.New(errors.ErrCodeInvalidInput, "path given both as argument and --path")
				}
				opts.path = args[0]
			}
			if !cmd.Flags().Changed("url") {
				opts.url = c.config.Registry.URL
			}
			if !cmd.Flags().Changed("renderer") {
				opts.renderer = c.config.Render.Renderer
			}
			return c.runAnalyze(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.operation, "operation", opts.operation, "operation: "+strings.Join(pipeline.Operations, ", "))
	f.StringVar(&opts.mode, "mode", opts.mode, "graph source: "+strings.Join(sources.Modes, ", "))
	f.StringVarP(&opts.pkg, "package", "p", "", "root package (crate name in registry mode)")
	f.StringVar(&opts.path, "path", "", "graph file or manifest directory")
	f.StringVar(&opts.url, "url", "", "registry base URL (default from config, else crates.io)")
	f.StringVar(&opts.version, "version", "", "crate version in registry mode (default latest)")
	f.StringVarP(&opts.output, "output", "o", "", "image file; the .d2 source is saved beside it (default "+pipeline.DefaultOutput+" for visualize)")
	f.StringVar(&opts.renderer, "renderer", "", "renderer: "+strings.Join(pipeline.Renderers, ", ")+" (default from config, else d2)")
	f.StringVar(&opts.format, "format", opts.format, "report format: text, json")
	f.BoolVar(&opts.refresh, "refresh", false, "bypass the registry cache")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the registry cache")
	f.BoolVar(&opts.pick, "pick", opts.pick, "choose the root interactively when --package is omitted on a terminal")

	completions := map[string][]string{
		"operation": pipeline.Operations,
		"mode":      sources.Modes,
		"renderer":  pipeline.Renderers,
		"format":    {formatText, formatJSON},
	}
	for name, values := range completions {
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}

	return cmd
}

// runAnalyze loads the graph, optionally lets the user pick a root, runs the
// operation and prints the report.
func (c *CLI) runAnalyze(ctx context.Context, o analyzeOpts) error {
	if o.format != formatText && o.format != formatJSON {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be text or json)", o.format)
	}

	opts := pipeline.Options{
		Operation: o.operation,
		Mode:      o.mode,
		Root:      o.pkg,
		Request: deps.Request{
			Path:    o.path,
			URL:     o.url,
			Version: o.version,
			Refresh: o.refresh,
		},
		Output:   o.output,
		Renderer: o.renderer,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner(ctx, o.noCache)
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	showSpinner := !sources.NeedsPath(opts.Mode) && c.Logger.GetLevel() > log.DebugLevel && isTerminal(os.Stderr)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Fetching %s...", opts.Source()), showSpinner)
	spinner.Start()
	g, err := runner.Load(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	loadTime := prog.elapsed()

	if c.shouldPick(o, opts) && g.NodeCount() > 1 {
		root, err := pickRoot(g)
		if err != nil {
			return err
		}
		if root == "" {
			printDetail("No selection made")
			return nil
		}
		opts.Root = root
	}

	report := runner.ExecuteGraph(ctx, g, opts)
	report.Stats.LoadTime = loadTime
	prog.done(fmt.Sprintf("Finished %s", opts.Operation))

	if o.format == formatJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report)
	if opts.Operation == pipeline.OperationBFS && len(report.Visit) > 0 {
		printNewline()
		printNextStep("Draw this walk", visualizeCommandLine(opts, report.Root))
	}
	return nil
}

// shouldPick reports whether the root picker may run: a file source, an
// operation that needs a root, none given, text output and a terminal on
// both ends.
func (c *CLI) shouldPick(o analyzeOpts, opts pipeline.Options) bool {
	return o.pick &&
		opts.Root == "" &&
		opts.Operation != pipeline.OperationOrder &&
		sources.NeedsPath(opts.Mode) &&
		o.format == formatText &&
		isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// visualizeCommandLine suggests the command that renders the same walk.
func visualizeCommandLine(opts pipeline.Options, root string) string {
	args := []string{appName, "analyze", "--mode", opts.Mode}
	if sources.NeedsPath(opts.Mode) {
		args = append(args, "--path", opts.Request.Path, "--package", root)
	} else {
		args = append(args, "--package", opts.Request.Package)
		if opts.Request.Version != "" {
			args = append(args, "--version", opts.Request.Version)
		}
	}
	return strings.Join(args, " ")
}
