package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/depgraph/pkg/pipeline"
)

// stdout receives all user-facing output. Tests replace it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors, cycles
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleBlocked = lipgloss.NewStyle().Foreground(colorRed)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints graph statistics on a single line.
func printStats(s pipeline.Stats) {
	parts := []string{
		fmt.Sprintf("%d nodes", s.NodeCount),
		fmt.Sprintf("%d edges", s.EdgeCount),
		fmt.Sprintf("loaded in %s", s.LoadTime.Round(time.Millisecond)),
	}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Reports
// =============================================================================

// printReport prints a pipeline report for humans.
func printReport(r *pipeline.Report) {
	printSuccess("Loaded %s", StyleHighlight.Render(r.Source))
	printStats(r.Stats)
	printNewline()

	switch r.Operation {
	case pipeline.OperationOrder:
		printLoadOrder(r)
	default:
		printKeyValue("Root", r.Root)
		printKeyValue("Visited", fmt.Sprintf("%d packages", len(r.Visit)))
		printDetail("%s", strings.Join(r.Visit, " "))
		if r.Operation == pipeline.OperationBFS && len(r.Edges) > 0 {
			printNewline()
			for _, line := range strings.Split(r.D2, "\n") {
				printDetail("%s", line)
			}
		}
	}

	for _, note := range r.Notes {
		printInfo("%s", note)
	}
	for _, w := range r.Warnings {
		printWarning("%s", w.Message)
	}
	if len(r.Artifacts) > 0 {
		printNewline()
		printSuccess("Wrote %d files", len(r.Artifacts))
		for _, a := range r.Artifacts {
			printFile(a.Path)
		}
	}
}

func printLoadOrder(r *pipeline.Report) {
	res := r.LoadOrder
	if res == nil {
		return
	}
	printKeyValue("Load order", fmt.Sprintf("%d of %d packages", len(res.Order), r.Stats.NodeCount))
	for i, name := range res.Order {
		printDetail("%3d. %s", i+1, name)
	}
	if !res.HasCycle {
		return
	}

	printNewline()
	printWarning("Dependency cycle: %d packages cannot be loaded", len(res.CycleNodes))
	blocked := make([]string, len(res.CycleNodes))
	for i, name := range res.CycleNodes {
		blocked[i] = styleBlocked.Render(name)
	}
	fmt.Fprintln(stdout, "  "+strings.Join(blocked, StyleDim.Render(", ")))
	if len(r.CycleEdges) > 0 {
		printDetail("Removing these dependencies breaks every cycle:")
		for _, e := range r.CycleEdges {
			printDetail("  %s -> %s", e.From, e.To)
		}
	}
}
