// Package d2 exports dependency edges as D2 diagram source and drives the
// external d2 binary that renders it.
//
// The text form is deliberately neutral: one "source -> destination" line
// per edge, in the order given, with no deduplication or sorting. It is valid
// D2 and readable enough to diff by hand.
//
//	text := d2.Text(walk.BFS(g, "app").Edges)
//	if err := d2.WriteFile("deps.d2", text); err != nil { ... }
//	err := d2.Binary{}.Render(ctx, "deps.d2", "deps.svg")
package d2

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/matzehuels/depgraph/pkg/dag"
)

// DefaultBinary is the executable looked up on PATH when Binary.Path is empty.
const DefaultBinary = "d2"

// ErrNotInstalled is returned by [Binary.Render] when the d2 executable
// cannot be found.
var ErrNotInstalled = errors.New("d2 executable not found")

// Text renders edges as newline-joined "source -> destination" lines with
// no trailing newline. An empty edge list yields an empty string.
func Text(edges []dag.Edge) string {
	lines := make([]string, len(edges))
	for i, e := range edges {
		lines[i] = e.From + " -> " + e.To
	}
	return strings.Join(lines, "\n")
}

// WriteFile stores text at path. A non-empty text that does not end in a
// newline gets one, so the saved file is [Text] plus "\n"; empty text is
// written as an empty file.
func WriteFile(path, text string) error {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SourcePath returns the .d2 path stored next to an output artifact:
// "out/deps.svg" becomes "out/deps.d2".
func SourcePath(output string) string {
	if i := strings.LastIndexByte(output, '.'); i > strings.LastIndexAny(output, `/\`) {
		return output[:i] + ".d2"
	}
	return output + ".d2"
}

// Binary renders D2 files by running the d2 executable.
type Binary struct {
	// Path is the executable to run. Empty means [DefaultBinary] from PATH.
	Path string
}

// Available reports whether the executable can be found.
func (b Binary) Available() bool {
	_, err := exec.LookPath(b.path())
	return err == nil
}

// Render runs "d2 <src> <out>". It returns [ErrNotInstalled] when the binary
// is missing and a wrapped error with d2's stderr when rendering fails.
func (b Binary) Render(ctx context.Context, src, out string) error {
	bin, err := exec.LookPath(b.path())
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotInstalled, b.path())
	}

	cmd := exec.CommandContext(ctx, bin, src, out)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("d2: %v: %s", err, strings.TrimSpace(errBuf.String()))
	}
	return nil
}

func (b Binary) path() string {
	if b.Path == "" {
		return DefaultBinary
	}
	return b.Path
}
