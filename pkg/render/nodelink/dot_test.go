package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/depgraph/pkg/dag"
)

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT([]dag.Edge{{From: "a", To: "b"}}, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"a" [label="a"]`) {
		t.Error("ToDOT() output missing node a")
	}
	if !strings.Contains(dot, `"b" [label="b"]`) {
		t.Error("ToDOT() output missing node b")
	}
	if !strings.Contains(dot, `"a" -> "b"`) {
		t.Error("ToDOT() output missing edge")
	}
}

func TestToDOT_DuplicateEdgesKept(t *testing.T) {
	dot := ToDOT([]dag.Edge{{From: "a", To: "b"}, {From: "a", To: "b"}}, Options{})
	if n := strings.Count(dot, `"a" -> "b"`); n != 2 {
		t.Errorf("edge count = %d, want 2", n)
	}
	if n := strings.Count(dot, `"b" [`); n != 1 {
		t.Errorf("node b declared %d times, want 1", n)
	}
}

func TestToDOT_LoneRoot(t *testing.T) {
	dot := ToDOT(nil, Options{Root: "solo"})
	if !strings.Contains(dot, `"solo" [label="solo", penwidth=3]`) {
		t.Errorf("ToDOT() missing lone root node:\n%s", dot)
	}
}

func TestFmtAttrs(t *testing.T) {
	tests := []struct {
		name        string
		id, root    string
		highlighted bool
		want        int
	}{
		{"regular", "a", "", false, 1},
		{"root", "a", "a", false, 2},
		{"highlighted", "a", "", true, 2},
		{"root and highlighted", "a", "a", true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := fmtAttrs(tt.id, tt.root, tt.highlighted)
			if len(attrs) != tt.want {
				t.Errorf("fmtAttrs() = %v, want %d attrs", attrs, tt.want)
			}
			if !strings.HasPrefix(attrs[0], "label=") {
				t.Errorf("fmtAttrs() first attr = %q, want label", attrs[0])
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT([]dag.Edge{{From: "a", To: "b"}}, Options{Root: "a"})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
