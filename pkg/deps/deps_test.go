package deps

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/depgraph/pkg/dag"
)

func TestDirect(t *testing.T) {
	g := Direct(ManifestRoot, []string{"serde", "tokio", "serde"})

	if got, want := g.Neighbors("main"), []string{"serde", "tokio"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors(main) = %v, want %v", got, want)
	}
	if got, want := g.Nodes(), []string{"main", "serde", "tokio"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
	for _, d := range []string{"serde", "tokio"} {
		if !g.Declared(d) || len(g.Neighbors(d)) != 0 {
			t.Errorf("%s should be declared with no dependencies", d)
		}
	}
}

func TestDirect_Empty(t *testing.T) {
	g := Direct(ManifestRoot, nil)
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Errorf("Direct(nil) = %d nodes, %d edges, want 1, 0", g.NodeCount(), g.EdgeCount())
	}
}

func TestRequestLogf(t *testing.T) {
	Request{}.Logf("no logger is fine: %d", 1)

	var got string
	req := Request{Logger: func(format string, args ...any) { got = format }}
	req.Logf("skipped line %d", 3)
	if got != "skipped line %d" {
		t.Errorf("Logger received %q", got)
	}
}

func TestLoaderFunc(t *testing.T) {
	var l Loader = LoaderFunc{ID: "static", Fn: func(ctx context.Context, req Request) (*dag.Graph, error) {
		return dag.FromMap(map[string][]string{req.Package: nil}), nil
	}}
	if l.Name() != "static" {
		t.Errorf("Name() = %q", l.Name())
	}
	g, err := l.Load(context.Background(), Request{Package: "x"})
	if err != nil || !g.Has("x") {
		t.Errorf("Load() = %v, %v", g, err)
	}
}
