package dag

import (
	"slices"
	"testing"
)

func TestNeighbors_Unknown(t *testing.T) {
	g := New()
	g.Declare("a", "b")

	for _, name := range []string{"b", "missing", ""} {
		got := g.Neighbors(name)
		if got == nil || len(got) != 0 {
			t.Errorf("Neighbors(%q) = %v, want empty non-nil slice", name, got)
		}
	}
}

func TestNeighbors_PreservesOrderAndDuplicates(t *testing.T) {
	g := New()
	g.Declare("a", "c", "b", "c")

	want := []string{"c", "b", "c"}
	if got := g.Neighbors("a"); !slices.Equal(got, want) {
		t.Errorf("Neighbors(a) = %v, want %v", got, want)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestNodes_IncludesImplicitLeaves(t *testing.T) {
	g := New()
	g.Declare("a", "b", "c")
	g.Declare("c", "d")

	want := []string{"a", "b", "c", "d"}
	if got := g.Nodes(); !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
	if !g.Has("d") {
		t.Error("Has(d) = false, want true")
	}
	if g.Declared("d") {
		t.Error("Declared(d) = true, want false")
	}
	if !g.Declared("c") {
		t.Error("Declared(c) = false, want true")
	}
}

func TestDeclare_Replaces(t *testing.T) {
	g := New()
	g.Declare("a", "b", "c")
	g.Declare("a", "d")

	if got := g.Neighbors("a"); !slices.Equal(got, []string{"d"}) {
		t.Errorf("Neighbors(a) = %v, want [d]", got)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	// Names seen once stay nodes.
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
}

func TestDeclare_CopiesInput(t *testing.T) {
	deps := []string{"b", "c"}
	g := New()
	g.Declare("a", deps...)
	deps[0] = "mutated"

	if got := g.Neighbors("a"); got[0] != "b" {
		t.Errorf("Neighbors(a)[0] = %q, want b", got[0])
	}
}

func TestSelfLoopAndCycleAccepted(t *testing.T) {
	g := New()
	g.Declare("a", "a")
	g.Declare("b", "c")
	g.Declare("c", "b")

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestEdges(t *testing.T) {
	g := New()
	g.Declare("a", "b", "c")
	g.Declare("b", "c")

	want := []Edge{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestAdjacency_IsCopy(t *testing.T) {
	g := New()
	g.Declare("a", "b")

	adj := g.Adjacency()
	adj["a"][0] = "x"
	adj["z"] = nil

	if g.Neighbors("a")[0] != "b" {
		t.Error("Adjacency() should return a deep copy")
	}
	if g.Has("z") {
		t.Error("Adjacency() mutation leaked into graph")
	}
}

func TestFromMap_Deterministic(t *testing.T) {
	m := map[string][]string{"c": {}, "a": {"c", "b"}, "b": {"c"}}
	for range 5 {
		g := FromMap(m)
		if got := g.Nodes(); !slices.Equal(got, []string{"a", "c", "b"}) {
			t.Fatalf("Nodes() = %v, want [a c b]", got)
		}
	}
}

func TestSources(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Graph)
		want  []string
	}{
		{"empty", func(*Graph) {}, nil},
		{"chain", func(g *Graph) { g.Declare("a", "b"); g.Declare("b", "c") }, []string{"a"}},
		{"two roots", func(g *Graph) { g.Declare("a", "c"); g.Declare("b", "c") }, []string{"a", "b"}},
		{"cycle", func(g *Graph) { g.Declare("a", "b"); g.Declare("b", "a") }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			tt.build(g)
			if got := g.Sources(); !slices.Equal(got, tt.want) {
				t.Errorf("Sources() = %v, want %v", got, tt.want)
			}
		})
	}
}
