package testgraph

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/errors"
)

func TestParse(t *testing.T) {
	in := `A: B C

B: D
C: D
D:
`
	g, st, err := Parse(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := map[string][]string{"A": {"B", "C"}, "B": {"D"}, "C": {"D"}, "D": {}}
	for name, deps := range want {
		if got := g.Neighbors(name); !reflect.DeepEqual(got, deps) {
			t.Errorf("Neighbors(%s) = %v, want %v", name, got, deps)
		}
	}
	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Errorf("Nodes() = %v", got)
	}
	if st != (Stats{Lines: 5, Declared: 4}) {
		t.Errorf("Stats = %+v", st)
	}
}

func TestParse_Skipped(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no colon", "A B C"},
		{"empty name", ": B"},
		{"name with space", "A B: C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reasons []string
			g, st, err := Parse(strings.NewReader(tt.line+"\nX: Y\n"), func(line int, reason string) {
				if line != 1 {
					t.Errorf("skip reported on line %d, want 1", line)
				}
				reasons = append(reasons, reason)
			})
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if st.Skipped != 1 || len(reasons) != 1 {
				t.Errorf("Skipped = %d, reasons = %v", st.Skipped, reasons)
			}
			if g.NodeCount() != 2 {
				t.Errorf("NodeCount() = %d, want 2 (X, Y)", g.NodeCount())
			}
		})
	}
}

func TestParse_InvalidDependencyDropped(t *testing.T) {
	var reasons []string
	g, st, err := Parse(strings.NewReader("A: B B->C D\n"), func(line int, reason string) {
		reasons = append(reasons, reason)
	})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got, want := g.Neighbors("A"), []string{"B", "D"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors(A) = %v, want %v", got, want)
	}
	if st.Declared != 1 || st.Skipped != 0 || st.Dropped != 1 {
		t.Errorf("Stats = %+v, want 1 declared, 0 skipped, 1 dropped", st)
	}
	if len(reasons) != 1 || !strings.Contains(reasons[0], "B->C") {
		t.Errorf("reasons = %v, want one naming B->C", reasons)
	}
}

func TestParse_Whitespace(t *testing.T) {
	g, _, err := Parse(strings.NewReader("  A :  B\t C  \r\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Neighbors("A"); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("Neighbors(A) = %v", got)
	}
}

func TestParse_LaterDeclarationReplaces(t *testing.T) {
	g, _, err := Parse(strings.NewReader("A: B\nC: A\nA: D E\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Neighbors("A"); !reflect.DeepEqual(got, []string{"D", "E"}) {
		t.Errorf("Neighbors(A) = %v, want [D E]", got)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestParse_DuplicateDeps(t *testing.T) {
	g, _, _ := Parse(strings.NewReader("A: B B\n"), nil)
	if got := g.Neighbors("A"); !reflect.DeepEqual(got, []string{"B", "B"}) {
		t.Errorf("Neighbors(A) = %v, duplicates must be kept", got)
	}
}

func TestLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte("A: B\nbogus\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var logged []string
	g, err := Loader{}.Load(context.Background(), deps.Request{
		Path:   path,
		Logger: func(format string, args ...any) { logged = append(logged, format) },
	})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !g.Has("B") {
		t.Error("graph should contain B")
	}
	if len(logged) != 2 {
		t.Errorf("logged %d messages, want 2 (line + summary)", len(logged))
	}
}

func TestLoader_Errors(t *testing.T) {
	_, err := Loader{}.Load(context.Background(), deps.Request{Path: filepath.Join(t.TempDir(), "missing.txt")})
	if !errors.Is(err, errors.ErrCodeSourceUnavailable) {
		t.Errorf("missing file error = %v, want SOURCE_UNAVAILABLE", err)
	}

	_, err = Loader{}.Load(context.Background(), deps.Request{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty path error = %v, want INVALID_INPUT", err)
	}
}
