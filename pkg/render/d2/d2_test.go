package d2

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/depgraph/pkg/dag"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		edges []dag.Edge
		want  string
	}{
		{"empty", nil, ""},
		{"single", []dag.Edge{{From: "a", To: "b"}}, "a -> b"},
		{
			name:  "keeps order and duplicates",
			edges: []dag.Edge{{From: "b", To: "c"}, {From: "a", To: "b"}, {From: "b", To: "c"}},
			want:  "b -> c\na -> b\nb -> c",
		},
		{"self loop", []dag.Edge{{From: "a", To: "a"}}, "a -> a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.edges); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps.d2")
	if err := WriteFile(path, "a -> b"); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a -> b\n" {
		t.Errorf("file content = %q, want %q", data, "a -> b\n")
	}
}

func TestWriteFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.d2")
	if err := WriteFile(path, Text(nil)); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("file content = %q, want empty", data)
	}
}

func TestWriteFile_BadDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "deps.d2"), "a -> b")
	if err == nil {
		t.Error("WriteFile() into missing dir should fail")
	}
}

func TestSourcePath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"graph.svg", "graph.d2"},
		{"out/graph.png", "out/graph.d2"},
		{"graph", "graph.d2"},
		{"dir.v1/graph", "dir.v1/graph.d2"},
	}
	for _, tt := range tests {
		if got := SourcePath(tt.in); got != tt.want {
			t.Errorf("SourcePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBinary_Missing(t *testing.T) {
	b := Binary{Path: "depgraph-no-such-d2-binary"}
	if b.Available() {
		t.Fatal("Available() = true for missing binary")
	}
	err := b.Render(context.Background(), "in.d2", "out.svg")
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Render() error = %v, want ErrNotInstalled", err)
	}
}
