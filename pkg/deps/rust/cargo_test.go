package rust

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/errors"
)

const cargoContent = `[package]
name = "my-crate"
version = "0.1.0"

[dependencies]
tokio = { version = "1.0", features = ["full"] }
serde = "1.0"
anyhow = "1"

[dependencies.clap]
version = "4"

[dev-dependencies]
pretty_assertions = "1.0"
`

func TestManifestLoader_Supports(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"Cargo.toml", true},
		{"cargo.toml", true},
		{"CARGO.TOML", true},
		{"project/Cargo.toml", true},
		{"package.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := (ManifestLoader{}).Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestParseManifest(t *testing.T) {
	m := ParseManifest([]byte(cargoContent))

	if m.Lenient {
		t.Error("valid TOML should not use the line scanner")
	}
	if m.Package != "my-crate" || m.Version != "0.1.0" {
		t.Errorf("package = %s %s", m.Package, m.Version)
	}
	want := []string{"tokio", "serde", "anyhow", "clap"}
	if !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v (document order, dev-dependencies excluded)", m.Dependencies, want)
	}
}

func TestParseManifest_Lenient(t *testing.T) {
	content := `[package]
name = "broken
[dependencies]
# a comment = here
serde = "1.0"
this line has no equals sign
tokio = { version = "1" 
serde = "again"
bad name = "x"

[dev-dependencies]
criterion = "0.5"
`
	m := ParseManifest([]byte(content))
	if !m.Lenient {
		t.Fatal("invalid TOML should fall back to the line scanner")
	}
	if want := []string{"serde", "tokio"}; !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", m.Dependencies, want)
	}
	if m.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", m.Skipped)
	}
}

func TestParseManifest_WorkspaceInherited(t *testing.T) {
	content := `[package]
name = "member"
version.workspace = true
edition.workspace = true

[dependencies]
serde.workspace = true
anyhow = "1"
tokio = { workspace = true, features = ["rt"] }
`
	m := ParseManifest([]byte(content))
	if m.Lenient {
		t.Error("inherited package fields are valid TOML")
	}
	if m.Package != "member" || m.Version != "" {
		t.Errorf("package = %q version = %q, want member and no version", m.Package, m.Version)
	}
	if want := []string{"serde", "anyhow", "tokio"}; !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", m.Dependencies, want)
	}
}

func TestParseManifest_LenientDottedKeys(t *testing.T) {
	content := `[package
[dependencies]
serde.workspace = true
anyhow = "1"
`
	m := ParseManifest([]byte(content))
	if !m.Lenient {
		t.Fatal("invalid TOML should fall back to the line scanner")
	}
	if want := []string{"serde", "anyhow"}; !reflect.DeepEqual(m.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", m.Dependencies, want)
	}
}

func TestParseManifest_NoDependencies(t *testing.T) {
	m := ParseManifest([]byte("[package]\nname = \"x\"\n"))
	if len(m.Dependencies) != 0 {
		t.Errorf("Dependencies = %v, want none", m.Dependencies)
	}
}

func TestManifestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(cargoContent), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{dir, filepath.Join(dir, ManifestFile)} {
		g, err := ManifestLoader{}.Load(context.Background(), deps.Request{Path: path})
		if err != nil {
			t.Fatalf("Load(%s) error: %v", path, err)
		}
		if got, want := g.Neighbors(deps.ManifestRoot), []string{"tokio", "serde", "anyhow", "clap"}; !reflect.DeepEqual(got, want) {
			t.Errorf("Neighbors(main) = %v, want %v", got, want)
		}
		if g.NodeCount() != 5 {
			t.Errorf("NodeCount() = %d, want 5", g.NodeCount())
		}
	}
}

func TestManifestLoader_Missing(t *testing.T) {
	_, err := ManifestLoader{}.Load(context.Background(), deps.Request{Path: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeSourceUnavailable) {
		t.Errorf("Load() error = %v, want SOURCE_UNAVAILABLE", err)
	}
}

func TestManifestPath(t *testing.T) {
	dir := t.TempDir()
	if got := ManifestPath(dir); got != filepath.Join(dir, "Cargo.toml") {
		t.Errorf("ManifestPath(dir) = %q", got)
	}
	file := filepath.Join(dir, "Other.toml")
	if got := ManifestPath(file); got != file {
		t.Errorf("ManifestPath(file) = %q", got)
	}
}
