package pipeline

import (
	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/dag/order"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// Report is the outcome of a pipeline run. It is returned to CLI callers and
// serialized as the HTTP API response.
type Report struct {
	Operation string `json:"operation"`
	Mode      string `json:"mode"`
	Source    string `json:"source"`
	Root      string `json:"root,omitempty"`

	// Visit and Edges are set by visualize and bfs.
	Visit []string   `json:"visit,omitempty"`
	Edges []dag.Edge `json:"edges,omitempty"`

	// LoadOrder is set by order. CycleEdges lists edges whose removal
	// breaks every cycle, when there is one.
	LoadOrder  *order.Result `json:"load_order,omitempty"`
	CycleEdges []dag.Edge    `json:"cycle_edges,omitempty"`

	// D2 is the exported edge list text.
	D2 string `json:"d2,omitempty"`

	Artifacts []Artifact `json:"artifacts,omitempty"`
	Warnings  []Warning  `json:"warnings,omitempty"`
	Notes     []string   `json:"notes,omitempty"`
	Stats     Stats      `json:"stats"`
}

// Artifact is a file written by the export stage.
type Artifact struct {
	Kind string `json:"kind"` // "d2", "svg", "png" or "pdf"
	Path string `json:"path"`
}

// Warning is a non-fatal problem encountered during a run.
type Warning struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (r *Report) warn(code errors.Code, msg string) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: msg})
}

func (r *Report) addArtifact(kind, path string) {
	r.Artifacts = append(r.Artifacts, Artifact{Kind: kind, Path: path})
}

// HasCycle reports whether a load order was computed and found a cycle.
func (r *Report) HasCycle() bool {
	return r.LoadOrder != nil && r.LoadOrder.HasCycle
}

// Artifact returns the path of the first artifact of kind, or "".
func (r *Report) Artifact(kind string) string {
	for _, a := range r.Artifacts {
		if a.Kind == kind {
			return a.Path
		}
	}
	return ""
}
