package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// Document is the JSON representation of a graph.
type Document struct {
	Nodes []Node     `json:"nodes"`
	Edges []dag.Edge `json:"edges,omitempty"`
}

// Node is one package entry of a [Document].
type Node struct {
	ID   string   `json:"id"`
	Deps []string `json:"deps,omitempty"`
}

// NewDocument converts g to its JSON representation. Nodes appear in graph
// node order; names only referenced as dependencies carry no deps.
func NewDocument(g *dag.Graph) Document {
	doc := Document{Nodes: make([]Node, 0, g.NodeCount())}
	for _, id := range g.Nodes() {
		n := Node{ID: id}
		if deps := g.Neighbors(id); len(deps) > 0 {
			n.Deps = append([]string(nil), deps...)
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	return doc
}

// Graph builds a graph from the document. Node ids and dependency names
// must be valid package names, and each id may appear only once.
func (d Document) Graph() (*dag.Graph, error) {
	lists := make(map[string][]string, len(d.Nodes))
	var order []string
	declare := func(id string) {
		if _, ok := lists[id]; !ok {
			lists[id] = nil
			order = append(order, id)
		}
	}

	for i, n := range d.Nodes {
		if err := errors.ValidateGraphName(n.ID); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if _, dup := lists[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeMalformedSource, "duplicate node %q", n.ID)
		}
		for _, dep := range n.Deps {
			if err := errors.ValidateGraphName(dep); err != nil {
				return nil, fmt.Errorf("node %s: %w", n.ID, err)
			}
		}
		declare(n.ID)
		lists[n.ID] = append(lists[n.ID], n.Deps...)
	}
	for _, e := range d.Edges {
		if err := errors.ValidateGraphName(e.From); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
		if err := errors.ValidateGraphName(e.To); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
		declare(e.From)
		lists[e.From] = append(lists[e.From], e.To)
	}

	g := dag.New()
	for _, id := range order {
		g.Declare(id, lists[id]...)
	}
	return g, nil
}

// WriteJSON encodes g as an indented JSON document and writes it to w.
func WriteJSON(g *dag.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *dag.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadJSON decodes a JSON document from r into a graph.
// Malformed JSON and invalid names are reported as MALFORMED_SOURCE.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedSource, err, "decode graph document")
	}
	return doc.Graph()
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// A missing or unreadable file is reported as SOURCE_UNAVAILABLE.
func ImportJSON(path string) (*dag.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
