package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/depgraph/pkg/buildinfo"
	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/deps/testgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
	graphio "github.com/matzehuels/depgraph/pkg/io"
	"github.com/matzehuels/depgraph/pkg/pipeline"
	"github.com/matzehuels/depgraph/pkg/render/d2"
)

// HeaderAnalysisID carries the id of the analysis that produced a response.
const HeaderAnalysisID = "X-Analysis-ID"

// MaxBodyBytes limits the size of a request body.
const MaxBodyBytes = 4 << 20

// Body kinds, reported as the mode of a response.
const (
	kindGraph = "graph"
	kindText  = "text"
	kindNodes = "nodes"
)

// Request is the body accepted by the analysis endpoints.
type Request struct {
	Graph map[string][]string `json:"graph,omitempty"`
	Text  string              `json:"text,omitempty"`
	Nodes []graphio.Node      `json:"nodes,omitempty"`

	// Root is the traversal root. Empty picks pipeline.DefaultRoot.
	Root string `json:"root,omitempty"`

	// All makes /v1/export emit every edge of the graph instead of the walk.
	All bool `json:"all,omitempty"`
}

// Response wraps a pipeline report with its analysis id.
type Response struct {
	ID string `json:"id"`
	*pipeline.Report
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	ID      string      `json:"id"`
	Code    errors.Code `json:"code"`
	Message string      `json:"error"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handlers serves the API endpoints with a pipeline runner.
type Handlers struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewHandlers creates handlers. Only the runner's analysis stage is used.
func NewHandlers(runner *pipeline.Runner, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{runner: runner, logger: logger}
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

// Traverse walks the graph breadth-first from the requested root.
func (h *Handlers) Traverse(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, pipeline.OperationBFS, nil)
}

// Order computes the load order of the graph.
func (h *Handlers) Order(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, pipeline.OperationOrder, nil)
}

// Export returns the D2 edge list of the walk, or of the whole graph when
// the request sets "all".
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, pipeline.OperationVisualize, func(req Request, g *dag.Graph, report *pipeline.Report) {
		if !req.All {
			return
		}
		report.Root, report.Visit = "", nil
		report.Edges = g.Edges()
		report.D2 = d2.Text(report.Edges)
	})
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request, op string, finish func(Request, *dag.Graph, *pipeline.Report)) {
	id := uuid.NewString()
	w.Header().Set(HeaderAnalysisID, id)

	var req Request
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, id, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	g, kind, notes, err := req.graph()
	if err != nil {
		h.writeError(w, id, err)
		return
	}
	if req.Root != "" {
		if err := errors.ValidateGraphName(req.Root); err != nil {
			h.writeError(w, id, errors.Wrap(errors.ErrCodeInvalidPackage, err, "invalid root"))
			return
		}
	}

	report := h.runner.Analyze(r.Context(), g, pipeline.Options{
		Operation: op,
		Mode:      kind,
		Root:      req.Root,
		Logger:    h.logger.With("id", id),
	})
	report.Source = "request"
	report.Notes = append(notes, report.Notes...)
	if finish != nil {
		finish(req, g, report)
	}

	h.logger.Info("analysis",
		"id", id,
		"operation", op,
		"nodes", report.Stats.NodeCount,
		"edges", report.Stats.EdgeCount,
		"cycle", report.HasCycle())
	writeJSON(w, http.StatusOK, Response{ID: id, Report: report})
}

// graph builds the graph described by the request. Lines of a text body
// that cannot be parsed are skipped and returned as notes.
func (req Request) graph() (*dag.Graph, string, []string, error) {
	given := 0
	for _, set := range []bool{req.Graph != nil, req.Text != "", req.Nodes != nil} {
		if set {
			given++
		}
	}
	if given != 1 {
		return nil, "", nil, errors.New(errors.ErrCodeInvalidInput, `request needs exactly one of "graph", "text" or "nodes"`)
	}

	switch {
	case req.Graph != nil:
		for name, list := range req.Graph {
			if err := errors.ValidateGraphName(name); err != nil {
				return nil, "", nil, err
			}
			for _, dep := range list {
				if err := errors.ValidateGraphName(dep); err != nil {
					return nil, "", nil, fmt.Errorf("dependency of %s: %w", name, err)
				}
			}
		}
		return dag.FromMap(req.Graph), kindGraph, nil, nil

	case req.Text != "":
		var notes []string
		g, _, err := testgraph.Parse(strings.NewReader(req.Text), func(line int, reason string) {
			notes = append(notes, fmt.Sprintf("line %d skipped: %s", line, reason))
		})
		if err != nil {
			return nil, "", nil, errors.Wrap(errors.ErrCodeMalformedSource, err, "read text graph")
		}
		return g, kindText, notes, nil

	default:
		g, err := graphio.Document{Nodes: req.Nodes}.Graph()
		if err != nil {
			return nil, "", nil, err
		}
		return g, kindNodes, nil, nil
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, id string, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "id", id, "code", code, "err", err)
	} else {
		h.logger.Debug("request rejected", "id", id, "code", code, "err", err)
	}
	writeJSON(w, status, ErrorResponse{ID: id, Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPackage, errors.ErrCodeInvalidOperation,
		errors.ErrCodeInvalidMode, errors.ErrCodeMalformedSource:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeUnknownRoot:
		return http.StatusNotFound
	case errors.ErrCodeSourceUnavailable, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
