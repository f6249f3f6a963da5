// Package testgraph reads dependency graphs from line-oriented test
// descriptions.
//
// Each line declares one package and its dependencies:
//
//	A: B C
//	B: D
//	C: D
//	D:
//
// Blank lines and lines without a colon are ignored. A line whose package
// name is not a valid graph name is skipped. A dependency token that is not
// a valid graph name (for example "B->C") is dropped and the rest of the line
// is kept. When a name is declared twice, the later line replaces the
// earlier dependency list.
package testgraph

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// Stats summarizes a parse.
type Stats struct {
	Lines    int // lines read
	Declared int // lines that declared a package
	Skipped  int // non-blank lines that declared nothing
	Dropped  int // invalid dependency tokens left out of declared lines
}

// Parse reads a test description from r. onSkip, if non-nil, is called
// with the 1-based line number and reason for every skipped line and every
// dropped dependency token.
func Parse(r io.Reader, onSkip func(line int, reason string)) (*dag.Graph, Stats, error) {
	g := dag.New()
	var st Stats
	skip := func(reason string) {
		st.Skipped++
		if onSkip != nil {
			onSkip(st.Lines, reason)
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		st.Lines++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			skip("no colon")
			continue
		}
		name = strings.TrimSpace(name)
		if err := errors.ValidateGraphName(name); err != nil {
			skip(errors.UserMessage(err))
			continue
		}
		var depList []string
		for _, d := range strings.Fields(rest) {
			if err := errors.ValidateGraphName(d); err != nil {
				st.Dropped++
				if onSkip != nil {
					onSkip(st.Lines, "dropped dependency "+d+": "+errors.UserMessage(err))
				}
				continue
			}
			depList = append(depList, d)
		}
		g.Declare(name, depList...)
		st.Declared++
	}
	if err := sc.Err(); err != nil {
		return nil, st, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "read test graph")
	}
	return g, st, nil
}

// ParseFile reads the test description at path.
func ParseFile(path string, onSkip func(line int, reason string)) (*dag.Graph, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f, onSkip)
}

// Loader loads test descriptions from [deps.Request.Path].
type Loader struct{}

func (Loader) Name() string { return "testgraph" }

func (Loader) Load(ctx context.Context, req deps.Request) (*dag.Graph, error) {
	if req.Path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "test graph requires --path")
	}
	g, st, err := ParseFile(req.Path, func(line int, reason string) {
		req.Logf("%s:%d skipped: %s", req.Path, line, reason)
	})
	if err != nil {
		return nil, err
	}
	if st.Skipped > 0 {
		req.Logf("%s: %d of %d lines skipped", req.Path, st.Skipped, st.Lines)
	}
	if st.Dropped > 0 {
		req.Logf("%s: %d invalid dependencies dropped", req.Path, st.Dropped)
	}
	return g, nil
}

var _ deps.Loader = Loader{}
