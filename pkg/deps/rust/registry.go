package rust

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/depgraph/pkg/cache"
	"github.com/matzehuels/depgraph/pkg/dag"
	"github.com/matzehuels/depgraph/pkg/deps"
	"github.com/matzehuels/depgraph/pkg/errors"
	"github.com/matzehuels/depgraph/pkg/integrations"
	"github.com/matzehuels/depgraph/pkg/integrations/crates"
)

// RegistryLoader looks a crate up on crates.io (or a mirror given by
// [deps.Request.URL]) and returns its direct dependencies as a one-level
// graph rooted at [deps.ManifestRoot].
type RegistryLoader struct {
	Cache    cache.Cache   // response cache, nil for none
	CacheTTL time.Duration // defaults to [deps.DefaultCacheTTL]
}

func (RegistryLoader) Name() string { return "crates.io" }

func (l RegistryLoader) Load(ctx context.Context, req deps.Request) (*dag.Graph, error) {
	if err := errors.ValidateCratesPackageName(req.Package); err != nil {
		return nil, err
	}
	if req.URL != "" {
		if err := errors.ValidateURL(req.URL); err != nil {
			return nil, err
		}
	}

	ttl := l.CacheTTL
	if ttl <= 0 {
		ttl = deps.DefaultCacheTTL
	}
	client := crates.NewClient(l.Cache, ttl, req.URL)

	info, err := client.FetchCrate(ctx, req.Package, req.Version, req.Refresh)
	switch {
	case err == nil:
	case stderrors.Is(err, integrations.ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "crate %s", req.Package)
	case stderrors.Is(err, integrations.ErrNetwork):
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s from %s", req.Package, client.BaseURL())
	default:
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "fetch %s", req.Package)
	}

	req.Logf("crates.io: %s %s has %d direct dependencies", info.Name, info.Version, len(info.Dependencies))
	return deps.Direct(deps.ManifestRoot, info.Dependencies), nil
}

var _ deps.Loader = RegistryLoader{}
