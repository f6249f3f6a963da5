package crates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/depgraph/pkg/buildinfo"
	"github.com/matzehuels/depgraph/pkg/cache"
	"github.com/matzehuels/depgraph/pkg/integrations"
)

// DefaultBaseURL is the public crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// CrateInfo holds metadata for one version of a Rust crate.
//
// Dependencies include only "normal" (non-dev, non-optional) dependencies,
// in the order the registry lists them.
type CrateInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Dependencies []string `json:"dependencies,omitempty"`
	Description  string   `json:"description,omitempty"`
	License      string   `json:"license,omitempty"`
	Repository   string   `json:"repository,omitempty"`
}

// Client provides access to the crates.io package registry API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client with the given cache backend.
// An empty baseURL selects [DefaultBaseURL]; any compatible mirror works.
//
// The client sends a User-Agent header as required by crates.io API policy.
func NewClient(backend cache.Cache, cacheTTL time.Duration, baseURL string) *Client {
	headers := map[string]string{
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{
		Client:  integrations.NewClient(backend, "crates:", cacheTTL, headers),
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// BaseURL returns the registry root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchCrate retrieves metadata for a crate. An empty version or "latest"
// selects the crate's max_version.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns [integrations.ErrNotFound] if the crate or version doesn't exist
// and [integrations.ErrNetwork] for HTTP failures.
func (c *Client) FetchCrate(ctx context.Context, crate, version string, refresh bool) (*CrateInfo, error) {
	if version == "latest" {
		version = ""
	}
	key := crate + "@" + version

	var info CrateInfo
	err := c.Cached(ctx, key, refresh, &info, func() error {
		return c.fetch(ctx, crate, version, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, crate, version string, info *CrateInfo) error {
	var data crateResponse
	url := fmt.Sprintf("%s/crates/%s", c.baseURL, integrations.PathEscape(crate))
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}

	if version == "" {
		version = data.Crate.MaxVersion
	}
	deps, err := c.fetchDeps(ctx, crate, version)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: crate %s version %s", err, crate, version)
		}
		return err
	}

	*info = CrateInfo{
		Name:         data.Crate.Name,
		Version:      version,
		Description:  data.Crate.Description,
		License:      data.Crate.License,
		Repository:   data.Crate.Repository,
		Dependencies: deps,
	}
	return nil
}

func (c *Client) fetchDeps(ctx context.Context, crate, version string) ([]string, error) {
	url := fmt.Sprintf("%s/crates/%s/%s/dependencies", c.baseURL,
		integrations.PathEscape(crate), integrations.PathEscape(version))

	var data depsResponse
	if err := c.Get(ctx, url, &data); err != nil {
		return nil, err
	}

	var deps []string
	for _, d := range data.Dependencies {
		if d.Kind == "normal" && !d.Optional {
			deps = append(deps, d.CrateID)
		}
	}
	return deps, nil
}

type crateResponse struct {
	Crate struct {
		Name        string `json:"name"`
		MaxVersion  string `json:"max_version"`
		Description string `json:"description"`
		License     string `json:"license"`
		Repository  string `json:"repository"`
	} `json:"crate"`
}

type depsResponse struct {
	Dependencies []struct {
		CrateID  string `json:"crate_id"`
		Kind     string `json:"kind"`
		Optional bool   `json:"optional"`
	} `json:"dependencies"`
}
