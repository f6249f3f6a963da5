// Package crates provides an HTTP client for the crates.io API.
//
//	client := crates.NewClient(cache.NewNullCache(), 24*time.Hour, "")
//	info, err := client.FetchCrate(ctx, "serde", "latest", false)
//	fmt.Println(info.Name, info.Version, info.Dependencies)
//
// Only "normal" dependencies are reported. Development, build, and optional
// dependencies are filtered out. Responses are cached per crate and version;
// pass refresh=true to bypass the cache.
package crates
