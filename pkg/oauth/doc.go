// Package oauth builds third-party authorization URLs for the supported
// login providers and issues the mock session returned by the callback.
//
// Client ids are resolved once per Registry from a Source. If that first
// resolution fails, placeholder ids are cached instead and the failure is
// never retried:
//
//	registry := oauth.NewRegistry(oauth.NewConfigSource(cfg.OAuth))
//	loginURL, err := registry.BuildAuthURL(ctx, oauth.Google)
//
// Concurrent first callers share a single fetch. Reset clears the cache and
// exists for tests.
package oauth
