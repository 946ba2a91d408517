// Package ports defines the interfaces crossed by adapters.
package ports

import (
	"context"

	"github.com/modelcat/modelcat/core/catalog"
)

// Fetcher fetches a document, reusing an on-disk cache. When a file
// exists at cachePath and force is false the cached contents are
// returned unchanged with no freshness check; otherwise the document is
// fetched, persisted verbatim, and returned.
type Fetcher interface {
	Fetch(ctx context.Context, url, cachePath string, force bool) (string, error)
}

// Source supplies model descriptors for a target library.
type Source interface {
	// Modules enumerates the library's plain model modules, including
	// ones that failed to load.
	Modules() []catalog.ModuleClasses

	// AutoModules enumerates the library's auto/wrapper modules.
	AutoModules() []catalog.ModuleClasses
}
