// Package source defines the event-source boundary the rendering and
// discovery pipeline reads from, plus the in-memory and log-directory
// implementations.
//
// A source is a read-only view over recorded runs. Every method returns a
// consistent snapshot of whatever the backing data held at call time; the
// pipeline itself never caches, so reload consistency is the source's
// contract. Implementations must be safe for concurrent readers.
package source

import (
	"context"
	"errors"

	"github.com/textboard/textboard/internal/tensor"
)

// ErrAssetNotFound reports a missing plugin asset. Discovery treats this as
// "no legacy manifest", not as a failure.
var ErrAssetNotFound = errors.New("plugin asset not found")

// ErrSeriesNotFound reports a (run, tag) pair with no recorded series.
var ErrSeriesNotFound = errors.New("series not found")

// Record is one recorded tensor value within a series. Step is
// non-decreasing within a series but may repeat across distinct writers;
// WallTime is seconds since the Unix epoch and is never used for ordering.
type Record struct {
	Step     int64
	WallTime float64
	Tensor   tensor.Strings
}

// Source yields runs, their series, and per-series records.
//
// Records returns records ordered by step ascending; ties keep the backing
// store's emission order. Tags enumerates every series in a run regardless
// of type; PluginTags narrows to series carrying the named plugin's type
// marker. PluginAsset fetches a legacy sidecar file by name.
type Source interface {
	Runs(ctx context.Context) ([]string, error)
	Tags(ctx context.Context, run string) ([]string, error)
	PluginTags(ctx context.Context, run, plugin string) ([]string, error)
	PluginAsset(ctx context.Context, run, plugin, name string) ([]byte, error)
	Records(ctx context.Context, run, tag string) ([]Record, error)
}
