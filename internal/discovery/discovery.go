// Package discovery builds the run-to-tag index for text data.
//
// Two independent providers feed the index: the current recording format
// marks a series as text-typed on its metadata, while the legacy format
// declares series names in a JSON sidecar at
// <run>/plugins/text/tensors.json. The providers are merged by a pure
// union, so the legacy path can be deleted later without touching the merge
// or the current-format provider.
//
// The index is read-through: every call reflects the source's current
// snapshot and no state is cached here.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/textboard/textboard/internal/source"
)

// PluginName is the type marker text series carry in the current format and
// the directory legacy manifests live under.
const PluginName = "text"

// legacyAssetName is the fixed file name of the legacy manifest.
const legacyAssetName = "tensors.json"

// ManifestError reports an unparsable legacy manifest. It poisons only the
// offending run's legacy contribution; discovery for other runs and the
// run's own current-format tags proceed.
type ManifestError struct {
	Run string
	Err error
}

// Error implements the error interface.
func (e *ManifestError) Error() string {
	return fmt.Sprintf("malformed legacy manifest for run %q: %v", e.Run, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// IsManifestError returns true if the error is a malformed-manifest error.
// Uses errors.As to handle wrapped errors.
func IsManifestError(err error) bool {
	var me *ManifestError
	return errors.As(err, &me)
}

// Index answers discovery queries against a source. It holds the source
// handle and a logger as explicit values so independent instances can
// coexist; there is no package-level state.
type Index struct {
	src source.Source
	log zerolog.Logger
}

// New creates an index over src. Manifest failures are logged to log at
// warn level.
func New(src source.Source, log zerolog.Logger) *Index {
	return &Index{src: src, log: log}
}

// RunToTags returns the merged run-to-tag mapping. Tag slices are sorted;
// runs contributing no tags are omitted.
func (ix *Index) RunToTags(ctx context.Context) (map[string][]string, error) {
	runs, err := ix.src.Runs(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery: %w", err)
	}
	index := make(map[string][]string)
	for _, run := range runs {
		tags, err := ix.runTags(ctx, run)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			index[run] = tags
		}
	}
	return index, nil
}

// Active reports whether any run contributes at least one text tag by
// either mechanism. Tag presence alone is checked; no records are
// materialized, so this is cheap enough for liveness probes.
func (ix *Index) Active(ctx context.Context) (bool, error) {
	runs, err := ix.src.Runs(ctx)
	if err != nil {
		return false, fmt.Errorf("discovery: %w", err)
	}
	for _, run := range runs {
		tags, err := ix.runTags(ctx, run)
		if err != nil {
			return false, err
		}
		if len(tags) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Has reports whether (run, tag) is present in the current view. The record
// reader validates against this rather than trusting a caller's possibly
// stale index.
func (ix *Index) Has(ctx context.Context, run, tag string) (bool, error) {
	tags, err := ix.runTags(ctx, run)
	if err != nil {
		return false, err
	}
	for _, t := range tags {
		if t == tag {
			return true, nil
		}
	}
	return false, nil
}

// runTags merges both providers for one run. A malformed manifest drops the
// legacy contribution for this run only.
func (ix *Index) runTags(ctx context.Context, run string) ([]string, error) {
	current, err := ix.currentTags(ctx, run)
	if err != nil {
		return nil, err
	}
	legacy, err := ix.legacyTags(ctx, run)
	if err != nil {
		if !IsManifestError(err) {
			return nil, err
		}
		ix.log.Warn().Str("run", run).Err(err).Msg("skipping legacy manifest")
		legacy = nil
	}
	return union(current, legacy), nil
}

// currentTags is the current-format provider: series carrying the text type
// marker.
func (ix *Index) currentTags(ctx context.Context, run string) ([]string, error) {
	tags, err := ix.src.PluginTags(ctx, run, PluginName)
	if err != nil {
		return nil, fmt.Errorf("discovery: run %q: %w", run, err)
	}
	return tags, nil
}

// legacyTags is the backward-compatibility provider: names declared in the
// run's tensors.json sidecar, kept only when the run's ordinary tensor
// stream actually contains a series under that name. Declared-but-absent
// names are skipped, not errors.
func (ix *Index) legacyTags(ctx context.Context, run string) ([]string, error) {
	raw, err := ix.src.PluginAsset(ctx, run, PluginName, legacyAssetName)
	if errors.Is(err, source.ErrAssetNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("discovery: run %q: %w", run, err)
	}

	var declared []string
	if err := json.Unmarshal(raw, &declared); err != nil {
		return nil, &ManifestError{Run: run, Err: err}
	}

	live, err := ix.src.Tags(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("discovery: run %q: %w", run, err)
	}
	liveSet := make(map[string]bool, len(live))
	for _, tag := range live {
		liveSet[tag] = true
	}

	var tags []string
	for _, name := range declared {
		if liveSet[name] {
			tags = append(tags, name)
		} else {
			ix.log.Debug().Str("run", run).Str("tag", name).
				Msg("legacy manifest declares absent series")
		}
	}
	return tags, nil
}

// union merges two tag lists, deduplicated and sorted. A name present in
// both contributes once.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, tag := range list {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	sort.Strings(out)
	return out
}
