package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/textboard/textboard/internal/source"
)

// WriteEvent appends one record to the (run, tag) series. plugin is the
// series' type marker, empty for untyped series. The assigned seq preserves
// emission order within equal steps.
func (s *Store) WriteEvent(ctx context.Context, run, tag, plugin string, rec source.Record) error {
	dims, err := json.Marshal(rec.Tensor.Dims)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	elements, err := json.Marshal(rec.Tensor.Values)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events (run, tag, plugin, step, wall_time, dims, elements)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run, tag, plugin, rec.Step, rec.WallTime, string(dims), string(elements))
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// WritePluginAsset stores a legacy sidecar file for a run. Re-importing the
// same asset overwrites it.
func (s *Store) WritePluginAsset(ctx context.Context, run, plugin, name string, content []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plugin_assets (run, plugin, name, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run, plugin, name) DO UPDATE SET content = excluded.content
	`, run, plugin, name, content)
	if err != nil {
		return fmt.Errorf("write plugin asset: %w", err)
	}
	return nil
}

// ImportFrom copies every run, series and the named plugin's assets from
// src into the store. Series carrying the plugin's type marker keep it;
// other series are imported untyped so legacy manifests still resolve
// against them.
func (s *Store) ImportFrom(ctx context.Context, src source.Source, plugin, assetName string) error {
	runs, err := src.Runs(ctx)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	for _, run := range runs {
		typed := make(map[string]bool)
		pluginTags, err := src.PluginTags(ctx, run, plugin)
		if err != nil {
			return fmt.Errorf("import run %q: %w", run, err)
		}
		for _, tag := range pluginTags {
			typed[tag] = true
		}

		tags, err := src.Tags(ctx, run)
		if err != nil {
			return fmt.Errorf("import run %q: %w", run, err)
		}
		for _, tag := range tags {
			records, err := src.Records(ctx, run, tag)
			if err != nil {
				return fmt.Errorf("import run %q tag %q: %w", run, tag, err)
			}
			marker := ""
			if typed[tag] {
				marker = plugin
			}
			for _, rec := range records {
				if err := s.WriteEvent(ctx, run, tag, marker, rec); err != nil {
					return fmt.Errorf("import run %q tag %q: %w", run, tag, err)
				}
			}
		}

		asset, err := src.PluginAsset(ctx, run, plugin, assetName)
		if err == nil {
			if err := s.WritePluginAsset(ctx, run, plugin, assetName, asset); err != nil {
				return fmt.Errorf("import run %q: %w", run, err)
			}
		} else if !errors.Is(err, source.ErrAssetNotFound) {
			return fmt.Errorf("import run %q: %w", run, err)
		}
	}
	return nil
}
