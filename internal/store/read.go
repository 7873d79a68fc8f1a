package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/textboard/textboard/internal/source"
	"github.com/textboard/textboard/internal/tensor"
)

// Runs implements source.Source.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT run FROM events
		UNION
		SELECT DISTINCT run FROM plugin_assets
		ORDER BY run ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// Tags implements source.Source.
func (s *Store) Tags(ctx context.Context, run string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT tag FROM events WHERE run = ? ORDER BY tag ASC
	`, run)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// PluginTags implements source.Source.
func (s *Store) PluginTags(ctx context.Context, run, plugin string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT tag FROM events
		WHERE run = ? AND plugin = ?
		ORDER BY tag ASC
	`, run, plugin)
	if err != nil {
		return nil, fmt.Errorf("query plugin tags: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// PluginAsset implements source.Source.
func (s *Store) PluginAsset(ctx context.Context, run, plugin, name string) ([]byte, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT content FROM plugin_assets
		WHERE run = ? AND plugin = ? AND name = ?
	`, run, plugin, name).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, source.ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query plugin asset: %w", err)
	}
	return content, nil
}

// Records implements source.Source. Rows are ordered by step, then by the
// seq assigned at write time, so ties keep emission order deterministically.
func (s *Store) Records(ctx context.Context, run, tag string) ([]source.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT step, wall_time, dims, elements FROM events
		WHERE run = ? AND tag = ?
		ORDER BY step ASC, seq ASC
	`, run, tag)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []source.Record
	for rows.Next() {
		var (
			step     int64
			wallTime float64
			dimsJSON string
			elsJSON  string
		)
		if err := rows.Scan(&step, &wallTime, &dimsJSON, &elsJSON); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var dims []int
		if err := json.Unmarshal([]byte(dimsJSON), &dims); err != nil {
			return nil, fmt.Errorf("decode dims: %w", err)
		}
		var values []string
		if err := json.Unmarshal([]byte(elsJSON), &values); err != nil {
			return nil, fmt.Errorf("decode elements: %w", err)
		}
		t, err := tensor.New(dims, values)
		if err != nil {
			return nil, fmt.Errorf("run %q tag %q step %d: %w", run, tag, step, err)
		}
		records = append(records, source.Record{Step: step, WallTime: wallTime, Tensor: t})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	if records == nil {
		return nil, source.ErrSeriesNotFound
	}
	return records, nil
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}
