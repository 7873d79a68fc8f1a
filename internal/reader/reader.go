// Package reader renders the records of one (run, tag) series into
// sanitized HTML.
package reader

import (
	"context"
	"errors"
	"fmt"

	"github.com/textboard/textboard/internal/discovery"
	"github.com/textboard/textboard/internal/render"
	"github.com/textboard/textboard/internal/source"
)

// NotFoundError reports a record lookup for a (run, tag) pair absent from
// the discovery index's current view.
type NotFoundError struct {
	Run string
	Tag string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("NOT_FOUND: no text series for run %q tag %q", e.Run, e.Tag)
}

// IsNotFound returns true if the error is a missing-series error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// RenderedRecord is one record of a series with its tensor rendered to
// sanitized HTML. Step and WallTime pass through from the source unchanged.
type RenderedRecord struct {
	Step     int64
	WallTime float64
	HTML     string
}

// Reader fetches and renders text records. It is stateless per call and
// safe for concurrent use across (run, tag) pairs.
type Reader struct {
	src   source.Source
	index *discovery.Index
}

// New creates a Reader over src, validating lookups against ix.
func New(src source.Source, ix *discovery.Index) *Reader {
	return &Reader{src: src, index: ix}
}

// Records returns the rendered records for (run, tag), ordered by step
// ascending as delivered by the source; ties keep source emission order and
// are never re-sorted here.
//
// The pair is validated against the discovery index's current view rather
// than trusting the caller to have checked: a stale index on the caller's
// side must not leak unlisted series.
func (r *Reader) Records(ctx context.Context, run, tag string) ([]RenderedRecord, error) {
	ok, err := r.index.Has(ctx, run, tag)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	if !ok {
		return nil, &NotFoundError{Run: run, Tag: tag}
	}

	records, err := r.src.Records(ctx, run, tag)
	if err != nil {
		if errors.Is(err, source.ErrSeriesNotFound) {
			return nil, &NotFoundError{Run: run, Tag: tag}
		}
		return nil, fmt.Errorf("read records: %w", err)
	}

	rendered := make([]RenderedRecord, len(records))
	for i, rec := range records {
		rendered[i] = RenderedRecord{
			Step:     rec.Step,
			WallTime: rec.WallTime,
			HTML:     render.TextArrayToHTML(rec.Tensor),
		}
	}
	return rendered, nil
}
