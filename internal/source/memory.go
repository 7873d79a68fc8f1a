package source

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory Source for tests and embedding. The zero value is
// not usable; construct with NewMemory.
//
// Writes (Add*, Set*) and reads may interleave from different goroutines;
// a mutex keeps each call atomic so readers always observe a consistent
// snapshot.
type Memory struct {
	mu   sync.RWMutex
	runs map[string]*memRun
}

type memRun struct {
	series map[string]*memSeries
	assets map[string]map[string][]byte // plugin -> asset name -> content
}

type memSeries struct {
	plugin  string // type marker, empty for untyped series
	records []Record
}

// NewMemory creates an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{runs: make(map[string]*memRun)}
}

// AddRecord appends a record to the (run, tag) series, creating run and
// series as needed. plugin is the series' type marker; the first non-empty
// marker wins. Records are kept sorted by step, insertion order preserved
// within equal steps.
func (m *Memory) AddRecord(run, tag, plugin string, rec Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.run(run)
	s, ok := r.series[tag]
	if !ok {
		s = &memSeries{}
		r.series[tag] = s
	}
	if s.plugin == "" {
		s.plugin = plugin
	}
	s.records = append(s.records, rec)
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Step < s.records[j].Step
	})
}

// AddRun ensures a run exists even if it has no series. Used to model runs
// with no text data.
func (m *Memory) AddRun(run string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.run(run)
}

// SetPluginAsset stores a legacy sidecar file for a run.
func (m *Memory) SetPluginAsset(run, plugin, name string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.run(run)
	if r.assets[plugin] == nil {
		r.assets[plugin] = make(map[string][]byte)
	}
	r.assets[plugin][name] = content
}

func (m *Memory) run(name string) *memRun {
	r, ok := m.runs[name]
	if !ok {
		r = &memRun{
			series: make(map[string]*memSeries),
			assets: make(map[string]map[string][]byte),
		}
		m.runs[name] = r
	}
	return r
}

// Runs implements Source. Results are sorted for determinism.
func (m *Memory) Runs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.runs))
	for name := range m.runs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Tags implements Source.
func (m *Memory) Tags(ctx context.Context, run string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[run]
	if !ok {
		return nil, nil
	}
	tags := make([]string, 0, len(r.series))
	for tag := range r.series {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// PluginTags implements Source.
func (m *Memory) PluginTags(ctx context.Context, run, plugin string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[run]
	if !ok {
		return nil, nil
	}
	var tags []string
	for tag, s := range r.series {
		if s.plugin == plugin {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// PluginAsset implements Source.
func (m *Memory) PluginAsset(ctx context.Context, run, plugin, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[run]
	if !ok {
		return nil, ErrAssetNotFound
	}
	content, ok := r.assets[plugin][name]
	if !ok {
		return nil, ErrAssetNotFound
	}
	return content, nil
}

// Records implements Source.
func (m *Memory) Records(ctx context.Context, run, tag string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[run]
	if !ok {
		return nil, ErrSeriesNotFound
	}
	s, ok := r.series[tag]
	if !ok {
		return nil, ErrSeriesNotFound
	}
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}
