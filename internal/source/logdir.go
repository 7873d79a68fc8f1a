package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/textboard/textboard/internal/tensor"
)

// EventsFileName is the per-run recording file a Logdir source reads.
const EventsFileName = "events.jsonl"

// Logdir reads runs from a directory tree: one subdirectory per run, each
// holding an events.jsonl file and optional plugin assets under
// <run>/plugins/<plugin>/<name>.
//
// Every call re-reads the filesystem, so a reload of the directory is
// observed atomically per call with no cache invalidation to manage.
type Logdir struct {
	root string
}

// event is one line of events.jsonl.
type event struct {
	Tag      string   `json:"tag"`
	Step     int64    `json:"step"`
	WallTime float64  `json:"wall_time"`
	Plugin   string   `json:"plugin,omitempty"`
	Dims     []int    `json:"dims,omitempty"`
	Values   []string `json:"values"`
}

// OpenLogdir validates that root exists and returns a Logdir source over it.
func OpenLogdir(root string) (*Logdir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open logdir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open logdir: %s is not a directory", root)
	}
	return &Logdir{root: root}, nil
}

// Runs implements Source: every subdirectory with an events file is a run.
func (l *Logdir) Runs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var runs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.root, e.Name(), EventsFileName)); err == nil {
			runs = append(runs, e.Name())
		}
	}
	sort.Strings(runs)
	return runs, nil
}

// Tags implements Source.
func (l *Logdir) Tags(ctx context.Context, run string) ([]string, error) {
	byTag, err := l.readRun(run)
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// PluginTags implements Source. A series carries a plugin marker when its
// first marked event names that plugin.
func (l *Logdir) PluginTags(ctx context.Context, run, plugin string) ([]string, error) {
	byTag, err := l.readRun(run)
	if err != nil {
		return nil, err
	}
	var tags []string
	for tag, evs := range byTag {
		for _, ev := range evs {
			if ev.Plugin == plugin {
				tags = append(tags, tag)
				break
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// PluginAsset implements Source.
func (l *Logdir) PluginAsset(ctx context.Context, run, plugin, name string) ([]byte, error) {
	path := filepath.Join(l.root, run, "plugins", plugin, name)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read plugin asset %s: %w", path, err)
	}
	return content, nil
}

// Records implements Source. Events are sorted by step; file order breaks
// ties.
func (l *Logdir) Records(ctx context.Context, run, tag string) ([]Record, error) {
	byTag, err := l.readRun(run)
	if err != nil {
		return nil, err
	}
	evs, ok := byTag[tag]
	if !ok {
		return nil, ErrSeriesNotFound
	}
	records := make([]Record, 0, len(evs))
	for _, ev := range evs {
		t, err := tensor.New(ev.Dims, ev.Values)
		if err != nil {
			return nil, fmt.Errorf("run %q tag %q step %d: %w", run, tag, ev.Step, err)
		}
		records = append(records, Record{Step: ev.Step, WallTime: ev.WallTime, Tensor: t})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Step < records[j].Step
	})
	return records, nil
}

func (l *Logdir) readRun(run string) (map[string][]event, error) {
	path := filepath.Join(l.root, run, EventsFileName)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open run %q: %w", run, err)
	}
	defer f.Close()

	byTag := make(map[string][]event)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var ev event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		byTag[ev.Tag] = append(byTag[ev.Tag], ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read run %q: %w", run, err)
	}
	return byTag, nil
}
