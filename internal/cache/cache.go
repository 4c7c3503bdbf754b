// Package cache keeps the index graph consistent with on-disk sources. It
// discovers candidate files under a project root, detects changes by
// modification time, drives parallel re-extraction of the changed set, and
// persists the graph plus mtime map as a versioned JSON document.
package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/jward/codeindex/internal/extract"
	"github.com/jward/codeindex/internal/graph"
	"github.com/jward/codeindex/internal/lang"
	"github.com/jward/codeindex/internal/rank"
)

// Cache owns the graph for one project root and the change-detection state
// around it. One Cache per root; no concurrent mutators.
type Cache struct {
	root        string
	docPath     string
	ignorer     *ignore.GitIgnore
	tiers       []rank.Tier
	graph       *graph.Graph
	mtimes      map[string]int64
	initialized bool
}

// EnsureResult summarizes one Ensure pass. Changed+Deleted > 0 means the
// graph moved and rank caches must be invalidated.
type EnsureResult struct {
	Changed int `json:"changed"`
	Deleted int `json:"deleted"`
	Scanned int `json:"scanned"`
}

// New prepares a Cache for the given project root. The root must exist;
// project config is merged here, once.
func New(root string) (*Cache, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s: not a directory", abs)
	}

	cfg := LoadConfig(abs)
	dir, err := CacheDir()
	if err != nil {
		return nil, err
	}

	return &Cache{
		root:    abs,
		docPath: DocumentPath(dir, abs),
		ignorer: newIgnorer(cfg.Ignore),
		tiers:   rank.MergeTiers(cfg.PathTiers, rank.DefaultTiers),
		graph:   graph.New(),
		mtimes:  make(map[string]int64),
	}, nil
}

// Root returns the absolute project root.
func (c *Cache) Root() string { return c.root }

// Graph returns the current graph. Callers must run Ensure first.
func (c *Cache) Graph() *graph.Graph { return c.graph }

// Tiers returns the merged path-tier table for ranking.
func (c *Cache) Tiers() []rank.Tier { return c.tiers }

// Ensure brings the graph up to date with the tree on disk. On the first
// call it loads the persisted document (a corrupt or version-mismatched one
// counts as absent). It then walks the root, classifies changed and deleted
// files by modification time, re-extracts the changed set in parallel, and
// persists the result when anything moved.
func (c *Cache) Ensure(ctx context.Context) (EnsureResult, error) {
	if !c.initialized {
		c.loadPersisted()
		c.initialized = true
	}

	paths, mtimes, err := c.scan()
	if err != nil {
		return EnsureResult{}, err
	}

	var changed []string
	for _, rel := range paths {
		prev, known := c.mtimes[rel]
		if !known || mtimes[rel] > prev {
			changed = append(changed, rel)
		}
		c.mtimes[rel] = mtimes[rel]
	}

	var deleted []string
	for rel := range c.mtimes {
		if _, ok := mtimes[rel]; !ok {
			deleted = append(deleted, rel)
			delete(c.mtimes, rel)
		}
	}
	sort.Strings(deleted)

	res := EnsureResult{Changed: len(changed), Deleted: len(deleted), Scanned: len(paths)}
	if len(changed) == 0 && len(deleted) == 0 {
		return res, nil
	}

	records := c.extractAll(ctx, changed)
	c.graph.Update(deleted, records)

	if err := c.persist(); err != nil {
		return res, fmt.Errorf("persist cache: %w", err)
	}
	return res, nil
}

// Reindex drops all in-memory and persisted state and rebuilds cold.
func (c *Cache) Reindex(ctx context.Context) (EnsureResult, error) {
	c.graph = graph.New()
	c.mtimes = make(map[string]int64)
	c.initialized = true
	if err := os.Remove(c.docPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return EnsureResult{}, fmt.Errorf("remove cache document: %w", err)
	}
	return c.Ensure(ctx)
}

// loadPersisted restores graph and mtimes from the cache document. Any
// failure (missing file, bad JSON, unknown version) leaves the cold state
// in place.
func (c *Cache) loadPersisted() {
	data, err := os.ReadFile(c.docPath)
	if err != nil {
		return
	}
	g, mtimes, err := graph.Unmarshal(data)
	if err != nil {
		return
	}
	c.graph = g
	c.mtimes = mtimes
}

// persist writes the versioned document for this root.
func (c *Cache) persist() error {
	data, err := graph.Marshal(c.graph, c.mtimes)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.docPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.docPath, data, 0o644)
}

// scan walks the root and returns candidate relative paths (sorted) plus
// their modification times in milliseconds. Unreadable entries are skipped.
func (c *Cache) scan() ([]string, map[string]int64, error) {
	var paths []string
	mtimes := make(map[string]int64)

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.root {
				return fmt.Errorf("walk root: %w", err)
			}
			return nil
		}
		rel, relErr := filepath.Rel(c.root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if c.ignorer.MatchesPath(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !lang.Supported(rel) || c.ignorer.MatchesPath(rel) {
			return nil
		}
		info, statErr := d.Info()
		if statErr != nil {
			return nil
		}
		paths = append(paths, rel)
		mtimes[rel] = info.ModTime().UnixMilli()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(paths)
	return paths, mtimes, nil
}

// extractAll parses the changed files with a worker pool sized to available
// CPU. Parsing is the only parallel hotspot; the merge that follows runs on
// the calling goroutine. Unreadable files contribute nothing.
func (c *Cache) extractAll(ctx context.Context, rels []string) []graph.FileSymbols {
	if len(rels) == 0 {
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > len(rels) {
		numWorkers = len(rels)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	workCh := make(chan string, len(rels))
	for _, rel := range rels {
		workCh <- rel
	}
	close(workCh)

	resultCh := make(chan *graph.FileSymbols, len(rels))
	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rel := range workCh {
				src, err := os.ReadFile(filepath.Join(c.root, filepath.FromSlash(rel)))
				if err != nil {
					resultCh <- nil
					continue
				}
				resultCh <- extract.Extract(ctx, rel, src)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var records []graph.FileSymbols
	for fs := range resultCh {
		if fs != nil {
			records = append(records, *fs)
		}
	}
	// Merge order is irrelevant for the final graph, but a stable order
	// keeps persisted documents byte-identical across runs.
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records
}

// ReadSource reads a file under the root by its graph-relative path.
func (c *Cache) ReadSource(rel string) ([]byte, error) {
	if strings.Contains(rel, "..") {
		return nil, fmt.Errorf("read source %q: path escapes root", rel)
	}
	return os.ReadFile(filepath.Join(c.root, filepath.FromSlash(rel)))
}
