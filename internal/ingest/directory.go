package ingest

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// excludeDirs are directory names skipped entirely during a directory walk.
var excludeDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"__pycache__":  {},
	"dist":         {},
	"build":        {},
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

// IngestDirectory walks root, ingesting every file whose extension is
// supported, skipping hidden files/directories and excludeDirs. It never
// aborts on a single file's failure; every outcome (including errors) is
// returned in the slice, in the order discovered during the walk, and
// OnProgress fires as each file finishes (not necessarily in walk order,
// since up to Workers files decode concurrently).
func (p *Pipeline) IngestDirectory(ctx context.Context, root string) []Outcome {
	var paths []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if isHidden(name) {
				return filepath.SkipDir
			}
			if _, excluded := excludeDirs[strings.ToLower(name)]; excluded {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(name) {
			return nil
		}
		if !extensionSupported(path, p.cfg.SupportedExtensions) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})

	outcomes := make([]Outcome, len(paths))
	total := len(paths)
	var done int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = p.IngestFile(gctx, path)
			if p.cfg.Callbacks.OnProgress != nil {
				p.cfg.Callbacks.OnProgress(int(atomic.AddInt64(&done, 1)), total)
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
