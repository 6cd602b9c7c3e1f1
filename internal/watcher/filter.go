package watcher

import (
	"path/filepath"
	"strings"

	"github.com/docmind/docmind/internal/gitignore"
)

// excludedDirNames mirrors internal/ingest's directory-walk exclusions so a
// watched tree and a directly-ingested tree apply the same boundary.
var excludedDirNames = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"__pycache__":  {},
	"dist":         {},
	"build":        {},
}

// ignoredSuffixes are editor/OS backup and temp-file suffixes that never
// represent a document worth ingesting.
var ignoredSuffixes = []string{".tmp", ".temp", ".swp", ".swo"}

func isDotfile(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

func isTildeBackup(name string) bool {
	return strings.HasSuffix(name, "~")
}

// pathFilter decides whether a raw watcher event should be dropped before it
// ever reaches the debouncer: dotfiles, tilde-suffixed backups, known
// temp-file suffixes, and any path under an excluded directory name. An
// optional gitignore matcher adds caller-supplied patterns on top.
type pathFilter struct {
	ignore *gitignore.Matcher
}

func newPathFilter(patterns []string) *pathFilter {
	m := gitignore.New()
	for _, p := range patterns {
		m.AddPattern(p)
	}
	return &pathFilter{ignore: m}
}

// shouldIgnore reports whether relPath (slash-separated, relative to the
// watch root) should be dropped.
func (f *pathFilter) shouldIgnore(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	if relPath == "." || relPath == "" {
		return true
	}

	parts := strings.Split(relPath, "/")
	for _, part := range parts {
		if part == "" {
			continue
		}
		if isDotfile(part) || isTildeBackup(part) {
			return true
		}
		if _, excluded := excludedDirNames[part]; excluded {
			return true
		}
	}

	base := filepath.Base(relPath)
	for _, suf := range ignoredSuffixes {
		if strings.HasSuffix(base, suf) {
			return true
		}
	}

	return f.ignore.Match(relPath, isDir)
}
