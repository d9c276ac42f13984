package project

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Collect returns the source files under dir selected by the include and
// exclude globs, as OS paths in lexical order. Patterns use forward slashes
// and are relative to dir.
func (s SourcesConfig) Collect(dir string) ([]string, error) {
	include := s.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	fsys := os.DirFS(dir)
	seen := make(map[string]struct{})
	var out []string
	for _, pat := range include {
		matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pat, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup || s.excluded(m) {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	slices.Sort(out)
	for i, m := range out {
		out[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return out, nil
}

func (s SourcesConfig) excluded(rel string) bool {
	for _, pat := range s.Exclude {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
