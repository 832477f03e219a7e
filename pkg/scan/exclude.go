package scan

import (
	"path/filepath"
	"strings"
)

// ExcludeMatcher filters discovered files and directories. A pattern
// containing a slash is matched against the whole root-relative path;
// otherwise it is matched against each path segment, so "*.bak"
// excludes backup files anywhere and "Old Campaign" excludes a whole
// directory by name.
type ExcludeMatcher struct {
	patterns []string
}

func NewExcludeMatcher(patterns []string) *ExcludeMatcher {
	return &ExcludeMatcher{patterns: patterns}
}

func (m *ExcludeMatcher) Match(relPath string) bool {
	for _, pat := range m.patterns {
		if matchPattern(pat, relPath) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, relPath string) bool {
	pattern = strings.TrimSuffix(pattern, "/")
	if strings.Contains(pattern, "/") {
		matched, _ := filepath.Match(pattern, relPath)
		return matched
	}
	for _, part := range strings.Split(relPath, "/") {
		if matched, _ := filepath.Match(pattern, part); matched {
			return true
		}
	}
	return false
}
