package repo

import (
	"net/url"
	"strings"
)

// Links builds the download URLs recorded in manifest entries. Normal
// files resolve through raw.githubusercontent.com on a branch; files
// too large for the repository tree resolve through a fixed release
// tag instead.
type Links struct {
	Identity   Identity
	Branch     string
	ReleaseTag string
}

// RawURL returns the raw-content URL for a repository-relative path.
// Each path segment is percent-encoded, so titles with spaces produce
// %20 rather than a broken URL.
func (l Links) RawURL(relPath string) string {
	return "https://raw.githubusercontent.com/" +
		l.Identity.Owner + "/" + l.Identity.Name + "/" +
		l.Branch + "/" + escapePath(relPath)
}

// ReleaseAssetURL returns the download URL for a file hosted as a
// release asset under the configured tag.
func (l Links) ReleaseAssetURL(name string) string {
	return "https://github.com/" +
		l.Identity.Owner + "/" + l.Identity.Name +
		"/releases/download/" +
		url.PathEscape(l.ReleaseTag) + "/" + url.PathEscape(name)
}

func escapePath(relPath string) string {
	parts := strings.Split(relPath, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
