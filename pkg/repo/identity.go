package repo

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Identity is the owner/name pair of the repository the manifest
// describes. Download URLs cannot be built without it.
type Identity struct {
	Owner string
	Name  string
}

func (id Identity) String() string {
	return id.Owner + "/" + id.Name
}

var remoteRe = regexp.MustCompile(
	`(?:github\.com[:/])([^/]+)/([^/\s]+?)(?:\.git)?$`,
)

// Resolve determines the repository identity from GITHUB_REPOSITORY
// (set by CI) or, failing that, from the configured git remote of the
// working tree at dir.
func Resolve(dir string) (Identity, error) {
	if env := os.Getenv("GITHUB_REPOSITORY"); env != "" {
		id, err := parseOwnerName(env)
		if err != nil {
			return Identity{}, fmt.Errorf(
				"GITHUB_REPOSITORY: %w", err,
			)
		}
		return id, nil
	}

	slog.Debug("GITHUB_REPOSITORY unset, trying git remote")

	gitBin, err := exec.LookPath("git")
	if err != nil {
		return Identity{}, fmt.Errorf(
			"cannot resolve repository: GITHUB_REPOSITORY unset "+
				"and git not found: %w", err,
		)
	}

	cmd := exec.Command(
		gitBin, "config", "--get", "remote.origin.url",
	)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return Identity{}, fmt.Errorf(
			"cannot resolve repository: GITHUB_REPOSITORY unset "+
				"and no remote.origin.url in %s", dir,
		)
	}

	remote := strings.TrimSpace(string(out))
	id, err := ParseRemote(remote)
	if err != nil {
		return Identity{}, err
	}

	slog.Debug("resolved repository",
		"remote", remote, "owner", id.Owner, "name", id.Name,
	)
	return id, nil
}

// ParseRemote extracts owner/name from a git remote URL in ssh
// (git@github.com:owner/name.git), https, or git protocol form.
func ParseRemote(remote string) (Identity, error) {
	m := remoteRe.FindStringSubmatch(remote)
	if m == nil {
		return Identity{}, fmt.Errorf(
			"cannot parse repository from remote %q", remote,
		)
	}
	return Identity{Owner: m[1], Name: m[2]}, nil
}

func parseOwnerName(s string) (Identity, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" {
		return Identity{}, fmt.Errorf(
			"invalid value %q (want owner/name)", s,
		)
	}
	return Identity{Owner: owner, Name: name}, nil
}
