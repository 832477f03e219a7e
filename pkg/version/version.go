package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Scheme selects how version strings are formatted and bumped. A
// deployment picks one scheme and sticks with it; mixing schemes in a
// single manifest is not supported.
type Scheme int

const (
	// SemVerPatch is the three-part major.minor.patch scheme; bumps
	// increment the patch component.
	SemVerPatch Scheme = iota
	// MajorMinor is the two-part major.minor scheme; bumps increment
	// the minor component.
	MajorMinor
)

var (
	semverRe     = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)
	majorMinorRe = regexp.MustCompile(`^(\d+)\.(\d+)$`)
)

func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(s) {
	case "semver", "semverpatch":
		return SemVerPatch, nil
	case "majorminor", "major.minor":
		return MajorMinor, nil
	}
	return 0, fmt.Errorf(
		"unknown version scheme %q (want semver or majorminor)", s,
	)
}

func (s Scheme) String() string {
	if s == MajorMinor {
		return "majorminor"
	}
	return "semver"
}

// Baseline is the lowest version in the scheme, used to seed entries
// and campaigns that have no prior record.
func (s Scheme) Baseline() string {
	if s == MajorMinor {
		return "1.0"
	}
	return "0.0.0"
}

// Bump advances v by one increment. Versions that do not parse under
// the scheme are treated as the baseline, so the first bump of a
// malformed or missing version lands one increment above baseline.
func (s Scheme) Bump(v string) string {
	if s == MajorMinor {
		maj, min, ok := parseTwo(v)
		if !ok {
			maj, min, _ = parseTwo(s.Baseline())
		}
		return fmt.Sprintf("%d.%d", maj, min+1)
	}
	maj, min, pat, ok := parseThree(v)
	if !ok {
		maj, min, pat, _ = parseThree(s.Baseline())
	}
	return fmt.Sprintf("%d.%d.%d", maj, min, pat+1)
}

func parseTwo(v string) (int, int, bool) {
	m := majorMinorRe.FindStringSubmatch(v)
	if m == nil {
		return 0, 0, false
	}
	maj, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return maj, min, true
}

func parseThree(v string) (int, int, int, bool) {
	m := semverRe.FindStringSubmatch(v)
	if m == nil {
		return 0, 0, 0, false
	}
	maj, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	pat, _ := strconv.Atoi(m[3])
	return maj, min, pat, true
}
