package manifest

import (
	"sort"
	"strings"
)

// SortEntries orders a campaign's entry list the way the launcher
// presents it: entries whose name contains "launcher" first, the rest
// lexicographic by name. Both rules are case-insensitive.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		li, lj := isLauncher(entries[i]), isLauncher(entries[j])
		if li != lj {
			return li
		}
		return strings.ToLower(entries[i].Name) <
			strings.ToLower(entries[j].Name)
	})
}

func isLauncher(e Entry) bool {
	return strings.Contains(strings.ToLower(e.Name), "launcher")
}
