package manifest

// Entry is one tracked file's record within a campaign. ReleaseAsset
// marks files hosted outside the repository tree; their entries
// survive even when the source file disappears from the working tree.
type Entry struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	SHA256       string `json:"sha256"`
	URL          string `json:"url"`
	ReleaseAsset bool   `json:"release_asset,omitempty"`
}

// Campaign is one named grouping of entries. Version is tracked
// independently of the entry versions and bumps whenever any entry
// changes or the entry set changes.
type Campaign struct {
	Title   string  `json:"title"`
	Version string  `json:"version"`
	Asset   string  `json:"asset"`
	Maps    []Entry `json:"maps"`
}

// Manifest is the full maps.json document: one block per campaign
// directory.
type Manifest []Campaign

func (m Manifest) campaign(title string) (Campaign, bool) {
	for _, c := range m {
		if c.Title == title {
			return c, true
		}
	}
	return Campaign{}, false
}
