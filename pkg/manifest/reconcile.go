package manifest

import (
	"log/slog"
	"strings"

	"github.com/veskara/mapsmith/pkg/repo"
	"github.com/veskara/mapsmith/pkg/scan"
	"github.com/veskara/mapsmith/pkg/version"
)

// Options configure a reconciliation run. SizeLimit is the byte size
// above which a file is pointed at a release asset instead of the raw
// repository tree; zero disables the limit.
type Options struct {
	Scheme    version.Scheme
	Links     repo.Links
	SizeLimit int64
}

// CampaignReport describes what Reconcile did to one campaign.
type CampaignReport struct {
	Title   string
	Version string
	Bumped  bool
	Added   []string
	Changed []string
	Removed []string
	Carried []string
}

// Report is the per-campaign record of a reconciliation, consumed by
// the CLI for summaries and diffs.
type Report struct {
	Campaigns []CampaignReport
}

// Dirty reports whether any campaign bumped.
func (r Report) Dirty() bool {
	for _, c := range r.Campaigns {
		if c.Bumped {
			return true
		}
	}
	return false
}

// Reconcile computes the next manifest from the previous one and the
// files currently on disk. It is pure: no I/O beyond slog warnings,
// and deterministic for identical inputs, so two consecutive runs over
// an unchanged tree produce identical manifests.
//
// Per campaign: new files enter at the scheme baseline and bump once,
// changed files bump once, unchanged files keep their version. Entries
// whose file vanished are dropped unless flagged as release assets,
// which are carried forward untouched. The campaign version bumps when
// the resulting entry list differs in any way from the previous one.
// Campaigns with no surviving directory on disk are dropped entirely.
func Reconcile(
	prev Manifest,
	campaigns []scan.Campaign,
	opts Options,
) (Manifest, Report) {
	next := make(Manifest, 0, len(campaigns))
	report := Report{}

	for _, c := range campaigns {
		block, cr := reconcileCampaign(prev, c, opts)
		next = append(next, block)
		report.Campaigns = append(report.Campaigns, cr)
	}

	for _, old := range prev {
		if _, ok := next.campaign(old.Title); !ok {
			slog.Warn("campaign directory gone, dropping block",
				"title", old.Title,
			)
		}
	}
	return next, report
}

func reconcileCampaign(
	prev Manifest,
	c scan.Campaign,
	opts Options,
) (Campaign, CampaignReport) {
	prevBlock, existed := prev.campaign(c.Title)
	prevVersion := prevBlock.Version
	if !existed {
		prevVersion = opts.Scheme.Baseline()
	}

	prevByName := make(map[string]Entry, len(prevBlock.Maps))
	for _, e := range prevBlock.Maps {
		prevByName[e.Name] = e
	}

	cr := CampaignReport{Title: c.Title}
	seen := make(map[string]bool, len(c.Files))
	entries := make([]Entry, 0, len(c.Files))

	for _, f := range c.Files {
		seen[f.Name] = true

		entry, known := prevByName[f.Name]
		if !known {
			entry = Entry{
				Name:    f.Name,
				Version: opts.Scheme.Baseline(),
			}
		}

		if entry.SHA256 != f.Hash {
			entry.Version = opts.Scheme.Bump(entry.Version)
			entry.SHA256 = f.Hash
			if known {
				cr.Changed = append(cr.Changed, f.Name)
			} else {
				cr.Added = append(cr.Added, f.Name)
			}
		}

		if opts.SizeLimit > 0 && f.Size > opts.SizeLimit {
			entry.URL = opts.Links.ReleaseAssetURL(f.Name)
			entry.ReleaseAsset = true
		} else {
			entry.URL = opts.Links.RawURL(f.RelPath)
			entry.ReleaseAsset = false
		}

		entries = append(entries, entry)
	}

	for _, e := range prevBlock.Maps {
		if seen[e.Name] {
			continue
		}
		if e.ReleaseAsset {
			entries = append(entries, e)
			cr.Carried = append(cr.Carried, e.Name)
			continue
		}
		slog.Warn("tracked file gone, dropping entry",
			"campaign", c.Title, "name", e.Name,
		)
		cr.Removed = append(cr.Removed, e.Name)
	}

	SortEntries(entries)

	ver := prevVersion
	if !entriesEqual(prevBlock.Maps, entries) {
		ver = opts.Scheme.Bump(prevVersion)
		cr.Bumped = true
	}
	cr.Version = ver

	return Campaign{
		Title:   c.Title,
		Version: ver,
		Asset:   iconAsset(c.Title),
		Maps:    entries,
	}, cr
}

// entriesEqual compares entry lists keyed by name, ignoring order. A
// count difference, or any difference in version, hash, URL, or the
// release-asset flag, counts as a change.
func entriesEqual(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	byName := make(map[string]Entry, len(a))
	for _, e := range a {
		byName[e.Name] = e
	}
	for _, e := range b {
		if byName[e.Name] != e {
			return false
		}
	}
	return true
}

func iconAsset(title string) string {
	return strings.ReplaceAll(title, " ", "_") + ".png"
}
