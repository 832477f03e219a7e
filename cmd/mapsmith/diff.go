package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/veskara/mapsmith/pkg/manifest"
)

func diffCmd() *cli.Command {
	return &cli.Command{
		Name:  "diff",
		Usage: "show what update would change, without writing",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "JSON output",
			},
		},
		Action: diffAction,
	}
}

type diffJSON struct {
	Campaigns []diffCampaign `json:"campaigns"`
	Summary   diffSummary    `json:"summary"`
}

type diffCampaign struct {
	Title   string   `json:"title"`
	Version string   `json:"version"`
	Bumped  bool     `json:"bumped"`
	Added   []string `json:"added"`
	Changed []string `json:"changed"`
	Removed []string `json:"removed"`
	Carried []string `json:"carried"`
}

type diffSummary struct {
	BumpedCampaigns int `json:"bumped_campaigns"`
	AddedEntries    int `json:"added_entries"`
	ChangedEntries  int `json:"changed_entries"`
	RemovedEntries  int `json:"removed_entries"`
}

func diffAction(c *cli.Context) error {
	_, _, report, err := runReconcile(c)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return printDiffJSON(report)
	}

	if !report.Dirty() {
		fmt.Println("Already up to date.")
		return nil
	}
	printReport(report)
	return nil
}

func printDiffJSON(report manifest.Report) error {
	out := diffJSON{
		Campaigns: make([]diffCampaign, 0, len(report.Campaigns)),
	}
	for _, cr := range report.Campaigns {
		dc := diffCampaign{
			Title:   cr.Title,
			Version: cr.Version,
			Bumped:  cr.Bumped,
			Added:   emptyIfNil(cr.Added),
			Changed: emptyIfNil(cr.Changed),
			Removed: emptyIfNil(cr.Removed),
			Carried: emptyIfNil(cr.Carried),
		}
		out.Campaigns = append(out.Campaigns, dc)
		if cr.Bumped {
			out.Summary.BumpedCampaigns++
		}
		out.Summary.AddedEntries += len(cr.Added)
		out.Summary.ChangedEntries += len(cr.Changed)
		out.Summary.RemovedEntries += len(cr.Removed)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
