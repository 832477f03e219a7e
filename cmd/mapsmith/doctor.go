package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/veskara/mapsmith/pkg/manifest"
	"github.com/veskara/mapsmith/pkg/repo"
	"github.com/veskara/mapsmith/pkg/scan"
	"github.com/veskara/mapsmith/pkg/version"
)

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:   "doctor",
		Usage:  "verify repository identity, layout, and manifest",
		Action: doctorAction,
	}
}

func doctorAction(c *cli.Context) error {
	root := c.String("root")
	fmt.Printf("Root: %s\n", root)

	failed := false

	id, err := repo.Resolve(root)
	if err != nil {
		fmt.Printf("  Repository: FAIL (%v)\n", err)
		failed = true
	} else {
		fmt.Printf("  Repository: %s\n", id)
	}

	scheme, err := version.ParseScheme(c.String("scheme"))
	if err != nil {
		fmt.Printf("  Scheme: FAIL (%v)\n", err)
		failed = true
	} else {
		fmt.Printf(
			"  Scheme: %s (baseline %s)\n",
			scheme, scheme.Baseline(),
		)
	}

	campaigns, err := scan.Campaigns(
		root, c.StringSlice("exclude"),
	)
	if err != nil {
		fmt.Printf("  Scan: FAIL (%v)\n", err)
		failed = true
	} else {
		files := 0
		for _, cmp := range campaigns {
			files += len(cmp.Files)
		}
		fmt.Printf(
			"  Scan: ok (%d campaigns, %d files)\n",
			len(campaigns), files,
		)
	}

	prev, err := manifest.Load(manifestPath(c))
	if err != nil {
		fmt.Printf("  Manifest: FAIL (%v)\n", err)
		failed = true
	} else {
		fmt.Printf(
			"  Manifest: ok (%d campaigns)\n", len(prev),
		)
	}

	if failed {
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Println("\nAll checks passed.")
	return nil
}
