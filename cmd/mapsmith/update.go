package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/veskara/mapsmith/pkg/manifest"
)

func updateCmd() *cli.Command {
	return &cli.Command{
		Name:   "update",
		Usage:  "regenerate the manifest (the default action)",
		Action: updateAction,
	}
}

func updateAction(c *cli.Context) error {
	_, next, report, err := runReconcile(c)
	if err != nil {
		return err
	}

	if err := manifest.Save(manifestPath(c), next); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	if !report.Dirty() {
		fmt.Println("Already up to date.")
		return nil
	}

	printReport(report)
	fmt.Printf("Regenerated %s\n", c.String("manifest"))
	return nil
}
