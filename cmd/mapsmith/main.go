package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"

	"github.com/veskara/mapsmith/pkg/manifest"
	"github.com/veskara/mapsmith/pkg/repo"
	"github.com/veskara/mapsmith/pkg/scan"
	"github.com/veskara/mapsmith/pkg/version"
)

const appVersion = "0.3.0"

// githubRawLimit is the size above which GitHub refuses raw-content
// serving, and the reason large maps move to release assets.
const githubRawLimit = 100 << 20

func main() {
	app := &cli.App{
		Name:  "mapsmith",
		Usage: "regenerate maps.json for a campaign map repository",
		Before: func(c *cli.Context) error {
			configureLogging(c.Bool("verbose"))
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Value: ".",
				Usage: "repository root to scan",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Value: "maps.json",
				Usage: "manifest path, relative to root",
			},
			&cli.StringFlag{
				Name:    "scheme",
				Value:   "semver",
				EnvVars: []string{"MAPSMITH_SCHEME"},
				Usage:   "version scheme: semver or majorminor",
			},
			&cli.StringFlag{
				Name:  "branch",
				Value: "main",
				Usage: "branch for raw content URLs",
			},
			&cli.StringFlag{
				Name:  "release-tag",
				Value: "assets",
				Usage: "release tag for oversized files",
			},
			&cli.Int64Flag{
				Name:  "size-limit",
				Value: githubRawLimit,
				Usage: "bytes above which a file becomes a release asset",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "exclude pattern (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		},
		Action: updateAction,
		Commands: []*cli.Command{
			updateCmd(),
			diffCmd(),
			doctorCmd(),
			{
				Name:  "version",
				Usage: "print version",
				Action: func(c *cli.Context) error {
					fmt.Println(appVersion)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func manifestPath(c *cli.Context) string {
	return filepath.Join(
		c.String("root"), c.String("manifest"),
	)
}

// reconcileOptions resolves everything Reconcile needs from flags and
// environment: the version scheme and the repository identity backing
// download URLs. Identity failure is fatal, since entries cannot be
// emitted without absolute URLs.
func reconcileOptions(c *cli.Context) (manifest.Options, error) {
	scheme, err := version.ParseScheme(c.String("scheme"))
	if err != nil {
		return manifest.Options{}, err
	}

	id, err := repo.Resolve(c.String("root"))
	if err != nil {
		return manifest.Options{}, err
	}

	return manifest.Options{
		Scheme: scheme,
		Links: repo.Links{
			Identity:   id,
			Branch:     c.String("branch"),
			ReleaseTag: c.String("release-tag"),
		},
		SizeLimit: c.Int64("size-limit"),
	}, nil
}

// runReconcile is the shared pipeline behind update and diff: load the
// previous manifest, scan the tree, reconcile in memory.
func runReconcile(c *cli.Context) (
	prev, next manifest.Manifest,
	report manifest.Report,
	err error,
) {
	opts, err := reconcileOptions(c)
	if err != nil {
		return nil, nil, manifest.Report{}, err
	}

	prev, err = manifest.Load(manifestPath(c))
	if err != nil {
		return nil, nil, manifest.Report{}, err
	}
	slog.Debug("previous manifest",
		"path", manifestPath(c), "campaigns", len(prev),
	)

	campaigns, err := scan.Campaigns(
		c.String("root"), c.StringSlice("exclude"),
	)
	if err != nil {
		return nil, nil, manifest.Report{},
			fmt.Errorf("scan %s: %w", c.String("root"), err)
	}
	slog.Debug("scanned tree", "campaigns", len(campaigns))

	next, report = manifest.Reconcile(prev, campaigns, opts)
	return prev, next, report, nil
}

func printReport(report manifest.Report) {
	for _, cr := range report.Campaigns {
		if !cr.Bumped {
			continue
		}
		fmt.Printf("%s -> %s\n", cr.Title, cr.Version)
		for _, n := range cr.Added {
			fmt.Printf("  + %s\n", n)
		}
		for _, n := range cr.Changed {
			fmt.Printf("  ~ %s\n", n)
		}
		for _, n := range cr.Removed {
			fmt.Printf("  - %s\n", n)
		}
		for _, n := range cr.Carried {
			fmt.Printf("  = %s (release asset)\n", n)
		}
	}
}
