package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aether/internal/diagfmt"
	"aether/internal/driver"
	"aether/internal/observ"
	"aether/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.aeth|directory>",
	Short: "Check ownership and borrows in aether source files",
	Long:  `Check parses the given file or directory and verifies move, borrow and lifetime rules in every function`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("plan-cache", false, "cache move/drop plans of clean files on disk")
	checkCmd.Flags().Bool("progress", false, "show interactive progress for directory checks")
}

type checkSettings struct {
	format         string
	jobs           int
	withNotes      bool
	fullPath       bool
	planCache      bool
	progress       bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	useColor       bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	settings, err := collectCheckSettings(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts := &driver.CheckOptions{MaxDiagnostics: settings.maxDiagnostics}

	var hasErrors bool
	if info.IsDir() {
		hasErrors, err = checkDirectory(ctx, path, opts, settings)
	} else {
		var res *driver.CheckResult
		res, err = driver.CheckFile(ctx, path, opts)
		if err == nil {
			hasErrors, err = reportResults(settings, res)
		}
	}
	if err != nil {
		return err
	}
	if hasErrors {
		// Flush profiles and traces before the error-path exit;
		// a deferred cleanup would be skipped by os.Exit.
		cleanup()
		os.Exit(1)
	}
	return nil
}

// collectCheckSettings merges command flags with the project manifest,
// if one is found. Explicit flags win over manifest defaults.
func collectCheckSettings(cmd *cobra.Command) (*checkSettings, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return nil, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return nil, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	planCache, err := cmd.Flags().GetBool("plan-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get plan-cache flag: %w", err)
	}
	progress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return nil, fmt.Errorf("failed to get progress flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}

	settings := &checkSettings{
		format:         format,
		jobs:           jobs,
		withNotes:      withNotes,
		fullPath:       fullPath,
		planCache:      planCache,
		progress:       progress,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
		useColor:       colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr)),
	}

	manifestPath, ok, err := project.FindManifest(".")
	if err != nil {
		return nil, err
	}
	if ok {
		manifest, err := project.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		if manifest.Check.MaxDiagnostics > 0 && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
			settings.maxDiagnostics = manifest.Check.MaxDiagnostics
		}
		if manifest.Check.Timings && !cmd.Root().PersistentFlags().Changed("timings") {
			settings.timings = true
		}
		if manifest.Check.PlanCache && !cmd.Flags().Changed("plan-cache") {
			settings.planCache = true
		}
	}
	return settings, nil
}

func checkDirectory(ctx context.Context, dir string, opts *driver.CheckOptions, settings *checkSettings) (bool, error) {
	var (
		results *driver.DirResult
		err     error
	)
	if settings.progress && settings.format == "pretty" && isTerminal(os.Stdout) {
		results, err = runCheckDirWithUI(ctx, dir, settings.jobs, opts)
	} else {
		results, err = driver.CheckDir(ctx, dir, settings.jobs, opts)
	}
	if err != nil {
		return false, err
	}
	return reportResults(settings, results.Results...)
}

// reportResults prints diagnostics, timings and plan-cache state for
// every result and reports whether any of them carried errors.
func reportResults(settings *checkSettings, results ...*driver.CheckResult) (bool, error) {
	hasErrors := false
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.HasErrors() {
			hasErrors = true
		}
		if err := printDiagnostics(settings, res); err != nil {
			return hasErrors, err
		}
		if settings.planCache && !res.HasErrors() {
			if err := storePlans(res, settings); err != nil {
				fmt.Fprintf(os.Stderr, "plan cache: %v\n", err)
			}
		}
		if settings.timings {
			printTimings(os.Stderr, res.Path, res.Timing)
		}
	}
	if !hasErrors && !settings.quiet && settings.format == "pretty" {
		fmt.Printf("checked %d file(s): ok\n", len(results))
	}
	return hasErrors, nil
}

func printDiagnostics(settings *checkSettings, res *driver.CheckResult) error {
	pathMode := diagfmt.PathModeAuto
	if settings.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	switch settings.format {
	case "json":
		return diagfmt.JSON(os.Stdout, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     settings.withNotes,
			PathMode:         pathMode,
			Max:              settings.maxDiagnostics,
		})
	default:
		if res.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     settings.useColor,
				Context:   2,
				PathMode:  pathMode,
				ShowNotes: settings.withNotes,
			})
		}
		return nil
	}
}

func storePlans(res *driver.CheckResult, settings *checkSettings) error {
	payload := driver.ExportPlans(res)
	if payload == nil {
		return nil
	}
	cache, err := driver.OpenPlanCache("aether")
	if err != nil {
		return err
	}
	var cached driver.PlanPayload
	hit, err := cache.Get(payload.ContentHash, &cached)
	if err != nil {
		return err
	}
	if hit {
		if !settings.quiet {
			fmt.Fprintf(os.Stderr, "plan cache hit: %s\n", filepath.Base(res.Path))
		}
		return nil
	}
	return cache.Put(payload.ContentHash, payload)
}

func printTimings(out io.Writer, path string, report observ.Report) {
	if len(report.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", path)
	for _, phase := range report.Phases {
		fmt.Fprintf(out, "  %-8s %7.2f ms", phase.Name, phase.DurationMS)
		if phase.Note != "" {
			fmt.Fprintf(out, "  (%s)", phase.Note)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  %-8s %7.2f ms\n", "total", report.TotalMS)
}
