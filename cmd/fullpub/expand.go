package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fullpub/internal/diagfmt"
	"fullpub/internal/driver"
	"fullpub/internal/project"
	"fullpub/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [path]",
	Short: "Expand visibility annotations in declaration files",
	Long: `Expand rewrites every annotated *.decl file under the target directory,
making all members public except those excluded by markers. Files with
diagnostics are left untouched. With no argument the directory comes from
the nearest fullpub.toml manifest, falling back to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	expandCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = number of CPUs)")
	expandCmd.Flags().Bool("no-cache", false, "skip the on-disk result cache")
	expandCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
}

func runExpand(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	uiFlag, _ := cmd.Flags().GetString("ui")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	dir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		DryRun:         dryRun,
	}
	if !noCache {
		cache, cacheErr := driver.OpenDiskCache("fullpub")
		if cacheErr == nil {
			opts.Cache = cache
		}
		// an unusable cache degrades to uncached runs
	}

	var fileSet *source.FileSet
	var results []driver.FileResult
	if shouldUseTUI(mode, quiet) {
		fileSet, results, err = runExpandWithUI(cmd.Context(), dir, opts)
	} else {
		fileSet, results, err = driver.ExpandDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return err
	}

	return reportResults(cmd, fileSet, results, dryRun, quiet)
}

// resolveTargetDir picks the directory to expand: an explicit argument
// wins, otherwise the nearest manifest's configured directory, otherwise
// the current directory.
func resolveTargetDir(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		info, err := os.Stat(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to stat %q: %w", args[0], err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%q is not a directory", args[0])
		}
		return args[0], nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	manifest, ok, err := project.Load(wd)
	if err != nil {
		return "", err
	}
	if ok {
		return manifest.ExpandDir(), nil
	}
	return wd, nil
}

func reportResults(cmd *cobra.Command, fileSet *source.FileSet, results []driver.FileResult, dryRun, quiet bool) error {
	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}

	var changed, clean, failed int
	for _, res := range results {
		if res.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, res.Bag, fileSet, prettyOpts)
		}
		switch {
		case res.Bag.HasErrors():
			failed++
		case res.Changed:
			changed++
			if !quiet {
				verb := "expanded"
				if dryRun {
					verb = "would expand"
				}
				fmt.Fprintf(os.Stdout, "%s %s\n", verb, displayPath(res.Path))
			}
		default:
			clean++
		}
	}

	if !quiet {
		fmt.Fprintf(os.Stdout, "%d expanded, %d clean, %d failed\n", changed, clean, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) had errors", failed)
	}
	return nil
}

func displayPath(path string) string {
	if wd, err := os.Getwd(); err == nil {
		if rel, err2 := filepath.Rel(wd, path); err2 == nil && !filepath.IsAbs(rel) {
			return rel
		}
	}
	return path
}
