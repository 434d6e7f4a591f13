package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fullpub/internal/diag"
	"fullpub/internal/diagfmt"
	"fullpub/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check declaration files without rewriting them",
	Long: `Check runs the full expansion pipeline but never writes output, so it
reports every diagnostic an expand run would hit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = number of CPUs)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	jobs, _ := cmd.Flags().GetInt("jobs")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	dir, err := resolveTargetDir(args)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fileSet, results, err := driver.ExpandDir(cmd.Context(), dir, driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		DryRun:         true,
	})
	if err != nil {
		return err
	}

	if format == "short" {
		merged := mergeBags(results, maxDiagnostics)
		fmt.Fprint(os.Stdout, diag.FormatShortDiagnostics(merged.Items(), fileSet, true))
		if merged.HasErrors() {
			return fmt.Errorf("check failed")
		}
		return nil
	}

	if format == "json" {
		merged := mergeBags(results, maxDiagnostics)
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			Max:              maxDiagnostics,
			IncludeNotes:     true,
		}
		if err := diagfmt.JSON(os.Stdout, merged, fileSet, jsonOpts); err != nil {
			return err
		}
		if merged.HasErrors() {
			return fmt.Errorf("check failed")
		}
		return nil
	}

	return reportResults(cmd, fileSet, results, true, quiet)
}

// mergeBags collects the per-file diagnostics into one sorted bag for
// machine-readable output.
func mergeBags(results []driver.FileResult, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	merged.Sort()
	return merged
}
