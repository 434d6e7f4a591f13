package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fullpub/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the on-disk result cache",
	Long:  "Remove every cached rewrite result. The next expand run recomputes from scratch.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("fullpub")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "cache cleared")
	return nil
}
