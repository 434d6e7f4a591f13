package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fullpub/internal/diagfmt"
	"fullpub/internal/driver"
	"fullpub/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.decl",
	Short: "Tokenize a declaration file",
	Long:  `Tokenize breaks a declaration file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", filePath, err)
	}

	tokens, bag := driver.Tokenize(fileSet, fileID, maxDiagnostics)

	if bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		}
		diagfmt.Pretty(os.Stderr, bag, fileSet, opts)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
