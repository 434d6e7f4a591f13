package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fullpub/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "fullpub",
	Short: "Visibility expander for declaration files",
	Long:  `fullpub rewrites annotated declaration files so every member is public unless excluded`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the persistent --color flag against the stream it
// would write to.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
