package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fullpub/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new fullpub project",
	Long: `Initialize a new fullpub project by creating a project manifest
(fullpub.toml) and a starter declaration file. If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "fullpub-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	examplePath := filepath.Join(target, "example.decl")
	createdExample := false
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(defaultExampleDecl()), 0o600); err != nil {
			return fmt.Errorf("failed to write example.decl: %w", err)
		}
		createdExample = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized fullpub project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", project.ManifestName)
	if createdExample {
		fmt.Fprintf(os.Stdout, "  - example.decl\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - example.decl (existing)\n")
	}
	return nil
}

func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# fullpub project manifest
[package]
name = "%s"

[expand]
dir = "."
`, name)
}

func defaultExampleDecl() string {
	return `// Annotated declarations become fully public on expand.
// Run: fullpub expand

@fullpub
struct Greeting {
	text: string,
	@fullpub(exclude)
	secret: string,
}
`
}
