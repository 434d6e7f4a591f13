// Package project locates and parses the fullpub.toml manifest. The
// manifest only drives file discovery for the CLI; the rewrite itself
// takes no configuration.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the CLI looks for when no path is given.
const ManifestName = "fullpub.toml"

// Manifest is a located and parsed fullpub.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest's TOML structure.
type Config struct {
	Package PackageConfig `toml:"package"`
	Expand  ExpandConfig  `toml:"expand"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// ExpandConfig names the directory whose .decl files get expanded.
type ExpandConfig struct {
	Dir string `toml:"dir"`
}

// FindManifest walks up from startDir to locate fullpub.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the nearest manifest above startDir.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := parseConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// ExpandDir resolves the configured expand directory against the
// manifest root, defaulting to the root itself.
func (m *Manifest) ExpandDir() string {
	dir := strings.TrimSpace(m.Config.Expand.Dir)
	if dir == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}

func parseConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}
