package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"bibstats/internal/config"
)

const BaseDirName = "bibstats"

// Layout names the files and directories of one workspace.
type Layout struct {
	Root       string
	ConfigPath string
	OutputDir  string
	Database   string
}

func LayoutAt(base string) Layout {
	return Layout{
		Root:       base,
		ConfigPath: filepath.Join(base, "configs", "config.yaml"),
		OutputDir:  filepath.Join(base, "out"),
		Database:   filepath.Join(base, "db", "bibstats.db"),
	}
}

func EnsureDefault() (Layout, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Layout{}, fmt.Errorf("resolve home: %w", err)
	}
	return EnsureAt(filepath.Join(home, BaseDirName))
}

// EnsureAt creates the workspace directories under base and writes a
// default configuration pointing at them. An existing config is kept.
func EnsureAt(base string) (Layout, error) {
	layout := LayoutAt(base)
	paths := []string{
		filepath.Dir(layout.ConfigPath),
		layout.OutputDir,
		filepath.Dir(layout.Database),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return layout, fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	if _, err := os.Stat(layout.ConfigPath); os.IsNotExist(err) {
		defaults := config.Default()
		defaults.Input = filepath.Join(base, "dblp.xml.gz")
		defaults.OutputDir = layout.OutputDir
		defaults.Database = layout.Database
		raw, marshalErr := defaults.Marshal()
		if marshalErr != nil {
			return layout, fmt.Errorf("marshal config: %w", marshalErr)
		}
		if writeErr := os.WriteFile(layout.ConfigPath, raw, 0o644); writeErr != nil {
			return layout, fmt.Errorf("write config: %w", writeErr)
		}
	}

	return layout, nil
}
