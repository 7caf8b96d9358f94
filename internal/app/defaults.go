package app

import (
	"fmt"
	"os"
	"path/filepath"

	"imgor/internal/config"
)

// Defaults are the locations imgor uses when the config file does not say
// otherwise.
type Defaults struct {
	ConfigPath    string // IMGOR_CONFIG_PATH, else ~/.config/imgor.toml
	BaseDir       string // IMGOR_HOME, else ~/.local/share/imgor
	LogDir        string
	DBDir         string
	OutputDirName string // created inside each grouped directory
}

// GetDefaults resolves the default locations, honouring IMGOR_CONFIG_PATH
// and IMGOR_HOME.
func GetDefaults() (*Defaults, error) {
	home := ""
	if os.Getenv("IMGOR_CONFIG_PATH") == "" || os.Getenv("IMGOR_HOME") == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		home = dir
	}

	d := &Defaults{
		ConfigPath:    envOr("IMGOR_CONFIG_PATH", filepath.Join(home, ".config", "imgor.toml")),
		BaseDir:       envOr("IMGOR_HOME", filepath.Join(home, ".local", "share", "imgor")),
		OutputDirName: config.DefaultOutputDirName,
	}
	d.LogDir = filepath.Join(d.BaseDir, "log")
	d.DBDir = filepath.Join(d.BaseDir, "db")
	return d, nil
}

// Config returns a fresh config rooted at the default base directory.
func (d *Defaults) Config() *config.Config {
	cfg := config.NewConfig(d.BaseDir)
	cfg.OutputDirName = d.OutputDirName
	return cfg
}

// LoadConfig reads the config file, falling back to Config when it is missing.
func (d *Defaults) LoadConfig() (*config.Config, error) {
	return config.Load(d.ConfigPath, d.BaseDir)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
