package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML config file. Flags beat env vars, env vars
// beat the file, the file beats built-in defaults.
type Config struct {
	Database string `yaml:"database"`
	DataDir  string `yaml:"dataDir"`
	Format   string `yaml:"format"`
}

const defaultConfigFile = "ysk.yaml"

// defaultDatabase is the embedded store location when nothing overrides it.
const defaultDatabase = "ysk.db"

// loadConfig reads the config file named by opts (or the default file when
// present) and resolves the effective settings into opts. A missing
// default file is fine; a missing explicit --config file is an error.
func loadConfig(opts *RootOptions) error {
	path := opts.Config
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			data = nil
		} else if explicit {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if opts.Database == "" {
		opts.Database = os.Getenv("YSK_DB")
	}
	if opts.Database == "" {
		opts.Database = cfg.Database
	}
	if opts.Database == "" {
		opts.Database = defaultDatabase
	}

	if opts.DataDir == "" {
		opts.DataDir = os.Getenv("YSK_DATA_DIR")
	}
	if opts.DataDir == "" {
		opts.DataDir = cfg.DataDir
	}

	if cfg.Format != "" && opts.Format == "text" {
		opts.Format = cfg.Format
	}
	return nil
}
