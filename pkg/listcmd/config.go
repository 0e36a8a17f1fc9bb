package listcmd

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the content of the config file. Each field has a corresponding
// flag which takes precedence when given.
type Config struct {
	DB   string `toml:"db"`
	Log  string `toml:"log"`
	JSON bool   `toml:"json"`
}

// Returns the effective configuration, combining the config file with the
// flags.
func (p *Program) config() (Config, error) {
	var cfg Config
	path, explicit := p.configPath, p.configPath != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			// Without a home directory there is no default config file.
			path = ""
		}
	}
	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return Config{}, err
		}
		if err == nil {
			logger.Println("read config file", path)
		}
	}

	p.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DB = *p.db
		case "log":
			// Already handled when parsing flags.
			cfg.Log = ""
		case "json":
			cfg.JSON = *p.json
		}
	})
	return cfg, nil
}

func defaultConfigPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "plist", "config.toml"), nil
}

// Returns the default path of the database file, creating its directory if
// needed.
func defaultDBPath() (string, error) {
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "plist")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "db.bolt"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}
