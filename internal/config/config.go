package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Mavwarf/appicon/internal/iconset"
	"github.com/Mavwarf/appicon/internal/paths"
)

// Defaults match the layout of a Tauri project: masters under static/,
// bundler icons under src-tauri/icons.
const (
	DefaultSourceDir     = "static"
	DefaultDestDir       = "src-tauri/icons"
	DefaultMaster        = "favicon.png"
	DefaultLegacyICO     = "favicon.ico"
	DefaultSVG           = "favicon.svg"
	DefaultFilter        = "lanczos"
	DefaultSVGRasterSize = 1024
)

// History backends.
const (
	HistoryOff    = ""
	HistoryFile   = "file"
	HistorySQLite = "sqlite"
)

// Environment variable overrides.
const (
	EnvSourceDir = "APPICON_SOURCE_DIR"
	EnvDestDir   = "APPICON_DEST_DIR"
	EnvHistory   = "APPICON_HISTORY"
)

// Config holds everything a generator run needs. All fields are optional in
// the config file; missing keys keep their defaults.
type Config struct {
	SourceDir     string `json:"source_dir,omitempty" toml:"source_dir"`
	DestDir       string `json:"dest_dir,omitempty" toml:"dest_dir"`
	Master        string `json:"master,omitempty" toml:"master"`
	LegacyICO     string `json:"legacy_ico,omitempty" toml:"legacy_ico"`
	SVG           string `json:"svg,omitempty" toml:"svg"`
	Filter        string `json:"filter,omitempty" toml:"filter"`
	RasterizeSVG  bool   `json:"rasterize_svg,omitempty" toml:"rasterize_svg"`
	SVGRasterSize int    `json:"svg_raster_size,omitempty" toml:"svg_raster_size"`
	History       string `json:"history,omitempty" toml:"history"`

	// Path is the file the config was read from, empty for built-in defaults.
	Path string `json:"-" toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SourceDir:     DefaultSourceDir,
		DestDir:       DefaultDestDir,
		Master:        DefaultMaster,
		LegacyICO:     DefaultLegacyICO,
		SVG:           DefaultSVG,
		Filter:        DefaultFilter,
		SVGRasterSize: DefaultSVGRasterSize,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. appicon.json in the working directory
//  3. appicon.toml in the working directory
//
// When no file is found the built-in defaults are used; a config file is
// never required. Environment overrides are applied last.
func Load(explicitPath string) (Config, error) {
	var cfg Config
	var err error
	switch {
	case explicitPath != "":
		cfg, err = readConfig(explicitPath)
	case paths.Exists(paths.JSONConfigName):
		cfg, err = readConfig(paths.JSONConfigName)
	case paths.Exists(paths.TOMLConfigName):
		cfg, err = readConfig(paths.TOMLConfigName)
	default:
		cfg = Default()
	}
	if err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enum-like fields and sizes.
func (c Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir must not be empty")
	}
	if c.DestDir == "" {
		return fmt.Errorf("dest_dir must not be empty")
	}
	if c.Master == "" {
		return fmt.Errorf("master must not be empty")
	}
	if _, err := iconset.ParseFilter(c.Filter); err != nil {
		return err
	}
	if c.SVGRasterSize <= 0 {
		return fmt.Errorf("svg_raster_size must be positive, got %d", c.SVGRasterSize)
	}
	switch c.History {
	case HistoryOff, HistoryFile, HistorySQLite:
	default:
		return fmt.Errorf("unknown history backend %q (want %q or %q)", c.History, HistoryFile, HistorySQLite)
	}
	return nil
}

// MasterPath returns the full path of the master image.
func (c Config) MasterPath() string { return filepath.Join(c.SourceDir, c.Master) }

// LegacyICOPath returns the full path of the fallback ICO.
func (c Config) LegacyICOPath() string {
	if c.LegacyICO == "" {
		return ""
	}
	return filepath.Join(c.SourceDir, c.LegacyICO)
}

// SVGPath returns the full path of the source SVG.
func (c Config) SVGPath() string {
	if c.SVG == "" {
		return ""
	}
	return filepath.Join(c.SourceDir, c.SVG)
}

func (c *Config) applyEnv() {
	if v := EnvTrim(EnvSourceDir); v != "" {
		c.SourceDir = v
	}
	if v := EnvTrim(EnvDestDir); v != "" {
		c.DestDir = v
	}
	if v, ok := os.LookupEnv(EnvHistory); ok {
		c.History = strings.ToLower(strings.TrimSpace(v))
		if c.History == "off" || c.History == "none" {
			c.History = HistoryOff
		}
	}
}

// EnvTrim returns the trimmed value of an environment variable.
func EnvTrim(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg = Default()
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Path = path

	// Relative directories are relative to the config file, not the caller.
	base := filepath.Dir(path)
	if cfg.SourceDir != "" && !filepath.IsAbs(cfg.SourceDir) {
		cfg.SourceDir = filepath.Join(base, cfg.SourceDir)
	}
	if cfg.DestDir != "" && !filepath.IsAbs(cfg.DestDir) {
		cfg.DestDir = filepath.Join(base, cfg.DestDir)
	}
	return cfg, nil
}
