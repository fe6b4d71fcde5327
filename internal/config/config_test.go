package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnmarshalDefaults(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{}`), &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.SourceDir != DefaultSourceDir {
		t.Errorf("SourceDir = %q, want %q", cfg.SourceDir, DefaultSourceDir)
	}
	if cfg.DestDir != DefaultDestDir {
		t.Errorf("DestDir = %q, want %q", cfg.DestDir, DefaultDestDir)
	}
	if cfg.Filter != DefaultFilter {
		t.Errorf("Filter = %q, want %q", cfg.Filter, DefaultFilter)
	}
	if cfg.SVGRasterSize != DefaultSVGRasterSize {
		t.Errorf("SVGRasterSize = %d, want %d", cfg.SVGRasterSize, DefaultSVGRasterSize)
	}
	if cfg.History != HistoryOff {
		t.Errorf("History = %q, want off", cfg.History)
	}
}

func TestUnmarshalOverrides(t *testing.T) {
	data := []byte(`{
		"source_dir": "assets",
		"filter": "catmullrom",
		"rasterize_svg": true,
		"history": "sqlite"
	}`)
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.SourceDir != "assets" {
		t.Errorf("SourceDir = %q, want assets", cfg.SourceDir)
	}
	if cfg.DestDir != DefaultDestDir {
		t.Errorf("DestDir = %q, want default", cfg.DestDir)
	}
	if cfg.Filter != "catmullrom" || !cfg.RasterizeSVG || cfg.History != HistorySQLite {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Master != DefaultMaster {
		t.Errorf("Master = %q, want default", cfg.Master)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadExplicitJSONResolvesRelativeDirs(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "icons.json")
	writeFile(t, p, `{"source_dir": "art", "dest_dir": "/abs/out"}`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourceDir != filepath.Join(dir, "art") {
		t.Errorf("SourceDir = %q, want %q", cfg.SourceDir, filepath.Join(dir, "art"))
	}
	if cfg.DestDir != "/abs/out" {
		t.Errorf("DestDir = %q, want /abs/out", cfg.DestDir)
	}
	if cfg.Path != p {
		t.Errorf("Path = %q, want %q", cfg.Path, p)
	}
}

func TestLoadExplicitTOML(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "appicon.toml")
	writeFile(t, p, `
master = "logo.png"
filter = "mitchell"
svg_raster_size = 2048
history = "file"
`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Master != "logo.png" {
		t.Errorf("Master = %q, want logo.png", cfg.Master)
	}
	if cfg.Filter != "mitchell" || cfg.SVGRasterSize != 2048 || cfg.History != HistoryFile {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Unset keys keep defaults, resolved against the file's directory.
	if cfg.SourceDir != filepath.Join(dir, DefaultSourceDir) {
		t.Errorf("SourceDir = %q", cfg.SourceDir)
	}
	if cfg.LegacyICO != DefaultLegacyICO {
		t.Errorf("LegacyICO = %q, want default", cfg.LegacyICO)
	}
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvSourceDir, "")
	t.Setenv(EnvDestDir, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.SourceDir != DefaultSourceDir || cfg.DestDir != DefaultDestDir {
		t.Errorf("unexpected dirs: %q %q", cfg.SourceDir, cfg.DestDir)
	}
}

func TestLoadPrefersJSONOverTOML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, "appicon.json"), `{"master": "from-json.png"}`)
	writeFile(t, filepath.Join(dir, "appicon.toml"), `master = "from-toml.png"`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Master != "from-json.png" {
		t.Errorf("Master = %q, want from-json.png", cfg.Master)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvSourceDir, "  /env/src  ")
	t.Setenv(EnvDestDir, "/env/dst")
	t.Setenv(EnvHistory, "SQLite")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourceDir != "/env/src" || cfg.DestDir != "/env/dst" {
		t.Errorf("dirs = %q %q", cfg.SourceDir, cfg.DestDir)
	}
	if cfg.History != HistorySQLite {
		t.Errorf("History = %q, want sqlite", cfg.History)
	}
}

func TestLoadEnvHistoryOff(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "c.json")
	writeFile(t, p, `{"history": "file"}`)
	t.Setenv(EnvHistory, "off")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History != HistoryOff {
		t.Errorf("History = %q, want off", cfg.History)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, file, content, want string
	}{
		{"bad json", "bad.json", `{`, "parsing config"},
		{"bad toml", "bad.toml", `master = `, "parsing config"},
		{"bad filter", "f.json", `{"filter": "sinc"}`, "unknown resampling filter"},
		{"bad history", "h.json", `{"history": "redis"}`, "unknown history backend"},
		{"bad raster size", "r.json", `{"svg_raster_size": -5}`, "svg_raster_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, tt.file)
			writeFile(t, p, tt.content)
			_, err := Load(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("err = %v, want reading config error", err)
	}
}

func TestSourcePaths(t *testing.T) {
	cfg := Default()
	if got, want := cfg.MasterPath(), filepath.Join("static", "favicon.png"); got != want {
		t.Errorf("MasterPath() = %q, want %q", got, want)
	}
	if got, want := cfg.LegacyICOPath(), filepath.Join("static", "favicon.ico"); got != want {
		t.Errorf("LegacyICOPath() = %q, want %q", got, want)
	}
	cfg.SVG = ""
	if got := cfg.SVGPath(); got != "" {
		t.Errorf("SVGPath() = %q, want empty when disabled", got)
	}
}
