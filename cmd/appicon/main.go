package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/console"
	"github.com/Mavwarf/appicon/internal/generator"
	"github.com/Mavwarf/appicon/internal/paths"
	"github.com/Mavwarf/appicon/internal/runlog"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// cliOptions holds the global flags. Empty strings mean "not given".
type cliOptions struct {
	configPath string
	srcDir     string
	dstDir     string
}

func main() {
	cli, rest, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(rest) == 0 {
		os.Exit(generate(cli, console.New(os.Stdout), console.New(os.Stderr)))
	}

	switch rest[0] {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "targets":
		cfg := loadConfig(cli)
		printTargets(os.Stdout, cfg)
	case "history":
		historyCmd(rest[1:], loadConfig(cli))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", rest[0])
		fmt.Fprintf(os.Stderr, "Run 'appicon help' for usage.\n")
		os.Exit(1)
	}
}

// parseArgs strips the global flags from args and returns what remains.
func parseArgs(args []string) (cliOptions, []string, error) {
	var cli cliOptions
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return cli, nil, errors.New("--config requires a file path")
			}
			cli.configPath = args[i+1]
			i++
		case "--src":
			if i+1 >= len(args) {
				return cli, nil, errors.New("--src requires a directory")
			}
			cli.srcDir = args[i+1]
			i++
		case "--dst":
			if i+1 >= len(args) {
				return cli, nil, errors.New("--dst requires a directory")
			}
			cli.dstDir = args[i+1]
			i++
		default:
			rest = append(rest, args[i])
		}
	}
	return cli, rest, nil
}

// resolveConfig loads the config and applies flag overrides, which win
// over the file and the environment.
func resolveConfig(cli cliOptions) (config.Config, error) {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cli.srcDir != "" {
		cfg.SourceDir = cli.srcDir
	}
	if cli.dstDir != "" {
		cfg.DestDir = cli.dstDir
	}
	return cfg, nil
}

func loadConfig(cli cliOptions) config.Config {
	cfg, err := resolveConfig(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func generatorOptions(cfg config.Config) generator.Options {
	return generator.Options{
		SourceDir:     cfg.SourceDir,
		DestDir:       cfg.DestDir,
		Master:        cfg.Master,
		LegacyICO:     cfg.LegacyICO,
		SVG:           cfg.SVG,
		Filter:        cfg.Filter,
		RasterizeSVG:  cfg.RasterizeSVG,
		SVGRasterSize: cfg.SVGRasterSize,
	}
}

// generate runs the pipeline once and returns the process exit code.
// Progress goes to out; a fatal precondition is reported on errOut.
func generate(cli cliOptions, out, errOut *console.Printer) int {
	cfg, err := resolveConfig(cli)
	if err != nil {
		errOut.Report(generator.Outcome{Status: generator.StatusError, Err: err})
		return 1
	}

	reporter := generator.ReporterFunc(func(o generator.Outcome) {
		if o.Step == generator.StepSource && o.Status == generator.StatusError {
			errOut.Report(o)
			return
		}
		out.Report(o)
	})
	g, err := generator.New(generatorOptions(cfg), reporter)
	if err != nil {
		errOut.Report(generator.Outcome{Status: generator.StatusError, Err: err})
		return 1
	}

	report, runErr := g.Run()
	if runErr == nil {
		out.Summary(report)
	}
	recordHistory(cfg, report, runErr)
	if runErr != nil {
		return 1
	}
	return 0
}

// recordHistory stores the run when history is enabled. Best-effort.
func recordHistory(cfg config.Config, report *generator.Report, runErr error) {
	if cfg.History == config.HistoryOff {
		return
	}
	store, err := runlog.Open(cfg.History, paths.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "runlog: %v\n", err)
		return
	}
	defer store.Close()
	if err := store.Record(runlog.FromReport(report, runErr)); err != nil {
		fmt.Fprintf(os.Stderr, "runlog: %v\n", err)
	}
}

func printVersion() {
	fmt.Printf("appicon %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("appicon %s - Regenerate desktop bundler icons from a master PNG\n", version)
	fmt.Println(`
Usage:
  appicon [options]
  appicon [options] <command>

Options:
  --config, -c <path>    Path to appicon.json or appicon.toml
  --src <dir>            Source directory (default: static)
  --dst <dir>            Destination directory (default: src-tauri/icons)

Commands:
  targets                List source files and every output with its size
  history [n]            Show the last n recorded runs (default 10)
  history clear          Delete the run history
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>     (explicit)
  2. ./appicon.json
  3. ./appicon.toml
  4. built-in defaults

Environment:
  APPICON_SOURCE_DIR, APPICON_DEST_DIR, APPICON_HISTORY (file, sqlite, off)

Examples:
  appicon                          Regenerate src-tauri/icons from static/favicon.png
  appicon --src assets --dst out   Use other directories
  appicon history 5                Show the last five runs`)
}
