package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/panegrid/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Mouse   bool
}

const (
	envConfig   = "PANEGRID_CONFIG"
	envViewer   = "PANEGRID_VIEWER"
	envDatabase = "PANEGRID_DATABASE"
	envTTL      = "PANEGRID_TTL"
	envWorkers  = "PANEGRID_WORKERS"
	envWidth    = "PANEGRID_WIDTH"
	envHeight   = "PANEGRID_HEIGHT"
	envMouse    = "PANEGRID_MOUSE"
	envVerbose  = "PANEGRID_VERBOSE"
	envTrace    = "PANEGRID_TRACE"
	envLogFile  = "PANEGRID_LOG_FILE"
	envScreen   = "PANEGRID_SCREEN"
)

// fileConfig mirrors the optional TOML file. Unset keys keep the built-in
// defaults.
type fileConfig struct {
	Viewer   *string `toml:"viewer"`
	Database *string `toml:"database"`
	TTL      *string `toml:"ttl"`
	Workers  *int    `toml:"workers"`
	Width    *int    `toml:"width"`
	Height   *int    `toml:"height"`
	Mouse    *bool   `toml:"mouse"`
	Verbose  *bool   `toml:"verbose"`
	Trace    *bool   `toml:"trace"`
	LogFile  *string `toml:"log_file"`
	Screen   *string `toml:"screen"`
}

type defaults struct {
	viewer   string
	database string
	ttl      time.Duration
	workers  int
	width    int
	height   int
	mouse    bool
	verbose  bool
	trace    bool
	logFile  string
	screen   string
}

func builtinDefaults(env map[string]string) defaults {
	return defaults{
		viewer:  envOrDefault(env, "USER", "viewer"),
		ttl:     30 * time.Second,
		workers: 2,
		mouse:   true,
		screen:  "shop",
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flags, then environment, then the config file, then built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	base := builtinDefaults(env)
	file := configPath(args, env)
	if file != "" {
		if err := applyFile(&base, file); err != nil {
			return Config{}, err
		}
	}

	fs := flag.NewFlagSet("panegrid", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", file, "path to a TOML config file")
	viewer := fs.String("viewer", envOrDefault(env, envViewer, base.viewer), "viewer identity for the local session")
	database := fs.String("database", envOrDefault(env, envDatabase, base.database), "path to the catalog database (empty uses an in-memory demo catalog)")
	ttl := fs.Duration("ttl", envOrDuration(env, envTTL, base.ttl), "how long loaded catalog pages stay fresh")
	workers := fs.Int("workers", envOrInt(env, envWorkers, base.workers), "number of background loader goroutines")
	width := fs.Int("width", envOrInt(env, envWidth, base.width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, base.height), "desired viewport height in rows (0 uses terminal height)")
	mouse := fs.Bool("mouse", envOrBool(env, envMouse, base.mouse), "enable mouse clicks")
	trace := fs.Bool("trace", envOrBool(env, envTrace, base.trace), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, base.verbose), "show status messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, base.logFile), "path to the log file")
	screenID := fs.String("screen", envOrDefault(env, envScreen, base.screen), "screen to open (shop or stash)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Viewer:   *viewer,
			Database: *database,
			TTL:      *ttl,
			Workers:  *workers,
			Width:    *width,
			Height:   *height,
			Mouse:    *mouse,
			Verbose:  *verbose,
			Screen:   *screenID,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
			Mouse:   *mouse,
		},
		File: file,
		Flags: map[string]string{
			"viewer":   *viewer,
			"database": *database,
			"ttl":      ttl.String(),
			"workers":  strconv.Itoa(*workers),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"mouse":    strconv.FormatBool(*mouse),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
			"screen":   *screenID,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPath finds --config before the full flag parse so the file can seed
// the flag defaults.
func configPath(args []string, env map[string]string) string {
	path := envOrDefault(env, envConfig, "")
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		switch {
		case name == "config" && i+1 < len(args):
			path = args[i+1]
			i++
		case strings.HasPrefix(name, "config="):
			path = strings.TrimPrefix(name, "config=")
		}
	}
	return path
}

func applyFile(d *defaults, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if fc.Viewer != nil {
		d.viewer = *fc.Viewer
	}
	if fc.Database != nil {
		d.database = *fc.Database
	}
	if fc.TTL != nil {
		ttl, err := time.ParseDuration(*fc.TTL)
		if err != nil {
			return fmt.Errorf("config %s: ttl: %w", path, err)
		}
		d.ttl = ttl
	}
	if fc.Workers != nil {
		d.workers = *fc.Workers
	}
	if fc.Width != nil {
		d.width = *fc.Width
	}
	if fc.Height != nil {
		d.height = *fc.Height
	}
	if fc.Mouse != nil {
		d.mouse = *fc.Mouse
	}
	if fc.Verbose != nil {
		d.verbose = *fc.Verbose
	}
	if fc.Trace != nil {
		d.trace = *fc.Trace
	}
	if fc.LogFile != nil {
		d.logFile = *fc.LogFile
	}
	if fc.Screen != nil {
		d.screen = *fc.Screen
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Viewer) == "" {
		return fmt.Errorf("viewer must not be empty")
	}
	if cfg.App.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", cfg.App.Workers)
	}
	if cfg.App.TTL < 0 {
		return fmt.Errorf("ttl must be >= 0 (got %s)", cfg.App.TTL)
	}
	if strings.TrimSpace(cfg.App.Screen) == "" {
		return fmt.Errorf("screen must not be empty")
	}
	return nil
}
