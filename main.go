package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/panegrid/internal/app"
	"github.com/atomicstack/panegrid/internal/config"
	"github.com/atomicstack/panegrid/internal/logging"
	"github.com/atomicstack/panegrid/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("panegrid needs an interactive terminal")

func main() {
	os.Exit(run(config.MustLoad(), collectTTYDetails))
}

// run starts the grid host and returns the process exit code.
func run(runtimeCfg config.Config, probe func() ttyDetails) int {
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := probe()
	traceStartup(runtimeCfg, tty)

	err := errNoTerminal
	if tty.Interactive() {
		err = app.Run(runtimeCfg.App)
	}
	code := 0
	if err != nil {
		code = 1
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	events.App.Exit(runtimeCfg.App.Screen, code, err)
	return code
}

func traceStartup(cfg config.Config, tty ttyDetails) {
	payload := startupTracePayload(cfg)
	payload["tty"] = tty
	events.App.Start(payload)
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["screen"] = cfg.App.Screen
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

// Interactive reports whether any standard descriptor is a sized terminal.
func (d ttyDetails) Interactive() bool {
	return d.Detected != nil
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

var ttyProbes = []*os.File{os.Stdin, os.Stdout, os.Stderr}

// collectTTYDetails probes stdin, stdout and stderr in order; the first sized
// terminal becomes the detected viewport.
func collectTTYDetails() ttyDetails {
	var details ttyDetails
	for _, f := range ttyProbes {
		result := probeTTY(f)
		details.Probes = append(details.Probes, result)
		if details.Detected == nil && result.IsTerminal && result.Error == "" {
			details.Detected = &ttyDetected{Source: result.Name, Width: result.Width, Height: result.Height}
		}
	}
	return details
}

func probeTTY(f *os.File) ttyProbeResult {
	result := ttyProbeResult{Name: strings.TrimPrefix(f.Name(), "/dev/")}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return result
	}
	result.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Width, result.Height = width, height
	return result
}
