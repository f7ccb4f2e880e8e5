package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/config"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/configpaths"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/util"

	_ "github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/registry" // Register all device families

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	var cli config.CLI
	ctx := parseCommandLine(&cli)

	logger, closers, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "venusctl: logger setup:", err)
		os.Exit(2)
	}

	raw, rawCloser := openRawLogger(logger, cli.Log)
	if rawCloser != nil {
		closers = append(closers, rawCloser)
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	ctx.BindTo(raw, (*log.RawLogger)(nil))

	err = ctx.Run()
	holdConsoleOpen(logger, err)
	ctx.FatalIfErrorf(err)
}

// parseCommandLine attaches the config file loaders and parses the flags.
// The --config value has to be scanned out before kong runs, because the
// loaders are fixed at Parse time. Flags and env override file values.
func parseCommandLine(cli *config.CLI) *kong.Context {
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userConfigPath(os.Args[1:]))
	return kong.Parse(cli,
		kong.Name("venusctl"),
		kong.Description("Configuration utility for UtechSmart Venus Pro and related MMO mice"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
}

// userConfigPath pre-scans the arguments for an explicit config file. Env
// fallback matches the flag's env tag so both spellings behave the same.
func userConfigPath(args []string) string {
	for i, a := range args {
		if path, ok := strings.CutPrefix(a, "--config="); ok {
			return path
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("VENUSCTL_CONFIG")
}

// openRawLogger picks the HID traffic sink: an explicit capture file wins,
// the trace log level dumps to stdout, anything else stays silent.
func openRawLogger(logger *slog.Logger, cfg config.Log) (log.RawLogger, io.Closer) {
	if cfg.RawFile != "" {
		f, err := os.OpenFile(cfg.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cfg.RawFile, "error", err)
			return log.NewRaw(nil), nil
		}
		return log.NewRaw(f), f
	}
	if cfg.Level == "trace" {
		return log.NewRaw(os.Stdout), nil
	}
	return log.NewRaw(nil), nil
}

// holdConsoleOpen keeps the output readable when the binary was started by
// a double click and the window would vanish with it.
func holdConsoleOpen(logger *slog.Logger, err error) {
	if !util.IsRunFromGUI() {
		return
	}
	if err != nil {
		logger.Error("command failed", "error", err)
	}
	fmt.Print("Press enter to close...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
