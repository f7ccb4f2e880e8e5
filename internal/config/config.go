// Package config defines the CLI structure and configuration for venusctl.
package config

import (
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"VENUSCTL_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" env:"VENUSCTL_LOG_FILE"`
	RawFile string `help:"Raw report log file path (default: none)" env:"VENUSCTL_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log    `embed:"" prefix:"log."`
	Config string `help:"Path to a venusctl config file" env:"VENUSCTL_CONFIG"`

	List    cmd.List          `cmd:"" help:"List attached supported mice"`
	Bind    cmd.Bind          `cmd:"" help:"Bind a button to an action"`
	Apply   cmd.Apply         `cmd:"" help:"Apply a profile file to the device"`
	Dump    cmd.Dump          `cmd:"" help:"Read the configuration stored on the device"`
	Macro   cmd.Macro         `cmd:"" help:"Upload or inspect stored macros"`
	RGB     cmd.RGB           `cmd:"" name:"rgb" help:"Set the lighting color, effect and brightness"`
	DPI     cmd.DPI           `cmd:"" name:"dpi" help:"Program the DPI steps"`
	Polling cmd.Polling       `cmd:"" help:"Set the USB polling rate"`
	Reset   cmd.Reset         `cmd:"" help:"Restore the device to factory defaults"`
	Setup   cmd.Setup         `cmd:"" help:"Install or remove the udev rules (Linux)"`
	Cfg     cmd.ConfigCommand `cmd:"" name:"config" help:"Manage venusctl configuration files"`
}
