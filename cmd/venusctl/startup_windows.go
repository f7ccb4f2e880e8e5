//go:build windows

package main

import (
	"log/slog"
	"os"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/util"
)

// A double-clicked binary gets a useful default command instead of the
// usage error kong would print.
func init() {
	if !util.IsRunFromGUI() || len(os.Args) >= 2 {
		return
	}
	slog.Info("Detected GUI startup, defaulting to the list command")
	slog.Warn("Run from a CLI for more options!")
	os.Args = append(os.Args, "list")
}
