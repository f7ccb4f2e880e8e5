//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errSetupUnsupported = errors.New("udev rules are only needed on Linux")

func installRules(*slog.Logger) error { return errSetupUnsupported }

func removeRules(*slog.Logger) error { return errSetupUnsupported }
