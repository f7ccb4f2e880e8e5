package cmd

import "log/slog"

type Setup struct {
	Install SetupInstall `cmd:"" help:"Install the udev rules granting hidraw access"`
	Remove  SetupRemove  `cmd:"" help:"Remove the udev rules"`
}

type SetupInstall struct{}

// Run is called by Kong when the setup install command is executed.
func (s *SetupInstall) Run(logger *slog.Logger) error {
	return installRules(logger)
}

type SetupRemove struct{}

// Run is called by Kong when the setup remove command is executed.
func (s *SetupRemove) Run(logger *slog.Logger) error {
	return removeRules(logger)
}
