package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

type DPI struct {
	DeviceFlags
	Values []int `arg:"" optional:"" help:"DPI per step, up to 5 values, e.g. 1600 2400 4900"`
	List   bool  `help:"List the DPI steps with known register presets"`
	DryRun bool  `help:"Print the reports without sending them"`
}

// Run is called by Kong when the dpi command is executed.
func (c *DPI) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	if c.List {
		for _, v := range venus.DPIPresetValues() {
			fmt.Println(v)
		}
		return nil
	}
	if len(c.Values) == 0 {
		return errors.New("pass DPI values or --list")
	}
	if len(c.Values) > venus.DPISlots {
		return fmt.Errorf("the device stores %d DPI steps, got %d", venus.DPISlots, len(c.Values))
	}

	// The vendor tool opens DPI writes with the handshake alone, without
	// the prepare command the other settings use.
	reports := []venus.Report{venus.BuildSimple(venus.CmdHandshake)}
	for slot, value := range c.Values {
		preset, ok := venus.DPIPresets[value]
		if !ok {
			return fmt.Errorf("no register preset for %d dpi (supported: %v)", value, venus.DPIPresetValues())
		}
		r, err := venus.BuildDPI(slot, preset)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	}

	if c.DryRun {
		printReports(reports)
		return nil
	}

	info, err := c.venusOnly("dpi steps")
	if err != nil {
		return err
	}
	dev, err := openVenus(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := sendAll(dev, reports); err != nil {
		return err
	}
	logger.Info("dpi steps stored", "steps", c.Values)
	return nil
}
