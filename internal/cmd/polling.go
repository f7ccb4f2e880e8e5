package cmd

import (
	"log/slog"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/holtekfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

type Polling struct {
	DeviceFlags
	Rate   int  `arg:"" help:"Polling rate in Hz: 125, 250, 500 or 1000"`
	DryRun bool `help:"Print the reports without sending them"`
}

// Run is called by Kong when the polling command is executed.
func (c *Polling) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	fam, info, err := c.resolve(c.DryRun)
	if err != nil {
		return err
	}
	if fam == holtekfam.Name {
		return c.runHoltek(info, logger, rawLogger)
	}

	write, err := venus.BuildPolling(c.Rate)
	if err != nil {
		return err
	}
	reports := append(venus.PreparePackets(), write)

	if c.DryRun {
		printReports(reports)
		return nil
	}

	dev, err := openVenus(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := sendAll(dev, reports); err != nil {
		return err
	}
	logger.Info("polling rate set", "hz", c.Rate)
	return nil
}

func (c *Polling) runHoltek(info family.Info, logger *slog.Logger, rawLogger log.RawLogger) error {
	if c.DryRun {
		frame, err := holtek.BuildPolling(c.Rate)
		if err != nil {
			return err
		}
		printFrames([][]byte{frame})
		return nil
	}

	dev, err := openHoltek(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := dev.SetPollingRate(c.Rate); err != nil {
		return err
	}
	logger.Info("polling rate set", "hz", c.Rate)
	return nil
}
