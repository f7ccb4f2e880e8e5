package cmd

import (
	"errors"
	"log/slog"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/holtekfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/profile"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

type RGB struct {
	DeviceFlags
	Color      string `arg:"" optional:"" help:"Hex color RRGGBB, e.g. ff2000"`
	Mode       string `help:"Lighting effect" enum:"steady,neon" default:"steady"`
	Brightness int    `help:"Brightness percentage" default:"100"`
	Off        bool   `help:"Turn the lighting off" xor:"effect"`
	Breathing  bool   `help:"Cycle brightness instead of holding a steady color" xor:"effect"`
	DryRun     bool   `help:"Print the reports without sending them"`
}

// Run is called by Kong when the rgb command is executed.
func (c *RGB) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	fam, info, err := c.resolve(c.DryRun)
	if err != nil {
		return err
	}
	if fam == holtekfam.Name {
		return c.runHoltek(info, logger, rawLogger)
	}

	var write venus.Report
	switch {
	case c.Off:
		write = venus.BuildRGBOff()
	case c.Breathing:
		write = venus.BuildRGBBreathing()
	default:
		if c.Color == "" {
			return errors.New("pass a color, --off or --breathing")
		}
		r, g, b, err := profile.ParseColor(c.Color)
		if err != nil {
			return err
		}
		mode := venus.LEDSteady
		if c.Mode == "neon" {
			mode = venus.LEDNeon
		}
		write = venus.BuildRGB(r, g, b, mode, c.Brightness)
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
	logger.Info("lighting updated")
	return nil
}

func (c *RGB) runHoltek(info family.Info, logger *slog.Logger, rawLogger log.RawLogger) error {
	if c.Breathing || c.Mode == "neon" {
		return errors.New("only steady colors are supported on the holtek family")
	}
	var r, g, b byte
	if !c.Off {
		if c.Color == "" {
			return errors.New("pass a color or --off")
		}
		var err error
		r, g, b, err = profile.ParseColor(c.Color)
		if err != nil {
			return err
		}
	}

	if c.DryRun {
		frame, err := holtek.BuildLED(r, g, b, 0x01, byte(c.Brightness))
		if err != nil {
			return err
		}
		printFrames([][]byte{holtek.CtrlEnterWrite(), frame})
		printFrames(holtek.CommitFrames())
		return nil
	}

	dev, err := openHoltek(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := dev.WriteLED(r, g, b, 0x01, byte(c.Brightness)); err != nil {
		return err
	}
	logger.Info("lighting updated")
	return nil
}
