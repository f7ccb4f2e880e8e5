// Package cmd implements the venusctl commands.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/holtekfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/venusfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

// DeviceFlags selects the device a command talks to. With the default
// family "auto" the registry picks the first attached supported mouse.
type DeviceFlags struct {
	Device string `help:"HID device path (default: first detected device)" short:"d" env:"VENUSCTL_DEVICE"`
	Family string `help:"Device family" enum:"auto,venus,holtek" default:"auto" env:"VENUSCTL_FAMILY"`
}

func (f DeviceFlags) detect() (family.Info, error) {
	return family.Detect(f.Family, f.Device)
}

// resolve picks the family and device for a command. In dry-run mode a
// missing device is not fatal: the explicit family (or venus) is assumed so
// packet output works without hardware attached.
func (f DeviceFlags) resolve(dryRun bool) (string, family.Info, error) {
	info, err := f.detect()
	if err == nil {
		return info.Family, info, nil
	}
	if dryRun {
		if f.Family != "" && f.Family != "auto" {
			return f.Family, family.Info{}, nil
		}
		return venusfam.Name, family.Info{}, nil
	}
	return "", family.Info{}, err
}

// venusOnly resolves the device for commands the Holtek variant has no
// equivalent of.
func (f DeviceFlags) venusOnly(op string) (family.Info, error) {
	switch f.Family {
	case "", "auto", venusfam.Name:
		return family.Detect(venusfam.Name, f.Device)
	default:
		return family.Info{}, fmt.Errorf("%s is not supported on the %s family", op, f.Family)
	}
}

func openVenus(info family.Info, logger *slog.Logger, rawLogger log.RawLogger) (*venus.Device, error) {
	dev := venus.NewDevice(info.Path)
	dev.SetTrafficLogger(rawLogger)
	if err := dev.Open(); err != nil {
		return nil, err
	}
	logger.Debug("device open", "family", info.Family, "path", info.Path)
	return dev, nil
}

func openHoltek(info family.Info, logger *slog.Logger, rawLogger log.RawLogger) (*holtek.Device, error) {
	dev := holtek.NewDevice(info.Path)
	dev.SetTrafficLogger(rawLogger)
	if err := dev.Open(); err != nil {
		return nil, err
	}
	logger.Debug("device open", "family", info.Family, "path", info.Path)
	return dev, nil
}

func isHoltek(info family.Info) bool {
	return info.Family == holtekfam.Name
}

// sendAll sends reports in order, stopping at the first failure.
func sendAll(dev *venus.Device, reports []venus.Report) error {
	for _, r := range reports {
		if err := dev.SendReliable(r); err != nil {
			return err
		}
	}
	return nil
}

// printReports prints reports as hex, one per line, for dry runs.
func printReports(reports []venus.Report) {
	for _, r := range reports {
		fmt.Println(r.String())
	}
}

// printFrames prints raw frames as hex, one per line, for dry runs.
func printFrames(frames [][]byte) {
	for _, f := range frames {
		for i, b := range f {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Printf("%02x", b)
		}
		fmt.Println()
	}
}
