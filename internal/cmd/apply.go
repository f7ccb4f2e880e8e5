package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/holtekfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/venusfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/profile"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/staging"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
)

type Apply struct {
	DeviceFlags
	Profile string `arg:"" type:"existingfile" help:"Profile file (.yaml, .toml or .json)"`
	DryRun  bool   `help:"Print the reports without sending them"`
}

// Run is called by Kong when the apply command is executed.
func (a *Apply) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	p, err := profile.Load(a.Profile)
	if err != nil {
		return err
	}

	// The profile's device field narrows auto detection.
	flags := a.DeviceFlags
	if flags.Family == "" || flags.Family == "auto" {
		switch {
		case p.IsHoltek():
			flags.Family = holtekfam.Name
		case p.Device != "":
			flags.Family = venusfam.Name
		}
	}
	fam, info, err := flags.resolve(a.DryRun)
	if err != nil {
		return err
	}
	if fam == holtekfam.Name {
		return a.runHoltek(p, info, logger, rawLogger)
	}

	bindings, err := p.VenusBindings()
	if err != nil {
		return err
	}
	mgr := staging.NewManager()
	for button, action := range bindings {
		mgr.StageChange(button, action)
	}
	settings, err := venusSettingsReports(p)
	if err != nil {
		return err
	}

	if a.DryRun {
		reports, err := staging.NewController(&binding.Builder{}, nil, logger).Plan(mgr)
		if err != nil {
			return err
		}
		printReports(reports)
		printReports(settings)
		return nil
	}

	dev, err := openVenus(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if mgr.HasChanges() {
		ctrl := staging.NewController(&binding.Builder{}, dev, logger)
		if err := ctrl.Execute(mgr); err != nil {
			return err
		}
	}
	if err := sendAll(dev, settings); err != nil {
		return err
	}
	logger.Info("profile applied", "profile", a.Profile, "bindings", len(bindings))
	return nil
}

// venusSettingsReports builds the settings writes of a profile: DPI steps,
// polling rate and lighting, behind one prepare pair. Nil when the profile
// has no settings sections.
func venusSettingsReports(p *profile.Profile) ([]venus.Report, error) {
	var writes []venus.Report
	if len(p.DPI) > venus.DPISlots {
		return nil, fmt.Errorf("profile has %d dpi steps, the device stores %d", len(p.DPI), venus.DPISlots)
	}
	for slot, value := range p.DPI {
		preset, ok := venus.DPIPresets[value]
		if !ok {
			return nil, fmt.Errorf("no register preset for %d dpi (supported: %v)", value, venus.DPIPresetValues())
		}
		r, err := venus.BuildDPI(slot, preset)
		if err != nil {
			return nil, err
		}
		writes = append(writes, r)
	}
	if p.Polling != 0 {
		r, err := venus.BuildPolling(p.Polling)
		if err != nil {
			return nil, err
		}
		writes = append(writes, r)
	}
	if p.RGB != nil {
		r, err := rgbReport(p.RGB)
		if err != nil {
			return nil, err
		}
		writes = append(writes, r)
	}
	if len(writes) == 0 {
		return nil, nil
	}
	return append(venus.PreparePackets(), writes...), nil
}

func rgbReport(c *profile.RGB) (venus.Report, error) {
	switch strings.ToLower(c.Mode) {
	case "off":
		return venus.BuildRGBOff(), nil
	case "breathing":
		return venus.BuildRGBBreathing(), nil
	case "", "steady", "neon":
	default:
		return venus.Report{}, fmt.Errorf("unknown lighting mode %q", c.Mode)
	}
	mode := venus.LEDSteady
	if strings.EqualFold(c.Mode, "neon") {
		mode = venus.LEDNeon
	}
	r, g, b, err := profile.ParseColor(c.Color)
	if err != nil {
		return venus.Report{}, err
	}
	brightness := c.Brightness
	if brightness == 0 {
		brightness = 100
	}
	return venus.BuildRGB(r, g, b, mode, brightness), nil
}

func (a *Apply) runHoltek(p *profile.Profile, info family.Info, logger *slog.Logger, rawLogger log.RawLogger) error {
	bindings, err := p.HoltekBindings()
	if err != nil {
		return err
	}
	if len(p.DPI) > 0 {
		return fmt.Errorf("dpi steps are not supported on the holtek family")
	}

	var led *ledSpec
	if p.RGB != nil {
		led, err = holtekLED(p.RGB)
		if err != nil {
			return err
		}
	}
	var polling []byte
	if p.Polling != 0 {
		polling, err = holtek.BuildPolling(p.Polling)
		if err != nil {
			return err
		}
	}

	if a.DryRun {
		var flash [][]byte
		if len(bindings) > 0 {
			m := holtek.DefaultButtonMap()
			for idx, e := range bindings {
				m[idx] = e
			}
			packets, err := m.WritePackets()
			if err != nil {
				return err
			}
			flash = append(flash, packets...)
		}
		if led != nil {
			frame, err := holtek.BuildLED(led.r, led.g, led.b, 0x01, led.brightness)
			if err != nil {
				return err
			}
			flash = append(flash, frame)
		}
		if len(flash) > 0 {
			printFrames([][]byte{holtek.CtrlEnterWrite()})
			printFrames(flash)
			printFrames(holtek.CommitFrames())
		}
		if polling != nil {
			printFrames([][]byte{polling})
		}
		return nil
	}

	dev, err := openHoltek(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if len(bindings) > 0 {
		// Overlay the profile on the map currently in flash so unnamed
		// buttons keep their assignment.
		m, err := dev.ReadButtonMap()
		if err != nil {
			return err
		}
		for idx, e := range bindings {
			m[idx] = e
		}
		if err := dev.WriteButtonMap(m); err != nil {
			return err
		}
	}
	if led != nil {
		if err := dev.WriteLED(led.r, led.g, led.b, 0x01, led.brightness); err != nil {
			return err
		}
	}
	if polling != nil {
		if err := dev.SendReliable(polling); err != nil {
			return err
		}
	}
	logger.Info("profile applied", "profile", a.Profile, "bindings", len(bindings))
	return nil
}

type ledSpec struct {
	r, g, b    byte
	brightness byte
}

// holtekLED validates a profile lighting section against what the Holtek
// flash stores: steady colors only.
func holtekLED(c *profile.RGB) (*ledSpec, error) {
	switch strings.ToLower(c.Mode) {
	case "", "steady":
	default:
		return nil, fmt.Errorf("lighting mode %q is not supported on the holtek family", c.Mode)
	}
	r, g, b, err := profile.ParseColor(c.Color)
	if err != nil {
		return nil, err
	}
	brightness := c.Brightness
	if brightness == 0 {
		brightness = 100
	}
	return &ledSpec{r: r, g: g, b: b, brightness: byte(brightness)}, nil
}
