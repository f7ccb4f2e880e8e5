package cmd

import (
	"fmt"
	"log/slog"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/holtekfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/venusfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/profile"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
)

type Dump struct {
	DeviceFlags
	Save string `help:"Write the bindings to a profile file (.yaml, .toml or .json)" type:"path"`
}

// Run is called by Kong when the dump command is executed.
func (d *Dump) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	info, err := d.detect()
	if err != nil {
		return err
	}
	if isHoltek(info) {
		return d.runHoltek(info, logger, rawLogger)
	}
	return d.runVenus(info, logger, rawLogger)
}

func (d *Dump) runVenus(info family.Info, logger *slog.Logger, rawLogger log.RawLogger) error {
	dev, err := openVenus(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	// The vendor tool opens every read-back with the prepare pair.
	if err := sendAll(dev, venus.PreparePackets()); err != nil {
		return err
	}

	buttons := make(map[string]string, venus.ButtonCount)
	fmt.Println("Buttons:")
	for _, button := range venus.Buttons() {
		action, err := readVenusBinding(dev, button)
		if err != nil {
			logger.Warn("binding unreadable", "button", button.String(), "error", err)
			fmt.Printf("  %-16s ?\n", button.String())
			continue
		}
		buttons[button.String()] = action.String()
		fmt.Printf("  %-16s %s\n", button.String(), action.String())
	}

	p := &profile.Profile{Device: venusfam.Name, Buttons: buttons}
	d.printVenusSettings(dev, logger, p)

	if d.Save != "" {
		if err := profile.Save(d.Save, p); err != nil {
			return err
		}
		logger.Info("profile saved", "path", d.Save)
	}
	return nil
}

// readVenusBinding reads a button's 4-byte binding entry from the first
// profile page and, for key-data actions, the key-definition stream it
// points at.
func readVenusBinding(dev *venus.Device, button venus.ButtonKey) (binding.Action, error) {
	prof, ok := venus.Profile(button)
	if !ok {
		return binding.Action{}, fmt.Errorf("no flash locations for %v", button)
	}
	entry, err := dev.ReadFlash(0x00, prof.ApplyOffset, 4)
	if err != nil {
		return binding.Action{}, err
	}
	var stream []byte
	if len(entry) > 0 && binding.ActionType(entry[0]) == binding.TypeKeyboardKey {
		stream, err = dev.ReadFlash(prof.KeyPage, prof.KeyOffset, 8)
		if err != nil {
			return binding.Action{}, err
		}
		// A modified key definition spills past the first chunk.
		if len(stream) > 0 && stream[0] == 0x04 {
			rest, err := dev.ReadFlash(prof.KeyPage, prof.KeyOffset+8, 8)
			if err != nil {
				return binding.Action{}, err
			}
			stream = append(stream, rest...)
		}
	}
	return binding.DecodeEntry(entry, stream)
}

func (d *Dump) printVenusSettings(dev *venus.Device, logger *slog.Logger, p *profile.Profile) {
	fmt.Println("Settings:")

	var dpi []int
	for slot := 0; slot < venus.DPISlots; slot++ {
		data, err := dev.ReadFlash(0x00, byte(0x0C+slot*4), 4)
		if err != nil || len(data) < 1 {
			logger.Warn("dpi slot unreadable", "slot", slot, "error", err)
			continue
		}
		if value, ok := venus.DPIValueFromRegister(data[0]); ok {
			dpi = append(dpi, value)
			fmt.Printf("  dpi slot %d:  %d\n", slot, value)
		} else {
			fmt.Printf("  dpi slot %d:  register 0x%02x\n", slot, data[0])
		}
	}
	if len(dpi) == venus.DPISlots {
		p.DPI = dpi
	}

	if data, err := dev.ReadFlash(0x00, 0x00, 2); err == nil && len(data) > 0 {
		if rate, ok := venus.PollingRateFromCode(data[0]); ok {
			p.Polling = rate
			fmt.Printf("  polling:     %d Hz\n", rate)
		} else {
			fmt.Printf("  polling:     code 0x%02x\n", data[0])
		}
	} else {
		logger.Warn("polling rate unreadable", "error", err)
	}

	if data, err := dev.ReadFlash(0x00, 0x54, 8); err == nil && len(data) >= 8 {
		mode := "steady"
		if venus.LEDMode(data[3]) == venus.LEDNeon {
			mode = "neon"
		}
		brightness := int(data[6]) / 3
		p.RGB = &profile.RGB{
			Color:      fmt.Sprintf("%02x%02x%02x", data[0], data[1], data[2]),
			Mode:       mode,
			Brightness: brightness,
		}
		fmt.Printf("  lighting:    #%s %s, brightness %d%%\n", p.RGB.Color, mode, brightness)
	} else {
		logger.Warn("lighting unreadable", "error", err)
	}
}

func (d *Dump) runHoltek(info family.Info, logger *slog.Logger, rawLogger log.RawLogger) error {
	dev, err := openHoltek(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	m, err := dev.ReadButtonMap()
	if err != nil {
		return err
	}
	buttons := make(map[string]string, holtek.MapLen)
	fmt.Println("Buttons:")
	for i, e := range m {
		fmt.Printf("  %-20s %s\n", holtek.ButtonLabels[i], e.String())
		buttons[holtek.ButtonName(i)] = e.String()
	}

	settings, err := dev.ReadSettings()
	if err != nil {
		return err
	}
	fmt.Println("Settings:")
	fmt.Printf("  dpi region:  % x\n", settings[:16])
	fmt.Printf("  led region:  % x\n", settings[16:32])

	if d.Save != "" {
		p := &profile.Profile{Device: holtekfam.Name, Buttons: buttons}
		if err := profile.Save(d.Save, p); err != nil {
			return err
		}
		logger.Info("profile saved", "path", d.Save)
	}
	return nil
}
