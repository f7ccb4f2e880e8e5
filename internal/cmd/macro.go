package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/hidkeys"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/staging"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/macro"
)

type Macro struct {
	Upload MacroUpload `cmd:"" help:"Encode a macro and store it in a slot"`
	Show   MacroShow   `cmd:"" help:"Read back and decode a stored macro"`
}

type MacroUpload struct {
	DeviceFlags
	Slot   int    `arg:"" help:"Macro slot (0-11)"`
	Text   string `arg:"" help:"Text the macro types"`
	Name   string `help:"Name stored on the device (default: derived from the text)"`
	Delay  int    `help:"Milliseconds between key transitions" default:"5"`
	Bind   string `help:"Button to bind to the uploaded macro"`
	Repeat string `help:"Repeat mode for --bind" enum:"once,hold,toggle" default:"once"`
	DryRun bool   `help:"Print the reports without sending them"`
}

// Run is called by Kong when the macro upload command is executed.
func (u *MacroUpload) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	name := u.Name
	if name == "" {
		name = u.Text
		if len(name) > macro.NameMax/2 {
			name = name[:macro.NameMax/2]
		}
	}
	m, err := macro.FromText(name, u.Text, uint16(u.Delay))
	if err != nil {
		return err
	}
	packets, err := macro.UploadPackets(u.Slot, m)
	if err != nil {
		return err
	}

	mgr := staging.NewManager()
	if u.Bind != "" {
		button, err := venus.ParseButton(u.Bind)
		if err != nil {
			return err
		}
		mode, err := macro.ParseRepeatMode(u.Repeat)
		if err != nil {
			return err
		}
		action, err := binding.RunMacro(u.Slot, mode)
		if err != nil {
			return err
		}
		mgr.StageChange(button, action)
	}

	if u.DryRun {
		printReports(packets)
		if mgr.HasChanges() {
			reports, err := staging.NewController(&binding.Builder{}, nil, logger).Plan(mgr)
			if err != nil {
				return err
			}
			printReports(reports)
		}
		return nil
	}

	info, err := u.venusOnly("macro upload")
	if err != nil {
		return err
	}
	dev, err := openVenus(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := sendAll(dev, packets); err != nil {
		return err
	}
	logger.Info("macro stored", "slot", u.Slot, "name", m.Name, "events", len(m.Events))

	if mgr.HasChanges() {
		ctrl := staging.NewController(&binding.Builder{}, dev, logger)
		if err := ctrl.Execute(mgr); err != nil {
			return err
		}
		logger.Info("macro bound", "button", u.Bind, "slot", u.Slot)
	}
	return nil
}

type MacroShow struct {
	DeviceFlags
	Slot int `arg:"" help:"Macro slot (0-11)"`
}

// Run is called by Kong when the macro show command is executed.
func (s *MacroShow) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	info, err := s.venusOnly("macro show")
	if err != nil {
		return err
	}
	addr, err := venus.MacroSlotAddress(s.Slot)
	if err != nil {
		return err
	}

	dev, err := openVenus(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := sendAll(dev, venus.PreparePackets()); err != nil {
		return err
	}

	header, err := readFlashSpan(dev, addr, macro.HeaderLen)
	if err != nil {
		return err
	}
	count := int(header[macro.HeaderLen-1])
	span := macro.HeaderLen + count*macro.EventLen + 4
	// A stale count byte must not drag the read into the next slot.
	if span > macro.MaxEncoded {
		span = macro.MaxEncoded
	}
	body, err := readFlashSpan(dev, addr, span)
	if err != nil {
		return err
	}
	m, err := macro.Decode(body)
	if err != nil {
		return err
	}

	fmt.Printf("Slot %d: %q, %d events\n", s.Slot, m.Name, len(m.Events))
	for _, e := range m.Events {
		edge := "up  "
		if e.Down {
			edge = "down"
		}
		fmt.Printf("  %s  %-12s %dms\n", edge, eventKeyName(e), e.DelayMS)
	}
	return nil
}

func eventKeyName(e macro.Event) string {
	if e.Modifier {
		names := hidkeys.ModifierNames(e.Keycode)
		if len(names) > 0 {
			return strings.Join(names, "+")
		}
	}
	if name, ok := hidkeys.KeyName[e.Keycode]; ok {
		return strings.ToLower(name)
	}
	return fmt.Sprintf("0x%02x", e.Keycode)
}

// readFlashSpan reads length bytes starting at addr in 8 byte chunks,
// carrying across page boundaries.
func readFlashSpan(dev *venus.Device, addr venus.Address, length int) ([]byte, error) {
	data := make([]byte, 0, length)
	for off := 0; off < length; off += 8 {
		at, err := addr.Advance(off)
		if err != nil {
			return nil, err
		}
		chunk, err := dev.ReadFlash(at.Page, at.Offset, 8)
		if err != nil {
			return nil, err
		}
		data = append(data, chunk...)
	}
	if len(data) < length {
		return nil, fmt.Errorf("flash read returned %d of %d bytes", len(data), length)
	}
	return data[:length], nil
}
