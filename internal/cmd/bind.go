package cmd

import (
	"log/slog"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/holtekfam"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/staging"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
)

type Bind struct {
	DeviceFlags
	Button string `arg:"" help:"Button name (button1..button12, fire, left, middle, right)"`
	Action string `arg:"" help:"Action, e.g. key:ctrl+c, mouse:forward, macro:0:hold, media:play-pause, dpi:loop, disabled"`
	DryRun bool   `help:"Print the reports without sending them"`
}

// Run is called by Kong when the bind command is executed.
func (b *Bind) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	fam, info, err := b.resolve(b.DryRun)
	if err != nil {
		return err
	}
	if fam == holtekfam.Name {
		return b.runHoltek(info, logger, rawLogger)
	}

	button, err := venus.ParseButton(b.Button)
	if err != nil {
		return err
	}
	action, err := binding.ParseAction(b.Action)
	if err != nil {
		return err
	}

	mgr := staging.NewManager()
	mgr.StageChange(button, action)

	if b.DryRun {
		reports, err := staging.NewController(&binding.Builder{}, nil, logger).Plan(mgr)
		if err != nil {
			return err
		}
		printReports(reports)
		return nil
	}

	dev, err := openVenus(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	ctrl := staging.NewController(&binding.Builder{}, dev, logger)
	if err := ctrl.Execute(mgr); err != nil {
		return err
	}
	logger.Info("binding stored", "button", button.String(), "action", action.String())
	return nil
}

func (b *Bind) runHoltek(info family.Info, logger *slog.Logger, rawLogger log.RawLogger) error {
	index, err := holtek.ParseButton(b.Button)
	if err != nil {
		return err
	}
	entry, err := holtek.ParseAction(b.Action)
	if err != nil {
		return err
	}

	if b.DryRun {
		frame, err := entry.WritePacket(index)
		if err != nil {
			return err
		}
		frames := append([][]byte{holtek.CtrlEnterWrite(), frame}, holtek.CommitFrames()...)
		printFrames(frames)
		return nil
	}

	dev, err := openHoltek(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := dev.WriteEntry(index, entry); err != nil {
		return err
	}
	logger.Info("binding stored", "button", holtek.ButtonLabels[index], "action", entry.String())
	return nil
}
