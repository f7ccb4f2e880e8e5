package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/log"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

type Reset struct {
	DeviceFlags
	Yes bool `help:"Skip the confirmation prompt" short:"y"`
}

// Run is called by Kong when the reset command is executed.
func (c *Reset) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	info, err := c.venusOnly("factory reset")
	if err != nil {
		return err
	}

	if !c.Yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to reset without a terminal; pass --yes to confirm")
		}
		fmt.Print("This clears all bindings, macros and lighting settings. Type \"yes\" to continue: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	dev, err := openVenus(info, logger, rawLogger)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := dev.SendReliable(venus.BuildReset()); err != nil {
		return err
	}
	logger.Info("factory reset sent", "path", info.Path)
	return nil
}
