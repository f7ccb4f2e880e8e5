//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

const rulesPath = "/etc/udev/rules.d/70-venusctl.rules"

func installRules(logger *slog.Logger) error {
	if err := os.WriteFile(rulesPath, []byte(udevRulesContent()), 0o644); err != nil {
		return err
	}

	steps := [][]string{
		{"control", "--reload-rules"},
		{"trigger", "--subsystem-match=hidraw"},
	}
	for _, args := range steps {
		if err := runUdevadm(args...); err != nil {
			return err
		}
	}

	logger.Info("udev rules installed", "path", rulesPath)
	logger.Info("replug the mouse if it was already connected")
	return nil
}

func removeRules(logger *slog.Logger) error {
	var errs []error

	if err := os.Remove(rulesPath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if err := runUdevadm("control", "--reload-rules"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Info("udev rules removed", "path", rulesPath)
	return nil
}

func udevRulesContent() string {
	ids := [][2]uint16{
		{venus.VendorID, venus.ProductIDWired},
		{venus.VendorID, venus.ProductIDDual},
		{holtek.VendorID, holtek.ProductID},
	}
	var sb strings.Builder
	sb.WriteString("# venusctl: console access to the mouse's configuration interface\n")
	for _, id := range ids {
		fmt.Fprintf(&sb,
			"KERNEL==\"hidraw*\", ATTRS{idVendor}==\"%04x\", ATTRS{idProduct}==\"%04x\", MODE=\"0660\", TAG+=\"uaccess\"\n",
			id[0], id[1])
	}
	return sb.String()
}

func runUdevadm(args ...string) error {
	cmd := exec.Command("udevadm", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("udevadm %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
