package cmd

import (
	"fmt"
	"log/slog"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
)

type List struct{}

// Run is called by Kong when the list command is executed.
func (l *List) Run(logger *slog.Logger) error {
	infos, err := family.EnumerateAll()
	if err != nil {
		logger.Warn("enumeration incomplete", "error", err)
	}
	if len(infos) == 0 {
		fmt.Println("No supported devices found.")
		fmt.Println("On Linux, run `venusctl setup install` once to grant hidraw access.")
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%-8s %04x:%04x  %-32s %s\n",
			info.Family, info.VendorID, info.ProductID, info.Product, info.Path)
	}
	return nil
}
