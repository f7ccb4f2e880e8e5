// Package venusfam registers the Venus Pro (25A7:FA07/FA08) family.
package venusfam

import (
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

// Name is the registry key of this family.
const Name = "venus"

func init() {
	family.Register(Name, &handler{})
}

type handler struct{}

func (h *handler) Enumerate() ([]family.Info, error) {
	devs, err := venus.Enumerate()
	if err != nil {
		return nil, err
	}
	infos := make([]family.Info, 0, len(devs))
	for _, d := range devs {
		infos = append(infos, family.Info{
			Family:    Name,
			Path:      d.Path,
			Product:   d.Product,
			VendorID:  d.VendorID,
			ProductID: d.ProductID,
		})
	}
	return infos, nil
}
