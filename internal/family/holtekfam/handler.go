// Package holtekfam registers the Holtek (04D9:FC55) family.
package holtekfam

import (
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
)

// Name is the registry key of this family.
const Name = "holtek"

func init() {
	family.Register(Name, &handler{})
}

type handler struct{}

func (h *handler) Enumerate() ([]family.Info, error) {
	devs, err := holtek.Enumerate()
	if err != nil {
		return nil, err
	}
	infos := make([]family.Info, 0, len(devs))
	for _, d := range devs {
		infos = append(infos, family.Info{
			Family:    Name,
			Path:      d.Path,
			Product:   d.Product,
			VendorID:  holtek.VendorID,
			ProductID: holtek.ProductID,
		})
	}
	return infos, nil
}
