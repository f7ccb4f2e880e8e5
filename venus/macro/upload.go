package macro

import (
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

// UploadPackets builds the full report sequence that stores m into a macro
// slot: the prepare pair, then the encoded macro streamed in write chunks
// from the slot's base address.
func UploadPackets(slot int, m Macro) ([]venus.Report, error) {
	addr, err := venus.MacroSlotAddress(slot)
	if err != nil {
		return nil, err
	}
	data, err := Encode(m)
	if err != nil {
		return nil, err
	}
	writes, err := venus.WriteStream(addr, data)
	if err != nil {
		return nil, err
	}
	return append(venus.PreparePackets(), writes...), nil
}
