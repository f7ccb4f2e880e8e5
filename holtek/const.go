// Package holtek implements the vendor HID protocol of the Holtek-based
// Venus MMO (04D9:FC55). Unlike the Venus Pro wire format there are no
// checksums: configuration lives behind plain feature reports on interface
// 2, a short 16 byte report and a long 64 byte one, and reads come back
// through get-feature rather than an interrupt endpoint.
package holtek

import "fmt"

// USB identity of the configuration interface.
const (
	VendorID        = 0x04D9
	ProductID       = 0xFC55
	ConfigInterface = 2
)

// Report IDs and total frame sizes.
const (
	RIDShort = 0x02
	RIDLong  = 0x03

	ShortLen = 16
	LongLen  = 64
)

// Command bytes, placed after the report ID.
const (
	CmdWriteCtrl = 0xF1
	CmdRead      = 0xF2
	CmdWriteData = 0xF3
	CmdPolling   = 0xF5
)

// Write payload capacities per report kind.
const (
	shortDataMax = ShortLen - 4
	longDataMax  = LongLen - 4
)

// Memory map of the configuration region.
const (
	AddrLED      = 0x00
	AddrDPI      = 0x20
	AddrSettings = 0x20
	AddrPolling  = 0x38
	AddrButtons  = 0x80

	// The button map is a 2 byte LE entry count followed by the entries.
	AddrButtonEntries = AddrButtons + 2

	settingsLen = 0x20
	buttonsLen  = 0x60
)

// Button map entry types.
const (
	BtnDisabled = 0x00
	BtnLeft     = 0x81
	BtnRight    = 0x82
	BtnMiddle   = 0x83
	BtnBack     = 0x84
	BtnForward  = 0x85
	BtnDPIUp    = 0x8B
	BtnDPIDown  = 0x8C
	BtnProfile  = 0x8D
	BtnKeyboard = 0x90
)

// MapLen is the number of entries in the on-device button map.
const MapLen = 20

// ButtonLabels names the map slots in driver order: twelve side buttons,
// the fire key, the three standard buttons, then the top controls.
var ButtonLabels = [MapLen]string{
	"Side Button 1", "Side Button 2", "Side Button 3", "Side Button 4",
	"Side Button 5", "Side Button 6", "Side Button 7", "Side Button 8",
	"Side Button 9", "Side Button 10", "Side Button 11", "Side Button 12",
	"Fire Key", "Left Mouse Button", "Middle Mouse Button", "Right Mouse Button",
	"DPI Up", "DPI Down", "Profile Switch", "Scroll Click",
}

// ButtonName returns the stable short name of a map slot, the form
// ParseButton accepts.
func ButtonName(index int) string {
	switch index {
	case 12:
		return "fire"
	case 13:
		return "left"
	case 14:
		return "middle"
	case 15:
		return "right"
	case 16:
		return "dpi-up"
	case 17:
		return "dpi-down"
	case 18:
		return "profile"
	case 19:
		return "scroll"
	}
	return fmt.Sprintf("button%d", index+1)
}

// pollingCodes maps rates in Hz to the F5 command code.
var pollingCodes = map[int]byte{
	125:  0x08,
	250:  0x04,
	500:  0x02,
	1000: 0x01,
}

// PollingRates lists the supported rates in ascending order.
func PollingRates() []int {
	return []int{125, 250, 500, 1000}
}

// PollingRateFromCode resolves an F5 code read back from the device.
func PollingRateFromCode(code byte) (int, bool) {
	for rate, c := range pollingCodes {
		if c == code {
			return rate, true
		}
	}
	return 0, false
}
