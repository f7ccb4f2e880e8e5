package venus

import (
	"fmt"
	"sort"
)

// LEDMode selects the lighting effect stored in the color register.
type LEDMode byte

const (
	LEDSteady LEDMode = 0x56
	LEDNeon   LEDMode = 0x57
)

// DPISlots is the number of configurable DPI steps.
const DPISlots = 5

// DPIPreset is one register pair for a DPI step. The pairs are not a linear
// function of the DPI value; they come from captures of the vendor tool.
type DPIPreset struct {
	Value byte
	Tweak byte
}

// DPIPresets maps common DPI steps to their capture-derived register pairs.
var DPIPresets = map[int]DPIPreset{
	1600:  {Value: 0x12, Tweak: 0x31},
	2400:  {Value: 0x1B, Tweak: 0x1F},
	4900:  {Value: 0x3A, Tweak: 0xE1},
	8900:  {Value: 0x6A, Tweak: 0x81},
	14100: {Value: 0xA8, Tweak: 0x05},
}

// DPIPresetValues returns the known DPI steps in ascending order.
func DPIPresetValues() []int {
	values := make([]int, 0, len(DPIPresets))
	for v := range DPIPresets {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// BuildDPI builds the write for one DPI slot (0-4) at offset 0x0C+4n.
func BuildDPI(slot int, preset DPIPreset) (Report, error) {
	if slot < 0 || slot >= DPISlots {
		return Report{}, fmt.Errorf("%w: %d", ErrDPISlotOutOfRange, slot)
	}
	offset := byte(0x0C + slot*4)
	return BuildReport(CmdWrite, []byte{
		0x00, 0x00, offset, 0x04,
		preset.Value, preset.Value, 0x00, preset.Tweak,
	})
}

// BuildRGB builds the color/mode/brightness write at register 0x54.
// Brightness is a percentage; the register pair must sum to 0x55.
func BuildRGB(r, g, b byte, mode LEDMode, brightness int) Report {
	b1 := brightness * 3
	if b1 < 1 {
		b1 = 1
	}
	if b1 > 255 {
		b1 = 255
	}
	b2 := ChecksumBase - byte(b1)
	rep, _ := BuildReport(CmdWrite, []byte{
		0x00, 0x00, 0x54, 0x08,
		r, g, b, byte(mode),
		0x01, 0x54, byte(b1), b2,
	})
	return rep
}

// BuildRGBOff builds the lighting-off write at register 0x58.
func BuildRGBOff() Report {
	rep, _ := BuildReport(CmdWrite, []byte{0x00, 0x00, 0x58, 0x02, 0x00, 0x55})
	return rep
}

// BuildRGBBreathing builds the breathing-effect write at register 0x5C.
func BuildRGBBreathing() Report {
	rep, _ := BuildReport(CmdWrite, []byte{0x00, 0x00, 0x5C, 0x02, 0x03, 0x52})
	return rep
}

var pollingCodes = map[int]byte{
	125:  0x04,
	250:  0x02,
	500:  0x01,
	1000: 0x00,
}

// PollingRates returns the supported polling rates in ascending order.
func PollingRates() []int {
	rates := make([]int, 0, len(pollingCodes))
	for r := range pollingCodes {
		rates = append(rates, r)
	}
	sort.Ints(rates)
	return rates
}

// PollingRateFromCode resolves a polling register code read back from flash.
func PollingRateFromCode(code byte) (int, bool) {
	for rate, c := range pollingCodes {
		if c == code {
			return rate, true
		}
	}
	return 0, false
}

// DPIValueFromRegister resolves the DPI step whose preset stores this
// register value.
func DPIValueFromRegister(value byte) (int, bool) {
	for dpi, p := range DPIPresets {
		if p.Value == value {
			return dpi, true
		}
	}
	return 0, false
}

// BuildPolling builds the polling-rate write at offset 0x00. The code and
// its complement must sum to 0x55.
func BuildPolling(rate int) (Report, error) {
	code, ok := pollingCodes[rate]
	if !ok {
		return Report{}, fmt.Errorf("%w: %d Hz", ErrUnknownRate, rate)
	}
	return BuildReport(CmdWrite, []byte{0x00, 0x00, 0x00, 0x02, code, ChecksumBase - code})
}

// PreparePackets returns the prepare/commit and handshake pair that
// captures show ahead of configuration writes.
func PreparePackets() []Report {
	return []Report{BuildSimple(CmdPrepare), BuildSimple(CmdHandshake)}
}

// BuildReset builds the restore-factory-defaults command.
func BuildReset() Report {
	return BuildSimple(CmdReset)
}
