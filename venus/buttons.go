package venus

import (
	"fmt"
	"strings"
)

// ButtonKey identifies one of the 16 bindable controls.
type ButtonKey uint8

const (
	Button1 ButtonKey = iota + 1
	Button2
	Button3
	Button4
	Button5
	Button6
	Button7
	Button8
	Button9
	Button10
	Button11
	Button12
	ButtonFire
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// ButtonCount is the number of bindable controls on the device.
const ButtonCount = 16

// ButtonProfile carries the flash locations of one button: the page and
// offset of its keyboard-definition region (in the profile-0 pages 0x01-0x02)
// and the offset of its 4-byte binding entry in the page-0 button table.
type ButtonProfile struct {
	Label       string
	KeyPage     byte
	KeyOffset   byte
	ApplyOffset byte
}

// ProfilePages are the page bases of the four on-device profiles. Bindings
// are replicated across all of them so wired and wireless modes agree.
var ProfilePages = [4]byte{0x00, 0x40, 0x80, 0xC0}

// Flash locations per button, from USB captures of the vendor tool. The
// binding entries are contiguous at 0x60+4n but not in button-label order.
var buttonProfiles = [ButtonCount + 1]ButtonProfile{
	Button1:      {"Side Button 1", 0x01, 0x00, 0x60},
	Button2:      {"Side Button 2", 0x01, 0x20, 0x64},
	Button3:      {"Side Button 3", 0x01, 0x40, 0x68},
	Button4:      {"Side Button 4", 0x01, 0x60, 0x6C},
	Button5:      {"Side Button 5", 0x01, 0x80, 0x70},
	Button6:      {"Side Button 6", 0x01, 0xA0, 0x74},
	Button7:      {"Side Button 7", 0x02, 0x00, 0x80},
	Button8:      {"Side Button 8", 0x02, 0x20, 0x84},
	Button9:      {"Side Button 9", 0x02, 0x80, 0x90},
	Button10:     {"Side Button 10", 0x02, 0xA0, 0x94},
	Button11:     {"Side Button 11", 0x02, 0xC0, 0x98},
	Button12:     {"Side Button 12", 0x02, 0xE0, 0x9C},
	ButtonFire:   {"Fire Key", 0x02, 0x60, 0x8C},
	ButtonLeft:   {"Left Click", 0x01, 0xE0, 0x7C},
	ButtonMiddle: {"Middle Click", 0x02, 0x40, 0x88},
	ButtonRight:  {"Right Click", 0x01, 0xC0, 0x78},
}

// Valid reports whether b names a known control.
func (b ButtonKey) Valid() bool {
	return b >= Button1 && b <= ButtonRight
}

// Profile returns the flash locations for a button.
func Profile(b ButtonKey) (ButtonProfile, bool) {
	if !b.Valid() {
		return ButtonProfile{}, false
	}
	return buttonProfiles[b], true
}

// Label returns the human-readable name of the control.
func (b ButtonKey) Label() string {
	if !b.Valid() {
		return fmt.Sprintf("ButtonKey(%d)", uint8(b))
	}
	return buttonProfiles[b].Label
}

// String returns the stable short name used in profile files and flags.
func (b ButtonKey) String() string {
	switch {
	case b >= Button1 && b <= Button12:
		return fmt.Sprintf("button%d", uint8(b))
	case b == ButtonFire:
		return "fire"
	case b == ButtonLeft:
		return "left"
	case b == ButtonMiddle:
		return "middle"
	case b == ButtonRight:
		return "right"
	}
	return fmt.Sprintf("ButtonKey(%d)", uint8(b))
}

// Buttons returns all controls in ascending order.
func Buttons() []ButtonKey {
	keys := make([]ButtonKey, 0, ButtonCount)
	for b := Button1; b <= ButtonRight; b++ {
		keys = append(keys, b)
	}
	return keys
}

// ParseButton resolves a button name ("button3", "b3", "3", "fire", "left").
func ParseButton(name string) (ButtonKey, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "")
	n = strings.ReplaceAll(n, "_", "")
	n = strings.ReplaceAll(n, " ", "")
	switch n {
	case "fire", "firekey", "button13", "b13":
		return ButtonFire, nil
	case "left", "leftclick", "button14", "b14":
		return ButtonLeft, nil
	case "middle", "middleclick", "button15", "b15":
		return ButtonMiddle, nil
	case "right", "rightclick", "button16", "b16":
		return ButtonRight, nil
	}
	n = strings.TrimPrefix(n, "button")
	n = strings.TrimPrefix(n, "b")
	var idx int
	if _, err := fmt.Sscanf(n, "%d", &idx); err == nil && idx >= 1 && idx <= 12 {
		return Button1 + ButtonKey(idx-1), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// ButtonBindingAddress returns the flash address of the button's 4-byte
// binding entry in the given profile (0-3).
func ButtonBindingAddress(b ButtonKey, profile int) (Address, error) {
	bp, ok := Profile(b)
	if !ok {
		return Address{}, fmt.Errorf("%w: %d", ErrUnknownButton, uint8(b))
	}
	if profile < 0 || profile >= len(ProfilePages) {
		return Address{}, fmt.Errorf("%w: %d", ErrProfileOutOfRange, profile)
	}
	return bp.BindingEntry(ProfilePages[profile]), nil
}

// KeyRegion returns the key-definition address for a profile page base.
// The key pages shift together with the binding pages: profile 1 keys for a
// page-1 button live at page 0x41.
func (bp ButtonProfile) KeyRegion(pageBase byte) Address {
	return Address{Page: bp.KeyPage + pageBase, Offset: bp.KeyOffset}
}

// BindingEntry returns the binding-entry address for a profile page base.
func (bp ButtonProfile) BindingEntry(pageBase byte) Address {
	return Address{Page: pageBase, Offset: bp.ApplyOffset}
}
