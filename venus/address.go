package venus

import "fmt"

// Address identifies one byte in the 256-page by 256-byte flash space.
type Address struct {
	Page   byte
	Offset byte
}

// Abs returns the absolute flash offset.
func (a Address) Abs() int { return int(a.Page)<<8 | int(a.Offset) }

// Advance returns the address n bytes further, carrying into the next page.
func (a Address) Advance(n int) (Address, error) {
	abs := a.Abs() + n
	if abs < 0 || abs > 0xFFFF {
		return Address{}, fmt.Errorf("%w: 0x%04x%+d", ErrAddressOverflow, a.Abs(), n)
	}
	return Address{Page: byte(abs >> 8), Offset: byte(abs)}, nil
}

func (a Address) String() string {
	return fmt.Sprintf("page 0x%02x offset 0x%02x", a.Page, a.Offset)
}

// Macro slots occupy 384 bytes each, starting at absolute offset 0x300.
const (
	MacroSlotBase   = 0x300
	MacroSlotStride = 0x180
	MaxMacroSlots   = 12
)

// MacroSlotAddress returns the flash address of a macro slot.
// Slot 0 lives at page 0x03 offset 0x00, slot 1 at page 0x04 offset 0x80.
func MacroSlotAddress(slot int) (Address, error) {
	if slot < 0 || slot >= MaxMacroSlots {
		return Address{}, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	abs := MacroSlotBase + slot*MacroSlotStride
	return Address{Page: byte(abs >> 8), Offset: byte(abs)}, nil
}
