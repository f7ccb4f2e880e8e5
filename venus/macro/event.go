package macro

// Event statuses as stored in the on-device stream. Regular keys carry the
// low bit, modifiers do not; the high bit marks a press.
const (
	statusKeyDown  = 0x81
	statusKeyUp    = 0x41
	statusModDown  = 0x80
	statusModUp    = 0x40
	statusPressBit = 0x80
	statusKeyBit   = 0x01
)

// EventLen is the stored size of one event record.
const EventLen = 5

// Event is a single key transition with the delay to wait after it.
// Modifier events carry the modifier bitmask in Keycode instead of a HID
// usage code.
type Event struct {
	Keycode  uint8
	DelayMS  uint16
	Down     bool
	Modifier bool
}

func (e Event) status() byte {
	s := byte(statusModUp)
	if e.Down {
		s = statusModDown
	}
	if !e.Modifier {
		s |= statusKeyBit
	}
	return s
}

// appendEvent encodes e with an explicit delay, which may differ from
// e.DelayMS for the final event of a macro.
func appendEvent(buf []byte, e Event, delayMS uint16) []byte {
	return append(buf, e.status(), e.Keycode, 0x00, byte(delayMS>>8), byte(delayMS))
}

// decodeEvent reads one record. ok is false when the status byte is not an
// event status, which marks the end of the stream.
func decodeEvent(b []byte) (Event, bool) {
	switch b[0] {
	case statusKeyDown, statusKeyUp, statusModDown, statusModUp:
	default:
		return Event{}, false
	}
	return Event{
		Keycode:  b[1],
		DelayMS:  uint16(b[3])<<8 | uint16(b[4]),
		Down:     b[0]&statusPressBit != 0,
		Modifier: b[0]&statusKeyBit == 0,
	}, true
}
