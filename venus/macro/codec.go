// Package macro encodes and decodes the on-device macro format of the
// Venus Pro. A stored macro is a 32 byte header (UTF-16LE name plus event
// count), a run of 5 byte key events, and a 4 byte terminator whose first
// byte checksums everything before it. The encoded form is padded to whole
// write chunks so it can be streamed to a macro slot as-is.
package macro

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
)

const (
	// HeaderLen is the fixed header size: name length byte, 30 bytes of
	// UTF-16LE name, event count byte.
	HeaderLen = 32

	// NameMax is the longest encoded name in bytes. The 30 byte name field
	// keeps a trailing NUL pair.
	NameMax = 28

	// MaxEncoded is the largest encoded macro that fits one slot.
	MaxEncoded = venus.MacroSlotStride

	nameFieldLen  = 30
	countOffset   = 0x1F
	terminatorLen = 4

	// finalDelayMS replaces the last event's delay; the firmware expects a
	// fixed short tail.
	finalDelayMS = 3
)

var (
	ErrNameTooLong   = errors.New("macro: name too long")
	ErrMacroTooLarge = errors.New("macro: encoded macro exceeds slot size")
	ErrTruncated     = errors.New("macro: truncated data")
	ErrUnknownRepeat = errors.New("macro: unknown repeat mode")
)

// RepeatMode selects how a bound macro replays when its button is pressed.
type RepeatMode byte

const (
	// RepeatOnce plays the macro a fixed number of times per press.
	RepeatOnce RepeatMode = 0x01
	// RepeatHold loops the macro while the button is held.
	RepeatHold RepeatMode = 0xFE
	// RepeatToggle starts looping on press and stops on the next press.
	RepeatToggle RepeatMode = 0xFF
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatOnce:
		return "once"
	case RepeatHold:
		return "hold"
	case RepeatToggle:
		return "toggle"
	}
	return fmt.Sprintf("repeat(0x%02x)", byte(m))
}

// ParseRepeatMode resolves the textual repeat mode used by profiles and the
// command line.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch s {
	case "once", "":
		return RepeatOnce, nil
	case "hold":
		return RepeatHold, nil
	case "toggle":
		return RepeatToggle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRepeat, s)
}

// Macro is a named sequence of key events.
type Macro struct {
	Name   string
	Events []Event
}

// Encode serializes m into the stored slot format, padded to whole write
// chunks. The final event's delay is replaced with the fixed tail delay.
func Encode(m Macro) ([]byte, error) {
	name := utf16.Encode([]rune(m.Name))
	if len(name)*2 > NameMax {
		return nil, fmt.Errorf("%w: %q is %d bytes, limit %d", ErrNameTooLong, m.Name, len(name)*2, NameMax)
	}
	total := HeaderLen + len(m.Events)*EventLen + terminatorLen
	if padTo(total, venus.WriteChunkLen) > MaxEncoded {
		return nil, fmt.Errorf("%w: %d events need %d bytes, limit %d",
			ErrMacroTooLarge, len(m.Events), total, MaxEncoded)
	}

	buf := make([]byte, HeaderLen, padTo(total, venus.WriteChunkLen))
	buf[0] = byte(len(name) * 2)
	for i, u := range name {
		binary.LittleEndian.PutUint16(buf[1+2*i:], u)
	}
	buf[countOffset] = byte(len(m.Events))

	for i, e := range m.Events {
		delay := e.DelayMS
		if i == len(m.Events)-1 {
			delay = finalDelayMS
		}
		buf = appendEvent(buf, e, delay)
	}

	buf = append(buf, TerminatorChecksum(buf, len(m.Events)), 0x00, 0x00, 0x00)
	for len(buf)%venus.WriteChunkLen != 0 {
		buf = append(buf, 0x00)
	}
	return buf, nil
}

// Decode parses a stored macro read back from a slot. The name is scanned
// up to its NUL pair and events are read until a non-event status byte, so
// trailing pad bytes and a stale count byte are tolerated.
func Decode(data []byte) (Macro, error) {
	if len(data) < HeaderLen {
		return Macro{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncated, len(data), HeaderLen)
	}
	var units []uint16
	for i := 1; i+1 <= nameFieldLen; i += 2 {
		u := binary.LittleEndian.Uint16(data[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	m := Macro{Name: string(utf16.Decode(units))}

	count := int(data[countOffset])
	for off := HeaderLen; len(m.Events) < count && off+EventLen <= len(data); off += EventLen {
		e, ok := decodeEvent(data[off:])
		if !ok {
			break
		}
		m.Events = append(m.Events, e)
	}
	return m, nil
}

// TerminatorChecksum computes the checksum byte of the terminator block
// from the header and event bytes it closes. Useful for verifying a slot
// read back from flash against what Encode would have written.
func TerminatorChecksum(data []byte, eventCount int) byte {
	sum := 0
	for _, b := range data {
		sum += int(b)
	}
	return ^byte(sum) - byte(eventCount) + 0x56
}

func padTo(n, chunk int) int {
	if rem := n % chunk; rem != 0 {
		return n + chunk - rem
	}
	return n
}
