package binding

import (
	"fmt"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/macro"
)

// modifierGuardDelta is added to the guard byte when a key stream carries
// modifier events.
const modifierGuardDelta = 0x3A

// Builder resolves buttons to flash addresses and builds their binding
// writes. The zero value uses the built-in address table.
type Builder struct {
	// Custom overrides or extends the built-in button table, for firmware
	// variants that moved a region. The caller supplies the full address
	// triple.
	Custom map[venus.ButtonKey]venus.ButtonProfile
}

func (b *Builder) resolve(button venus.ButtonKey) (venus.ButtonProfile, error) {
	if p, ok := b.Custom[button]; ok {
		return p, nil
	}
	if p, ok := venus.Profile(button); ok {
		return p, nil
	}
	return venus.ButtonProfile{}, fmt.Errorf("%w: %v", ErrUnresolvedProfile, button)
}

// BuildPackets builds every write that stores action on button, replicated
// across all profile pages. Key region streams are emitted before the
// binding entry of the same page so the entry never points at stale key
// data. No I/O happens here.
func (b *Builder) BuildPackets(button venus.ButtonKey, action Action) ([]venus.Report, error) {
	prof, err := b.resolve(button)
	if err != nil {
		return nil, err
	}
	stream := action.keyStream()
	var reports []venus.Report
	for _, pageBase := range venus.ProfilePages {
		if stream != nil {
			ws, err := venus.WriteStream(prof.KeyRegion(pageBase), stream)
			if err != nil {
				return nil, err
			}
			reports = append(reports, ws...)
		}
		entry := action.applyEntry()
		w, err := venus.BuildWrite(prof.BindingEntry(pageBase), entry[:])
		if err != nil {
			return nil, err
		}
		reports = append(reports, w)
	}
	return reports, nil
}

// applyEntry is the 4 byte binding entry: type, two data bytes, and the
// subtractive checksum over the first three.
func (a Action) applyEntry() [4]byte {
	t, d1, d2 := a.applyBytes()
	return [4]byte{t, d1, d2, venus.Checksum([]byte{t, d1, d2})}
}

func (a Action) applyBytes() (t, d1, d2 byte) {
	switch a.Kind {
	case KindMouseButton:
		return byte(TypeMouseButton), byte(a.Mouse), 0
	case KindKeyboardKey:
		return byte(TypeKeyboardKey), a.Modifier, 0
	case KindMacro:
		return byte(TypeMacro), byte(a.Slot), byte(a.Repeat)
	case KindSpecial:
		return byte(TypeSpecial), a.DelayMS, a.Count
	case KindMediaKey:
		return byte(TypeMediaKey), 0, 0
	case KindPollingToggle:
		return byte(TypePollingToggle), 0, 0
	case KindRGBToggle:
		return byte(TypeRGBToggle), 0, 0
	case KindDPIControl:
		return byte(TypeDPIControl), byte(a.DPI), 0
	}
	return byte(TypeDisabled), 0, 0
}

// keyStream is the key definition region content for the action, or nil
// when the action stores no key data.
func (a Action) keyStream() []byte {
	switch a.Kind {
	case KindKeyboardKey:
		if a.Modifier != 0 {
			return modifiedStream(a.Key, a.Modifier)
		}
		return plainStream(a.Key)
	case KindMediaKey:
		return mediaStream(a.Media)
	case KindDPIControl:
		return plainStream(a.DPI.key())
	}
	return nil
}

// plainStream encodes a press/release pair: event count, down event, up
// event, guard byte.
func plainStream(key uint8) []byte {
	return []byte{2, 0x81, key, 0x00, 0x41, key, 0x00, plainGuard(key)}
}

// modifiedStream wraps the key events in modifier down/up events. The
// guard byte shifts by a fixed delta for the longer stream.
func modifiedStream(key, mod uint8) []byte {
	return []byte{
		4,
		0x80, mod, 0x00,
		0x81, key, 0x00,
		0x40, mod, 0x00,
		0x41, key, 0x00,
		plainGuard(key) + modifierGuardDelta,
	}
}

// mediaStream uses the consumer-page statuses and a fixed zero tail in
// place of a guard byte.
func mediaStream(code uint8) []byte {
	return []byte{2, 0x82, code, 0x00, 0x42, code, 0x00, 0x00}
}

func plainGuard(key uint8) byte {
	return 0x91 - 2*key
}

// DecodeEntry interprets a stored binding entry, consulting the key region
// stream to tell keyboard, media and DPI bindings apart. It is lenient
// about the entry checksum so configurations written by older tools still
// decode; stream may be nil when the entry type stores no key data.
func DecodeEntry(entry, stream []byte) (Action, error) {
	if len(entry) < 4 {
		return Action{}, fmt.Errorf("%w: entry needs 4 bytes, got %d", ErrInvalidAction, len(entry))
	}
	switch ActionType(entry[0]) {
	case TypeDisabled:
		return Disabled(), nil
	case TypeMouseButton:
		return Action{Kind: KindMouseButton, Mouse: MouseCode(entry[1])}, nil
	case TypeDPIControl:
		return Action{Kind: KindDPIControl, DPI: DPIFunction(entry[1])}, nil
	case TypeSpecial:
		return Action{Kind: KindSpecial, DelayMS: entry[1], Count: entry[2]}, nil
	case TypeMacro:
		return Action{Kind: KindMacro, Slot: int(entry[1]), Repeat: macro.RepeatMode(entry[2])}, nil
	case TypePollingToggle:
		return PollingToggle(), nil
	case TypeRGBToggle:
		return RGBToggle(), nil
	case TypeKeyboardKey:
		return decodeKeyEntry(entry[1], stream)
	}
	return Action{}, fmt.Errorf("%w: type byte 0x%02x", ErrUnknownAction, entry[0])
}

func decodeKeyEntry(modifier byte, stream []byte) (Action, error) {
	if len(stream) < 3 {
		return Action{}, fmt.Errorf("%w: keyboard entry without key data", ErrInvalidAction)
	}
	switch stream[1] {
	case 0x82:
		return Action{Kind: KindMediaKey, Media: stream[2]}, nil
	case 0x80:
		if len(stream) < 6 {
			return Action{}, fmt.Errorf("%w: truncated modifier stream", ErrInvalidAction)
		}
		return Action{Kind: KindKeyboardKey, Key: stream[5], Modifier: stream[2]}, nil
	case 0x81:
		return Action{Kind: KindKeyboardKey, Key: stream[2], Modifier: modifier}, nil
	}
	return Action{}, fmt.Errorf("%w: key stream status 0x%02x", ErrUnknownAction, stream[1])
}
