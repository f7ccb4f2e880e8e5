// Package binding turns logical button assignments into the flash writes
// that store them, replicated across the device's profile pages. Builders
// are pure; sending the resulting reports is the caller's concern.
package binding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/hidkeys"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/macro"
)

var (
	ErrInvalidAction     = errors.New("binding: invalid action")
	ErrUnknownAction     = errors.New("binding: unknown action")
	ErrUnresolvedProfile = errors.New("binding: no address profile for button")
)

// ActionType is the type byte stored in a button's binding entry.
type ActionType byte

const (
	TypeDisabled      ActionType = 0x00
	TypeMouseButton   ActionType = 0x01
	TypeDPIControl    ActionType = 0x02
	TypeSpecial       ActionType = 0x04
	TypeKeyboardKey   ActionType = 0x05
	TypeMacro         ActionType = 0x06
	TypePollingToggle ActionType = 0x07
	TypeRGBToggle     ActionType = 0x08

	// TypeMediaKey shares the keyboard type byte; the key region stream is
	// what distinguishes a media binding.
	TypeMediaKey = TypeKeyboardKey
)

// Kind discriminates the Action union. The zero value is a disabled button.
type Kind uint8

const (
	KindDisabled Kind = iota
	KindMouseButton
	KindKeyboardKey
	KindMacro
	KindSpecial
	KindMediaKey
	KindPollingToggle
	KindRGBToggle
	KindDPIControl
)

// MouseCode is a firmware mouse function code.
type MouseCode byte

const (
	MouseLeft    MouseCode = 0x01
	MouseRight   MouseCode = 0x02
	MouseMiddle  MouseCode = 0x04
	MouseBack    MouseCode = 0x08
	MouseForward MouseCode = 0x10
)

func (c MouseCode) String() string {
	switch c {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	case MouseBack:
		return "back"
	case MouseForward:
		return "forward"
	}
	return fmt.Sprintf("mouse(0x%02x)", byte(c))
}

// ParseMouseCode resolves the textual mouse function names.
func ParseMouseCode(s string) (MouseCode, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	case "back":
		return MouseBack, nil
	case "forward":
		return MouseForward, nil
	}
	return 0, fmt.Errorf("%w: mouse button %q", ErrUnknownAction, s)
}

// DPIFunction selects what a DPI control binding does on press.
type DPIFunction byte

const (
	DPIDown DPIFunction = 0x01
	DPILoop DPIFunction = 0x02
	DPIUp   DPIFunction = 0x03
)

func (f DPIFunction) String() string {
	switch f {
	case DPIDown:
		return "down"
	case DPILoop:
		return "loop"
	case DPIUp:
		return "up"
	}
	return fmt.Sprintf("dpi(0x%02x)", byte(f))
}

// key returns the usage code written to the key region for the function.
// The firmware triggers DPI handling off these specific codes.
func (f DPIFunction) key() uint8 {
	switch f {
	case DPIUp:
		return hidkeys.Key7
	case DPIDown:
		return hidkeys.Key8
	}
	return hidkeys.Key6
}

// Action is one logical button assignment. Construct values through the
// typed constructors, which validate per-variant fields; the zero value is
// a disabled button.
type Action struct {
	Kind     Kind
	Mouse    MouseCode
	Key      uint8
	Modifier uint8
	Slot     int
	Repeat   macro.RepeatMode
	DelayMS  uint8
	Count    uint8
	Media    uint8
	DPI      DPIFunction
}

// Disabled unbinds a button.
func Disabled() Action {
	return Action{Kind: KindDisabled}
}

// MouseButton binds a standard mouse function.
func MouseButton(code MouseCode) (Action, error) {
	switch code {
	case MouseLeft, MouseRight, MouseMiddle, MouseBack, MouseForward:
		return Action{Kind: KindMouseButton, Mouse: code}, nil
	}
	return Action{}, fmt.Errorf("%w: mouse code 0x%02x", ErrInvalidAction, byte(code))
}

// KeyboardKey binds a HID usage code with an optional modifier mask.
func KeyboardKey(key, modifier uint8) (Action, error) {
	if key == 0 {
		return Action{}, fmt.Errorf("%w: zero keycode", ErrInvalidAction)
	}
	if modifier&^(hidkeys.ModCtrl|hidkeys.ModShift|hidkeys.ModAlt|hidkeys.ModWin) != 0 {
		return Action{}, fmt.Errorf("%w: modifier mask 0x%02x", ErrInvalidAction, modifier)
	}
	return Action{Kind: KindKeyboardKey, Key: key, Modifier: modifier}, nil
}

// RunMacro binds a stored macro slot with a repeat mode.
func RunMacro(slot int, repeat macro.RepeatMode) (Action, error) {
	if slot < 0 || slot >= venus.MaxMacroSlots {
		return Action{}, fmt.Errorf("%w: %v", ErrInvalidAction, venus.ErrSlotOutOfRange)
	}
	switch repeat {
	case macro.RepeatOnce, macro.RepeatHold, macro.RepeatToggle:
	default:
		return Action{}, fmt.Errorf("%w: repeat mode 0x%02x", ErrInvalidAction, byte(repeat))
	}
	return Action{Kind: KindMacro, Slot: slot, Repeat: repeat}, nil
}

// Special binds the firmware burst function (fire key, triple click):
// repeat count presses with delayMS between them.
func Special(delayMS, count uint8) (Action, error) {
	if count == 0 {
		return Action{}, fmt.Errorf("%w: zero repeat count", ErrInvalidAction)
	}
	return Action{Kind: KindSpecial, DelayMS: delayMS, Count: count}, nil
}

// MediaKey binds a consumer-page media code.
func MediaKey(code uint8) (Action, error) {
	if code == 0 {
		return Action{}, fmt.Errorf("%w: zero media code", ErrInvalidAction)
	}
	return Action{Kind: KindMediaKey, Media: code}, nil
}

// PollingToggle binds the on-device polling rate cycle.
func PollingToggle() Action {
	return Action{Kind: KindPollingToggle}
}

// RGBToggle binds the on-device LED toggle.
func RGBToggle() Action {
	return Action{Kind: KindRGBToggle}
}

// DPIControl binds a DPI adjustment function.
func DPIControl(fn DPIFunction) (Action, error) {
	switch fn {
	case DPIDown, DPILoop, DPIUp:
		return Action{Kind: KindDPIControl, DPI: fn}, nil
	}
	return Action{}, fmt.Errorf("%w: dpi function 0x%02x", ErrInvalidAction, byte(fn))
}

// Type returns the binding entry type byte for the action.
func (a Action) Type() ActionType {
	switch a.Kind {
	case KindMouseButton:
		return TypeMouseButton
	case KindKeyboardKey:
		return TypeKeyboardKey
	case KindMacro:
		return TypeMacro
	case KindSpecial:
		return TypeSpecial
	case KindMediaKey:
		return TypeMediaKey
	case KindPollingToggle:
		return TypePollingToggle
	case KindRGBToggle:
		return TypeRGBToggle
	case KindDPIControl:
		return TypeDPIControl
	}
	return TypeDisabled
}

// String renders the action in the form ParseAction accepts.
func (a Action) String() string {
	switch a.Kind {
	case KindMouseButton:
		return "mouse:" + a.Mouse.String()
	case KindKeyboardKey:
		return "key:" + hidkeys.FormatCombo(a.Key, a.Modifier)
	case KindMacro:
		if a.Repeat != macro.RepeatOnce {
			return fmt.Sprintf("macro:%d:%s", a.Slot, a.Repeat)
		}
		return fmt.Sprintf("macro:%d", a.Slot)
	case KindSpecial:
		return fmt.Sprintf("special:%dx%d", a.DelayMS, a.Count)
	case KindMediaKey:
		if name, ok := hidkeys.MediaName[a.Media]; ok {
			return "media:" + strings.ToLower(name)
		}
		return fmt.Sprintf("media:0x%02x", a.Media)
	case KindPollingToggle:
		return "polling-toggle"
	case KindRGBToggle:
		return "rgb-toggle"
	case KindDPIControl:
		return "dpi:" + a.DPI.String()
	}
	return "disabled"
}
