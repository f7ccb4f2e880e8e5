// Package hidkeys maps between key names, ASCII characters and USB HID
// usage codes as the mouse firmware stores them.
package hidkeys

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownKey      = errors.New("hidkeys: unknown key")
	ErrUnknownModifier = errors.New("hidkeys: unknown modifier")
	ErrUnknownMediaKey = errors.New("hidkeys: unknown media key")
)

// CharToHID converts an ASCII character to its HID usage code.
// Returns 0 if the character is not supported.
func CharToHID(c byte) uint8 {
	if code, ok := CharToKey[c]; ok {
		return code
	}
	return 0
}

// NeedsShift returns true if the character requires the Shift modifier.
func NeedsShift(c byte) bool {
	return ShiftChars[c]
}

var keyByName map[string]uint8

func init() {
	keyByName = make(map[string]uint8, len(KeyName))
	for code, name := range KeyName {
		keyByName[normalize(name)] = code
	}
	// Common aliases
	keyByName["esc"] = KeyEscape
	keyByName["return"] = KeyEnter
	keyByName["del"] = KeyDelete
	keyByName["ins"] = KeyInsert
	keyByName["pgup"] = KeyPageUp
	keyByName["pgdn"] = KeyPageDown
	keyByName["app"] = KeyMenu
}

func normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	return strings.ReplaceAll(name, " ", "")
}

// ParseKey resolves a key name ("F4", "page-up", "a") to its usage code.
// Raw usage codes are accepted as "0xNN" for keys without a name.
func ParseKey(name string) (uint8, error) {
	if code, ok := keyByName[normalize(name)]; ok {
		return code, nil
	}
	if len(name) == 1 {
		if code := CharToHID(name[0]); code != 0 {
			return code, nil
		}
	}
	if strings.HasPrefix(strings.ToLower(name), "0x") {
		var code uint8
		if _, err := fmt.Sscanf(strings.ToLower(name), "0x%x", &code); err == nil && code != 0 {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// ParseCombo parses a key combination like "ctrl+shift+a" or "f4" into a
// usage code and a modifier mask. A shifted character ("A", "!") implies
// the Shift modifier.
func ParseCombo(spec string) (key uint8, mods uint8, err error) {
	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		m, err := parseModifier(p)
		if err != nil {
			return 0, 0, err
		}
		mods |= m
	}
	key, err = ParseKey(keyPart)
	if err != nil {
		return 0, 0, err
	}
	if len(keyPart) == 1 && NeedsShift(keyPart[0]) {
		mods |= ModShift
	}
	return key, mods, nil
}

func parseModifier(name string) (uint8, error) {
	switch normalize(name) {
	case "ctrl", "control":
		return ModCtrl, nil
	case "shift":
		return ModShift, nil
	case "alt":
		return ModAlt, nil
	case "win", "gui", "super", "meta", "cmd":
		return ModWin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
}

// ParseMediaKey resolves a media key name ("play-pause", "VolumeUp") to its
// consumer-page code.
func ParseMediaKey(name string) (uint8, error) {
	want := normalize(name)
	for code, n := range MediaName {
		if normalize(n) == want {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMediaKey, name)
}

// ModifierNames expands a modifier mask into names, in fixed order.
func ModifierNames(mask uint8) []string {
	var names []string
	if mask&ModCtrl != 0 {
		names = append(names, "ctrl")
	}
	if mask&ModShift != 0 {
		names = append(names, "shift")
	}
	if mask&ModAlt != 0 {
		names = append(names, "alt")
	}
	if mask&ModWin != 0 {
		names = append(names, "win")
	}
	return names
}

// FormatCombo renders a usage code and modifier mask back into the
// "ctrl+shift+a" form accepted by ParseCombo.
func FormatCombo(key uint8, mods uint8) string {
	name, ok := KeyName[key]
	if !ok {
		name = fmt.Sprintf("0x%02x", key)
	}
	parts := append(ModifierNames(mods), strings.ToLower(name))
	return strings.Join(parts, "+")
}
