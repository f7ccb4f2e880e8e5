package binding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/hidkeys"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/macro"
)

// ParseAction parses the textual action form used by profiles and the
// command line:
//
//	disabled
//	mouse:left|right|middle|back|forward
//	key:<combo>           e.g. key:f5, key:ctrl+shift+a
//	macro:<slot>[:once|hold|toggle]
//	special:<delay-ms>x<count>
//	media:<name>          e.g. media:play-pause
//	dpi:loop|up|down
//	polling-toggle
//	rgb-toggle
func ParseAction(s string) (Action, error) {
	head, rest, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch strings.ToLower(head) {
	case "disabled", "none", "off":
		return Disabled(), nil
	case "mouse":
		code, err := ParseMouseCode(rest)
		if err != nil {
			return Action{}, err
		}
		return MouseButton(code)
	case "key":
		key, mods, err := hidkeys.ParseCombo(rest)
		if err != nil {
			return Action{}, err
		}
		return KeyboardKey(key, mods)
	case "macro":
		return parseMacroAction(rest)
	case "special":
		return parseSpecialAction(rest)
	case "media":
		code, err := hidkeys.ParseMediaKey(rest)
		if err != nil {
			return Action{}, err
		}
		return MediaKey(code)
	case "dpi":
		return parseDPIAction(rest)
	case "polling-toggle", "polling":
		return PollingToggle(), nil
	case "rgb-toggle", "rgb":
		return RGBToggle(), nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func parseMacroAction(rest string) (Action, error) {
	slotStr, modeStr, _ := strings.Cut(rest, ":")
	slot, err := strconv.Atoi(slotStr)
	if err != nil {
		return Action{}, fmt.Errorf("%w: macro slot %q", ErrUnknownAction, slotStr)
	}
	mode, err := macro.ParseRepeatMode(modeStr)
	if err != nil {
		return Action{}, err
	}
	return RunMacro(slot, mode)
}

func parseSpecialAction(rest string) (Action, error) {
	delayStr, countStr, ok := strings.Cut(rest, "x")
	if !ok {
		return Action{}, fmt.Errorf("%w: special action %q, want <delay-ms>x<count>", ErrUnknownAction, rest)
	}
	delay, err := strconv.ParseUint(delayStr, 10, 8)
	if err != nil {
		return Action{}, fmt.Errorf("%w: special delay %q", ErrUnknownAction, delayStr)
	}
	count, err := strconv.ParseUint(countStr, 10, 8)
	if err != nil {
		return Action{}, fmt.Errorf("%w: special count %q", ErrUnknownAction, countStr)
	}
	return Special(uint8(delay), uint8(count))
}

func parseDPIAction(rest string) (Action, error) {
	switch strings.ToLower(rest) {
	case "loop":
		return DPIControl(DPILoop)
	case "up", "+":
		return DPIControl(DPIUp)
	case "down", "-":
		return DPIControl(DPIDown)
	}
	return Action{}, fmt.Errorf("%w: dpi function %q", ErrUnknownAction, rest)
}
