package macro

import (
	"fmt"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/hidkeys"
)

// FromText builds a macro that types text, one press/release pair per
// character with delayMS between transitions. Characters that need shift
// are wrapped in shift modifier events.
func FromText(name, text string, delayMS uint16) (Macro, error) {
	m := Macro{Name: name}
	for i := 0; i < len(text); i++ {
		c := text[i]
		key := hidkeys.CharToHID(c)
		if key == 0 {
			return Macro{}, fmt.Errorf("macro: character %q at position %d: %w", c, i, hidkeys.ErrUnknownKey)
		}
		if hidkeys.NeedsShift(c) {
			m.Events = append(m.Events,
				Event{Keycode: hidkeys.ModShift, DelayMS: delayMS, Down: true, Modifier: true},
				Event{Keycode: key, DelayMS: delayMS, Down: true},
				Event{Keycode: key, DelayMS: delayMS},
				Event{Keycode: hidkeys.ModShift, DelayMS: delayMS, Modifier: true},
			)
		} else {
			m.Events = append(m.Events,
				Event{Keycode: key, DelayMS: delayMS, Down: true},
				Event{Keycode: key, DelayMS: delayMS},
			)
		}
	}
	return m, nil
}
