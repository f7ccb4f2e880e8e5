// Package profile loads and saves device profiles: button bindings by
// control name plus optional sensor, polling and lighting settings.
// The file format follows the extension: .yaml/.yml, .toml or .json.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/holtek"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
)

var (
	ErrUnknownFormat = errors.New("profile: unknown file format")
	ErrBadColor      = errors.New("profile: bad color")
)

// RGB is the lighting section of a profile.
type RGB struct {
	Color      string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Mode       string `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
	Brightness int    `json:"brightness,omitempty" yaml:"brightness,omitempty" toml:"brightness,omitempty"`
}

// Profile is one saved device configuration. Buttons maps control names
// ("button1".."button12", "fire", "left", "middle", "right") to action
// strings in the grammar of binding.ParseAction.
type Profile struct {
	Device  string            `json:"device,omitempty" yaml:"device,omitempty" toml:"device,omitempty"`
	Buttons map[string]string `json:"buttons,omitempty" yaml:"buttons,omitempty" toml:"buttons,omitempty"`
	DPI     []int             `json:"dpi,omitempty" yaml:"dpi,omitempty" toml:"dpi,omitempty"`
	Polling int               `json:"polling,omitempty" yaml:"polling,omitempty" toml:"polling,omitempty"`
	RGB     *RGB              `json:"rgb,omitempty" yaml:"rgb,omitempty" toml:"rgb,omitempty"`
}

// Load reads a profile file, picking the decoder by extension.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	var p Profile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	case ".toml":
		err = toml.Unmarshal(data, &p)
	case ".json":
		err = json.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("profile: parse %s: %w", path, err)
	}
	return &p, nil
}

// Save writes a profile file, picking the encoder by extension.
func Save(path string, p *Profile) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(p)
	case ".toml":
		data, err = toml.Marshal(p)
	case ".json":
		data, err = json.MarshalIndent(p, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("profile: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("profile: write %s: %w", path, err)
	}
	return nil
}

// VenusBindings resolves the Buttons section against the Venus Pro control
// names and action grammar.
func (p *Profile) VenusBindings() (map[venus.ButtonKey]binding.Action, error) {
	out := make(map[venus.ButtonKey]binding.Action, len(p.Buttons))
	for name, spec := range p.Buttons {
		btn, err := venus.ParseButton(name)
		if err != nil {
			return nil, err
		}
		action, err := binding.ParseAction(spec)
		if err != nil {
			return nil, fmt.Errorf("button %s: %w", name, err)
		}
		out[btn] = action
	}
	return out, nil
}

// HoltekBindings resolves the Buttons section against the Holtek variant's
// button indices and entry encoding.
func (p *Profile) HoltekBindings() (map[int]holtek.Entry, error) {
	out := make(map[int]holtek.Entry, len(p.Buttons))
	for name, spec := range p.Buttons {
		idx, err := holtek.ParseButton(name)
		if err != nil {
			return nil, err
		}
		entry, err := holtek.ParseAction(spec)
		if err != nil {
			return nil, fmt.Errorf("button %s: %w", name, err)
		}
		out[idx] = entry
	}
	return out, nil
}

// IsHoltek reports whether the profile targets the Holtek (04D9:FC55)
// variant. The Venus Pro is the default when the device field is empty.
func (p *Profile) IsHoltek() bool {
	return strings.EqualFold(p.Device, "holtek")
}

// ParseColor parses an "RRGGBB" hex color, with or without a leading '#'.
func ParseColor(s string) (r, g, b byte, err error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return r, g, b, nil
}
