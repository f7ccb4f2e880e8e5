// Package family dispatches between the supported mouse hardware families.
// Each family package registers itself from an init() function; commands
// resolve attached devices through the registry instead of hardcoding one
// protocol.
package family

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var ErrUnknownFamily = errors.New("family: unknown device family")

// Info describes one attached configuration interface found by a family.
type Info struct {
	Family    string
	Path      string
	Product   string
	VendorID  uint16
	ProductID uint16
}

// Registration describes one hardware family.
type Registration interface {
	// Enumerate lists attached configuration interfaces of this family.
	Enumerate() ([]Info, error)
}

var (
	registry   = make(map[string]Registration)
	registryMu sync.RWMutex
)

// Register registers a hardware family. This should be called from family
// package init() functions. The name is case-insensitive.
func Register(name string, reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = reg
}

// Get retrieves a registered family by name. Returns nil if not found.
func Get(name string) Registration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[strings.ToLower(name)]
}

// Names returns the registered family names in stable order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnumerateAll lists attached devices across every registered family.
// Enumeration errors of individual families are collected, not fatal, so a
// missing hidraw permission on one family still lists the other.
func EnumerateAll() ([]Info, error) {
	var (
		infos []Info
		errs  []error
	)
	for _, name := range Names() {
		found, err := Get(name).Enumerate()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		infos = append(infos, found...)
	}
	return infos, errors.Join(errs...)
}

// Detect picks the device a command should talk to. With an explicit path,
// the first family reporting that path wins. With an explicit family name,
// the family's first device wins. Otherwise the first device of the first
// family (alphabetical) that finds anything wins.
func Detect(familyName, path string) (Info, error) {
	if familyName != "" && familyName != "auto" {
		reg := Get(familyName)
		if reg == nil {
			return Info{}, fmt.Errorf("%w: %q", ErrUnknownFamily, familyName)
		}
		infos, err := reg.Enumerate()
		if err != nil {
			return Info{}, err
		}
		return pick(infos, familyName, path)
	}
	infos, err := EnumerateAll()
	if len(infos) == 0 && err != nil {
		return Info{}, err
	}
	return pick(infos, "", path)
}

func pick(infos []Info, familyName, path string) (Info, error) {
	if path == "" {
		if len(infos) == 0 {
			return Info{}, noDeviceError(familyName)
		}
		return infos[0], nil
	}
	for _, info := range infos {
		if info.Path == path {
			return info, nil
		}
	}
	// An unenumerated path still works when the family is explicit; hidraw
	// nodes are not always visible to enumeration under restrictive udev
	// rules.
	if familyName != "" {
		return Info{Family: familyName, Path: path}, nil
	}
	return Info{}, fmt.Errorf("no device at %s; pass --family to skip detection", path)
}

func noDeviceError(familyName string) error {
	if familyName != "" {
		return fmt.Errorf("no %s device found", familyName)
	}
	return errors.New("no supported device found")
}
