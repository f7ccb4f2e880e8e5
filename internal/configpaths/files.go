// Package configpaths resolves where venusctl keeps configuration and
// profile files on each platform.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appDir = "venusctl"

// DefaultConfigDir returns the per-user configuration directory:
// %AppData%\venusctl on Windows, $XDG_CONFIG_HOME/venusctl or
// ~/.config/venusctl elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appdata := os.Getenv("AppData")
		if appdata == "" {
			return "", errors.New("AppData not set")
		}
		return filepath.Join(appdata, appDir), nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		return "", errors.New("HOME not set")
	}
	return filepath.Join(home, ".config", appDir), nil
}

// DefaultNamedConfigPath returns the path of a config file with the given
// base name and format inside the user config directory.
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, baseName+"."+formatExt(format)), nil
}

func formatExt(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	}
	return "json"
}

// DefaultProfileDir returns the directory where named profiles are kept.
func DefaultProfileDir() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles"), nil
}

// EnsureDir creates the parent directory of path if it is missing.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// candidateSet collects config file candidates per loader format.
type candidateSet struct {
	json, yaml, toml []string
}

// put routes one path to its loader by extension. Anything unrecognized is
// treated as JSON, matching kong's built-in loader.
func (c *candidateSet) put(path string) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		c.yaml = append(c.yaml, path)
	case ".toml":
		c.toml = append(c.toml, path)
	default:
		c.json = append(c.json, path)
	}
}

// putDir adds every base name and format combination under dir.
func (c *candidateSet) putDir(dir string, bases ...string) {
	for _, base := range bases {
		for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
			c.put(filepath.Join(dir, base+ext))
		}
	}
}

// ConfigCandidatePaths builds the per-format candidate lists handed to the
// kong configuration loaders. An explicit userPath is tried first, then the
// working directory, the user config dir, and /etc/venusctl on unix.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	var set candidateSet
	if userPath != "" {
		set.put(userPath)
	}
	if wd, err := os.Getwd(); err == nil {
		set.putDir(wd, "venusctl", "config")
	}
	if dir, err := DefaultConfigDir(); err == nil {
		set.putDir(dir, "config", "venusctl")
	}
	if runtime.GOOS != "windows" {
		set.putDir("/etc/venusctl", "config", "venusctl")
	}
	return set.json, set.yaml, set.toml
}
