package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
	Path ConfigPath `cmd:"" help:"Print the configuration directories"`
}

// configDefaults mirrors the top-level flags a config file can set.
type configDefaults struct {
	Log struct {
		Level   string `default:"info"`
		File    string
		RawFile string
	} `embed:"" prefix:"log."`
	Device string
	Family string `default:"auto"`
}

// ConfigInit writes a template with every supported key, so nobody has to
// guess the file schema.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination path (defaults to the user config dir)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run is called by Kong when the config init command is executed.
func (c *ConfigInit) Run() error {
	dest := c.Output
	if dest == "" {
		var err error
		if dest, err = configpaths.DefaultNamedConfigPath("venusctl", c.Format); err != nil {
			return err
		}
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s exists; use --force to overwrite", dest)
		}
	}

	data, err := marshalTemplate(templateMap(reflect.TypeOf(configDefaults{})), c.Format)
	if err != nil {
		return err
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	fmt.Println("Wrote", dest)
	return nil
}

// ConfigPath prints where venusctl looks for configuration and profiles.
type ConfigPath struct{}

// Run is called by Kong when the config path command is executed.
func (c *ConfigPath) Run() error {
	dir, err := configpaths.DefaultConfigDir()
	if err != nil {
		return err
	}
	profiles, err := configpaths.DefaultProfileDir()
	if err != nil {
		return err
	}
	fmt.Println("config:  ", dir)
	fmt.Println("profiles:", profiles)
	return nil
}

func marshalTemplate(root map[string]any, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	}
	return json.MarshalIndent(root, "", "  ")
}

// templateMap renders a flag struct as nested config keys. Embedded
// structs with a kong prefix become sections; the default tag supplies
// the value written for each key.
func templateMap(t reflect.Type) map[string]any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, embedded := f.Tag.Lookup("embed"); embedded {
			if section := strings.TrimSuffix(f.Tag.Get("prefix"), "."); section != "" {
				out[section] = templateMap(f.Type)
			} else {
				maps.Copy(out, templateMap(f.Type))
			}
			continue
		}
		if v := defaultFor(f); v != nil {
			out[configKey(f.Name)] = v
		}
	}
	return out
}

// configKey lowercases the leading rune, matching kong's key naming.
func configKey(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

// defaultFor renders a field's default tag in the field's type. A missing
// or malformed default becomes the zero value so the template still
// marshals completely.
func defaultFor(f reflect.StructField) any {
	def := f.Tag.Get("default")
	t := f.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		return templateMap(t)
	case reflect.String:
		return def
	case reflect.Bool:
		v, _ := strconv.ParseBool(def)
		return v
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, _ := strconv.ParseInt(def, 10, 64)
		return v
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, _ := strconv.ParseUint(def, 10, 64)
		return v
	case reflect.Float32, reflect.Float64:
		v, _ := strconv.ParseFloat(def, 64)
		return v
	}
	return nil
}
