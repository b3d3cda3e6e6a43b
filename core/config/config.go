package config

import (
	_ "embed"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/kbuild/core/script"
	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/kbuild.yaml
	defaultConfigData []byte

	//go:embed default/arch.kb
	sampleArchScript []byte
)

const (
	ConfigurationName = "kbuild.yaml"
	ArchDirName       = "arch"
)

type Configuration struct {
	configFs         afero.Fs
	configurationDir string

	Debug   bool   `json:"debug"`
	Verbose bool   `json:"verbose"`
	Fatal   string `json:"fatal_mode" validate:"omitempty,oneof=exit raise auto"`

	LogDir  string `json:"log_dir" validate:"required"`
	LogName string `json:"log_name" validate:"omitempty,excludesall=/"`

	ArchDir     string   `json:"arch_dir" validate:"required"`
	ArchAliases []string `json:"arch_aliases" validate:"dive,arch_alias"`

	Variables   map[string]string `json:"variables" validate:"dive,keys,required,endkeys"`
	ShellParams []string          `json:"shell_params" validate:"dive,startswith=-"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})
	if err := validate.RegisterValidation("arch_alias", validateArchAlias); err != nil {
		return err
	}

	return validate.Struct(c)
}

func validateArchAlias(fl validator.FieldLevel) bool {
	_, err := parseArchAlias(fl.Field().String())
	return err == nil
}

// Dir is the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// FatalMode converts the configured mode, defaulting to exit.
func (c *Configuration) FatalMode() (script.FatalMode, error) {
	return script.ParseFatalMode(c.Fatal)
}

// Options builds the interpreter flags from the configuration.
func (c *Configuration) Options() (*script.Options, error) {
	mode, err := c.FatalMode()
	if err != nil {
		return nil, err
	}
	return &script.Options{
		Debug:   c.Debug,
		Verbose: c.Verbose,
		Fatal:   mode,
	}, nil
}

// ArchRule is one compiled arch_aliases entry.
type ArchRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// parseArchAlias splits "regex/replacement" at the last slash.
func parseArchAlias(alias string) (ArchRule, error) {
	idx := strings.LastIndex(alias, "/")
	if idx <= 0 {
		return ArchRule{}, eris.Errorf("arch alias %q must look like regex/replacement", alias)
	}

	pattern, err := regexp.Compile(alias[:idx])
	if err != nil {
		return ArchRule{}, eris.Wrapf(err, "arch alias %q has a bad pattern", alias)
	}
	return ArchRule{Pattern: pattern, Replacement: alias[idx+1:]}, nil
}

// ArchRules compiles the configured aliases in order.
func (c *Configuration) ArchRules() ([]ArchRule, error) {
	return ParseArchAliases(c.ArchAliases)
}

// ParseArchAliases compiles a list of "regex/replacement" rules.
func ParseArchAliases(aliases []string) ([]ArchRule, error) {
	out := make([]ArchRule, 0, len(aliases))
	for _, alias := range aliases {
		rule, err := parseArchAlias(alias)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, nil
}

// NewVariables seeds a variable table from the configured variables followed
// by extra key/value pairs, which win on conflict.
func (c *Configuration) NewVariables(pairs ...string) *script.Variables {
	vars := script.NewVariables()
	for k, v := range c.Variables {
		vars.Set(k, v)
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		vars.Set(pairs[i], pairs[i+1])
	}
	return vars
}

func parseConfig(data []byte) (*Configuration, error) {
	var out Configuration
	if err := yaml.UnmarshalStrict(data, &out); err != nil {
		return nil, eris.Wrap(err, "couldn't decode configuration")
	}
	return &out, nil
}

func defaultConfig() *Configuration {
	out, err := parseConfig(defaultConfigData)
	if err != nil {
		panic(err)
	}
	return out
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Configuration {
	out := defaultConfig()
	out.configurationDir = dir
	return out
}
