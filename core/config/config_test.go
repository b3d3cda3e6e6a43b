package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/josephlewis42/kbuild/core/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()

	assert.NoError(t, cfg.Validate())

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, &script.Options{Fatal: script.FatalExit}, opts)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		edit    func(c *Configuration)
		wantErr string
	}{
		"default": {
			edit: func(c *Configuration) {},
		},
		"empty fatal mode": {
			edit: func(c *Configuration) { c.Fatal = "" },
		},
		"raise": {
			edit: func(c *Configuration) { c.Fatal = "raise" },
		},
		"unknown fatal mode": {
			edit:    func(c *Configuration) { c.Fatal = "sometimes" },
			wantErr: "fatal_mode",
		},
		"missing log dir": {
			edit:    func(c *Configuration) { c.LogDir = "" },
			wantErr: "log_dir",
		},
		"log name with directory": {
			edit:    func(c *Configuration) { c.LogName = "logs/run.log" },
			wantErr: "log_name",
		},
		"missing arch dir": {
			edit:    func(c *Configuration) { c.ArchDir = "" },
			wantErr: "arch_dir",
		},
		"alias without replacement": {
			edit:    func(c *Configuration) { c.ArchAliases = []string{"x86"} },
			wantErr: "arch_alias",
		},
		"alias with bad pattern": {
			edit:    func(c *Configuration) { c.ArchAliases = []string{"(x86/x86"} },
			wantErr: "arch_alias",
		},
		"shell param without dash": {
			edit:    func(c *Configuration) { c.ShellParams = []string{"e"} },
			wantErr: "shell_params",
		},
		"empty variable name": {
			edit:    func(c *Configuration) { c.Variables = map[string]string{"": "x"} },
			wantErr: "variables",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.edit(cfg)

			err := cfg.Validate()

			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestParseArchAliases(t *testing.T) {
	rules, err := ParseArchAliases([]string{"i.86/x86", "sh[234].*/sh", "a/b/c", "gone/"})
	require.NoError(t, err)
	require.Len(t, rules, 4)

	assert.Equal(t, "i.86", rules[0].Pattern.String())
	assert.Equal(t, "x86", rules[0].Replacement)
	assert.Equal(t, "sh[234].*", rules[1].Pattern.String())
	assert.Equal(t, "a/b", rules[2].Pattern.String())
	assert.Equal(t, "c", rules[2].Replacement)
	assert.Equal(t, "", rules[3].Replacement)

	for _, bad := range []string{"", "x86", "/x86", "[/x"} {
		_, err := ParseArchAliases([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestNewVariables(t *testing.T) {
	cfg := defaultConfig()
	cfg.Variables = map[string]string{"output": "build", "arch": "ignored"}

	vars := cfg.NewVariables("arch", "x86", "workdir", "/src")

	assert.Equal(t, "build", vars.Get("output"))
	assert.Equal(t, "x86", vars.Get("arch"))
	assert.Equal(t, "/src", vars.Get("workdir"))
	assert.Equal(t, 3, vars.Len())
}

func TestSampleArchScript(t *testing.T) {
	queue, diags := script.ParseString(string(sampleArchScript))
	assert.Empty(t, diags)

	var names []string
	for _, ins := range queue {
		if !ins.Empty() {
			names = append(names, ins.Name())
		}
	}
	assert.Equal(t, []string{"echo", "check_cmd", "mkdir", "check_cmd", "echo", "exec", "echo"}, names)
}
