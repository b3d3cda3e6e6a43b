package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescape(t *testing.T) {
	cases := []struct {
		escaped  string
		expected string
	}{
		{"not escaped", "not escaped"},
		{`newline\n`, "newline\n"},
		{`double-escape\\n`, `double-escape\n`},
		{`double-escape\\n`, `double-escape\n`},
		// Octal
		{`\07`, string(rune(7))},
		{`\011`, "\t"},
		{`\0101`, "A"},
		// Hex
		{`\x7`, string(rune(07))},
		{`\x9`, "\t"},
		{`\x4A`, "J"},
	}

	for _, tc := range cases {
		t.Run(tc.escaped, func(t *testing.T) {
			actual := unescape(tc.escaped)

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEcho(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":         {[]string{}},
		"words":          {[]string{"hello", "world"}},
		"escapes":        {[]string{"-e", `a\tb\x4A`}},
		"raw":            {[]string{`a\tb`}},
		"no-newline":     {[]string{"-n", "x", "y"}},
		"compiler-flags": {[]string{"-O2", "-march=native", "flags"}},
	}

	cases.Run(t, Echo)
}

func TestEchoFlags(t *testing.T) {
	cases := map[string]struct {
		args          []string
		wantEscaped   bool
		wantNoNewline bool
		wantRest      []string
	}{
		"none":            {args: []string{"a", "-e"}, wantRest: []string{"a", "-e"}},
		"escape":          {args: []string{"-e", "a"}, wantEscaped: true, wantRest: []string{"a"}},
		"combined":        {args: []string{"-en", "a"}, wantEscaped: true, wantNoNewline: true, wantRest: []string{"a"}},
		"separate":        {args: []string{"-n", "-e", "a"}, wantEscaped: true, wantNoNewline: true, wantRest: []string{"a"}},
		"escape disabled": {args: []string{"-e", "-E", "a"}, wantRest: []string{"a"}},
		"flags only":      {args: []string{"-n"}, wantNoNewline: true},
		"unknown letter":  {args: []string{"-x", "a"}, wantRest: []string{"-x", "a"}},
		"mixed letters":   {args: []string{"-nx"}, wantRest: []string{"-nx"}},
		"help":            {args: []string{"-h"}, wantRest: []string{"-h"}},
		"long option":     {args: []string{"--help"}, wantRest: []string{"--help"}},
		"lone dash":       {args: []string{"-", "a"}, wantRest: []string{"-", "a"}},
		"stops at text":   {args: []string{"-n", "a", "-e"}, wantNoNewline: true, wantRest: []string{"a", "-e"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			escaped, noNewline, rest := echoFlags(tc.args)

			assert.Equal(t, tc.wantEscaped, escaped, "escaped")
			assert.Equal(t, tc.wantNoNewline, noNewline, "no newline")
			assert.Equal(t, tc.wantRest, rest, "rest")
		})
	}
}

func TestEcho_neverFails(t *testing.T) {
	h := newTestEnv(t)

	result, err := h.Run("echo '-x' '-h' value")

	assert.NoError(t, err)
	assert.True(t, result.IsOk())
	assert.Equal(t, "-x -h value\n", h.Stdout.String())
	assert.Empty(t, h.ExitCodes)
}
