package commands

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/josephlewis42/kbuild/core/script"
)

var (
	unescapeOctal   = regexp.MustCompile(`\\0[0-8][0-8]?[0-8]?`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\b`, "\b", // backspace
		`\a`, "\a", // alert
		`\f`, "\f", // form feed
		`\v`, "\v", // vertical tab
	)
)

func unescape(s string) string {
	s = unescapeReplace.Replace(s)
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	return s
}

// echoFlags consumes leading words made only of the letters e, E and n, like
// "-e" or "-ne". Everything from the first other word on is text.
func echoFlags(args []string) (escaped, noNewline bool, rest []string) {
	for i, arg := range args {
		if len(arg) < 2 || arg[0] != '-' || strings.Trim(arg[1:], "eEn") != "" {
			return escaped, noNewline, args[i:]
		}

		for _, flag := range arg[1:] {
			switch flag {
			case 'e':
				escaped = true
			case 'E':
				escaped = false
			case 'n':
				noNewline = true
			}
		}
	}
	return escaped, noNewline, nil
}

// Echo prints its arguments joined by a space. It never fails; words that
// aren't echo flags are printed as they are.
func Echo(ctx context.Context, env *script.Env, args []string) script.Result {
	escaped, noNewline, words := echoFlags(args)

	w := env.Stdout
	for i, arg := range words {
		if i > 0 {
			fmt.Fprint(w, " ")
		}

		if escaped {
			arg = unescape(arg)
		}

		fmt.Fprint(w, arg)
	}

	if !noNewline {
		fmt.Fprintln(w)
	}

	return script.Success()
}

var _ script.HandlerFunc = Echo

func init() {
	mustAddCmd("echo", "echo [-neE] [ARG] ...", "Print the arguments and succeed.", Echo)
}
