package commands

import (
	"context"
	"testing"

	"github.com/josephlewis42/kbuild/core/script"
	"github.com/stretchr/testify/assert"
)

func TestDebug(t *testing.T) {
	cases := map[string]struct {
		initial bool
		args    []string
		want    bool
		wantErr bool
	}{
		"toggle on":  {initial: false, want: true},
		"toggle off": {initial: true, want: false},
		"set on":     {initial: true, args: []string{"on"}, want: true},
		"set off":    {initial: false, args: []string{"OFF"}, want: false},
		"numeric":    {initial: false, args: []string{"1"}, want: true},
		"bad value":  {initial: true, args: []string{"maybe"}, want: true, wantErr: true},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			h := newTestEnv(t)
			h.Env.SetDebug(tc.initial)

			result := Debug(context.Background(), h.Env, tc.args)

			assert.Equal(t, tc.wantErr, result.IsErr())
			assert.Equal(t, tc.want, h.Env.Options.Debug)
			if !tc.wantErr {
				assert.Equal(t, script.Flag(tc.want), result.Payload())
			}
		})
	}
}

func TestDebug_changesLogLevel(t *testing.T) {
	h := newTestEnv(t)

	_, err := h.Run("export a 1\ndebug on\nexport b 2")

	assert.NoError(t, err)
	logs := h.Logs.String()
	assert.NotContains(t, logs, `"name":"a"`, "debug lines are hidden before the switch")
	assert.Contains(t, logs, `"name":"b"`)
}
