package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPi(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"default":  {[]string{"pi"}, "3.1415926535\n"},
		"two":      {[]string{"pi", "--digits", "2"}, "3.14\n"},
		"none":     {[]string{"pi", "--digits", "0"}, "3\n"},
		"all held": {[]string{"pi", "--digits", "18"}, "3.141592653589793238\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestPi_DigitsOutOfRange(t *testing.T) {
	for _, digits := range []string{"-1", "19"} {
		stdout, _, err := execute(t, "pi", "--digits", digits)
		require.Error(t, err, digits)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, stdout, "Error [E002]")
	}
}

func TestPi_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "pi", "--digits", "4")
	require.NoError(t, err)

	var resp struct {
		Status string   `json:"status"`
		Data   PiResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "3.1415", resp.Data.Value)
	assert.Equal(t, 4, resp.Data.Digits)
}
