package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_Flags(t *testing.T) {
	out, err := runCLI(t, "", "check", "--password", "Abc123!", "--confirmation", "Abc123!")
	require.NoError(t, err)
	assert.Equal(t, "Password accepted\n", out)
}

func TestCheck_Rejected(t *testing.T) {
	out, err := runCLI(t, "", "check", "--password", "ABCDEF1!", "--confirmation", "abcdef1!")
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, "Password and re-entered password do not match\n", out)
}

func TestCheck_Stdin(t *testing.T) {
	out, err := runCLI(t, "short\r\nshort\n", "check")
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, "Password is too short\n", out)
}

func TestCheck_StdinIncomplete(t *testing.T) {
	_, err := runCLI(t, "only-one-line\n", "check")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errRejected)
}

func TestCheck_JSON(t *testing.T) {
	out, err := runCLI(t, "", "check", "--json", "--password", "abc123!", "--confirmation", "abc123!")
	assert.ErrorIs(t, err, errRejected)
	assert.JSONEq(t,
		`{"kind":"missing_character_class","code":"chars","message":"Characters don't satisfy one of the conditions"}`,
		out)
}

func TestServe_InvalidLogConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.env")

	t.Run("format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := runCLI(t, "", "serve", "--env-file", missing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `logging: unknown format "xml"`)
	})

	t.Run("level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		_, err := runCLI(t, "", "serve", "--env-file", missing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logging:")
	})
}
