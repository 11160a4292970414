package colorize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		expected bool
	}{
		{"always", ModeAlways, true},
		{"never", ModeNever, false},
		{"auto without terminal", ModeAuto, false},
		{"empty mode", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Enabled(tt.mode, &bytes.Buffer{}))
		})
	}

	t.Setenv(DisableEnv, "1")
	assert.False(t, Enabled(ModeAlways, &bytes.Buffer{}))
}

func TestAssembly(t *testing.T) {
	text, err := Assembly("addi\ta0, a0, 1")
	assert.NoError(t, err)
	assert.Contains(t, text, "addi")
	assert.Contains(t, text, "a0")
	assert.True(t, strings.Contains(text, "\x1b["))
}
