package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	for _, tc := range []struct{ file, key string }{
		{"matching.json", "judge-match"},
		{"tracking.json", "predict-status"},
		{"letters.json", "cover-letter"},
	} {
		prompt, err := Get(tc.file, tc.key)
		require.NoError(t, err, "%s/%s", tc.file, tc.key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("matching.json", "no-such-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-key")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "judge-match")
	require.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	out := Format("Hello {{.Name}}, welcome to {{.Company}}", map[string]string{
		"Name":    "Ada",
		"Company": "Initech",
	})
	assert.Equal(t, "Hello Ada, welcome to Initech", out)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	out := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", out)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("matching.json", "missing") })
}

func TestPrompts_ContainPlaceholders(t *testing.T) {
	prompt := MustGet("matching.json", "judge-match")
	for _, ph := range []string{"{{.ProfileSummary}}", "{{.Title}}", "{{.Company}}"} {
		assert.True(t, strings.Contains(prompt, ph), "expected placeholder %s", ph)
	}
}
