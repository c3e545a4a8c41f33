package hcl

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/speechtimer/internal/preset"
	"github.com/specialistvlad/speechtimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testContext = testutil.Context
	writeFiles  = testutil.WriteFiles
)

func TestLoad_EvaluatesThresholdExpressions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"club.hcl": `
preset "Club Contest" {
  description = "Contest speeches"
  green       = minutes(5)
  yellow      = mmss("6:00")
  red         = 7 * 60
}

preset "Quick" {
  green  = 30
  yellow = minutes(0.75)
  red    = mmss("1:00")
}
`,
		"ignored.txt": `preset "Nope" {}`,
	})

	presets, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)

	assert.Equal(t, []preset.Preset{
		{Name: "Club Contest", Description: "Contest speeches", Green: 300, Yellow: 360, Red: 420},
		{Name: "Quick", Green: 30, Yellow: 45, Red: 60},
	}, presets)
}

func TestLoad_NestedDirectoriesAndSingleFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a/one.hcl":   `preset "One" {
  green = 1
  yellow = 2
  red = 3
}`,
		"b/c/two.hcl": `preset "Two" {
  green = 10
  yellow = 20
  red = 30
}`,
	})

	presets, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)
	assert.Len(t, presets, 2)

	single, err := NewLoader().Load(testContext(), filepath.Join(dir, "a", "one.hcl"), "")
	require.NoError(t, err)
	assert.Equal(t, []preset.Preset{{Name: "One", Green: 1, Yellow: 2, Red: 3}}, single)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	presets, err := NewLoader().Load(testContext(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "syntax error",
			content: `preset "Broken" {`,
			wantMsg: "failed to parse preset file",
		},
		{
			name:    "missing red",
			content: `preset "NoRed" {
  green = 1
  yellow = 2
}`,
			wantMsg: `preset "NoRed": missing required argument "red"`,
		},
		{
			name:    "ordering",
			content: `preset "Backwards" {
  green = 3
  yellow = 2
  red = 1
}`,
			wantMsg: `preset "Backwards"`,
		},
		{
			name:    "fractional seconds",
			content: `preset "Frac" {
  green = 1.5
  yellow = 2
  red = 3
}`,
			wantMsg: "whole number",
		},
		{
			name:    "bad mmss",
			content: `preset "Clock" {
  green = mmss("x:10")
  yellow = 2
  red = 3
}`,
			wantMsg: `preset "Clock": green`,
		},
		{
			name:    "unknown function",
			content: `preset "Fn" {
  green = hours(1)
  yellow = 2
  red = 3
}`,
			wantMsg: `preset "Fn": green`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"p.hcl": tc.content})

			_, err := NewLoader().Load(testContext(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
			assert.Contains(t, err.Error(), "p.hcl")
		})
	}
}

func TestLoad_ValidationErrorIsWrapped(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"p.hcl": `preset "Negative" {
  green = -1
  yellow = 2
  red = 3
}`,
	})

	_, err := NewLoader().Load(testContext(), dir)
	require.ErrorIs(t, err, preset.ErrNegative)
}

func TestLoad_DuplicateNamesAcrossFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.hcl": `preset "Same" {
  green = 1
  yellow = 2
  red = 3
}`,
		"b.hcl": `preset "same" {
  green = 1
  yellow = 2
  red = 3
}`,
	})

	_, err := NewLoader().Load(testContext(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate preset")
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(testContext(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find preset files")
}
