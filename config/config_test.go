package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dimonomid/cexpr/fractal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
width: 80
height: 40
preset: mine
presets:
  mine:
    re_min: -1
    re_max: 1
    im_min: -0.5
    im_max: 0.5
    max_iter: 100
  seahorse-valley:
    re_min: -0.75
    re_max: -0.74
    im_min: 0.1
    im_max: 0.11
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(testConfig))
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
	assert.Equal(t, "mine", cfg.Preset)

	mine := cfg.Presets["mine"]
	assert.Equal(t, fractal.Region{ReMin: -1, ReMax: 1, ImMin: -0.5, ImMax: 0.5}, mine.Region)

	fp := mine.Params()
	assert.Equal(t, 100, fp.MaxIter)
	assert.Equal(t, fractal.DefaultParams.Threshold, fp.Threshold)
}

func TestParseInvalid(t *testing.T) {
	testCases := []string{
		`width: 1`,
		`height: 100000`,
		`unknown_field: 1`,
		`presets: {bad: {re_min: 1, re_max: 0, im_min: 0, im_max: 1}}`,
		`presets: {"foo*": {re_min: 0, re_max: 1, im_min: 0, im_max: 1}}`,
		`presets: {neg: {re_min: 0, re_max: 1, im_min: 0, im_max: 1, max_iter: -5}}`,
		`width: [`,
	}

	for i, tc := range testCases {
		_, err := Parse([]byte(tc))
		assert.Error(t, err, "testCase #%d (%s)", i, tc)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Width)

	_, err = LoadFromFile(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)

	cfg, err = LoadOptional(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	require.NoError(t, os.WriteFile(path, []byte("width: 1\n"), 0644))
	_, err = LoadOptional(path)
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/foo.yaml")

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/foo.yaml", p)
}

func TestFindPreset(t *testing.T) {
	cfg, err := Parse([]byte(testConfig))
	require.NoError(t, err)

	testCases := []struct {
		pattern  string
		wantName string
		wantErr  bool
	}{
		{pattern: "default", wantName: "default"},
		{pattern: "mine", wantName: "mine"},
		{pattern: "sea*", wantName: "seahorse-valley"},
		{pattern: "*tip", wantName: "antenna-tip"},
		{pattern: "*-valley", wantErr: true},
		{pattern: "nothing*", wantErr: true},
		{pattern: "[", wantErr: true},
	}

	for i, tc := range testCases {
		name, _, err := cfg.FindPreset(tc.pattern)
		if tc.wantErr {
			assert.Error(t, err, "testCase #%d (%+v)", i, tc)
			continue
		}

		require.NoError(t, err, "testCase #%d (%+v)", i, tc)
		assert.Equal(t, tc.wantName, name, "testCase #%d (%+v)", i, tc)
	}

	// The config overrides the builtin preset.
	_, p, err := cfg.FindPreset("seahorse-valley")
	require.NoError(t, err)
	assert.Equal(t, -0.75, p.ReMin)
}

func TestMatchPresets(t *testing.T) {
	cfg := &Config{}

	names, err := cfg.MatchPresets("*")
	require.NoError(t, err)
	assert.Equal(t, []string{"antenna-tip", "default", "elephant-valley", "seahorse-valley"}, names)

	names, err = cfg.MatchPresets("*-valley")
	require.NoError(t, err)
	assert.Equal(t, []string{"elephant-valley", "seahorse-valley"}, names)
}

func TestBuiltinPresetsValid(t *testing.T) {
	for name, p := range BuiltinPresets {
		assert.NoError(t, p.Params().Validate(), name)
	}

	assert.Equal(t, fractal.DefaultParams, BuiltinPresets[DefaultPreset].Params())
}

func TestResolve(t *testing.T) {
	empty := &Config{}

	opts, err := empty.Resolve(Options{})
	require.NoError(t, err)
	assert.Equal(t, Options{Width: DefaultWidth, Height: DefaultHeight, Preset: DefaultPreset}, opts)

	cfg := &Config{Width: 80, Height: 40, Preset: "mine"}
	opts, err = cfg.Resolve(Options{})
	require.NoError(t, err)
	assert.Equal(t, Options{Width: 80, Height: 40, Preset: "mine"}, opts)

	t.Setenv(EnvWidth, "100")
	t.Setenv(EnvPreset, "antenna-tip")
	opts, err = cfg.Resolve(Options{})
	require.NoError(t, err)
	assert.Equal(t, Options{Width: 100, Height: 40, Preset: "antenna-tip"}, opts)

	opts, err = cfg.Resolve(Options{Width: 8, Height: 4, Preset: "default"})
	require.NoError(t, err)
	assert.Equal(t, Options{Width: 8, Height: 4, Preset: "default"}, opts)

	_, err = cfg.Resolve(Options{Width: 1})
	assert.Error(t, err)

	_, err = cfg.Resolve(Options{Height: MaxDimension + 1})
	assert.Error(t, err)
}

func TestResolveInvalidEnv(t *testing.T) {
	cfg := &Config{Width: 80, Height: 40}

	for _, name := range []string{EnvWidth, EnvHeight} {
		for _, val := range []string{"abc", "12px", "1e3", "0x50"} {
			t.Setenv(EnvWidth, "")
			t.Setenv(EnvHeight, "")
			t.Setenv(name, val)

			_, err := cfg.Resolve(Options{})
			if assert.Error(t, err, "%s=%q", name, val) {
				assert.Contains(t, err.Error(), name)
			}

			// A flag doesn't hide a bad environment value.
			_, err = cfg.Resolve(Options{Width: 8, Height: 4})
			assert.Error(t, err, "%s=%q with flags", name, val)
		}
	}

	t.Setenv(EnvWidth, "")
	t.Setenv(EnvHeight, "")
	opts, err := cfg.Resolve(Options{})
	require.NoError(t, err)
	assert.Equal(t, 80, opts.Width)
	assert.Equal(t, 40, opts.Height)
}
