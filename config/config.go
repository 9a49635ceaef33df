// Package config resolves what to render: image dimensions and the region
// preset, from the config file, the environment and the command line.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dimonomid/cexpr/fractal"
	"github.com/gobwas/glob"
	"github.com/juju/errors"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v2"
)

const (
	DefaultWidth  = 256
	DefaultHeight = 256

	DefaultPreset = "default"

	// MaxDimension bounds the width and height, so that a typo can't make us
	// allocate gigabytes.
	MaxDimension = 1 << 15
)

// Environment variables which override the config file.
const (
	EnvConfig = "CEXPR_CONFIG"
	EnvWidth  = "CEXPR_WIDTH"
	EnvHeight = "CEXPR_HEIGHT"
	EnvPreset = "CEXPR_PRESET"
)

type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Preset string `yaml:"preset"`

	Presets map[string]Preset `yaml:"presets"`
}

type Preset struct {
	fractal.Region `yaml:",inline"`

	// MaxIter and Threshold are optional; when zero, the values from
	// fractal.DefaultParams are used.
	MaxIter   int     `yaml:"max_iter"`
	Threshold float64 `yaml:"threshold"`
}

// Params returns the fractal params of the preset.
func (p Preset) Params() fractal.Params {
	fp := fractal.DefaultParams
	fp.Region = p.Region

	if p.MaxIter != 0 {
		fp.MaxIter = p.MaxIter
	}

	if p.Threshold != 0 {
		fp.Threshold = p.Threshold
	}

	return fp
}

// BuiltinPresets are available even without a config file; the config file
// can override them.
var BuiltinPresets = map[string]Preset{
	DefaultPreset: {Region: fractal.DefaultRegion},
	"seahorse-valley": {
		Region:  fractal.Region{ReMin: -0.8, ReMax: -0.7, ImMin: 0.05, ImMax: 0.15},
		MaxIter: 64,
	},
	"elephant-valley": {
		Region:  fractal.Region{ReMin: 0.25, ReMax: 0.35, ImMin: -0.05, ImMax: 0.05},
		MaxIter: 64,
	},
	"antenna-tip": {
		Region:  fractal.Region{ReMin: -2.0, ReMax: -1.7, ImMin: -0.15, ImMax: 0.15},
		MaxIter: 32,
	},
}

// DefaultPath returns the config file path: $CEXPR_CONFIG if set, or
// cexpr/config.yaml under the user config dir.
func DefaultPath() (string, error) {
	if p := env.Str(EnvConfig); p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Annotatef(err, "getting user config dir")
	}

	return filepath.Join(dir, "cexpr", "config.yaml"), nil
}

// LoadFromFile loads and validates the config file at path.
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening config file: %s", path)
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotatef(err, "reading config file %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Annotatef(err, "%s", path)
	}

	return cfg, nil
}

// LoadOptional is like LoadFromFile, but a missing file yields an empty
// config.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	cfg, err := LoadFromFile(path)
	return cfg, errors.Trace(err)
}

// Parse parses and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Annotatef(err, "unmarshaling yaml")
	}

	if err := checkDimension("width", cfg.Width, true); err != nil {
		return nil, errors.Trace(err)
	}

	if err := checkDimension("height", cfg.Height, true); err != nil {
		return nil, errors.Trace(err)
	}

	for name, p := range cfg.Presets {
		if name == "" || strings.ContainsAny(name, "*?[]{}") {
			return nil, errors.Errorf("invalid preset name %q", name)
		}

		if err := p.Params().Validate(); err != nil {
			return nil, errors.Annotatef(err, "preset %s", name)
		}
	}

	return &cfg, nil
}

func checkDimension(what string, v int, zeroOK bool) error {
	if v == 0 && zeroOK {
		return nil
	}

	if v < 2 || v > MaxDimension {
		return errors.Errorf("%s must be between 2 and %d, got %d", what, MaxDimension, v)
	}

	return nil
}

// AllPresets returns the builtin presets merged with the ones from the config.
func (cfg *Config) AllPresets() map[string]Preset {
	ret := make(map[string]Preset, len(BuiltinPresets)+len(cfg.Presets))
	for k, v := range BuiltinPresets {
		ret[k] = v
	}
	for k, v := range cfg.Presets {
		ret[k] = v
	}

	return ret
}

// MatchPresets returns the sorted names of the presets matching the glob
// pattern.
func (cfg *Config) MatchPresets(pattern string) ([]string, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Annotatef(err, "parsing %q as a glob pattern", pattern)
	}

	var names []string
	for name := range cfg.AllPresets() {
		if matcher.Match(name) {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// FindPreset returns the preset with the given name or, if there's none, the
// single one matching it as a glob pattern.
func (cfg *Config) FindPreset(pattern string) (string, Preset, error) {
	all := cfg.AllPresets()
	if p, ok := all[pattern]; ok {
		return pattern, p, nil
	}

	names, err := cfg.MatchPresets(pattern)
	if err != nil {
		return "", Preset{}, errors.Trace(err)
	}

	switch len(names) {
	case 0:
		return "", Preset{}, errors.Errorf("no preset matches %q", pattern)
	case 1:
		return names[0], all[names[0]], nil
	default:
		return "", Preset{}, errors.Errorf(
			"%q is ambiguous, matches: %s", pattern, strings.Join(names, ", "),
		)
	}
}

// Options is what to render.
type Options struct {
	Width  int
	Height int
	Preset string
}

// Resolve returns the options to use: every field of flags which is not
// zero wins, then the environment, then the config, then the defaults.
func (cfg *Config) Resolve(flags Options) (Options, error) {
	opts := Options{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Preset: DefaultPreset,
	}

	if cfg.Width != 0 {
		opts.Width = cfg.Width
	}
	if cfg.Height != 0 {
		opts.Height = cfg.Height
	}
	if cfg.Preset != "" {
		opts.Preset = cfg.Preset
	}

	var err error
	if opts.Width, err = envInt(EnvWidth, opts.Width); err != nil {
		return opts, errors.Trace(err)
	}
	if opts.Height, err = envInt(EnvHeight, opts.Height); err != nil {
		return opts, errors.Trace(err)
	}
	opts.Preset = env.Str(EnvPreset, opts.Preset)

	if flags.Width != 0 {
		opts.Width = flags.Width
	}
	if flags.Height != 0 {
		opts.Height = flags.Height
	}
	if flags.Preset != "" {
		opts.Preset = flags.Preset
	}

	if err := checkDimension("width", opts.Width, false); err != nil {
		return opts, errors.Trace(err)
	}

	if err := checkDimension("height", opts.Height, false); err != nil {
		return opts, errors.Trace(err)
	}

	return opts, nil
}

// envInt returns the integer value of the environment variable name, or def
// if it's unset or empty.
func envInt(name string, def int) (int, error) {
	s := env.Str(name)
	if s == "" {
		return def, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return def, errors.Annotatef(err, "invalid $%s", name)
	}

	return v, nil
}
