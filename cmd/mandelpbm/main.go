package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dimonomid/cexpr/clipboard"
	"github.com/dimonomid/cexpr/config"
	"github.com/dimonomid/cexpr/fractal"
	"github.com/dimonomid/cexpr/log"
	"github.com/dimonomid/cexpr/version"
	"github.com/dimonomid/cexpr/viewer"
	"github.com/juju/errors"
	"github.com/spf13/pflag"
)

func main() {
	if err := main2(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func main2() error {
	defaultConfigPath, err := config.DefaultPath()
	if err != nil {
		return errors.Trace(err)
	}

	var (
		flagWidth       = pflag.IntP("width", "w", 0, fmt.Sprintf("Image width; default is taken from $%s, the config file, or %d", config.EnvWidth, config.DefaultWidth))
		flagHeight      = pflag.IntP("height", "H", 0, fmt.Sprintf("Image height; default is taken from $%s, the config file, or %d", config.EnvHeight, config.DefaultHeight))
		flagPreset      = pflag.StringP("preset", "p", "", "Region preset, either a name or a glob pattern matching exactly one preset")
		flagOutput      = pflag.StringP("output", "o", "", "Write the image to this file instead of stdout")
		flagConfig      = pflag.String("config", defaultConfigPath, "Config file with presets; it's fine if it doesn't exist")
		flagListPresets = pflag.String("list-presets", "", "Print presets matching the glob pattern, like '*' or '*-valley', and exit")
		flagView        = pflag.Bool("view", false, "Show the image in the terminal instead of printing it")
		flagClipboard   = pflag.Bool("clipboard", false, "Also copy the image to the clipboard")
		flagLogLevel    = pflag.String("loglevel", "warning", "Valid values are: error, warning, info, verbose1, verbose2 or verbose3")
		flagLogFile     = pflag.String("logfile", "", "Write logs to this file instead of stderr")
		flagVersion     = pflag.Bool("version", false, "Print version and exit")
	)

	pflag.Parse()

	if *flagVersion {
		fmt.Print(version.VersionFullDescr())
		return nil
	}

	if err := checkOutputFlags(*flagView, *flagOutput); err != nil {
		return errors.Trace(err)
	}

	logLevel, err := log.ParseLevel(*flagLogLevel)
	if err != nil {
		return errors.Trace(err)
	}

	if *flagLogFile != "" {
		if err := log.OpenFile(*flagLogFile); err != nil {
			return errors.Trace(err)
		}
		defer log.Close()
	}

	logger := log.NewLogger(logLevel).WithNamespaceAppended("mandelpbm")

	cfg, err := config.LoadOptional(*flagConfig)
	if err != nil {
		return errors.Annotatef(err, "loading config")
	}

	if *flagListPresets != "" {
		return errors.Trace(listPresets(cfg, *flagListPresets))
	}

	opts, err := cfg.Resolve(config.Options{
		Width:  *flagWidth,
		Height: *flagHeight,
		Preset: *flagPreset,
	})
	if err != nil {
		return errors.Trace(err)
	}

	presetName, preset, err := cfg.FindPreset(opts.Preset)
	if err != nil {
		return errors.Trace(err)
	}

	params := preset.Params()
	logger.Verbose1f(
		"Rendering %dx%d, preset %s: %s, max_iter %d, threshold %g",
		opts.Width, opts.Height, presetName, params.Region, params.MaxIter, params.Threshold,
	)

	start := time.Now()
	img, err := fractal.Render(opts.Width, opts.Height, params)
	if err != nil {
		return errors.Annotatef(err, "rendering")
	}

	stats, err := fractal.Stats(img)
	if err != nil {
		return errors.Trace(err)
	}

	logger.Infof(
		"Rendered %dx%d in %s, %.1f%% in the set",
		stats.Width, stats.Height, time.Since(start), stats.Coverage()*100,
	)

	if *flagClipboard {
		if err := clipboard.InitErr(); err != nil {
			logger.Warnf("Clipboard is not available: %s", err)
		} else {
			clipboard.WriteText(img.Slice())
			logger.Verbose1f("Copied %d bytes to the clipboard", img.Len())
		}
	}

	if *flagView {
		v, err := viewer.New(viewer.Params{
			Title:  fmt.Sprintf("%s %dx%d", presetName, opts.Width, opts.Height),
			Image:  img,
			Logger: logger,
		})
		if err != nil {
			return errors.Trace(err)
		}

		return errors.Trace(v.Run())
	}

	if *flagOutput == "" {
		if _, err := os.Stdout.Write(img.Slice()); err != nil {
			return errors.Annotatef(err, "writing image")
		}

		return nil
	}

	if err := writeImage(*flagOutput, img.Slice()); err != nil {
		return errors.Trace(err)
	}

	logger.Verbose1f("Wrote %d bytes to %s", img.Len(), *flagOutput)
	return nil
}

// checkOutputFlags returns an error if the flags ask for the image to go to
// both the viewer and a file.
func checkOutputFlags(view bool, output string) error {
	if view && output != "" {
		return errors.Errorf("--view and --output can't be used together")
	}

	return nil
}

// writeImage writes data to the file at path, creating or truncating it.
func writeImage(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "creating output file")
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Annotatef(err, "writing image to %s", path)
	}

	if err := f.Close(); err != nil {
		return errors.Annotatef(err, "closing %s", path)
	}

	return nil
}

func listPresets(cfg *config.Config, pattern string) error {
	names, err := cfg.MatchPresets(pattern)
	if err != nil {
		return errors.Trace(err)
	}

	if len(names) == 0 {
		return errors.Errorf("no presets match %q", pattern)
	}

	all := cfg.AllPresets()

	maxLen := 0
	for _, name := range names {
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}

	for _, name := range names {
		p := all[name].Params()
		fmt.Printf(
			"%s%s  %s, max_iter %d\n",
			name, strings.Repeat(" ", maxLen-len(name)), p.Region, p.MaxIter,
		)
	}

	return nil
}
