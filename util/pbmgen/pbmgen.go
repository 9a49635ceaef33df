// Package pbmgen renders PBM images ahead of time and writes them as Go
// constants, so that a program can embed them with no rendering at run time.
// Any failure aborts the generation without leaving a partial file behind,
// which in turn fails `go generate`.
package pbmgen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dimonomid/cexpr/fractal"
	"github.com/juju/errors"
)

type Params struct {
	// Package is the package name of the generated file.
	Package string
	// Output is the path to the generated file.
	Output string

	Images []Image

	// FractalParams is used for every image. If zero, fractal.DefaultParams
	// is used.
	FractalParams fractal.Params
	// ParamsDescr describes FractalParams in the doc comments, like
	// "fractal.DefaultParams".
	ParamsDescr string
}

type Image struct {
	// Name is the name of the constant; by default it's "Mandelbrot<W>x<H>".
	Name string

	Width, Height int
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var dimsRe = regexp.MustCompile(`^([0-9]+)x([0-9]+)$`)

// ParseImage parses an image spec like "8x4" or "Small=8x4".
func ParseImage(s string) (Image, error) {
	var img Image

	dims := s
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		img.Name = s[:idx]
		dims = s[idx+1:]
	}

	m := dimsRe.FindStringSubmatch(dims)
	if m == nil {
		return Image{}, errors.Errorf("invalid image spec %q, want WxH or NAME=WxH", s)
	}

	var err error
	if img.Width, err = strconv.Atoi(m[1]); err != nil {
		return Image{}, errors.Annotatef(err, "parsing width in %q", s)
	}
	if img.Height, err = strconv.Atoi(m[2]); err != nil {
		return Image{}, errors.Annotatef(err, "parsing height in %q", s)
	}

	return img, nil
}

func (img *Image) constName() string {
	if img.Name != "" {
		return img.Name
	}

	return fmt.Sprintf("Mandelbrot%dx%d", img.Width, img.Height)
}

// Generate renders all images and writes the Go file.
func Generate(params Params) error {
	if !identRe.MatchString(params.Package) {
		return errors.Errorf("invalid package name %q", params.Package)
	}

	if params.Output == "" {
		return errors.Errorf("no output file")
	}

	if len(params.Images) == 0 {
		return errors.Errorf("no images to generate")
	}

	src, err := generateSource(params)
	if err != nil {
		return errors.Trace(err)
	}

	if err := writeFileAtomic(params.Output, src); err != nil {
		return errors.Annotatef(err, "writing %s", params.Output)
	}

	return nil
}

func generateSource(params Params) ([]byte, error) {
	fp := params.FractalParams
	descr := params.ParamsDescr
	if fp == (fractal.Params{}) {
		fp = fractal.DefaultParams
		descr = "fractal.DefaultParams"
	}
	if descr == "" {
		descr = fp.Region.String()
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by pbmgen; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n", params.Package)

	seen := map[string]struct{}{}

	for i := range params.Images {
		img := &params.Images[i]

		name := img.constName()
		if !identRe.MatchString(name) {
			return nil, errors.Errorf("image #%d: invalid name %q", i+1, name)
		}
		if _, ok := seen[name]; ok {
			return nil, errors.Errorf("image #%d: duplicate name %q", i+1, name)
		}
		seen[name] = struct{}{}

		pbm, err := fractal.Render(img.Width, img.Height, fp)
		if err != nil {
			return nil, errors.Annotatef(err, "rendering %s", name)
		}

		fmt.Fprintf(&buf, "\n// %s is a %dx%d image rendered with %s.\n", name, img.Width, img.Height, descr)
		fmt.Fprintf(&buf, "const %s = ", name)

		lines := strings.SplitAfter(pbm.String(), "\n")
		// SplitAfter leaves an empty string after the last newline.
		lines = lines[:len(lines)-1]
		for j, line := range lines {
			if j > 0 {
				buf.WriteString(" +\n\t")
			}
			buf.WriteString(strconv.Quote(line))
		}
		buf.WriteString("\n")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Annotatef(err, "formatting generated code")
	}

	return src, nil
}

// writeFileAtomic writes to a temporary file in the same directory and then
// renames it, so that path is either left intact or fully written.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Trace(err)
	}

	tmpName := f.Name()
	defer os.Remove(tmpName)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Trace(err)
	}

	if err := f.Close(); err != nil {
		return errors.Trace(err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		return errors.Trace(err)
	}

	return errors.Trace(os.Rename(tmpName, path))
}
