// Command pbmgen renders Mandelbrot PBM images into Go constants. It's meant
// to be run by go generate, e.g.:
//
//	//go:generate go run ../../cmd/pbmgen --package images --output images_gen.go 8x4 Large=256x256
package main

import (
	"fmt"
	"os"

	"github.com/dimonomid/cexpr/util/pbmgen"
	"github.com/juju/errors"
	"github.com/spf13/pflag"
)

func main() {
	if err := main2(); err != nil {
		fmt.Fprintln(os.Stderr, "pbmgen: error:", err.Error())
		os.Exit(1)
	}
}

func main2() error {
	var (
		flagPackage = pflag.String("package", os.Getenv("GOPACKAGE"), "Package name of the generated file; defaults to $GOPACKAGE, set by go generate")
		flagOutput  = pflag.StringP("output", "o", "", "Output file")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] WxH|NAME=WxH...\n", os.Args[0])
		pflag.PrintDefaults()
	}

	pflag.Parse()

	var images []pbmgen.Image
	for _, arg := range pflag.Args() {
		img, err := pbmgen.ParseImage(arg)
		if err != nil {
			return errors.Trace(err)
		}

		images = append(images, img)
	}

	err := pbmgen.Generate(pbmgen.Params{
		Package: *flagPackage,
		Output:  *flagOutput,
		Images:  images,
	})
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
