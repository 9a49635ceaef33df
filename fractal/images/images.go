// Package images holds Mandelbrot images rendered ahead of time by pbmgen.
package images

import "github.com/dimonomid/cexpr/cstring"

//go:generate go run ../../cmd/pbmgen --package images --output images_gen.go 8x4 16x8 32x16

// Small is Mandelbrot8x4 in a fixed-capacity buffer, built during package
// initialization.
var Small = cstring.Must(cstring.FromString(len(Mandelbrot8x4), Mandelbrot8x4))
