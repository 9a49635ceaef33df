// Package fractal classifies points of the complex plane with the
// Mandelbrot escape-time test and renders them as plain PBM images held in
// fixed-capacity buffers.
package fractal

import (
	"fmt"

	"github.com/juju/errors"
)

// Region is a rectangle of the complex plane.
type Region struct {
	ReMin float64 `yaml:"re_min"`
	ReMax float64 `yaml:"re_max"`
	ImMin float64 `yaml:"im_min"`
	ImMax float64 `yaml:"im_max"`
}

// DefaultRegion covers the whole Mandelbrot set.
var DefaultRegion = Region{
	ReMin: -1.6,
	ReMax: 0.6,
	ImMin: -1.1,
	ImMax: 1.1,
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", r.ReMin, r.ReMax, r.ImMin, r.ImMax)
}

// Validate checks that the region isn't empty.
func (r Region) Validate() error {
	if !(r.ReMin < r.ReMax) {
		return errors.Errorf("re_min (%g) must be less than re_max (%g)", r.ReMin, r.ReMax)
	}

	if !(r.ImMin < r.ImMax) {
		return errors.Errorf("im_min (%g) must be less than im_max (%g)", r.ImMin, r.ImMax)
	}

	return nil
}

// Params configures the escape-time test.
type Params struct {
	Region Region

	// MaxIter is how many iterations a point must survive to be considered
	// part of the set.
	MaxIter int
	// Threshold is the magnitude above which a point is considered escaped.
	Threshold float64
}

// DefaultParams are the parameters used when nothing else is configured.
var DefaultParams = Params{
	Region:    DefaultRegion,
	MaxIter:   16,
	Threshold: 2,
}

func (p Params) Validate() error {
	if err := p.Region.Validate(); err != nil {
		return errors.Trace(err)
	}

	if p.MaxIter < 1 {
		return errors.Errorf("max_iter must be positive, got %d", p.MaxIter)
	}

	if !(p.Threshold > 0) {
		return errors.Errorf("threshold must be positive, got %g", p.Threshold)
	}

	return nil
}

// Complex is a point of the complex plane. The builtin complex128 isn't
// used since its multiplication may be fused differently depending on the
// target, and the images must not depend on that.
type Complex struct {
	Re, Im float64
}

// Mul returns z*w.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: float64(z.Re*w.Re) - float64(z.Im*w.Im),
		Im: float64(z.Re*w.Im) + float64(z.Im*w.Re),
	}
}

// Add returns z+w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re + w.Re, Im: z.Im + w.Im}
}

// AbsSq returns the squared magnitude of z.
func (z Complex) AbsSq() float64 {
	return float64(z.Re*z.Re) + float64(z.Im*z.Im)
}

// PointToComplex maps pixel (k, l) of a w by h image to the region: column
// 0 is ReMin and column w-1 is ReMax, row 0 is ImMax and row h-1 is ImMin.
//
// Precondition: w >= 2, h >= 2, k < w, l < h.
func PointToComplex(k, l, w, h int, r Region) Complex {
	re := r.ReMin + float64(float64(k)*(r.ReMax-r.ReMin))/float64(w-1)
	im := r.ImMin + float64(float64(h-1-l)*(r.ImMax-r.ImMin))/float64(h-1)
	return Complex{Re: re, Im: im}
}

// InSet returns whether c stays within the threshold for p.MaxIter
// iterations of z = z*z + c, starting with z = c.
func InSet(c Complex, p Params) bool {
	limit := p.Threshold * p.Threshold

	z := c
	for i := 0; i < p.MaxIter; i++ {
		if z.AbsSq() > limit {
			return false
		}

		z = z.Mul(z).Add(c)
	}

	return true
}
