package fractal

import (
	"bytes"
	"math"
	"strconv"

	"github.com/dimonomid/cexpr/cstring"
	"github.com/juju/errors"
)

// MaxHeaderLen is the capacity reserved for the PBM header "P1 <w> <h>\n":
// the 3 byte prefix, two decimal dimensions of up to 20 digits each, a
// space and a newline.
const MaxHeaderLen = 3 + cstring.MaxUintDigits + 1 + cstring.MaxUintDigits + 1

var (
	// ErrInvalidDimensions is returned for images narrower or lower than 2
	// pixels, which can't be mapped to a region.
	ErrInvalidDimensions = errors.New("width and height must be at least 2")

	// ErrTooLarge is returned when the image size doesn't fit in an int.
	ErrTooLarge = errors.New("image too large")
)

// Header returns the PBM header for a w by h image.
func Header(w, h uint64) (*cstring.String, error) {
	hdr := cstring.New[byte](MaxHeaderLen)

	// MaxHeaderLen is enough for any dimensions, so errors here mean a bug.
	if err := hdr.AppendString("P1 "); err != nil {
		return nil, errors.Trace(err)
	}
	if err := hdr.AppendUint(w); err != nil {
		return nil, errors.Trace(err)
	}
	if err := hdr.PushBack(' '); err != nil {
		return nil, errors.Trace(err)
	}
	if err := hdr.AppendUint(h); err != nil {
		return nil, errors.Trace(err)
	}
	if err := hdr.PushBack('\n'); err != nil {
		return nil, errors.Trace(err)
	}

	return hdr, nil
}

// Capacity returns the buffer capacity needed for a w by h image: one
// element per pixel, one newline per row and MaxHeaderLen for the header.
func Capacity(w, h int) (int, error) {
	if w < 0 || h < 0 {
		return 0, errors.Annotatef(ErrInvalidDimensions, "%dx%d", w, h)
	}

	if w == math.MaxInt || (h != 0 && w+1 > (math.MaxInt-MaxHeaderLen)/h) {
		return 0, errors.Annotatef(ErrTooLarge, "%dx%d", w, h)
	}

	return (w+1)*h + MaxHeaderLen, nil
}

// Render returns the w by h PBM image of the points of p.Region which are
// in the set according to p.
//
// Rows are emitted top to bottom, every row is w characters '1' (in the set)
// or '0' followed by a newline.
func Render(w, h int, p Params) (*cstring.String, error) {
	if w < 2 || h < 2 {
		return nil, errors.Annotatef(ErrInvalidDimensions, "%dx%d", w, h)
	}

	if err := p.Validate(); err != nil {
		return nil, errors.Annotatef(err, "invalid params")
	}

	capacity, err := Capacity(w, h)
	if err != nil {
		return nil, errors.Trace(err)
	}

	hdr, err := Header(uint64(w), uint64(h))
	if err != nil {
		return nil, errors.Annotatef(err, "building header")
	}

	img := cstring.New[byte](capacity)
	if err := img.AppendBuffer(hdr); err != nil {
		return nil, errors.Annotatef(err, "appending header")
	}

	for l := 0; l < h; l++ {
		for k := 0; k < w; k++ {
			px := byte('0')
			if InSet(PointToComplex(k, l, w, h, p.Region), p) {
				px = '1'
			}

			if err := img.PushBack(px); err != nil {
				return nil, errors.Annotatef(err, "pixel (%d, %d)", k, l)
			}
		}

		if err := img.PushBack('\n'); err != nil {
			return nil, errors.Annotatef(err, "end of row %d", l)
		}
	}

	return img, nil
}

// RenderDefault is Render with DefaultParams.
func RenderDefault(w, h int) (*cstring.String, error) {
	img, err := Render(w, h, DefaultParams)
	return img, errors.Trace(err)
}

// ImageStats summarizes a rendered image.
type ImageStats struct {
	Width, Height int

	// InSet is the number of '1' pixels.
	InSet int
}

// Coverage returns the share of pixels in the set, from 0 to 1.
func (s ImageStats) Coverage() float64 {
	total := s.Width * s.Height
	if total == 0 {
		return 0
	}

	return float64(s.InSet) / float64(total)
}

// Stats parses the dimensions from the header of img and counts its pixels
// in the set.
func Stats(img *cstring.String) (ImageStats, error) {
	var st ImageStats

	data := img.Slice()
	rest, ok := skipPrefix(data, "P1 ")
	if !ok {
		return st, errors.Errorf("not a P1 image")
	}

	var err error
	if st.Width, rest, err = parseDim(rest, ' '); err != nil {
		return st, errors.Annotatef(err, "parsing width")
	}
	if st.Height, rest, err = parseDim(rest, '\n'); err != nil {
		return st, errors.Annotatef(err, "parsing height")
	}

	if st.Width > len(rest) || st.Height > len(rest) || len(rest) != (st.Width+1)*st.Height {
		return st, errors.Errorf(
			"body has %d bytes, want %d for %dx%d", len(rest), (st.Width+1)*st.Height, st.Width, st.Height,
		)
	}

	for _, c := range rest {
		if c == '1' {
			st.InSet++
		}
	}

	return st, nil
}

func skipPrefix(s []byte, prefix string) ([]byte, bool) {
	if len(s) < len(prefix) || string(s[:len(prefix)]) != prefix {
		return s, false
	}

	return s[len(prefix):], true
}

// parseDim parses a decimal number up to the separator sep. Signs are not
// allowed.
func parseDim(s []byte, sep byte) (int, []byte, error) {
	idx := bytes.IndexByte(s, sep)
	if idx < 0 {
		return 0, s, errors.Errorf("missing %q", sep)
	}

	if idx == 0 || s[0] < '0' || s[0] > '9' {
		return 0, s, errors.Errorf("invalid number %q", s[:idx])
	}

	n, err := strconv.Atoi(string(s[:idx]))
	if err != nil {
		return 0, s, errors.Trace(err)
	}

	return n, s[idx+1:], nil
}
