//go:build !darwin && !linux && !windows && cgo

package clipboard

import (
	"github.com/juju/errors"
)

var initErr = errors.New("clipboard is only supported on Linux, MacOS and Windows")

func InitErr() error {
	return initErr
}

// WriteText is a wrapper around clipboard.Write with FmtText; it exists so
// that we can avoid compiling it on unsupported platforms (e.g. FreeBSD) and
// still have mandelpbm working (without clipboard support).
func WriteText(value []byte) {
	// no-op
}
