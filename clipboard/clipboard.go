//go:build (darwin || linux || windows) && cgo

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

var initOnce sync.Once
var initErr error

// InitErr initializes the clipboard on the first call, and returns the
// initialization error, if any. Other functions are no-ops if it's not nil.
func InitErr() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})

	return initErr
}

// WriteText puts value to the clipboard as text.
func WriteText(value []byte) {
	if InitErr() != nil {
		return
	}

	clipboard.Write(clipboard.FmtText, value)
}
