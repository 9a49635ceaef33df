package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/dimonomid/cexpr/clipboard"
)

// These are being replaced with the actual values using ldflags, e.g.
// -ldflags "-X github.com/dimonomid/cexpr/version.version=v1.0.0".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Version returns the bare version string.
func Version() string {
	return version
}

// VersionFullDescr returns the full version description, printed at
// --version.
func VersionFullDescr() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("mandelpbm %s\n", version))
	sb.WriteString(fmt.Sprintf("Commit: %s\n", commit))
	sb.WriteString(fmt.Sprintf("Build time: %s\n", date))
	sb.WriteString(fmt.Sprintf("Built by: %s\n", builtBy))
	sb.WriteString(fmt.Sprintf("GOOS: %s\n", runtime.GOOS))
	if cgoEnabled {
		sb.WriteString("CGO: enabled\n")
	} else {
		sb.WriteString("CGO: disabled\n")
	}
	if err := clipboard.InitErr(); err == nil {
		sb.WriteString("Clipboard support: yes\n")
	} else {
		sb.WriteString(fmt.Sprintf("Clipboard support: no (%s)\n", err.Error()))
	}

	return sb.String()
}
