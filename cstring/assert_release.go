//go:build !cstring_debug

package cstring

const debugChecks = false
