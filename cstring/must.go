package cstring

// Must returns b if err is nil, and panics otherwise. It is meant for
// package-level variables, so that a buffer which can't be built stops the
// program during initialization instead of being silently wrong:
//
//	var greeting = cstring.Must(cstring.FromString(16, "hello"))
func Must[T Char](b *Buffer[T], err error) *Buffer[T] {
	if err != nil {
		panic(err)
	}

	return b
}
