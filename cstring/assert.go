package cstring

import "fmt"

// checkIndex panics unless 0 <= i <= max.
func checkIndex(op string, i, max int) {
	if i < 0 || i > max {
		panic(fmt.Sprintf("cstring: %s: index %d out of range [0, %d]", op, i, max))
	}
}
