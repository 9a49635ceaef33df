package cstring

// MaxUintDigits is the number of decimal digits of the largest uint64.
const MaxUintDigits = 20

// PutUint writes the decimal digits of n to dst, followed by a zero
// terminator, and returns the index one past the last digit.
//
// The digits and the terminator must fit in dst; otherwise, dst is not
// touched and an ErrCapacityExceeded error is returned.
func PutUint[T Char](dst []T, n uint64) (end int, err error) {
	numDigits := 1
	for v := n / 10; v != 0; v /= 10 {
		numDigits++
	}

	if numDigits+1 > len(dst) {
		return 0, capacityErrorf("format", numDigits+1, len(dst))
	}

	// Digits go back-to-front, so the length must be known upfront.
	for i := numDigits - 1; i >= 0; i-- {
		dst[i] = T('0' + n%10)
		n /= 10
	}
	dst[numDigits] = 0

	return numDigits, nil
}
