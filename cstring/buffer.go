// Package cstring implements a fixed-capacity, always null-terminated
// character buffer.
//
// The storage of a Buffer is allocated once, when the buffer is created (or
// supplied by the caller, see Wrap), and never grows. Every operation is
// bounded by the amount of data it moves, and every operation which could
// exceed the capacity checks that first and leaves the buffer unmodified on
// failure, so a result is either a complete success or an error with the
// prior contents intact.
package cstring

import (
	"fmt"
	"iter"
	"strings"

	"github.com/juju/errors"
)

// Char is the set of element types a Buffer can hold. The zero value of the
// element type is the terminator.
type Char interface {
	~uint8 | ~uint16 | ~int32 | ~uint32
}

// Buffer holds up to Cap() elements of type T followed by a zero
// terminator. The terminator is always present at index Len().
//
// The zero value is an empty buffer with capacity 0. A Buffer must not be
// copied by value; use Clone or Assign instead.
type Buffer[T Char] struct {
	size int

	// storage has Cap()+1 elements, the extra one being for the terminator
	// when the buffer is full. It is nil for the zero value.
	storage []T
}

// String is a Buffer of bytes, the most common instantiation.
type String = Buffer[byte]

// New creates an empty buffer which can hold up to capacity elements.
// A negative capacity is a programming error and causes a panic.
func New[T Char](capacity int) *Buffer[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("cstring: negative capacity %d", capacity))
	}

	return &Buffer[T]{
		storage: make([]T, capacity+1),
	}
}

// Wrap creates an empty buffer on top of the given storage, without
// allocating any; the capacity is len(storage)-1. The caller must not use
// storage directly afterwards. Empty storage causes a panic, since there is
// no room even for the terminator.
func Wrap[T Char](storage []T) *Buffer[T] {
	if len(storage) == 0 {
		panic("cstring: storage must have room for the terminator")
	}

	storage[0] = 0
	return &Buffer[T]{
		storage: storage,
	}
}

// FromTerminated creates a buffer with the given capacity holding the
// elements of s up to (not including) its first zero element. If s has no
// zero element, all of s is used.
func FromTerminated[T Char](capacity int, s []T) (*Buffer[T], error) {
	n := termLen(s)
	if n > capacity {
		return nil, capacityErrorf("construct", n, capacity)
	}

	b := New[T](capacity)
	b.size = copy(b.storage, s[:n])
	return b, nil
}

// FromString creates a byte buffer with the given capacity holding s. As for
// FromTerminated, a NUL byte in s terminates it.
func FromString(capacity int, s string) (*String, error) {
	n := strings.IndexByte(s, 0)
	if n < 0 {
		n = len(s)
	}

	if n > capacity {
		return nil, capacityErrorf("construct", n, capacity)
	}

	b := New[byte](capacity)
	b.size = copy(b.storage, s[:n])
	return b, nil
}

// FromSlice creates a buffer with the given capacity holding exactly the
// elements of s, zero elements included. An empty s yields an empty buffer
// for any capacity, including zero.
func FromSlice[T Char](capacity int, s []T) (*Buffer[T], error) {
	if len(s) > capacity {
		return nil, capacityErrorf("construct", len(s), capacity)
	}

	b := New[T](capacity)
	b.size = copy(b.storage, s)
	return b, nil
}

// Clone returns a deep copy of the buffer, with the same capacity.
func (b *Buffer[T]) Clone() *Buffer[T] {
	if b.storage == nil {
		return &Buffer[T]{}
	}

	nb := &Buffer[T]{
		size:    b.size,
		storage: make([]T, len(b.storage)),
	}
	copy(nb.storage, b.storage[:b.size+1])
	return nb
}

// Assign makes b a copy of other. Both buffers must have the same capacity.
func (b *Buffer[T]) Assign(other *Buffer[T]) error {
	if b.Cap() != other.Cap() {
		return errors.Annotatef(
			ErrCapacityMismatch, "assigning capacity %d to capacity %d", other.Cap(), b.Cap(),
		)
	}

	if b.storage == nil {
		return nil
	}

	b.size = copy(b.storage, other.storage[:other.size])
	b.storage[b.size] = 0
	return nil
}

// MaxSize returns the maximum number of elements the buffer can hold. It is
// the same as Cap.
func (b *Buffer[T]) MaxSize() int {
	return b.Cap()
}

// Cap returns the maximum number of elements the buffer can hold.
func (b *Buffer[T]) Cap() int {
	if b.storage == nil {
		return 0
	}

	return len(b.storage) - 1
}

// Len returns the number of elements, not counting the terminator.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Data returns the elements including the terminator, i.e. a slice of
// Len()+1 elements whose last one is zero. The caller may modify the live
// elements but must not modify the terminator.
func (b *Buffer[T]) Data() []T {
	if b.storage == nil {
		return []T{0}
	}

	return b.storage[:b.size+1]
}

// Slice returns the live elements, without the terminator. It is empty iff
// the buffer is empty.
func (b *Buffer[T]) Slice() []T {
	return b.storage[:b.size]
}

// All returns an iterator over the index and value of each live element.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, c := range b.storage[:b.size] {
			if !yield(i, c) {
				return
			}
		}
	}
}

// At returns the i-th element; At(Len()) returns the terminator.
//
// Precondition: 0 <= i <= Len(). It is only checked in builds with the
// cstring_debug tag; otherwise, an index in (Len(), Cap()] returns an
// unspecified element.
func (b *Buffer[T]) At(i int) T {
	if debugChecks {
		checkIndex("At", i, b.size)
	}

	if b.storage == nil {
		return 0
	}

	return b.storage[i]
}

// Set sets the i-th element to x.
//
// Precondition: 0 <= i < Len(). Like for At, it is only checked in
// cstring_debug builds.
func (b *Buffer[T]) Set(i int, x T) {
	if debugChecks {
		checkIndex("Set", i, b.size-1)
	}

	b.storage[i] = x
}

// PushBack appends a single element. If the buffer is full, it is left
// unmodified and an ErrCapacityExceeded error is returned.
func (b *Buffer[T]) PushBack(x T) error {
	if b.size == b.Cap() {
		return capacityErrorf("push back", b.size+1, b.Cap())
	}

	b.storage[b.size] = x
	b.size++
	b.storage[b.size] = 0
	return nil
}

// PopBack removes the last element. If the buffer is empty, an
// ErrEmptyBuffer error is returned.
func (b *Buffer[T]) PopBack() error {
	if b.size == 0 {
		return ErrEmptyBuffer
	}

	b.size--
	b.storage[b.size] = 0
	return nil
}

// Append appends the elements of s up to its first zero element (or all of
// s if there is none). s may alias the buffer itself, e.g. b.Data().
func (b *Buffer[T]) Append(s []T) error {
	return b.appendN(s, termLen(s))
}

// AppendString appends the bytes of s up to its first NUL byte, if any.
func (b *Buffer[T]) AppendString(s string) error {
	n := strings.IndexByte(s, 0)
	if n < 0 {
		n = len(s)
	}

	if b.size+n > b.Cap() {
		return capacityErrorf("append", b.size+n, b.Cap())
	}

	if n == 0 {
		return nil
	}

	for i := 0; i < n; i++ {
		b.storage[b.size+i] = T(s[i])
	}
	b.size += n
	b.storage[b.size] = 0
	return nil
}

// AppendBuffer appends the contents of other, which may have a different
// capacity and may be b itself.
func (b *Buffer[T]) AppendBuffer(other *Buffer[T]) error {
	return b.appendN(other.storage, other.size)
}

// AppendUint appends the decimal text of n.
func (b *Buffer[T]) AppendUint(n uint64) error {
	var digits [MaxUintDigits + 1]T

	end, err := PutUint(digits[:], n)
	if err != nil {
		// Can't happen: digits is large enough for any uint64.
		panic(err)
	}

	return b.appendN(digits[:], end)
}

// appendN appends the first n elements of s. n is computed by the caller
// before anything is written, so s may alias b.storage.
func (b *Buffer[T]) appendN(s []T, n int) error {
	if b.size+n > b.Cap() {
		return capacityErrorf("append", b.size+n, b.Cap())
	}

	if n == 0 {
		return nil
	}

	b.size += copy(b.storage[b.size:], s[:n])
	b.storage[b.size] = 0
	return nil
}

// Clear makes the buffer empty.
func (b *Buffer[T]) Clear() {
	b.size = 0
	if b.storage != nil {
		b.storage[0] = 0
	}
}

// Equal returns whether both buffers hold the same elements; capacities may
// differ.
func (b *Buffer[T]) Equal(other *Buffer[T]) bool {
	if b.size != other.size {
		return false
	}

	for i := 0; i < b.size; i++ {
		if b.storage[i] != other.storage[i] {
			return false
		}
	}

	return true
}

// String returns the live elements as a Go string. Single-byte elements are
// copied as is; wider ones are treated as code points.
func (b *Buffer[T]) String() string {
	if isByteSized[T]() {
		var sb strings.Builder
		sb.Grow(b.size)
		for _, c := range b.storage[:b.size] {
			sb.WriteByte(byte(c))
		}
		return sb.String()
	}

	var sb strings.Builder
	for _, c := range b.storage[:b.size] {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// isByteSized returns whether T is an 8-bit type: converting 0x100 to it
// yields zero only then.
func isByteSized[T Char]() bool {
	v := uint32(0x100)
	return T(v) == 0
}

// termLen returns the index of the first zero element of s, or len(s).
func termLen[T Char](s []T) int {
	for i, c := range s {
		if c == 0 {
			return i
		}
	}

	return len(s)
}
