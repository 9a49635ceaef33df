package cstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutUint(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want string
	}{
		{"Zero", 0, "0"},
		{"Single digit", 7, "7"},
		{"Ten", 10, "10"},
		{"Regular", 1234, "1234"},
		{"Power of ten", 1000000, "1000000"},
		{"Max uint32", 4294967295, "4294967295"},
		{"Max uint64", 18446744073709551615, "18446744073709551615"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf [MaxUintDigits + 1]byte
			end, err := PutUint(buf[:], tt.n)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), end)
			assert.Equal(t, tt.want, string(buf[:end]))
			assert.Equal(t, byte(0), buf[end])
		})
	}
}

func TestPutUintExactFit(t *testing.T) {
	buf := []byte{'x', 'x', 'x', 'x', 'x', 'x'}
	end, err := PutUint(buf[:5], 1234)
	require.NoError(t, err)
	assert.Equal(t, 4, end)
	assert.Equal(t, "1234\x00x", string(buf))
}

func TestPutUintNoRoom(t *testing.T) {
	tests := []struct {
		name string
		size int
		n    uint64
	}{
		{"Empty dst, zero", 0, 0},
		{"No room for terminator, zero", 1, 0},
		{"No room for terminator", 4, 1234},
		{"No room for digits", 2, 1234},
		{"Max uint64", MaxUintDigits, 18446744073709551615},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The extra element after dst must survive.
			buf := make([]byte, tt.size+1)
			for i := range buf {
				buf[i] = 'x'
			}

			_, err := PutUint(buf[:tt.size], tt.n)
			assert.True(t, IsCapacityExceeded(err))
			for i, c := range buf {
				assert.Equal(t, byte('x'), c, "element #%d", i)
			}
		})
	}
}

func TestPutUintWide(t *testing.T) {
	buf := make([]rune, 8)
	end, err := PutUint(buf, 90210)
	require.NoError(t, err)
	assert.Equal(t, "90210", string(buf[:end]))
}
