// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bitString returns the bits of b as a string of '0' and '1'.
func bitString(b Bits) string {
	var s strings.Builder
	for i := 0; i < b.Len(); i++ {
		s.WriteByte('0' + b.Bit(i))
	}
	return s.String()
}

func TestBitsAppend(t *testing.T) {
	var b Bits
	b = b.Append(0b101, 3)
	b = b.Append(0xff, 8)
	b = b.Append(0, 0)
	b = b.Append(0x1234, 13)
	assert.Equal(t, 24, b.Len())
	assert.Equal(t, "101"+"11111111"+"1001000110100", bitString(b))
	assert.Equal(t, []byte{0xbf, 0xf2, 0x34}, b.Bytes())
}

func TestBitsAppendPanics(t *testing.T) {
	assert.Panics(t, func() { Bits{}.Append(0, 33) })
	assert.Panics(t, func() { Bits{}.Append(1, 3).Bytes() })
}

func TestBitsConcat(t *testing.T) {
	a := Bits{}.Append(0b11, 2)
	c := Bits{}.Append(0xabc, 12).Append(0b1, 1)
	b := a.Concat(c)
	assert.Equal(t, 15, b.Len())
	assert.Equal(t, "11"+"101010111100"+"1", bitString(b))
}

func TestBitsAppendBytes(t *testing.T) {
	b := Bits{}.Append(0b1, 1).appendBytes("\x80\x01")
	assert.Equal(t, "1"+"10000000"+"00000001", bitString(b))
	b = Bits{}.appendBytes("AB")
	assert.Equal(t, []byte("AB"), b.Bytes())
}

func TestPad(t *testing.T) {
	// 1-M: 16 data codewords.
	b := Bits{}.Append(0b0010, 4)
	b, err := b.Pad(1, M)
	require.NoError(t, err)
	assert.Equal(t, 128, b.Len())
	want := []byte{0x20, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec,
		0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec}
	assert.Equal(t, want, b.Bytes())
}

func TestPadShortTerminator(t *testing.T) {
	// Two bits short of capacity: the terminator is truncated.
	n := Version(1).DataBits(H) - 2
	var b Bits
	for i := 0; i < n; i++ {
		b = b.Append(1, 1)
	}
	b, err := b.Pad(1, H)
	require.NoError(t, err)
	assert.Equal(t, Version(1).DataBits(H), b.Len())
	assert.Equal(t, byte(0), b.Bit(n))
	assert.Equal(t, byte(0), b.Bit(n+1))
}

func TestPadOverflow(t *testing.T) {
	var b Bits
	for i := 0; i < Version(1).DataCodewords(H)+1; i++ {
		b = b.Append(0x55, 8)
	}
	_, err := b.Pad(1, H)
	assert.ErrorIs(t, err, ErrDataTooLarge)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 80, ce.Bits)

	_, err = Bits{}.Pad(41, L)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
