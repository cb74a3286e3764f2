// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// Bits is an append-only sequence of bits, most significant bit
// first.  Like slices, Bits values are extended with Append and
// Concat, which return the extended sequence and may reuse the
// underlying array.  A Bits value must not be extended more than once.
type Bits struct {
	b    []byte
	nbit int
}

// MakeBits returns empty Bits with room for n bytes.
func MakeBits(n int) Bits { return Bits{b: make([]byte, 0, n)} }

// Len returns the number of bits in b.
func (b Bits) Len() int { return b.nbit }

// Bytes returns the bytes of b.  Bytes panics if b is not byte aligned.
func (b Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qrenc: fractional byte")
	}
	return b.b
}

// Bit returns bit i of b as 0 or 1.
func (b Bits) Bit(i int) byte { return b.b[i>>3] >> (7 &^ i) & 1 }

// Append appends the nbit low bits of v to b, most significant first.
func (b Bits) Append(v uint32, nbit int) Bits {
	if nbit == 0 {
		return b
	}
	if nbit < 0 || nbit > 32 {
		panic(fmt.Sprintf("qrenc: cannot append %d bits", nbit))
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return b
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
	return b
}

// appendBytes appends whole bytes to b.
func (b Bits) appendBytes(s string) Bits {
	if b.nbit&7 == 0 {
		b.b = append(b.b, s...)
		b.nbit += len(s) * 8
		return b
	}
	for i := 0; i < len(s); i++ {
		b = b.Append(uint32(s[i]), 8)
	}
	return b
}

// Concat appends the bits of c to b.
func (b Bits) Concat(c Bits) Bits {
	n := c.nbit
	for _, v := range c.b {
		if n < 8 {
			return b.Append(uint32(v>>(8-n)), n)
		}
		b = b.Append(uint32(v), 8)
		n -= 8
	}
	return b
}

// Pad terminates b and pads it to the data capacity of a code of the
// given version and level.  Up to 4 zero terminator bits are added,
// then zero bits up to a byte boundary, then alternating 0xec and 0x11
// bytes.  Pad returns a CapacityError if b does not fit.
func (b Bits) Pad(v Version, l Level) (Bits, error) {
	if err := v.check(); err != nil {
		return Bits{}, err
	}
	if err := l.check(); err != nil {
		return Bits{}, err
	}
	n := v.DataBits(l)
	if b.nbit > n {
		return Bits{}, &CapacityError{b.nbit, v, l}
	}
	b = b.Append(0, min(4, n-b.nbit))
	b = b.Append(0, -b.nbit&7)
	for pad := uint32(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b = b.Append(pad, 8)
	}
	if b.nbit != n || len(b.b) != v.DataCodewords(l) {
		return Bits{}, InternalError(fmt.Sprintf(
			"padded stream has %d bits, want %d", b.nbit, n))
	}
	return b, nil
}
