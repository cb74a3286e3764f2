// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over Galois fields GF(2^m),
// m <= 8, and systematic Reed-Solomon encoding over them.
package gf256 // import "github.com/unixdj/qrenc/gf256"

import (
	"errors"
	"fmt"
)

// ErrParams is returned for invalid field or code parameters.
var ErrParams = errors.New("gf256: invalid parameters")

// ParamError describes an invalid parameter.
type ParamError struct {
	Name  string
	Value int
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("gf256: invalid %s %d", e.Name, e.Value)
}

func (e *ParamError) Unwrap() error { return ErrParams }

// A Field represents an instance of GF(2^m) defined by a specific
// polynomial.
type Field struct {
	m   uint   // bits per symbol
	nn  int    // 2^m - 1
	exp []byte // exp[i] = α^i, doubled to avoid reduction
	log []int  // log[x] = i where α^i = x; log[0] = -1
}

// NewField returns a new field of 2^m elements with the given
// irreducible polynomial and generator α.  NewField returns an
// error if the polynomial is not primitive with respect to α.
func NewField(m, poly, alpha int) (*Field, error) {
	if m < 1 || m > 8 {
		return nil, &ParamError{"symbol size", m}
	}
	size := 1 << m
	if poly < size || poly >= size<<1 {
		return nil, &ParamError{"field polynomial", poly}
	}
	if alpha < 2 || alpha >= size {
		return nil, &ParamError{"generator", alpha}
	}
	nn := size - 1
	f := &Field{
		m:   uint(m),
		nn:  nn,
		exp: make([]byte, nn*2),
		log: make([]int, size),
	}
	for i := range f.log {
		f.log[i] = -1
	}
	x := 1
	for i := 0; i < nn; i++ {
		if f.log[x] != -1 {
			return nil, &ParamError{"field polynomial", poly}
		}
		f.exp[i] = byte(x)
		f.exp[i+nn] = byte(x)
		f.log[x] = i
		x = mulSlow(x, alpha, poly, size)
	}
	if x != 1 {
		return nil, &ParamError{"field polynomial", poly}
	}
	return f, nil
}

// mulSlow returns x*y in the field defined by poly, without tables.
func mulSlow(x, y, poly, size int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&size != 0 {
			y ^= poly
		}
	}
	return z
}

// Size returns the number of non-zero elements in f, 2^m - 1.
func (f *Field) Size() int { return f.nn }

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%f.nn]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if int(x) > f.nn {
		return -1
	}
	return f.log[x]
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte { return x ^ y }

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[f.log[x]+f.log[y]]
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[f.nn-f.log[x]]
}

// Eval evaluates the polynomial p, coefficients highest degree first,
// at x.
func (f *Field) Eval(p []byte, x byte) byte {
	var y byte
	for _, c := range p {
		y = f.Mul(y, x) ^ c
	}
	return y
}
