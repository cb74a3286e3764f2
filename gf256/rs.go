// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import "sync"

// Params describes a Reed-Solomon code.
//
// The generator polynomial has NRoots consecutive roots
// α^(Prim*FCR), α^(Prim*(FCR+1)), ...  Pad is the number of leading
// symbols of the full-length code block that are implicitly zero, so
// a block carries at most 2^SymSize - 1 - NRoots - Pad data symbols.
type Params struct {
	SymSize int // bits per symbol
	Poly    int // field polynomial
	FCR     int // first consecutive root, index form
	Prim    int // primitive element, index form
	NRoots  int // number of generator roots = check symbols
	Pad     int // padding symbols
}

// QR returns the parameters of the QR code Reed-Solomon code with n
// check symbols for data blocks of length dlen.
func QR(n, dlen int) Params {
	return Params{
		SymSize: 8,
		Poly:    0x11d,
		FCR:     0,
		Prim:    1,
		NRoots:  n,
		Pad:     255 - dlen - n,
	}
}

// Validate reports whether p describes a valid code.
func (p Params) Validate() error {
	if p.SymSize < 1 || p.SymSize > 8 {
		return &ParamError{"symbol size", p.SymSize}
	}
	nn := 1<<p.SymSize - 1
	switch {
	case p.FCR < 0 || p.FCR > nn:
		return &ParamError{"first consecutive root", p.FCR}
	case p.Prim <= 0 || p.Prim > nn:
		return &ParamError{"primitive element", p.Prim}
	case p.NRoots < 0 || p.NRoots > nn:
		return &ParamError{"number of roots", p.NRoots}
	case p.Pad < 0 || p.Pad >= nn-p.NRoots:
		return &ParamError{"padding", p.Pad}
	}
	return nil
}

// DataLen returns the maximum number of data symbols in a block.
func (p Params) DataLen() int {
	return 1<<p.SymSize - 1 - p.NRoots - p.Pad
}

// A Generator computes Reed-Solomon check symbols.
type Generator struct {
	p    Params
	f    *Field
	poly []byte // generator coefficients, x^NRoots first
}

// NewGenerator returns a Generator for the code described by p.
func NewGenerator(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	f, err := NewField(p.SymSize, p.Poly, 2)
	if err != nil {
		return nil, err
	}
	// g(x) = Π (x - α^(Prim*(FCR+i))), built one root at a time.
	poly := make([]byte, 1, p.NRoots+1)
	poly[0] = 1
	for i := 0; i < p.NRoots; i++ {
		root := f.Exp(p.Prim * (p.FCR + i))
		poly = append(poly, 0)
		for j := len(poly) - 1; j > 0; j-- {
			poly[j] ^= f.Mul(poly[j-1], root)
		}
	}
	return &Generator{p: p, f: f, poly: poly}, nil
}

// Params returns the parameters of g.
func (g *Generator) Params() Params { return g.p }

// Field returns the field of g.
func (g *Generator) Field() *Field { return g.f }

// Poly returns a copy of the generator polynomial coefficients,
// highest degree first.  The polynomial is monic.
func (g *Generator) Poly() []byte {
	return append([]byte(nil), g.poly...)
}

// ECC writes the check symbols for data to check, which must hold
// NRoots bytes.  ECC panics if data is longer than the code allows.
func (g *Generator) ECC(data, check []byte) {
	n := g.p.NRoots
	if len(check) < n {
		panic("gf256: check buffer too short")
	}
	if len(data) > g.p.DataLen() {
		panic("gf256: data block too long")
	}
	check = check[:n]
	clear(check)
	if n == 0 {
		return
	}
	// Long division by g, remainder kept in check.
	gen := g.poly[1:]
	for _, b := range data {
		fb := b ^ check[0]
		copy(check, check[1:])
		check[n-1] = 0
		if fb != 0 {
			for i, c := range gen {
				check[i] ^= g.f.Mul(fb, c)
			}
		}
	}
}

// Remainder returns the remainder of the division of the polynomial
// msg, highest degree first, by g.  A codeword formed by data followed
// by its check symbols has an all-zero remainder.
func (g *Generator) Remainder(msg []byte) []byte {
	rem := append([]byte(nil), msg...)
	n := g.p.NRoots
	for i := 0; i+n < len(rem); i++ {
		fb := rem[i]
		if fb == 0 {
			continue
		}
		for j, c := range g.poly {
			rem[i+j] ^= g.f.Mul(fb, c)
		}
	}
	if len(rem) > n {
		rem = rem[len(rem)-n:]
	}
	return rem
}

// A Cache holds Generators keyed by their parameters.
// The zero value is an empty cache ready to use.  A nil *Cache is
// valid and creates a new Generator for every request.
type Cache struct {
	mu sync.Mutex
	m  map[Params]*Generator
}

// Generator returns the Generator for p, creating it if needed.
func (c *Cache) Generator(p Params) (*Generator, error) {
	if c == nil {
		return NewGenerator(p)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.m[p]; ok {
		return g, nil
	}
	g, err := NewGenerator(p)
	if err != nil {
		return nil, err
	}
	if c.m == nil {
		c.m = make(map[Params]*Generator)
	}
	c.m[p] = g
	return g, nil
}

// Len returns the number of cached Generators.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
