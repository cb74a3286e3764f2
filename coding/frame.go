// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// A Cell is a module of a Frame.
type Cell struct {
	Function bool // part of a function pattern or reserved area
	Dark     bool
}

// A Frame is a square matrix of modules.  Cells are indexed [y][x],
// x growing rightwards and y downwards from the top left corner.
type Frame struct {
	Version Version
	Size    int
	Cells   [][]Cell
}

func newFrame(v Version) *Frame {
	siz := v.Width()
	f := &Frame{Version: v, Size: siz, Cells: make([][]Cell, siz)}
	buf := make([]Cell, siz*siz)
	for y := range f.Cells {
		f.Cells[y], buf = buf[:siz:siz], buf[siz:]
	}
	return f
}

// Clone returns a deep copy of f.
func (f *Frame) Clone() *Frame {
	g := newFrame(f.Version)
	for y, row := range f.Cells {
		copy(g.Cells[y], row)
	}
	return g
}

// Dark reports whether the module at x, y is dark.  Modules outside
// the frame are light.
func (f *Frame) Dark(x, y int) bool {
	return 0 <= x && x < f.Size && 0 <= y && y < f.Size && f.Cells[y][x].Dark
}

// Modules returns the module colours, true for dark, indexed [y][x].
func (f *Frame) Modules() [][]bool {
	m := make([][]bool, f.Size)
	buf := make([]bool, f.Size*f.Size)
	for y, row := range f.Cells {
		m[y], buf = buf[:f.Size:f.Size], buf[f.Size:]
		for x, c := range row {
			m[y][x] = c.Dark
		}
	}
	return m
}

// set sets a function module.
func (f *Frame) set(x, y int, dark bool) {
	f.Cells[y][x] = Cell{Function: true, Dark: dark}
}

// BuildTemplate returns a Frame of version v holding only function
// patterns: finder patterns with separators, timing patterns,
// alignment patterns, version information and the dark module.
// Format information areas are reserved and light.
func BuildTemplate(v Version) (*Frame, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	f := newFrame(v)
	siz := f.Size

	// Timing patterns, partly overwritten by finders.
	for i := 0; i < siz; i++ {
		f.set(6, i, i&1 == 0)
		f.set(i, 6, i&1 == 0)
	}

	f.finder(3, 3)
	f.finder(siz-4, 3)
	f.finder(3, siz-4)

	// Alignment patterns, skipping the finder corners.
	ac := v.AlignmentCoords()
	last := len(ac) - 1
	for i, y := range ac {
		for j, x := range ac {
			if i == 0 && j == 0 || i == 0 && j == last || i == last && j == 0 {
				continue
			}
			f.alignment(x, y)
		}
	}

	f.placeFormat(0)
	f.set(8, siz-8, true)

	if vp := v.Pattern(); vp != 0 {
		for i := 0; i < 18; i++ {
			dark := vp>>i&1 != 0
			a, b := siz-11+i%3, i/3
			f.set(a, b, dark)
			f.set(b, a, dark)
		}
	}
	return f, nil
}

// finder draws a finder pattern with its separator centred at x, y.
func (f *Frame) finder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= f.Size || yy < 0 || yy >= f.Size {
				continue
			}
			d := max(abs(dx), abs(dy))
			f.set(xx, yy, d != 2 && d != 4)
		}
	}
}

// alignment draws an alignment pattern centred at x, y.
func (f *Frame) alignment(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			f.set(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// placeFormat writes both copies of the 15 bit format information fb,
// least significant bit first.
func (f *Frame) placeFormat(fb uint16) {
	siz := f.Size
	bit := func(i int) bool { return fb>>i&1 != 0 }

	// Around the top left finder.
	for i := 0; i <= 5; i++ {
		f.set(8, i, bit(i))
	}
	f.set(8, 7, bit(6))
	f.set(8, 8, bit(7))
	f.set(7, 8, bit(8))
	for i := 9; i < 15; i++ {
		f.set(14-i, 8, bit(i))
	}

	// Split between the other two finders.
	for i := 0; i < 8; i++ {
		f.set(siz-1-i, 8, bit(i))
	}
	for i := 8; i < 15; i++ {
		f.set(8, siz-15+i, bit(i))
	}
}

// Fill places the raw codewords into the data modules of f in the
// zigzag order: two columns at a time from the right, alternating
// upwards and downwards, skipping the vertical timing column.  Each
// codeword is placed most significant bit first.  The remainder bits
// are left light.
func (f *Frame) Fill(raw []byte) error {
	if n := f.Version.TotalCodewords(); len(raw) != n {
		return InternalError(fmt.Sprintf(
			"have %d codewords for version %d, want %d", len(raw), f.Version, n))
	}
	siz := f.Size
	nbit := len(raw) * 8
	i, free := 0, 0
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		up := (right+1)&2 == 0
		for vert := 0; vert < siz; vert++ {
			y := vert
			if up {
				y = siz - 1 - vert
			}
			for x := right; x > right-2; x-- {
				c := &f.Cells[y][x]
				if c.Function {
					continue
				}
				free++
				c.Dark = i < nbit && raw[i>>3]>>(7&^i)&1 != 0
				i++
			}
		}
	}
	if free != nbit+f.Version.RemainderBits() {
		return InternalError(fmt.Sprintf(
			"version %d has %d data modules, want %d",
			f.Version, free, nbit+f.Version.RemainderBits()))
	}
	return nil
}
