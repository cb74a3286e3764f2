// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dataModules returns the number of non-function modules of f.
func dataModules(f *Frame) int {
	n := 0
	for _, row := range f.Cells {
		for _, c := range row {
			if !c.Function {
				n++
			}
		}
	}
	return n
}

func TestTemplateDataModules(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		f, err := BuildTemplate(v)
		require.NoError(t, err)
		assert.Equal(t, v.Width(), f.Size)
		assert.Equal(t, v.TotalCodewords()*8+v.RemainderBits(), dataModules(f),
			"version %d", v)
	}
}

func TestTemplateVersion1(t *testing.T) {
	f, err := BuildTemplate(1)
	require.NoError(t, err)
	siz := f.Size
	assert.Equal(t, 21, siz)

	// Finder patterns: dark ring, light ring, dark core; light separator.
	for _, o := range [][2]int{{0, 0}, {siz - 7, 0}, {0, siz - 7}} {
		x, y := o[0], o[1]
		assert.True(t, f.Dark(x, y))
		assert.True(t, f.Dark(x+6, y+6))
		assert.False(t, f.Dark(x+1, y+1))
		assert.True(t, f.Dark(x+2, y+2))
		assert.True(t, f.Dark(x+3, y+3))
		assert.True(t, f.Dark(x+4, y+4))
		assert.False(t, f.Dark(x+5, y+5))
	}
	assert.False(t, f.Dark(7, 7))
	assert.True(t, f.Cells[7][7].Function)
	assert.False(t, f.Dark(siz-8, 0))
	assert.False(t, f.Dark(0, siz-8))

	// Timing patterns.
	for i := 8; i < siz-8; i++ {
		assert.Equal(t, i%2 == 0, f.Dark(i, 6), "x=%d", i)
		assert.Equal(t, i%2 == 0, f.Dark(6, i), "y=%d", i)
	}

	// Dark module and reserved format areas.
	assert.True(t, f.Dark(8, siz-8))
	assert.True(t, f.Cells[8][0].Function)
	assert.True(t, f.Cells[0][8].Function)
	assert.True(t, f.Cells[8][siz-1].Function)
	assert.True(t, f.Cells[siz-1][8].Function)
	assert.False(t, f.Cells[9][9].Function)

	// Outside the frame.
	assert.False(t, f.Dark(-1, 0))
	assert.False(t, f.Dark(0, siz))
}

func TestTemplateAlignment(t *testing.T) {
	f, err := BuildTemplate(7)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 22, 38}, Version(7).AlignmentCoords())
	for _, c := range [][2]int{{22, 22}, {6, 22}, {22, 6}, {38, 38}, {22, 38}} {
		x, y := c[0], c[1]
		assert.True(t, f.Dark(x, y), "%v", c)
		assert.False(t, f.Dark(x+1, y), "%v", c)
		assert.True(t, f.Dark(x+2, y+2), "%v", c)
	}
	assert.Nil(t, Version(1).AlignmentCoords())
	assert.Equal(t, []int{6, 18}, Version(2).AlignmentCoords())
	assert.Equal(t, []int{6, 30, 58, 86, 114, 142, 170}, Version(40).AlignmentCoords())
}

func TestTemplateVersionInfo(t *testing.T) {
	for _, v := range []Version{6, 7, 21, 40} {
		f, err := BuildTemplate(v)
		require.NoError(t, err)
		siz := f.Size
		var top, left uint32
		for i := 0; i < 18; i++ {
			a, b := siz-11+i%3, i/3
			if f.Dark(a, b) {
				top |= 1 << i
			}
			if f.Dark(b, a) {
				left |= 1 << i
			}
		}
		if v < 7 {
			assert.Zero(t, v.Pattern())
			continue
		}
		assert.Equal(t, v.Pattern(), top, "version %d", v)
		assert.Equal(t, v.Pattern(), left, "version %d", v)
		assert.Equal(t, uint32(v), v.Pattern()>>12)
	}
	assert.Equal(t, uint32(0x07c94), Version(7).Pattern())
}

func TestBuildTemplateInvalid(t *testing.T) {
	_, err := BuildTemplate(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Template(41, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestFill(t *testing.T) {
	f, err := BuildTemplate(1)
	require.NoError(t, err)
	raw := make([]byte, Version(1).TotalCodewords())
	raw[0] = 0b10100000
	require.NoError(t, f.Fill(raw))

	// The first codeword starts in the bottom right corner, going up
	// two columns at a time.
	siz := f.Size
	assert.True(t, f.Dark(siz-1, siz-1))
	assert.False(t, f.Dark(siz-2, siz-1))
	assert.True(t, f.Dark(siz-1, siz-2))
	assert.False(t, f.Dark(siz-2, siz-2))

	// All ones fill every data module.
	for i := range raw {
		raw[i] = 0xff
	}
	require.NoError(t, f.Fill(raw))
	dark := 0
	for _, row := range f.Cells {
		for _, c := range row {
			if !c.Function && c.Dark {
				dark++
			}
		}
	}
	assert.Equal(t, len(raw)*8, dark)

	assert.ErrorIs(t, f.Fill(raw[1:]), ErrInternal)
}

func TestFillRemainderBits(t *testing.T) {
	f, err := BuildTemplate(2)
	require.NoError(t, err)
	raw := make([]byte, Version(2).TotalCodewords())
	for i := range raw {
		raw[i] = 0xff
	}
	require.NoError(t, f.Fill(raw))
	light := 0
	for _, row := range f.Cells {
		for _, c := range row {
			if !c.Function && !c.Dark {
				light++
			}
		}
	}
	assert.Equal(t, Version(2).RemainderBits(), light)
}

func TestTemplateStore(t *testing.T) {
	store := NewMemoryStore()
	a, err := Template(5, store)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	// Modifying a returned frame does not affect the stored one.
	a.Cells[0][0].Dark = false
	b, err := Template(5, store)
	require.NoError(t, err)
	assert.True(t, b.Dark(0, 0))
	assert.Equal(t, 1, store.Len())

	want, err := BuildTemplate(5)
	require.NoError(t, err)
	assert.Equal(t, want, b)

	c, err := Template(5, nil)
	require.NoError(t, err)
	assert.Equal(t, want, c)
}

func TestTemplateStoreConcurrent(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(v Version) {
			defer wg.Done()
			f, err := Template(v, store)
			assert.NoError(t, err)
			assert.Equal(t, v.Width(), f.Size)
		}(Version(i%4 + 1))
	}
	wg.Wait()
	assert.Equal(t, 4, store.Len())
}

func TestClone(t *testing.T) {
	f, err := BuildTemplate(1)
	require.NoError(t, err)
	g := f.Clone()
	assert.Equal(t, f, g)
	g.Cells[10][10].Dark = true
	assert.False(t, f.Cells[10][10].Dark)

	m := f.Modules()
	require.Len(t, m, 21)
	assert.True(t, m[0][0])
	assert.False(t, m[1][1])
}
