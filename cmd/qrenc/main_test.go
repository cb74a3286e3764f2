// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrenc"
)

func hello(t *testing.T) *qrenc.Code {
	t.Helper()
	c, err := qrenc.Encode("HELLO", qrenc.M, nil)
	require.NoError(t, err)
	return c
}

func TestEPS(t *testing.T) {
	c := hello(t)
	c.Scale = 2
	var b bytes.Buffer
	require.NoError(t, eps(c, &b))
	s := b.String()
	assert.True(t, strings.HasPrefix(s, "%!PS-Adobe-2.0 EPSF-2.0\n%%Creator: qrenc"))
	assert.True(t, strings.HasSuffix(s, "r\nstroke grestore\nend\n%%Trailer\n"))
	assert.Contains(t, s, "%%BoundingBox: ")
	assert.Equal(t, c.Size, strings.Count(s, " p r\n"))
	assert.NotContains(t, s, "setrgbcolor")

	c.Reverse = true
	b.Reset()
	require.NoError(t, eps(c, &b))
	assert.Contains(t, b.String(), "0 0 0 setrgbcolor")
}

func TestColour(t *testing.T) {
	defer func(set bool) { g.colSet = set }(g.colSet)
	for _, c := range []struct {
		in   string
		want rgba
		name string
	}{
		{"f00", rgba{0xff, 0x00, 0x00, 0xff}, "ff0000"},
		{"f008", rgba{0xff, 0x00, 0x00, 0x88}, "ff000088"},
		{"123456", rgba{0x12, 0x34, 0x56, 0xff}, "123456"},
		{"12345678", rgba{0x12, 0x34, 0x56, 0x78}, "12345678"},
		{"white", rgba{0xff, 0xff, 0xff, 0xff}, "white"},
		{"Navy", rgba{0x00, 0x00, 0x80, 0xff}, "000080"},
	} {
		var col rgba
		require.NoError(t, col.Set(c.in, nil), c.in)
		assert.Equal(t, c.want, col, c.in)
		assert.Equal(t, c.name, col.String(), c.in)
	}
	var col rgba
	for _, s := range []string{"", "12", "12345", "xyz", "notacolour"} {
		assert.Error(t, col.Set(s, nil), s)
	}
}

func TestRandr(t *testing.T) {
	defer func(cx int, inc [2]int) { g.cx, g.inc = cx, inc }(g.cx, g.inc)
	orig := hello(t)
	n := orig.Size

	g.cx, g.inc = 0, [2]int{1, 1}
	flip()
	c := randr(hello(t))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			require.Equal(t, orig.Black(n-1-x, y), c.Black(x, y), "flip %d,%d", x, y)
		}
	}

	g.cx, g.inc = 0, [2]int{1, 1}
	for i := 0; i < 4; i++ {
		rotate()
	}
	c = randr(hello(t))
	assert.Equal(t, orig.Modules, c.Modules)
}

func TestFormatFromFilename(t *testing.T) {
	for fn, want := range map[string]string{
		"a.png":  "png",
		"a.JPG":  "jpeg",
		"a.tif":  "tiff",
		"a.pbm":  "pbm",
		"a.EPS":  "eps",
		"a.txt":  "",
		"noext":  "",
		"a.gif":  "gif",
		"b.bmp":  "bmp",
		"c.jpeg": "jpeg",
	} {
		assert.Equal(t, want, formatFromFilename(fn), fn)
	}
}
