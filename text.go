// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrenc

import (
	"io"
	"strings"
)

// String returns the code drawn with UTF-8 block elements, two rows
// of modules per line, including the quiet zone.  Dark modules are
// drawn as spaces, for terminals with light text on a dark
// background, unless c.Reverse is set.
func (c *Code) String() string {
	if !c.isValid() {
		return ""
	}
	blocks := [4]string{"█", "▀", "▄", " "}
	if c.Reverse {
		blocks = [4]string{" ", "▄", "▀", "█"}
	}
	var b strings.Builder
	bord := c.Border
	b.Grow((c.Size + 2*bord) * ((c.Size+2*bord+1)/2*3 + 1))
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			n := 0
			if c.Black(x, y) {
				n = 2
			}
			if y+1 < c.Size+bord && c.Black(x, y+1) {
				n++
			}
			b.WriteString(blocks[n])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// EncodeASCII writes the code to w as text, two characters per module,
// "##" for dark and spaces for light, including the quiet zone.
func (c *Code) EncodeASCII(w io.Writer) error {
	if !c.isValid() || w == nil {
		return ErrArgs
	}
	dark, light := byte('#'), byte(' ')
	if c.Reverse {
		dark, light = light, dark
	}
	bord := c.Border
	pix := c.Size + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < c.Size+bord; y++ {
		for x := -bord; x < c.Size+bord; x++ {
			p := light
			if c.Black(x, y) {
				p = dark
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
