// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrenc

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  EncodePBM disregards c.Palette, as other PNM
// formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	length, err := c.pixels()
	if err != nil {
		return err
	}
	if w == nil {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	scale := c.Scale
	bord := c.Border
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	// In PBM 1 is black.
	var white byte
	if c.Reverse {
		white = 0xff
	}
	row := make([]byte, (length+7)/8)
	blank := func() {
		for i := range row {
			row[i] = white
		}
	}
	blank()
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	for _, mrow := range c.Modules {
		blank()
		pbmRow(row, mrow, scale, scale*bord)
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	blank()
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmRow inverts the pixels of dark modules in a PBM row of light
// pixels, starting at pixel off.
func pbmRow(row []byte, mrow []bool, scale, off int) {
	for _, dark := range mrow {
		if !dark {
			off += scale
			continue
		}
		for i := 0; i < scale; i++ {
			row[off>>3] ^= 0x80 >> (off & 7)
			off++
		}
	}
}
