// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrenc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

var (
	ErrArgs       = errors.New("qrenc: invalid arguments")
	ErrLargeImage = errors.New("qrenc: image too large")
)

const maxPixels = 1 << 28 // image pixels on a side

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *Code) isValid() bool {
	return c != nil && c.Size > 0 && len(c.Modules) == c.Size &&
		c.Scale > 0 && c.Border >= 0 &&
		(c.Palette == nil || c.Palette[0] != nil && c.Palette[1] != nil)
}

// pixels returns the number of image pixels on a side.
func (c *Code) pixels() (int, error) {
	if !c.isValid() {
		return 0, ErrArgs
	}
	n := c.Size + 2*c.Border
	if n > maxPixels/c.Scale {
		return 0, ErrLargeImage
	}
	return n * c.Scale, nil
}

// palette returns the background and foreground colours.
func (c *Code) palette() (bg, fg color.Color) {
	bg, fg = whiteColor, blackColor
	if c.Palette != nil {
		bg, fg = c.Palette[0], c.Palette[1]
	}
	if c.Reverse {
		bg, fg = fg, bg
	}
	return bg, fg
}

// Image returns an image displaying the code at c.Scale pixels per
// module, with a quiet zone of c.Border modules.
func (c *Code) Image() (*image.NRGBA, error) {
	px, err := c.pixels()
	if err != nil {
		return nil, err
	}
	n := c.Size + 2*c.Border
	bg, fg := c.palette()
	img := imaging.New(n, n, bg)
	for y, row := range c.Modules {
		for x, dark := range row {
			if dark {
				img.Set(x+c.Border, y+c.Border, fg)
			}
		}
	}
	if c.Scale == 1 {
		return img, nil
	}
	return imaging.Resize(img, px, px, imaging.NearestNeighbor), nil
}

// EncodeImage writes an image displaying the code to w in the given
// format.
func (c *Code) EncodeImage(w io.Writer, format imaging.Format) error {
	if w == nil {
		return ErrArgs
	}
	img, err := c.Image()
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, format,
		imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("qrenc: %s: %w", format, err)
	}
	return nil
}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error { return c.EncodeImage(w, imaging.PNG) }

// PNG returns a PNG image displaying the code, or nil on error.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if c.EncodePNG(&b) != nil {
		return nil
	}
	return b.Bytes()
}

// Bounds returns the bounds of the image of c.
func (c *Code) Bounds() image.Rectangle {
	px, err := c.pixels()
	if err != nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, px, px)
}
