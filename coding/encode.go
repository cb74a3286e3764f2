// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"go.uber.org/zap"

	"github.com/unixdj/qrenc/gf256"
)

// Options configures Encode.  The zero value, as well as a nil
// *Options, selects the mask with the lowest penalty out of all eight,
// uses no caches and does not log.
type Options struct {
	Mask       MaskOptions
	Templates  TemplateStore // frame template cache, may be nil
	Generators *gf256.Cache  // Reed-Solomon generator cache, may be nil
	Logger     *zap.Logger   // nil means no logging
}

func (o *Options) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// A Code is an encoded QR code.
type Code struct {
	Version Version
	Level   Level
	Mask    int    // mask pattern
	Penalty int    // penalty of the chosen mask
	Frame   *Frame // masked frame
}

// Size returns the number of modules on a side.
func (c *Code) Size() int { return c.Frame.Size }

// Black reports whether the module at x, y is dark.  Modules outside
// the code are light.
func (c *Code) Black(x, y int) bool { return c.Frame.Dark(x, y) }

// Modules returns the module colours, true for dark, indexed [y][x].
func (c *Code) Modules() [][]bool { return c.Frame.Modules() }

// Encode encodes segs into a QR code of version v and level l.
func Encode(v Version, l Level, opts *Options, segs ...Segment) (*Code, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	if err := l.check(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}
	log := opts.logger()

	b, err := EncodeSegments(v, segs...)
	if err != nil {
		return nil, err
	}
	n := b.Len()
	if b, err = b.Pad(v, l); err != nil {
		return nil, err
	}
	_, raw, err := ECC(b.Bytes(), v.Blocks(l), opts.Generators)
	if err != nil {
		return nil, err
	}
	log.Debug("codewords",
		zap.Stringer("version", v), zap.Stringer("level", l),
		zap.Int("segments", len(segs)), zap.Int("bits", n),
		zap.Int("capacity", v.DataBits(l)), zap.Int("codewords", len(raw)))

	f, err := Template(v, opts.Templates)
	if err != nil {
		return nil, err
	}
	if err := f.Fill(raw); err != nil {
		return nil, err
	}

	mo := opts.Mask
	if mo.Logger == nil {
		mo.Logger = log
	}
	f, mask, pen, err := SelectMask(f, l, mo)
	if err != nil {
		return nil, err
	}
	return &Code{Version: v, Level: l, Mask: mask, Penalty: pen, Frame: f}, nil
}
