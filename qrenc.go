// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qrenc encodes QR codes.

Encode splits text into segments, chooses the smallest version holding
them at the requested error correction level, and returns the masked
module matrix.  The lower level packages are coding, which implements
the encoding pipeline, split, which splits text into segments, and
gf256, which implements Reed-Solomon coding.
*/
package qrenc // import "github.com/unixdj/qrenc"

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/unixdj/qrenc/coding"
	"github.com/unixdj/qrenc/gf256"
	"github.com/unixdj/qrenc/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// A Version is a QR version from 1 to 40.
type Version = coding.Version

// A Hint tells Encode how to interpret the input text.
type Hint = split.Hint

// Hints, see split.Hint.
const (
	Bytes     = split.Bytes
	ShiftJIS  = split.ShiftJIS
	UTF8Kanji = split.UTF8Kanji
	Latin1    = split.Latin1
	ByteOnly  = split.ByteOnly
)

// Errors.  All errors returned by Encode wrap one of these.
var (
	ErrInvalidParameter = coding.ErrInvalidParameter
	ErrDataTooLarge     = coding.ErrDataTooLarge
	ErrMalformedSegment = coding.ErrMalformedSegment
	ErrInternal         = coding.ErrInternal
)

// Extended Channel Interpretation assignment numbers.
const (
	Latin1ECI   = coding.Latin1ECI
	ShiftJISECI = coding.ShiftJISECI
	UTF8ECI     = coding.UTF8ECI
	BinaryECI   = coding.BinaryECI
)

// Options configures Encode.  A nil *Options is valid and equivalent
// to the zero value: the smallest fitting version, the best of all
// masks, byte, numeric and alphanumeric modes, no caches and no
// logging.
type Options struct {
	// Version is the minimum version, or 0 for version 1.  If
	// FixedVersion is set, Version is used as is and Encode fails
	// with ErrDataTooLarge if the data does not fit.
	Version      Version
	FixedVersion bool

	// Mask is the mask pattern used if ForceMask is set.
	Mask      int
	ForceMask bool

	// If Sample is between 1 and 7, only Sample masks chosen
	// pseudo-randomly using Seed are evaluated.
	Sample int
	Seed   uint64

	Hint Hint // input interpretation
	ECI  int  // if not 0, ECI assignment number of a leading ECI segment

	// GS1 marks the text as formatted per the GS1 General
	// Specifications (FNC1 in first position).  AppIndicator, a
	// letter or two digits, marks it as formatted per the industry
	// application it identifies (FNC1 in second position).  At most
	// one may be set.  Field separators are written as coding.GS.
	GS1          bool
	AppIndicator string

	Templates  coding.TemplateStore // frame template cache, may be nil
	Generators *gf256.Cache         // Reed-Solomon generator cache, may be nil
	Logger     *zap.Logger          // nil means no logging
}

func (o *Options) coding() *coding.Options {
	return &coding.Options{
		Mask: coding.MaskOptions{
			Mask:   o.Mask,
			Force:  o.ForceMask,
			Sample: o.Sample,
			Seed:   o.Seed,
		},
		Templates:  o.Templates,
		Generators: o.Generators,
		Logger:     o.Logger,
	}
}

// A Code is a square grid of modules.
// It implements image and text rendering.
type Code struct {
	Version Version
	Level   Level
	Mask    int      // mask pattern
	Size    int      // number of modules on a side
	Modules [][]bool // indexed [y][x], true is dark

	Scale   int             // image pixels per module, default 8
	Border  int             // quiet zone modules, default 4
	Reverse bool            // invert colours
	Palette *[2]color.Color // background and foreground, nil for white and black
}

// Black reports whether the module at x, y is dark.  Modules outside
// the code are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size && c.Modules[y][x]
}

// Encode returns an encoding of text at the given error correction
// level.
func Encode(text string, level Level, opts *Options) (*Code, error) {
	if opts == nil {
		opts = &Options{}
	}
	if !level.Valid() {
		return nil, &coding.ParamError{Name: "level", Value: int(level)}
	}
	from := opts.Version
	if from == 0 && !opts.FixedVersion {
		from = coding.MinVersion
	}
	if !from.Valid() {
		return nil, &coding.ParamError{Name: "version", Value: int(from)}
	}
	var head []coding.Segment
	if opts.ECI != 0 {
		seg, err := coding.ECISegment(opts.ECI)
		if err != nil {
			return nil, err
		}
		head = append(head, seg)
	}
	switch {
	case opts.GS1 && opts.AppIndicator != "":
		return nil, &coding.ParamError{Name: "fnc1 modes", Value: 2}
	case opts.GS1:
		head = append(head, coding.FNC1FirstSegment)
	case opts.AppIndicator != "":
		seg, err := coding.FNC1SecondSegment(opts.AppIndicator)
		if err != nil {
			return nil, err
		}
		head = append(head, seg)
	}
	segs, v, err := split.SplitWith(head, text, opts.Hint, level, from)
	if err != nil {
		return nil, err
	}
	if opts.FixedVersion && v != from {
		bits := 0
		for _, seg := range segs {
			bits += seg.EncodedLength(from.SizeClass())
		}
		return nil, &coding.CapacityError{Bits: bits, Version: from, Level: level}
	}
	if opts.Logger != nil {
		opts.Logger.Debug("split",
			zap.Int("bytes", len(text)), zap.Stringer("hint", opts.Hint),
			zap.Int("segments", len(segs)), zap.Stringer("version", v))
	}
	return EncodeSegments(v, level, opts, segs...)
}

// EncodeSegments returns an encoding of segs in a code of version v at
// the given error correction level.  opts.Version, opts.FixedVersion,
// opts.Hint, opts.ECI, opts.GS1 and opts.AppIndicator are ignored.
func EncodeSegments(v Version, level Level, opts *Options, segs ...coding.Segment) (*Code, error) {
	if opts == nil {
		opts = &Options{}
	}
	cc, err := coding.Encode(v, level, opts.coding(), segs...)
	if err != nil {
		return nil, err
	}
	return &Code{
		Version: cc.Version,
		Level:   cc.Level,
		Mask:    cc.Mask,
		Size:    cc.Size(),
		Modules: cc.Modules(),
		Scale:   8,
		Border:  4,
	}, nil
}
