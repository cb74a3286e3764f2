// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: capacity
// tables, segment bit streams, Reed-Solomon blocks, module placement
// and masking.
package coding // import "github.com/unixdj/qrenc/coding"

import (
	"errors"
	"fmt"
	"strconv"
)

// Error kinds.  Every error returned by the encoder wraps one of these.
var (
	// ErrInvalidParameter reports a version, level or mask out of range.
	ErrInvalidParameter = errors.New("qrenc: invalid parameter")

	// ErrDataTooLarge reports data exceeding the capacity of any
	// permitted version at the requested level.
	ErrDataTooLarge = errors.New("qrenc: data too large")

	// ErrMalformedSegment reports a segment not valid for its mode.
	ErrMalformedSegment = errors.New("qrenc: malformed segment")

	// ErrInternal reports a violated invariant inside the encoder.
	ErrInternal = errors.New("qrenc: internal consistency error")
)

// ParamError represents an out of range parameter.
type ParamError struct {
	Name  string
	Value int
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("qrenc: invalid %s %d", e.Name, e.Value)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// CapacityError represents data too long for a code.
type CapacityError struct {
	Bits    int     // encoded data length in bits
	Version Version // largest version tried
	Level   Level
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("qrenc: cannot encode %d bits into %d-%s code (%d bits)",
		e.Bits, e.Version, e.Level, e.Version.DataBits(e.Level))
}

func (e *CapacityError) Unwrap() error { return ErrDataTooLarge }

// InternalError represents a broken invariant in the pipeline.
type InternalError string

func (e InternalError) Error() string { return "qrenc: internal error: " + string(e) }

func (e InternalError) Unwrap() error { return ErrInternal }

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// Versions number from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Valid reports whether v is a QR version.
func (v Version) Valid() bool { return MinVersion <= v && v <= MaxVersion }

func (v Version) check() error {
	if !v.Valid() {
		return &ParamError{"version", int(v)}
	}
	return nil
}

// QR version size classes.  The length of character count fields
// depends on the size class.
const (
	Class0 = iota // versions 1 to 9
	Class1        // versions 10 to 26
	Class2        // versions 27 to 40
)

var classMax = [3]Version{9, 26, 40}

// SizeClass returns the size class of v.
func (v Version) SizeClass() int {
	switch {
	case v <= 9:
		return Class0
	case v <= 26:
		return Class1
	}
	return Class2
}

// ClassMax returns the largest version in size class c.
func ClassMax(c int) Version { return classMax[c] }

// Width returns the number of modules on a side.
func (v Version) Width() int { return int(v)*4 + 17 }

// TotalCodewords returns the number of data and check codewords.
func (v Version) TotalCodewords() int { return capacity[v].words }

// RemainderBits returns the number of modules left over after
// placing all codewords.
func (v Version) RemainderBits() int { return capacity[v].remainder }

// ECCodewords returns the number of check codewords at level l.
func (v Version) ECCodewords(l Level) int { return capacity[v].ec[l] }

// DataCodewords returns the number of data codewords at level l.
func (v Version) DataCodewords(l Level) int {
	return capacity[v].words - capacity[v].ec[l]
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataCodewords(l) * 8 }

// Pattern returns the 18 bit version information, or 0 for
// versions below 7.
func (v Version) Pattern() uint32 { return versionPattern[v] }

// AlignmentCoords returns the row and column coordinates of alignment
// pattern centres.  Patterns are placed at every combination of the
// coordinates except those overlapping finder patterns.
func (v Version) AlignmentCoords() []int {
	a := align[v]
	switch {
	case a[0] == 0:
		return nil
	case a[1] == 0:
		return []int{6, a[0]}
	}
	d := a[1] - a[0]
	n := (v.Width()-a[0])/d + 2
	c := make([]int, n)
	c[0] = 6
	for i := 1; i < n; i++ {
		c[i] = a[0] + (i-1)*d
	}
	return c
}

// A BlockSpec describes the Reed-Solomon block structure for a
// version and level.  Group 2 may be empty.
type BlockSpec struct {
	Count1, Data1 int // group 1: block count, data codewords per block
	Count2, Data2 int // group 2: block count, data codewords per block
	ECC           int // check codewords per block
}

// Blocks returns the number of blocks.
func (b BlockSpec) Blocks() int { return b.Count1 + b.Count2 }

// DataCodewords returns the total number of data codewords.
func (b BlockSpec) DataCodewords() int { return b.Count1*b.Data1 + b.Count2*b.Data2 }

// Blocks returns the block structure for level l.
func (v Version) Blocks(l Level) BlockSpec {
	bc := blocks[v][l]
	n := bc[0] + bc[1]
	b := BlockSpec{
		Count1: bc[0],
		Data1:  v.DataCodewords(l) / n,
		Count2: bc[1],
		ECC:    capacity[v].ec[l] / n,
	}
	if b.Count2 != 0 {
		b.Data2 = b.Data1 + 1
	}
	return b
}

// MinimumVersion returns the smallest version no smaller than from
// that holds bits data bits at level l.
func MinimumVersion(bits int, l Level, from Version) (Version, error) {
	if err := l.check(); err != nil {
		return 0, err
	}
	if err := from.check(); err != nil {
		return 0, err
	}
	for v := from; v <= MaxVersion; v++ {
		if v.DataBits(l) >= bits {
			return v, nil
		}
	}
	return 0, &CapacityError{bits, MaxVersion, l}
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Valid reports whether l is an error correction level.
func (l Level) Valid() bool { return L <= l && l <= H }

func (l Level) check() error {
	if !l.Valid() {
		return &ParamError{"level", int(l)}
	}
	return nil
}

// ParseLevel returns the Level named by s, one of "L", "M", "Q", "H",
// in either case.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "L", "l":
		return L, nil
	case "M", "m":
		return M, nil
	case "Q", "q":
		return Q, nil
	case "H", "h":
		return H, nil
	}
	return 0, fmt.Errorf("%w: level %q", ErrInvalidParameter, s)
}
