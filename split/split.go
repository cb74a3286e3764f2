// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments.
*/
package split // import "github.com/unixdj/qrenc/split"

import (
	"fmt"
	"slices"

	"github.com/unixdj/qrenc/coding"
)

/*
Splitting.

The string is scanned once, determining the modes in which each
character is encodable.

The encoded length of a segment grows with each character by an amount
that depends only on the mode and on the number of characters already
in the segment modulo the grouping period of the mode: 3 for numeric,
2 for alphanumeric, 1 otherwise.  A state is a mode and such a
residue.

An optimal split is calculated by walking the characters forwards.  For
each character n and each state s, the cheapest encoding of the string
up to n ending in s is kept.  It either extends the segment of a state
of character n-1 in the same mode, or starts a new segment after the
cheapest state of character n-1 in another mode.  Extending is
preferred on ties.

When the end of the string is reached, the cheapest state describes an
optimal split, and its chain is walked backwards to cut the string.

Segments longer than the count field allows are encoded as several.
The walk disregards this, as no such segment fits in a symbol of the
size class it is split for, but the returned length accounts for it.
*/

const numStates = 7

var (
	period    = [4]int{3, 2, 1, 1}                  // grouping period by mode
	stateBase = [4]int{0, 3, 5, 6}                  // first state by mode
	stateMode = [numStates]int{0, 0, 0, 1, 1, 2, 3} // mode by state
)

type (
	// unit describes a classified character.
	unit struct {
		len   int  // length in bytes
		modes byte // mode bits
	}

	// step describes the cheapest way to reach a state.
	step struct {
		bits  int  // total encoded length, or -1 if unreachable
		prev  int8 // state at the previous character, or -1
		start bool // a segment starts at this character
	}

	// splitter calculates splits of a string.
	splitter struct {
		s     string
		units []unit
		modes modeList
		tab   [][numStates]step
	}
)

// newSplitter classifies the characters of s.  If fnc1 is set, FNC1
// separators not following another are alphanumeric and percent signs
// are not.
func newSplitter(s string, h Hint, fnc1 bool) (*splitter, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty text", coding.ErrMalformedSegment)
	}
	classify, list, err := h.charset()
	if err != nil {
		return nil, err
	}
	if fnc1 {
		list[1] = coding.FNC1Alpha
	}
	units := make([]unit, 0, len(s))
	for i, sz := 0, 0; i < len(s); i += sz {
		var m byte
		if m, sz = classify(s[i:]); m == 0 {
			return nil, fmt.Errorf("%w: character %q at offset %d not encodable with hint %s",
				coding.ErrMalformedSegment, s[i:i+sz], i, h)
		}
		if fnc1 && sz == 1 && h != ByteOnly {
			switch s[i] {
			case coding.GS:
				if i == 0 || s[i-1] != coding.GS {
					m |= alphaMode
				}
			case '%':
				m &^= alphaMode
			}
		}
		units = append(units, unit{len: sz, modes: m})
	}
	return &splitter{
		s:     s,
		units: units,
		modes: list,
		tab:   make([][numStates]step, len(units)),
	}, nil
}

func (t *step) update(bits, prev int, start bool) {
	if t.bits < 0 || bits < t.bits {
		*t = step{bits: bits, prev: int8(prev), start: start}
	}
}

// walk fills s.tab for the given version size class.
func (s *splitter) walk(class int) {
	for i, u := range s.units {
		cur := &s.tab[i]
		for st := range cur {
			cur[st] = step{bits: -1, prev: -1}
		}
		for j, m := range s.modes {
			if u.modes&(1<<j) == 0 {
				continue
			}
			w := chars(m, u.len, 1)
			p := period[j]
			to := stateBase[j] + w%p
			if i == 0 {
				cur[to].update(m.Length(w, class), -1, true)
				continue
			}
			last := &s.tab[i-1]
			for r := 0; r < p; r++ {
				from := stateBase[j] + r
				if last[from].bits >= 0 {
					cur[stateBase[j]+(r+w)%p].update(last[from].bits+
						m.Length(r+w, class)-m.Length(r, class), from, false)
				}
			}
			hdr := m.Length(w, class)
			for from, f := range last {
				if f.bits >= 0 && stateMode[from] != j {
					cur[to].update(f.bits+hdr, from, true)
				}
			}
		}
	}
}

// split returns an optimal split for the given version size class and
// its encoded length in bits.
func (s *splitter) split(class int) ([]coding.Segment, int) {
	s.walk(class)
	n := len(s.units)
	st := -1
	for i, t := range s.tab[n-1] {
		if t.bits >= 0 && (st < 0 || t.bits < s.tab[n-1][st].bits) {
			st = i
		}
	}
	var segs []coding.Segment
	bits := 0
	end, off, nr := len(s.s), len(s.s), 0
	for i := n - 1; i >= 0; i-- {
		t := s.tab[i][st]
		off -= s.units[i].len
		nr++
		if t.start {
			m := s.modes[stateMode[st]]
			segs = append(segs, coding.Segment{Text: s.s[off:end], Mode: m})
			bits += m.Length(chars(m, end-off, nr), class)
			end, nr = off, 0
		}
		st = int(t.prev)
	}
	slices.Reverse(segs)
	return segs, bits
}

// Split returns segments and the minimum QR code version no smaller
// than from for text at the given error correction level.
func Split(text string, hint Hint, level coding.Level, from coding.Version) ([]coding.Segment, coding.Version, error) {
	return SplitWith(nil, text, hint, level, from)
}

// SplitWith is like Split but prepends head, a list of segments in
// raw modes, such as ECI and Structured Append, to the result.
func SplitWith(head []coding.Segment, text string, hint Hint, level coding.Level, from coding.Version) ([]coding.Segment, coding.Version, error) {
	if !level.Valid() {
		return nil, 0, &coding.ParamError{Name: "level", Value: int(level)}
	}
	if !from.Valid() {
		return nil, 0, &coding.ParamError{Name: "version", Value: int(from)}
	}
	hbits, fnc1 := 0, false
	for _, seg := range head {
		if !seg.Mode.Raw() || !seg.Valid() {
			return nil, 0, coding.SegmentError(seg)
		}
		hbits += seg.EncodedLength(coding.Class0)
		fnc1 = fnc1 || seg.Mode.FNC1()
	}
	sp, err := newSplitter(text, hint, fnc1)
	if err != nil {
		return nil, 0, err
	}

	// Split for the size class of from.  If the minimum version for
	// the result is in a larger size class, length fields grow and
	// the split may change, so resplit for that class.  Classes only
	// grow, hence the loop ends.
	class := from.SizeClass()
	start := from
	for {
		segs, bits := sp.split(class)
		v, err := coding.MinimumVersion(hbits+bits, level, start)
		switch {
		case err != nil && class == coding.Class2:
			return nil, 0, err
		case err != nil:
			// Fewer chunk headers in larger classes may fit.
			class++
		case v.SizeClass() == class:
			return append(head[:len(head):len(head)], segs...), v, nil
		default:
			class = v.SizeClass()
		}
		start = max(from, coding.ClassMax(class-1)+1)
	}
}
