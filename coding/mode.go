// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// A Mode is a QR segment encoding mode.
type Mode int

// Encoding modes.
const (
	Numeric      Mode = iota // numeric mode, ASCII digits
	Alphanumeric             // alphanumeric mode, ASCII
	Byte                     // byte mode, any data
	Kanji                    // kanji mode, Shift JIS double-byte characters
	UTF8Kanji                // kanji mode, UTF-8 text
	Latin1                   // byte mode, UTF-8 text encoded as ISO 8859-1
	ECI                      // eci mode, raw designator
	StructAppend             // structured append header, raw
	FNC1Alpha                // alphanumeric mode, FNC1 separators as %
	FNC1First                // FNC1 in first position, raw
	FNC1Second               // FNC1 in second position, raw application indicator
	numModes
)

// A modeEncoder describes how segments of a mode are encoded.
//
// Segments of transforming modes (UTF8Kanji, Latin1, FNC1Alpha) are
// converted to a segment of the target mode before encoding.  Raw modes
// (ECI, StructAppend, FNC1First, FNC1Second) have no character count
// field; their text is written as is after the mode indicator.
type modeEncoder struct {
	name      string
	indicator uint32
	count     [3]byte // character count field length per size class
	unit      int     // bytes per character in the encoded text

	// payload returns the encoded data length in bits of n characters.
	payload func(n int) int

	// chars returns the character count of a valid string.
	chars func(s string) int

	valid     func(s string) bool
	transform func(s string) (Segment, bool)
	encode    func(b Bits, s string) Bits
}

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// Alphanumeric values, -1 for characters outside the set.
var alphaValue = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = int8(i)
	}
	return
}()

// IsNumeric reports whether c is encodable in numeric mode.
func IsNumeric(c byte) bool { return '0' <= c && c <= '9' }

// IsAlphanumeric reports whether c is encodable in alphanumeric mode.
// Lowercase letters are not.
func IsAlphanumeric(c byte) bool { return alphaValue[c] >= 0 }

// IsKanjiPair reports whether the Shift JIS double-byte character
// hi, lo is encodable in kanji mode.
func IsKanjiPair(hi, lo byte) bool {
	if lo < 0x40 || lo > 0xfc || lo == 0x7f {
		return false
	}
	c := uint16(hi)<<8 | uint16(lo)
	return 0x8140 <= c && c <= 0x9ffc || 0xe040 <= c && c <= 0xebbf
}

// IsKanji reports whether the Unicode rune r has a Shift JIS encoding
// encodable in kanji mode.
func IsKanji(r rune) bool {
	if r < 0x80 || !utf8.ValidRune(r) {
		return false
	}
	var src [utf8.UTFMax]byte
	var dst [4]byte
	n := utf8.EncodeRune(src[:], r)
	nd, _, err := japanese.ShiftJIS.NewEncoder().Transform(dst[:], src[:n], true)
	return err == nil && nd == 2 && IsKanjiPair(dst[0], dst[1])
}

func allBytes(s string, is func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !is(s[i]) {
			return false
		}
	}
	return s != ""
}

func allRunes(s string, is func(rune) bool) bool {
	for _, r := range s {
		if r == utf8.RuneError || !is(r) {
			return false
		}
	}
	return s != ""
}

func byteLen(s string) int { return len(s) }

var modes = [numModes]modeEncoder{
	Numeric: {
		name:      "numeric",
		indicator: 1,
		count:     [3]byte{10, 12, 14},
		unit:      1,
		payload:   func(n int) int { return (10*n + 2) / 3 },
		chars:     byteLen,
		valid:     func(s string) bool { return allBytes(s, IsNumeric) },
		encode: func(b Bits, s string) Bits {
			for ; len(s) >= 3; s = s[3:] {
				v := uint32(s[0]-'0')*100 + uint32(s[1]-'0')*10 + uint32(s[2]-'0')
				b = b.Append(v, 10)
			}
			switch len(s) {
			case 2:
				b = b.Append(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
			case 1:
				b = b.Append(uint32(s[0]-'0'), 4)
			}
			return b
		},
	},
	Alphanumeric: {
		name:      "alphanumeric",
		indicator: 2,
		count:     [3]byte{9, 11, 13},
		unit:      1,
		payload:   func(n int) int { return (11*n + 1) / 2 },
		chars:     byteLen,
		valid:     func(s string) bool { return allBytes(s, IsAlphanumeric) },
		encode: func(b Bits, s string) Bits {
			for ; len(s) >= 2; s = s[2:] {
				v := uint32(alphaValue[s[0]])*45 + uint32(alphaValue[s[1]])
				b = b.Append(v, 11)
			}
			if len(s) == 1 {
				b = b.Append(uint32(alphaValue[s[0]]), 6)
			}
			return b
		},
	},
	Byte: {
		name:      "byte",
		indicator: 4,
		count:     [3]byte{8, 16, 16},
		unit:      1,
		payload:   func(n int) int { return n * 8 },
		chars:     byteLen,
		valid:     func(s string) bool { return s != "" },
		encode:    Bits.appendBytes,
	},
	Kanji: {
		name:      "kanji",
		indicator: 8,
		count:     [3]byte{8, 10, 12},
		unit:      2,
		payload:   func(n int) int { return n * 13 },
		chars:     func(s string) int { return len(s) / 2 },
		valid: func(s string) bool {
			if s == "" || len(s)&1 != 0 {
				return false
			}
			for i := 0; i < len(s); i += 2 {
				if !IsKanjiPair(s[i], s[i+1]) {
					return false
				}
			}
			return true
		},
		encode: func(b Bits, s string) Bits {
			for ; len(s) >= 2; s = s[2:] {
				c := uint32(s[0])<<8 | uint32(s[1])
				if c <= 0x9ffc {
					c -= 0x8140
				} else {
					c -= 0xc140
				}
				b = b.Append(c>>8*0xc0+c&0xff, 13)
			}
			return b
		},
	},
	UTF8Kanji: {
		name:      "utf8-kanji",
		indicator: 8,
		count:     [3]byte{8, 10, 12},
		chars:     utf8.RuneCountInString,
		valid:     func(s string) bool { return allRunes(s, IsKanji) },
		transform: func(s string) (Segment, bool) {
			t, err := japanese.ShiftJIS.NewEncoder().String(s)
			return Segment{t, Kanji}, err == nil
		},
	},
	Latin1: {
		name:      "latin-1",
		indicator: 4,
		count:     [3]byte{8, 16, 16},
		chars:     utf8.RuneCountInString,
		valid: func(s string) bool {
			return allRunes(s, func(r rune) bool { return r < 0x100 })
		},
		transform: func(s string) (Segment, bool) {
			t, err := charmap.ISO8859_1.NewEncoder().String(s)
			return Segment{t, Byte}, err == nil
		},
	},
	ECI: {
		name:      "eci",
		indicator: 7,
		unit:      1,
		payload:   func(n int) int { return n * 8 },
		chars:     byteLen,
		valid: func(s string) bool {
			ok := s != "" && len(s) == max(1, int(s[0]>>6))
			if ok && len(s) == 3 {
				ok = uint32(s[0]&^0xc0)<<16|uint32(s[1])<<8|uint32(s[2]) < 1e6
			}
			return ok
		},
		encode: Bits.appendBytes,
	},
	StructAppend: {
		name:      "structured-append",
		indicator: 3,
		unit:      1,
		payload:   func(n int) int { return n * 8 },
		chars:     byteLen,
		valid: func(s string) bool {
			return len(s) == 2 && s[0]>>4 <= s[0]&0x0f
		},
		encode: Bits.appendBytes,
	},
	FNC1Alpha: {
		name:      "fnc1-alphanumeric",
		indicator: 2,
		count:     [3]byte{9, 11, 13},
		chars:     byteLen,
		valid: func(s string) bool {
			return !strings.Contains(s, "\x1d\x1d") &&
				allBytes(s, func(c byte) bool {
					return c == GS || c != '%' && IsAlphanumeric(c)
				})
		},
		transform: func(s string) (Segment, bool) {
			return Segment{strings.ReplaceAll(s, "\x1d", "%"), Alphanumeric}, true
		},
	},
	FNC1First: {
		name:      "fnc1-first",
		indicator: 5,
		payload:   func(int) int { return 0 },
		chars:     byteLen,
		valid:     func(s string) bool { return s == "" },
		encode:    Bits.appendBytes,
	},
	FNC1Second: {
		name:      "fnc1-second",
		indicator: 9,
		unit:      1,
		payload:   func(n int) int { return n * 8 },
		chars:     byteLen,
		valid:     func(s string) bool { return len(s) == 1 },
		encode:    Bits.appendBytes,
	},
}

func getMode(mode Mode) *modeEncoder {
	if 0 <= mode && mode < numModes {
		return &modes[mode]
	}
	return nil
}

func (mode Mode) String() string {
	if m := getMode(mode); m != nil {
		return m.name
	}
	return strconv.Itoa(int(mode))
}

// Target returns the mode segments of mode are encoded in.
func (mode Mode) Target() Mode {
	switch mode {
	case UTF8Kanji:
		return Kanji
	case Latin1:
		return Byte
	case FNC1Alpha:
		return Alphanumeric
	}
	return mode
}

// Raw reports whether mode has no character count field.
func (mode Mode) Raw() bool {
	return mode == ECI || mode == StructAppend || mode == FNC1First || mode == FNC1Second
}

// FNC1 reports whether mode is an FNC1 header.
func (mode Mode) FNC1() bool { return mode == FNC1First || mode == FNC1Second }

// MaxChars returns the largest character count of a single segment
// header in size class class, or 0 for raw modes.
func (mode Mode) MaxChars(class int) int {
	m := getMode(mode.Target())
	if m == nil || m.count[class] == 0 {
		return 0
	}
	return 1<<m.count[class] - 1
}

// length returns the encoded length in bits of n characters in size
// class class, including headers.  Strings longer than the count field
// allows are encoded as several segments.
func (m *modeEncoder) length(n, class int) int {
	cl := int(m.count[class])
	if cl == 0 {
		return 4 + m.payload(n)
	}
	hdr := 4 + cl
	lim := 1<<cl - 1
	if n <= lim {
		return hdr + m.payload(n)
	}
	l := n / lim * (hdr + m.payload(lim))
	if rest := n % lim; rest != 0 {
		l += hdr + m.payload(rest)
	}
	return l
}

// Length returns the encoded length in bits of n characters encoded in
// mode in size class class, including headers.  Length returns 0 if
// mode is invalid.
func (mode Mode) Length(n, class int) int {
	if m := getMode(mode.Target()); m != nil && 0 <= class && class <= Class2 {
		return m.length(n, class)
	}
	return 0
}

// A Segment describes a QR code segment.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// SegmentError represents an invalid Segment.
type SegmentError Segment

func (e SegmentError) Error() string {
	if m := getMode(e.Mode); m != nil {
		return fmt.Sprintf("qrenc: non-%s string %#q", m.name, e.Text)
	}
	return fmt.Sprintf("qrenc: invalid mode %d", e.Mode)
}

func (e SegmentError) Unwrap() error { return ErrMalformedSegment }

// Valid reports whether seg is encodable.
func (seg Segment) Valid() bool {
	m := getMode(seg.Mode)
	return m != nil && m.valid(seg.Text)
}

// Chars returns the character count of seg.
func (seg Segment) Chars() int {
	if m := getMode(seg.Mode); m != nil {
		return m.chars(seg.Text)
	}
	return 0
}

// EncodedLength returns the encoded length in bits of seg in the
// given size class.  The segment is not validated.
func (seg Segment) EncodedLength(class int) int {
	return seg.Mode.Length(seg.Chars(), class)
}

// Transform validates seg and converts segments of transforming modes
// to their target mode.
func (seg Segment) Transform() (Segment, error) {
	m := getMode(seg.Mode)
	if m == nil || !m.valid(seg.Text) {
		return Segment{}, SegmentError(seg)
	}
	if m.transform == nil {
		return seg, nil
	}
	ts, ok := m.transform(seg.Text)
	if !ok || !ts.Valid() {
		return Segment{}, SegmentError(seg)
	}
	return ts, nil
}

// Encode returns seg encoded for the given size class.
func (seg Segment) Encode(class int) (Bits, error) {
	return seg.AppendTo(Bits{}, class)
}

// AppendTo appends seg encoded for the given size class to b.
func (seg Segment) AppendTo(b Bits, class int) (Bits, error) {
	if class < Class0 || class > Class2 {
		return b, &ParamError{"size class", class}
	}
	ts, err := seg.Transform()
	if err != nil {
		return b, err
	}
	m := getMode(ts.Mode)
	s := ts.Text
	cl := int(m.count[class])
	if cl == 0 {
		b = b.Append(m.indicator, 4)
		return m.encode(b, s), nil
	}
	lim := 1<<cl - 1
	for s != "" {
		n := min(len(s)/m.unit, lim)
		b = b.Append(m.indicator, 4)
		b = b.Append(uint32(n), cl)
		b = m.encode(b, s[:n*m.unit])
		s = s[n*m.unit:]
	}
	return b, nil
}

// EncodeSegments returns the concatenated encoding of segs in the size
// class of version v.
func EncodeSegments(v Version, segs ...Segment) (Bits, error) {
	if err := v.check(); err != nil {
		return Bits{}, err
	}
	class := v.SizeClass()
	b := MakeBits(v.TotalCodewords())
	for _, seg := range segs {
		var err error
		if b, err = seg.AppendTo(b, class); err != nil {
			return Bits{}, err
		}
	}
	return b, nil
}

// ECISegment returns an ECI Segment setting the Extended Channel
// Interpretation assignment number to n.
func ECISegment(n int) (Segment, error) {
	var b []byte
	switch {
	case n < 0 || n > 999999:
		return Segment{}, &ParamError{"eci assignment number", n}
	case n < 1<<7:
		b = []byte{byte(n)}
	case n < 1<<14:
		b = []byte{0x80 | byte(n>>8), byte(n)}
	default:
		b = []byte{0xc0 | byte(n>>16), byte(n >> 8), byte(n)}
	}
	return Segment{string(b), ECI}, nil
}

// Extended Channel Interpretation assignment numbers.
const (
	Latin1ECI   = 3   // ISO 8859-1
	ShiftJISECI = 20  // Shift JIS
	UTF8ECI     = 26  // UTF-8
	BinaryECI   = 899 // 8-bit binary data
)

// StructAppendSegment returns a Structured Append header for symbol
// index (from 0) of total symbols, with parity computed by Parity over
// the whole message.
func StructAppendSegment(index, total int, parity byte) (Segment, error) {
	if total < 1 || total > 16 {
		return Segment{}, &ParamError{"structured append total", total}
	}
	if index < 0 || index >= total {
		return Segment{}, &ParamError{"structured append index", index}
	}
	return Segment{string([]byte{byte(index<<4 | (total - 1)), parity}),
		StructAppend}, nil
}

// Parity returns the Structured Append parity of the transformed text
// of segs: the exclusive or of all bytes.
func Parity(segs ...Segment) (byte, error) {
	var par byte
	for _, seg := range segs {
		if seg.Mode.Raw() {
			continue
		}
		ts, err := seg.Transform()
		if err != nil {
			return 0, err
		}
		for i := 0; i < len(ts.Text); i++ {
			par ^= ts.Text[i]
		}
	}
	return par, nil
}

// GS is the FNC1 field separator.  In symbols with an FNC1 header it
// is encoded as % in alphanumeric mode, where %% stands for a literal
// %, so neither % nor two adjacent separators may appear in
// FNC1Alpha segments.
const GS = 0x1d

// FNC1FirstSegment marks data formatted per the GS1 General
// Specifications.
var FNC1FirstSegment = Segment{"", FNC1First}

// FNC1SecondSegment returns a header marking data formatted per the
// industry application identified by ai, a letter or two digits.
func FNC1SecondSegment(ai string) (Segment, error) {
	var v byte
	switch {
	case len(ai) == 1 && ('A' <= ai[0] && ai[0] <= 'Z' || 'a' <= ai[0] && ai[0] <= 'z'):
		v = ai[0] + 100
	case len(ai) == 2 && IsNumeric(ai[0]) && IsNumeric(ai[1]):
		v = (ai[0]-'0')*10 + ai[1] - '0'
	default:
		return Segment{}, SegmentError{ai, FNC1Second}
	}
	return Segment{string([]byte{v}), FNC1Second}, nil
}
