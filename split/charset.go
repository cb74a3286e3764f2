// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/unixdj/qrenc/coding"
)

// A Hint tells Split how to interpret the input and which modes to use.
type Hint int

/*
Hints.

	Hint       Input         Modes
	Bytes      any           numeric, alphanumeric, byte
	ShiftJIS   Shift JIS     numeric, alphanumeric, byte, kanji
	UTF8Kanji  UTF-8         numeric, alphanumeric, byte, kanji
	Latin1     UTF-8         numeric, alphanumeric, byte (as ISO 8859-1), kanji
	ByteOnly   any           byte

With ShiftJIS, double-byte characters encodable in kanji mode are
encoded as such or in byte mode, whichever is shorter.  With UTF8Kanji,
characters of JIS X 0208 encodable in kanji mode are transcoded to
Shift JIS; other characters are encoded in byte mode as UTF-8.  Latin1
encodes characters up to U+00FF in byte mode as ISO 8859-1 and rejects
characters encodable neither as Latin-1 nor in kanji mode.
*/
const (
	Bytes Hint = iota
	ShiftJIS
	UTF8Kanji
	Latin1
	ByteOnly
	numHints
)

var hintNames = [numHints]string{"bytes", "shift-jis", "utf8-kanji", "latin1", "byte-only"}

func (h Hint) String() string {
	if 0 <= h && h < numHints {
		return hintNames[h]
	}
	return strconv.Itoa(int(h))
}

// ParseHint returns the Hint named s.
func ParseHint(s string) (Hint, error) {
	for i, v := range hintNames {
		if v == s {
			return Hint(i), nil
		}
	}
	return 0, fmt.Errorf("%w: hint %q", coding.ErrInvalidParameter, s)
}

// Mode bits in classes.  Bit N corresponds to modeList[N].
const (
	numMode   = 1 << iota // numeric
	alphaMode             // alphanumeric
	byteMode              // byte
	kanjiMode             // kanji

	by = byteMode       // ASCII byte
	al = by | alphaMode // alphanumeric
	nu = al | numMode   // numeric
)

// A modeList maps mode bits to modes.
type modeList [4]coding.Mode

// A classifier returns the modes in which the first character of the
// string is encodable and its length in bytes.  A zero mode set means
// the character is not encodable.
type classifier func(string) (byte, int)

// chartbl holds the modes of ASCII bytes.  Bytes from 0x80 are only
// encodable in byte mode.
var chartbl = func() (t [256]byte) {
	for i := range t {
		t[i] = by
		switch {
		case coding.IsNumeric(byte(i)):
			t[i] = nu
		case coding.IsAlphanumeric(byte(i)):
			t[i] = al
		}
	}
	return
}()

// charset returns the classifier and modes of h.
func (h Hint) charset() (classifier, modeList, error) {
	std := modeList{coding.Numeric, coding.Alphanumeric, coding.Byte, coding.Kanji}
	switch h {
	case Bytes:
		return classifyByte, std, nil
	case ShiftJIS:
		return classifyShiftJIS, std, nil
	case UTF8Kanji:
		std[3] = coding.UTF8Kanji
		return classifyUTF8, std, nil
	case Latin1:
		std[2], std[3] = coding.Latin1, coding.UTF8Kanji
		return classifyLatin1, std, nil
	case ByteOnly:
		return func(string) (byte, int) { return by, 1 }, std, nil
	}
	return nil, std, fmt.Errorf("%w: hint %d", coding.ErrInvalidParameter, int(h))
}

// classifyByte classifies a byte for numeric, alphanumeric and byte
// modes.
func classifyByte(s string) (byte, int) { return chartbl[s[0]], 1 }

// classifyShiftJIS classifies a Shift JIS character.  Double-byte
// characters in the kanji mode range are encodable in byte and kanji
// modes, anything else is classified byte by byte.
func classifyShiftJIS(s string) (byte, int) {
	if len(s) >= 2 && coding.IsKanjiPair(s[0], s[1]) {
		return by | kanjiMode, 2
	}
	return chartbl[s[0]], 1
}

// classifyUTF8 classifies a UTF-8 character.  Invalid encoding is
// classified byte by byte.
func classifyUTF8(s string) (byte, int) {
	if s[0] < utf8.RuneSelf {
		return chartbl[s[0]], 1
	}
	r, sz := utf8.DecodeRuneInString(s)
	if coding.IsKanji(r) {
		return by | kanjiMode, sz
	}
	return by, sz
}

// classifyLatin1 classifies a UTF-8 character for byte mode as
// ISO 8859-1.
func classifyLatin1(s string) (byte, int) {
	if s[0] < utf8.RuneSelf {
		return chartbl[s[0]], 1
	}
	r, sz := utf8.DecodeRuneInString(s)
	var m byte
	if r < 0x100 && sz > 1 {
		m |= by
	}
	if coding.IsKanji(r) {
		m |= kanjiMode
	}
	return m, sz
}

// chars returns the character count of a string of n bytes and nr
// classified characters encoded in mode.
func chars(mode coding.Mode, n, nr int) int {
	switch mode {
	case coding.Kanji:
		return n / 2
	case coding.UTF8Kanji, coding.Latin1:
		return nr
	}
	return n
}
