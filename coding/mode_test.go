// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentEncode(t *testing.T) {
	for _, c := range []struct {
		seg  Segment
		want string
	}{
		{Segment{"01234567", Numeric},
			"0001" + "0000001000" + "0000001100" + "0101011001" + "1000011"},
		{Segment{"8", Numeric}, "0001" + "0000000001" + "1000"},
		{Segment{"AC-42", Alphanumeric},
			"0010" + "000000101" + "00111001110" + "11100111001" + "000010"},
		{Segment{"a\xff", Byte}, "0100" + "00000010" + "01100001" + "11111111"},
		{Segment{"\x93\x5f\xe4\xaa", Kanji},
			"1000" + "00000010" + "0110110011111" + "1101010101010"},
		{Segment{"点茗", UTF8Kanji},
			"1000" + "00000010" + "0110110011111" + "1101010101010"},
		{Segment{"é", Latin1}, "0100" + "00000001" + "11101001"},
		{Segment{"\x1a", ECI}, "0111" + "00011010"},
		{Segment{"\x12\x40", StructAppend}, "0011" + "00010010" + "01000000"},
		{Segment{"", FNC1First}, "0101"},
		{Segment{"\x25", FNC1Second}, "1001" + "00100101"},
		{Segment{"A\x1d", FNC1Alpha}, "0010" + "000000010" + "00111101000"},
	} {
		b, err := c.seg.Encode(Class0)
		require.NoError(t, err, "%v", c.seg)
		assert.Equal(t, c.want, bitString(b), "%v", c.seg)
		assert.Equal(t, len(c.want), c.seg.EncodedLength(Class0), "%v", c.seg)
	}
}

func TestCountFieldGrowsWithClass(t *testing.T) {
	seg := Segment{"12345", Numeric}
	for class, cl := range []int{10, 12, 14} {
		b, err := seg.Encode(class)
		require.NoError(t, err)
		assert.Equal(t, 4+cl+17, b.Len(), "class %d", class)
	}
	_, err := seg.Encode(3)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNumericLength(t *testing.T) {
	for n := 1; n <= 40; n++ {
		want := 4 + 10 + 10*(n/3)
		switch n % 3 {
		case 1:
			want += 4
		case 2:
			want += 7
		}
		assert.Equal(t, want, Numeric.Length(n, Class0), "n=%d", n)
	}
	assert.Equal(t, 4+10+410, Numeric.Length(123, Class0))
}

func TestLongSegmentIsChunked(t *testing.T) {
	seg := Segment{strings.Repeat("x", 300), Byte}
	want := (4 + 8 + 255*8) + (4 + 8 + 45*8)
	assert.Equal(t, want, seg.EncodedLength(Class0))
	b, err := seg.Encode(Class0)
	require.NoError(t, err)
	assert.Equal(t, want, b.Len())
	s := bitString(b)
	assert.Equal(t, "0100"+"11111111", s[:12])
	second := 4 + 8 + 255*8
	assert.Equal(t, "0100"+"00101101", s[second:second+12])

	// One segment in larger classes.
	assert.Equal(t, 4+16+300*8, seg.EncodedLength(Class1))
}

func TestSegmentValid(t *testing.T) {
	for _, c := range []struct {
		seg   Segment
		valid bool
	}{
		{Segment{"0123", Numeric}, true},
		{Segment{"12a", Numeric}, false},
		{Segment{"", Numeric}, false},
		{Segment{"HELLO WORLD", Alphanumeric}, true},
		{Segment{"hello", Alphanumeric}, false},
		{Segment{"\x00\xff", Byte}, true},
		{Segment{"\x93\x5f", Kanji}, true},
		{Segment{"\x93", Kanji}, false},
		{Segment{"\xa0\x40", Kanji}, false},
		{Segment{"点a", UTF8Kanji}, false},
		{Segment{"Grüße", Latin1}, true},
		{Segment{"😀", Latin1}, false},
		{Segment{"\x1a", ECI}, true},
		{Segment{"\x83\xe8", ECI}, true},
		{Segment{"\x83", ECI}, false},
		{Segment{"\x21\x00", StructAppend}, false},
		{Segment{"x", Mode(99)}, false},
	} {
		assert.Equal(t, c.valid, c.seg.Valid(), "%v", c.seg)
		_, err := c.seg.Transform()
		if c.valid {
			assert.NoError(t, err, "%v", c.seg)
		} else {
			assert.ErrorIs(t, err, ErrMalformedSegment, "%v", c.seg)
		}
	}
}

func TestTransform(t *testing.T) {
	ts, err := Segment{"点茗", UTF8Kanji}.Transform()
	require.NoError(t, err)
	assert.Equal(t, Segment{"\x93\x5f\xe4\xaa", Kanji}, ts)

	ts, err = Segment{"Grüße", Latin1}.Transform()
	require.NoError(t, err)
	assert.Equal(t, Segment{"Gr\xfc\xdfe", Byte}, ts)

	ts, err = Segment{"123", Numeric}.Transform()
	require.NoError(t, err)
	assert.Equal(t, Segment{"123", Numeric}, ts)
}

func TestCharacterClasses(t *testing.T) {
	assert.True(t, IsNumeric('7'))
	assert.False(t, IsNumeric('A'))
	assert.True(t, IsAlphanumeric(':'))
	assert.False(t, IsAlphanumeric('a'))
	assert.True(t, IsKanjiPair(0x93, 0x5f))
	assert.True(t, IsKanjiPair(0xeb, 0xbf))
	assert.False(t, IsKanjiPair(0x81, 0x7f))
	assert.False(t, IsKanjiPair(0xa0, 0x40))
	assert.True(t, IsKanji('点'))
	assert.False(t, IsKanji('a'))
	assert.False(t, IsKanji('😀'))
}

func TestModeProperties(t *testing.T) {
	assert.Equal(t, "numeric", Numeric.String())
	assert.Equal(t, "99", Mode(99).String())
	assert.Equal(t, Kanji, UTF8Kanji.Target())
	assert.Equal(t, Byte, Latin1.Target())
	assert.True(t, ECI.Raw())
	assert.True(t, FNC1First.Raw())
	assert.True(t, FNC1Second.Raw())
	assert.False(t, FNC1Alpha.Raw())
	assert.True(t, FNC1Second.FNC1())
	assert.False(t, ECI.FNC1())
	assert.Equal(t, Alphanumeric, FNC1Alpha.Target())
	assert.Equal(t, 511, FNC1Alpha.MaxChars(Class0))
	assert.False(t, Byte.Raw())
	assert.Equal(t, 1023, Numeric.MaxChars(Class0))
	assert.Equal(t, 65535, Byte.MaxChars(Class2))
	assert.Equal(t, 255, Latin1.MaxChars(Class0))
	assert.Zero(t, ECI.MaxChars(Class0))
	assert.Zero(t, Mode(99).Length(1, Class0))
}

func TestECISegment(t *testing.T) {
	for _, c := range []struct {
		n    int
		want string
	}{
		{0, "\x00"},
		{26, "\x1a"},
		{127, "\x7f"},
		{128, "\x80\x80"},
		{1000, "\x83\xe8"},
		{16383, "\xbf\xff"},
		{16384, "\xc0\x40\x00"},
		{999999, "\xcf\x42\x3f"},
	} {
		seg, err := ECISegment(c.n)
		require.NoError(t, err)
		assert.Equal(t, Segment{c.want, ECI}, seg, "n=%d", c.n)
		assert.True(t, seg.Valid(), "n=%d", c.n)
	}
	for _, n := range []int{-1, 1000000} {
		_, err := ECISegment(n)
		assert.ErrorIs(t, err, ErrInvalidParameter, "n=%d", n)
	}
}

func TestStructAppend(t *testing.T) {
	par, err := Parity(Segment{"\x1a", ECI}, Segment{"ABC", Alphanumeric},
		Segment{"é", Latin1})
	require.NoError(t, err)
	assert.Equal(t, byte('A'^'B'^'C'^0xe9), par)

	seg, err := StructAppendSegment(1, 3, par)
	require.NoError(t, err)
	assert.Equal(t, Segment{string([]byte{0x12, par}), StructAppend}, seg)
	assert.True(t, seg.Valid())

	for _, c := range [][2]int{{3, 3}, {-1, 2}, {0, 0}, {0, 17}} {
		_, err := StructAppendSegment(c[0], c[1], 0)
		assert.ErrorIs(t, err, ErrInvalidParameter, "%v", c)
	}

	_, err = Parity(Segment{"abc", Numeric})
	assert.ErrorIs(t, err, ErrMalformedSegment)
}

func TestEncodeSegments(t *testing.T) {
	b, err := EncodeSegments(1, Segment{"\x1a", ECI}, Segment{"8", Numeric})
	require.NoError(t, err)
	assert.Equal(t, "0111"+"00011010"+"0001"+"0000000001"+"1000", bitString(b))

	_, err = EncodeSegments(0, Segment{"8", Numeric})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = EncodeSegments(1, Segment{"x", Numeric})
	assert.ErrorIs(t, err, ErrMalformedSegment)
}

func TestFNC1Segments(t *testing.T) {
	assert.True(t, FNC1FirstSegment.Valid())
	assert.Equal(t, 4, FNC1FirstSegment.EncodedLength(Class2))

	for _, c := range []struct {
		ai   string
		want string
	}{
		{"00", "\x00"},
		{"37", "\x25"},
		{"99", "\x63"},
		{"a", "\xc5"},
		{"Z", "\xbe"},
	} {
		seg, err := FNC1SecondSegment(c.ai)
		require.NoError(t, err, "%q", c.ai)
		assert.Equal(t, Segment{c.want, FNC1Second}, seg, "%q", c.ai)
		assert.Equal(t, 12, seg.EncodedLength(Class0))
	}
	for _, ai := range []string{"", "1", "123", "!", "a1", "é"} {
		_, err := FNC1SecondSegment(ai)
		assert.ErrorIs(t, err, ErrMalformedSegment, "%q", ai)
	}

	for _, c := range []struct {
		text  string
		valid bool
	}{
		{"AB\x1dC", true},
		{"\x1d", true},
		{"\x1dA\x1d", true},
		{"A%B", false},
		{"A\x1d\x1dB", false},
		{"ab", false},
		{"", false},
	} {
		assert.Equal(t, c.valid, Segment{c.text, FNC1Alpha}.Valid(), "%q", c.text)
	}
	ts, err := Segment{"AB\x1dC", FNC1Alpha}.Transform()
	require.NoError(t, err)
	assert.Equal(t, Segment{"AB%C", Alphanumeric}, ts)
}
