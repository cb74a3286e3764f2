// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qrenc generates QR codes.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
	"golang.org/x/term"

	"github.com/unixdj/qrenc"
	"github.com/unixdj/qrenc/coding"
)

var g = struct {
	scale    int             // scale
	border   int             // quiet zone
	palette  *[2]color.Color // palette
	rev      bool            // reverse colours
	fn       string          // filename
	lev      qrenc.Level     // QR correction level
	format   int             // output file format
	cx       int             // randr source X coordinate index in inc
	inc      [2]int          // randr source X,Y coordinate increments
	bg, fg   rgba            // colour
	colSet   bool            // colour set
	opts     qrenc.Options   // encoder options
	eciflag  bool            // ECI flag
	latin1   bool            // Latin-1 byte mode
	sjis     bool            // Shift JIS input
	nokanji  bool            // kanji mode disabled
	byteOnly bool            // byte mode only
	upper    bool            // uppercase
	debug    bool            // debug logging
}{
	inc: [2]int{1, 1},
	bg:  rgba{0xff, 0xff, 0xff, 0xff},
	fg:  rgba{0x00, 0x00, 0x00, 0xff},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		if n <= 0 {
			break
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:n]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults: UTF-8 input, kanji mode segments
enabled, no ECI segment, best of all eight masks.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qrenc version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

func flip() {
	g.inc[0] = -g.inc[0]
}

func rotate() {
	g.cx ^= 1
	m := g.inc[0] * g.inc[1]
	g.inc[0] *= m
	g.inc[1] *= -m
}

type rgba color.RGBA

func (c *rgba) String() string {
	switch {
	case *c == rgba{0x00, 0x00, 0x00, 0xff}:
		return "black"
	case *c == rgba{0xff, 0xff, 0xff, 0xff}:
		return "white"
	case c.A == 0xff:
		return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	default:
		return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
}

func (c *rgba) Set(s string, _ getopt.Option) error {
	g.colSet = true
	if v, ok := colornames.Map[strings.ToLower(strings.ReplaceAll(s, " ", ""))]; ok {
		*c = rgba(v)
		return nil
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%q: bad colour spec", s)
	}
	switch len(s) {
	case 3:
		n = n<<4 | 0xf
		fallthrough
	case 4:
		var nn uint64
		for i := 0; i < 4; i++ {
			nn <<= 8
			nn |= n >> 12 & 0xf * 0x11
			n <<= 4
		}
		n = nn
	case 6:
		n = n<<8 | 0xff
	case 8:
	default:
		return fmt.Errorf("%q: bad colour spec", s)
	}
	c.R, c.G, c.B, c.A = uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)
	return nil
}

// Output formats, each followed by its inverted variant.
var formats = []string{
	"png", "pngi", "jpeg", "jpegi", "gif", "gifi", "bmp", "bmpi",
	"tiff", "tiffi", "pbm", "pbmi", "eps", "epsi",
	"utf8", "utf8i", "ascii", "asciii",
}

func imageEncoder(f imaging.Format) func(*qrenc.Code, io.Writer) error {
	return func(c *qrenc.Code, w io.Writer) error { return c.EncodeImage(w, f) }
}

var encoders = [...]func(*qrenc.Code, io.Writer) error{
	(*qrenc.Code).EncodePNG,
	imageEncoder(imaging.JPEG),
	imageEncoder(imaging.GIF),
	imageEncoder(imaging.BMP),
	imageEncoder(imaging.TIFF),
	(*qrenc.Code).EncodePBM,
	eps,
	func(c *qrenc.Code, w io.Writer) error {
		_, err := io.WriteString(w, c.String())
		return err
	},
	(*qrenc.Code).EncodeASCII,
}

const fmtUTF8 = 7 // index of utf8 in encoders

// formatFromFilename returns the name of the image format implied by
// the suffix of fn, or "".
func formatFromFilename(fn string) string {
	f, err := imaging.FormatFromFilename(fn)
	if err != nil {
		if strings.HasSuffix(strings.ToLower(fn), ".pbm") {
			return "pbm"
		}
		if strings.HasSuffix(strings.ToLower(fn), ".eps") {
			return "eps"
		}
		return ""
	}
	return strings.ToLower(f.String())
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.FlagLong(&g.bg, "background", 'B', `background colour; see -F`,
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or SVG colour name; `+
		`not for types pbm[i], utf8[i] and ascii[i]`, "RGB[A]|name")
	getopt.Flag(opt(flip), 'f', `flip code horizontally; `+
		`to flip vertically, use "-frr"`).SetFlag()
	getopt.Flag(opt(rotate), 'r', `rotate code 90° counterclockwise; `+
		`-r and -f may be given multiple times, `+
		`order matters: "-fr" = "-rfrr" = "-rrrf"`).SetFlag()
	getopt.Flag(&g.nokanji, 'K', "disable kanji mode")
	getopt.Flag(&g.latin1, '1',
		"convert byte mode segments to Latin-1")
	getopt.Flag(&g.byteOnly, '8', "encode entire data in byte mode")
	getopt.Flag(&g.sjis, 'k', "Shift JIS input")
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&g.border, 'm', `quiet zone modules`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	getopt.Flag(&g.eciflag, 'e', "encode ECI segment setting "+
		"character encoding according to -1 and -k flags")
	eci := getopt.Signed('E', -1, &getopt.SignedLimit{Base: 0, Bits: 21, Min: 0, Max: 999999},
		"encode ECI segment with the given value; overrides -e", "eci")
	ver := getopt.Unsigned('v', 1, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"minimum QR code version", "ver")
	getopt.Flag(&g.opts.GS1, 'c', "set FNC1 in first position (GS1); "+
		`field separators are written as ASCII GS`)
	getopt.Flag(&g.opts.AppIndicator, 'C', "set FNC1 in second "+
		"position with the given application indicator", "ai")
	getopt.Flag(&g.opts.FixedVersion, 'x',
		"use exactly the version given with -v, fail if data does not fit")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	mask := getopt.Signed('M', -1, &getopt.SignedLimit{Base: 0, Bits: 8, Min: 0, Max: 7},
		"use the given mask pattern instead of the best one", "mask")
	sample := getopt.UnsignedLong("sample", 'n', 0,
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 8},
		"evaluate only the given number of pseudo-randomly chosen masks", "count")
	getopt.FlagLong(&g.opts.Seed, "seed", 0,
		"seed for choosing masks with -n", "seed")
	scale := getopt.Unsigned('s', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 28}),
		`image pixels (type eps[i]: points) per QR module; `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if not given, the suffix of -o decides; otherwise if `+
		`standard output is a TTY, default is utf8, otherwise png`, "type")
	getopt.FlagLong(&g.debug, "debug", 'd', "log encoding steps to standard error")

	getopt.Parse()
	g.scale = int(*scale)
	g.opts.Version = coding.Version(*ver)
	g.lev = qrenc.Level(strings.Index("lmqhLMQH", *lev) & 3)
	g.opts.ECI = int(*eci)
	if g.opts.ECI < 0 {
		g.opts.ECI = 0
	}
	if *mask >= 0 {
		g.opts.Mask = int(*mask)
		g.opts.ForceMask = true
	}
	g.opts.Sample = int(*sample)
	if !getopt.IsSet('m') {
		g.border = -1
	}
	if g.fn == "-" {
		g.fn = ""
	}
	if *ff == "" && g.fn != "" {
		*ff = formatFromFilename(g.fn)
	}
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	switch {
	case g.byteOnly:
		g.opts.Hint = qrenc.ByteOnly
	case g.latin1:
		g.opts.Hint = qrenc.Latin1
	case g.sjis:
		g.opts.Hint = qrenc.ShiftJIS
	case g.nokanji:
		g.opts.Hint = qrenc.Bytes
	default:
		g.opts.Hint = qrenc.UTF8Kanji
	}
	if g.eciflag && !getopt.IsSet('E') {
		switch {
		case g.latin1:
			g.opts.ECI = qrenc.Latin1ECI
		case g.sjis:
			g.opts.ECI = qrenc.ShiftJISECI
		default:
			g.opts.ECI = qrenc.UTF8ECI
		}
	}
	if g.opts.GS1 && g.opts.AppIndicator != "" {
		fmt.Fprintln(os.Stderr, "-c and -C are mutually exclusive")
		usage()
	}
	if g.colSet {
		g.palette = &[2]color.Color{color.RGBA(g.bg), color.RGBA(g.fg)}
	}
}

func newLogger() *zap.Logger {
	if !g.debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalln(err)
	}
	return logger
}

func main() {
	log.SetFlags(0)
	parseFlags()
	logger := newLogger()
	defer logger.Sync()
	g.opts.Logger = logger

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	c, err := qrenc.Encode(s, g.lev, &g.opts)
	if err != nil {
		log.Fatalln(err)
	}
	logger.Debug("encoded",
		zap.Stringer("version", c.Version), zap.Stringer("level", c.Level),
		zap.Int("mask", c.Mask), zap.Int("size", c.Size))
	write(c, logger)
}

func write(c *qrenc.Code, logger *zap.Logger) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	c = randr(c)
	c.Scale = g.scale
	c.Palette = g.palette
	c.Reverse = g.rev
	if g.border >= 0 {
		c.Border = g.border
	}
	if g.format == fmtUTF8 && g.fn == "" {
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			if width, _, err := term.GetSize(fd); err == nil &&
				width < c.Size+2*c.Border {
				logger.Warn("code wider than terminal",
					zap.Int("columns", width),
					zap.Int("width", c.Size+2*c.Border))
			}
		}
	}
	err := encoders[g.format](c, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// randr rotates and reflects c.
func randr(c *qrenc.Code) *qrenc.Code {
	cx, inc := g.cx, g.inc
	if cx == 0 && inc == [2]int{1, 1} {
		return c
	}
	siz := c.Size
	m := make([][]bool, siz)
	var coord [2]int
	coord[cx^1] = (siz - 1) & inc[1]
	for y := range m {
		m[y] = make([]bool, siz)
		coord[cx] = (siz - 1) & inc[0]
		for x := range m[y] {
			m[y][x] = c.Black(coord[0], coord[1])
			coord[cx] += inc[0]
		}
		coord[cx^1] += inc[1]
	}
	c.Modules = m
	return c
}

func eps(c *qrenc.Code, w io.Writer) error {
	const midx, midy = 306, 396
	siz := c.Size
	scale := c.Scale
	bord := c.Border
	xorig := (midx*2 - (siz+2*bord)*scale) / 2
	yorig := (midy*2 - (siz+2*bord)*scale) / 2
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: qrenc https://github.com/unixdj/qrenc
%%%%Title: QR Code
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		xorig-1, yorig-1, midx*2-xorig, midy*2-yorig,
		midx-float64(siz*scale)/2, midy+float64((siz-1)*scale)/2-1,
		scale)
	if rev := c.Reverse; rev || g.colSet {
		bg, fg := g.bg, g.fg
		if rev {
			bg, fg = fg, bg
		}
		fmt.Fprintf(b, `gsave
newpath %d %d moveto
%d dup neg scale
%.3g %.3g %.3g setrgbcolor
1 0 rlineto stroke
grestore
%.3g %.3g %.3g setrgbcolor
`,
			-bord, siz/2, siz+2*bord,
			float64(bg.R)/0xff, float64(bg.G)/0xff,
			float64(bg.B)/0xff, float64(fg.R)/0xff,
			float64(fg.G)/0xff, float64(fg.B)/0xff)
	}
	fmt.Fprintln(b, "newpath 0 0 moveto")
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; {
			s := x
			for x < siz && !c.Black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			d := x
			for x < siz && c.Black(x, y) {
				x++
			}
			fmt.Fprintf(b, "%d %d p ", x-d, d-s)
		}
		fmt.Fprintln(b, "r")
	}
	io.WriteString(b, "stroke grestore\nend\n%%Trailer\n")
	return b.Flush()
}
