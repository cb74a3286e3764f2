// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Penalty rules.  Total penalty is the sum of penalties for runs and
// boxes of same-colour modules, finder-like patterns and colour
// balance.
//
//   - N1: for each maximal row or column run of n >= 5 modules
//     -> 3 + (n-5)
//   - N2: for each, possibly overlapping, 2x2 box -> 3
//   - N3: for each row or column occurrence of 1011101 with 0000 on
//     either side -> 40.  Modules outside the frame are light.
//   - N4: for k whole 5% steps of dark modules away from 50% -> 10k
const (
	minRun    = 5  // N1: minimum run length
	runPP     = 3  // N1: points for a minimum run
	boxPP     = 3  // N2: points per box
	findPP    = 40 // N3: points per pattern
	balPP     = 10 // N4: points
	balPSteps = 20 //     per 1/20 of the modules

	findPat  = 0b1011101 // N3: finder-like pattern, 7 modules
	findMask = 1<<7 - 1
	quiet    = 4 // N3: light modules on either side
)

// PenaltyDetail holds the score of each penalty rule.
type PenaltyDetail struct {
	Runs    int // N1
	Boxes   int // N2
	Finders int // N3
	Balance int // N4
}

// Total returns the sum of the penalties.
func (p PenaltyDetail) Total() int { return p.Runs + p.Boxes + p.Finders + p.Balance }

// Penalty returns the penalty of the masked frame f.  Lower is
// better.
func Penalty(f *Frame) int { return Penalties(f).Total() }

// Penalties returns the penalty of the masked frame f by rule.
func Penalties(f *Frame) PenaltyDetail {
	var p PenaltyDetail
	siz := f.Size
	dark := 0
	line := make([]bool, siz)
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			line[x] = f.Cells[y][x].Dark
			if line[x] {
				dark++
			}
			if x > 0 && y > 0 {
				c := line[x]
				if f.Cells[y][x-1].Dark == c && f.Cells[y-1][x].Dark == c &&
					f.Cells[y-1][x-1].Dark == c {
					p.Boxes += boxPP
				}
			}
		}
		p.Runs += runPenalty(line)
		p.Finders += finderPenalty(line)
	}
	for x := 0; x < siz; x++ {
		for y := 0; y < siz; y++ {
			line[y] = f.Cells[y][x].Dark
		}
		p.Runs += runPenalty(line)
		p.Finders += finderPenalty(line)
	}

	// floor(|100*dark/total - 50| / 5)
	total := siz * siz
	p.Balance = abs(dark*balPSteps-total*balPSteps/2) / total * balPP
	return p
}

// runPenalty returns the N1 penalty of a row or column.
func runPenalty(line []bool) int {
	p, r := 0, 1
	for i := 1; i < len(line); i++ {
		if line[i] == line[i-1] {
			r++
			continue
		}
		if r >= minRun {
			p += runPP + r - minRun
		}
		r = 1
	}
	if r >= minRun {
		p += runPP + r - minRun
	}
	return p
}

// finderPenalty returns the N3 penalty of a row or column.
func finderPenalty(line []bool) int {
	p := 0
	pat := 0       // last 7 modules, most recent lowest
	light := quiet // light modules before the last 7, counting the margin
	for i, dark := range line {
		if i >= 7 {
			if line[i-7] {
				light = 0
			} else {
				light++
			}
		}
		pat = (pat<<1 | b2i(dark)) & findMask
		if i < 6 || pat != findPat {
			continue
		}
		if light >= quiet || lightAfter(line[i+1:]) >= quiet {
			p += findPP
		}
	}
	return p
}

// lightAfter returns the number of leading light modules in line,
// counting the margin beyond its end.
func lightAfter(line []bool) int {
	for i, dark := range line {
		if dark {
			return i
		}
		if i+1 == quiet {
			return quiet
		}
	}
	return quiet
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
