// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
)

// NumMasks is the number of mask patterns.
const NumMasks = 8

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
//	   ███   ███         ▄▄▄▄▄ ▄▄▄▄▄        ▄▄▄   ▄▄▄     ▄█▄▀ ▀▄█▄▀ ▀
//	      ███   ███      █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	   ███   ███         ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFuncs = [NumMasks]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// MaskFunc returns the function of mask pattern id, reporting whether
// the module at column x, row y is inverted.  MaskFunc returns nil
// for ids outside 0 to 7.
func MaskFunc(id int) func(x, y int) bool {
	if id < 0 || id >= NumMasks {
		return nil
	}
	return maskFuncs[id]
}

// Apply returns a copy of f with mask pattern mask applied to the data
// modules and the format information for level l and the mask written.
func (f *Frame) Apply(mask int, l Level) (*Frame, error) {
	fb, err := FormatBits(l, mask)
	if err != nil {
		return nil, err
	}
	inv := maskFuncs[mask]
	g := f.Clone()
	for y, row := range g.Cells {
		for x := range row {
			if c := &row[x]; !c.Function && inv(x, y) {
				c.Dark = !c.Dark
			}
		}
	}
	g.placeFormat(fb)
	return g, nil
}

// MaskOptions controls mask selection.
type MaskOptions struct {
	// Mask is the mask pattern used if Force is set.
	Mask  int
	Force bool

	// If Sample is between 1 and 7, only Sample mask patterns chosen
	// pseudo-randomly using Seed are evaluated.  The choice depends
	// only on Seed and Sample.
	Sample int
	Seed   uint64

	Logger *zap.Logger // nil means no logging
}

// Candidates returns the mask patterns evaluated under o, in
// ascending order.
func (o *MaskOptions) Candidates() ([]int, error) {
	switch {
	case o.Force:
		if o.Mask < 0 || o.Mask >= NumMasks {
			return nil, &ParamError{"mask", o.Mask}
		}
		return []int{o.Mask}, nil
	case o.Sample < 0 || o.Sample > NumMasks:
		return nil, &ParamError{"mask sample size", o.Sample}
	case o.Sample == 0 || o.Sample == NumMasks:
		return []int{0, 1, 2, 3, 4, 5, 6, 7}, nil
	}
	r := rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))
	ids := r.Perm(NumMasks)[:o.Sample]
	slices.Sort(ids)
	return ids, nil
}

// SelectMask applies the candidate masks to the unmasked frame f and
// returns the masked frame with the lowest penalty, its mask pattern
// and penalty.  Ties go to the lowest mask pattern.
func SelectMask(f *Frame, l Level, o MaskOptions) (*Frame, int, int, error) {
	ids, err := o.Candidates()
	if err != nil {
		return nil, 0, 0, err
	}
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	var (
		best     *Frame
		bestMask = -1
		bestPen  int
	)
	for _, id := range ids {
		g, err := f.Apply(id, l)
		if err != nil {
			return nil, 0, 0, err
		}
		p := Penalty(g)
		log.Debug("mask penalty", zap.Int("mask", id), zap.Int("penalty", p))
		if best == nil || p < bestPen {
			best, bestMask, bestPen = g, id, p
		}
	}
	log.Debug("mask selected", zap.Int("mask", bestMask),
		zap.Int("penalty", bestPen), zap.Int("candidates", len(ids)))
	return best, bestMask, bestPen, nil
}
