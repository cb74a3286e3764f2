// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"github.com/unixdj/qrenc/gf256"
)

// A Block is a Reed-Solomon block: data codewords and their check
// codewords.
type Block struct {
	Data []byte
	ECC  []byte
}

// ECC splits the data codewords into blocks as described by bs,
// computes the check codewords of each block using generators from
// cache, and returns the blocks and the interleaved codeword sequence.
// A nil cache is valid.
func ECC(data []byte, bs BlockSpec, cache *gf256.Cache) ([]Block, []byte, error) {
	nb := bs.Blocks()
	switch {
	case nb == 0 || bs.Data1 <= 0 || bs.ECC < 0:
		return nil, nil, InternalError(fmt.Sprintf("bad block structure %+v", bs))
	case len(data) != bs.DataCodewords():
		return nil, nil, InternalError(fmt.Sprintf(
			"have %d data codewords, want %d", len(data), bs.DataCodewords()))
	}
	total := len(data) + nb*bs.ECC
	out := make([]byte, total)
	check := out[len(data):]
	blocks := make([]Block, nb)
	db := bs.Data1
	for i := range blocks {
		if i == bs.Count1 {
			db = bs.Data2
		}
		g, err := cache.Generator(gf256.QR(bs.ECC, db))
		if err != nil {
			return nil, nil, InternalError(err.Error())
		}
		b := &blocks[i]
		b.Data, data = append([]byte(nil), data[:db]...), data[db:]
		b.ECC = make([]byte, bs.ECC)
		g.ECC(b.Data, b.ECC)
	}
	interleave(out[:total-len(check)], blocks, func(b *Block) []byte { return b.Data })
	interleave(check, blocks, func(b *Block) []byte { return b.ECC })
	return blocks, out, nil
}

// interleave writes to dst codeword 0 of every block, then codeword 1
// of every block and so on, skipping blocks that are too short.
// Only the last blocks may be longer than the first.
func interleave(dst []byte, blocks []Block, part func(*Block) []byte) {
	n := 0
	for j := 0; n < len(dst); j++ {
		for i := range blocks {
			if p := part(&blocks[i]); j < len(p) {
				dst[n] = p[j]
				n++
			}
		}
	}
}
