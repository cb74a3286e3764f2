// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qrenc_test

import (
	"fmt"
	"os"

	"github.com/unixdj/qrenc"
)

func ExampleEncode() {
	c, err := qrenc.Encode("HELLO WORLD", qrenc.Q, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Printf("version %v-%v, %dx%d modules\n", c.Version, c.Level, c.Size, c.Size)
	fmt.Println(c.Bounds())
	// Output:
	// version 1-Q, 21x21 modules
	// (0,0)-(232,232)
}

func ExampleEncode_options() {
	opts := &qrenc.Options{
		Version:   5,
		Mask:      3,
		ForceMask: true,
		Hint:      qrenc.UTF8Kanji,
		ECI:       qrenc.UTF8ECI,
	}
	c, err := qrenc.Encode("点茗", qrenc.H, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Printf("version %v-%v, mask %d\n", c.Version, c.Level, c.Mask)
	// Output:
	// version 5-H, mask 3
}
