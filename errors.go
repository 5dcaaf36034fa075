// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package omap

import "github.com/ansel1/merry"

// Errors reported by the maps.
// Use merry.Is (or errors.Is) to match them; the returned errors carry
// a stack trace captured where the problem was detected.
var (
	// ErrInvalidKey is the panic value of Put when a key does not
	// compare equal to itself and so cannot be ordered.
	ErrInvalidKey = merry.New("omap: key is not order-comparable")

	// ErrNilCompare is the panic value of NewAVLFunc and NewTreapFunc
	// when they are given a nil comparison function.
	ErrNilCompare = merry.New("omap: nil comparison function")

	// ErrCorrupt is returned by Validate when an invariant does not hold.
	ErrCorrupt = merry.New("omap: corrupt tree")
)

func invalidKey(key any) error {
	return ErrInvalidKey.Here().Appendf("%v", key).WithValue("key", key)
}

func corrupt(format string, args ...any) error {
	return ErrCorrupt.Here().Appendf(format, args...)
}
