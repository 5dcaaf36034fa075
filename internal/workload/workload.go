// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workload generates the key sequences fed to the benchmarks.
package workload

import (
	"math/rand/v2"
	"strings"

	"github.com/ansel1/merry"
	"golang.org/x/exp/constraints"
)

// A Pattern names a way of ordering the keys 0..n-1.
type Pattern string

const (
	Random       Pattern = "random"       // uniform random permutation
	Sorted       Pattern = "sorted"       // 0, 1, ..., n-1
	Reverse      Pattern = "reverse"      // n, n-1, ..., 1
	Partial      Pattern = "partial"      // sorted, last tenth replaced by n+i
	NearlySorted Pattern = "nearlySorted" // sorted with n/10 random swaps
)

// Patterns lists every known pattern.
var Patterns = []Pattern{Random, Sorted, Reverse, Partial, NearlySorted}

// ErrUnknownPattern is returned by ParsePattern.
var ErrUnknownPattern = merry.New("unknown workload pattern")

// ParsePattern returns the pattern named s, ignoring case.
func ParsePattern(s string) (Pattern, error) {
	for _, p := range Patterns {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", ErrUnknownPattern.Here().Appendf("%q", s).WithValue("pattern", s)
}

// Generate returns n keys in pattern p, drawing randomness from r.
// Partial and Reverse sequences contain keys outside 0..n-1;
// no pattern repeats a key.
func Generate[T constraints.Integer](n int, p Pattern, r *rand.Rand) []T {
	data := make([]T, n)
	for i := range data {
		data[i] = T(i)
	}
	switch p {
	case Random:
		r.Shuffle(n, func(i, j int) { data[i], data[j] = data[j], data[i] })
	case Reverse:
		for i := range data {
			data[i] = T(n - i)
		}
	case Partial:
		for i := n - n/10; i < n; i++ {
			data[i] = T(n + i)
		}
	case NearlySorted:
		for range n / 10 {
			a, b := r.IntN(n), r.IntN(n)
			data[a], data[b] = data[b], data[a]
		}
	}
	return data
}
