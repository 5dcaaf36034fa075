// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package omap

import (
	"math/rand/v2"
	"slices"
	"testing"
)

var maps = []struct {
	name string
	new  func() Map[int, int]
}{
	{"avl", func() Map[int, int] { return NewAVL[int, int]() }},
	{"treap", func() Map[int, int] { return NewTreap[int, int](WithSeed(1)) }},
}

type validator interface {
	Validate() error
	Dump() string
}

func validate(t *testing.T, m Map[int, int]) {
	t.Helper()
	v := m.(validator)
	if err := v.Validate(); err != nil {
		t.Fatalf("%v\n%s", err, v.Dump())
	}
}

func Test(t *testing.T) {
	for _, mm := range maps {
		t.Run(mm.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			for range 10 {
				const N = 10
				tr := mm.new()
				perm := r.Perm(N)
				inv := make([]int, N)
				for i, x := range perm {
					tr.Put(x, i)
					inv[x] = i
					validate(t, tr)
				}

				for i, x := range perm {
					v, ok := tr.Get(x)
					if v != i || !ok {
						t.Errorf("Get(%d) = %d, %v, want %d, true", x, v, ok, i)
					}
				}

				var all []int
				for k, v := range tr.All() {
					if v != inv[k] {
						t.Errorf("All() returned %d, %d want %d, %d", k, v, k, inv[k])
					}
					all = append(all, k)
					if len(all) > N+5 {
						break
					}
				}
				if !match(all, 0, N-1) {
					t.Errorf("All() = %v, want 0..%d", all, N-1)
				}

				for i, x := range perm {
					v, ok := tr.Remove(x)
					if v != i || !ok {
						t.Errorf("Remove(%d) = %d, %v, want %d, true", x, v, ok, i)
					}
					validate(t, tr)
					want := slices.Clone(perm[i+1:])
					slices.Sort(want)
					if list := tr.Keys(); !slices.Equal(list, want) {
						t.Errorf("after Remove %v, Keys() = %v, want %v", perm[:i+1], list, want)
					}
					if tr.Len() != N-i-1 {
						t.Errorf("after Remove %v, Len() = %d, want %d", perm[:i+1], tr.Len(), N-i-1)
					}
				}
				if !tr.IsEmpty() {
					t.Errorf("IsEmpty() = false after removing everything")
				}
			}
		})
	}
}

// TestRandomOps applies a long random mix of puts and removes
// and checks every map against a builtin map after each step.
func TestRandomOps(t *testing.T) {
	for _, mm := range maps {
		t.Run(mm.name, func(t *testing.T) {
			const N = 200
			r := rand.New(rand.NewPCG(3, 4))
			tr := mm.new()
			ref := make(map[int]int)
			for i := range 5000 {
				k := r.IntN(N)
				if r.IntN(3) == 0 {
					v, ok := tr.Remove(k)
					rv, rok := ref[k]
					if v != rv || ok != rok {
						t.Fatalf("step %d: Remove(%d) = %d, %v, want %d, %v", i, k, v, ok, rv, rok)
					}
					delete(ref, k)
				} else {
					if v := tr.Put(k, i); v != i {
						t.Fatalf("step %d: Put(%d, %d) = %d", i, k, i, v)
					}
					ref[k] = i
				}
				if tr.Len() != len(ref) {
					t.Fatalf("step %d: Len() = %d, want %d", i, tr.Len(), len(ref))
				}
				if i%50 == 0 {
					validate(t, tr)
				}
			}
			validate(t, tr)

			keys := tr.Keys()
			for i := 1; i < len(keys); i++ {
				if keys[i-1] >= keys[i] {
					t.Fatalf("Keys() not increasing at %d: %v", i, keys)
				}
			}
			vals := tr.Values()
			for i, k := range keys {
				if vals[i] != ref[k] {
					t.Errorf("Values()[%d] = %d, want %d", i, vals[i], ref[k])
				}
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	for _, mm := range maps {
		t.Run(mm.name, func(t *testing.T) {
			tr := mm.new()
			for i := range 5 {
				tr.Put(i, i*i)
			}
			keys := tr.Keys()
			entries := tr.Entries()
			seq := tr.All()
			tr.Remove(2)
			tr.Put(7, 49)
			if !match(keys, 0, 4) {
				t.Errorf("Keys() changed after mutation: %v", keys)
			}
			if len(entries) != 5 || entries[2] != (Entry[int, int]{2, 4}) {
				t.Errorf("Entries() changed after mutation: %v", entries)
			}
			var got []int
			for k := range seq {
				got = append(got, k)
			}
			if !match(got, 0, 4) {
				t.Errorf("All() saw mutation: %v", got)
			}
		})
	}
}

func TestPutAll(t *testing.T) {
	for _, mm := range maps {
		t.Run(mm.name, func(t *testing.T) {
			src := NewAVL[int, int]()
			for i := range 20 {
				src.Put(i, -i)
			}
			tr := mm.new()
			tr.Put(3, 100)
			tr.PutAll(src.All())
			if tr.Len() != 20 {
				t.Fatalf("Len() = %d, want 20", tr.Len())
			}
			if v, _ := tr.Get(3); v != -3 {
				t.Errorf("Get(3) = %d, want -3", v)
			}
			validate(t, tr)
		})
	}
}

func match(xs []int, lo, hi int) bool {
	if len(xs) != hi+1-lo {
		return false
	}
	for i, x := range xs {
		if x != lo+i {
			return false
		}
	}
	return true
}
