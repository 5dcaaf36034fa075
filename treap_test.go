// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package omap

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbersTreap(opts ...TreapOption) *Treap[int, string] {
	m := NewTreap[int, string](opts...)
	m.Put(20, "Twenty")
	m.Put(10, "Ten")
	m.Put(30, "Thirty")
	m.Put(5, "Five")
	m.Put(25, "Twenty Five")
	return m
}

func keysOf[K, V any](entries []Entry[K, V]) []K {
	var keys []K
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestTreapNumbers(t *testing.T) {
	m := numbersTreap(WithSeed(7))
	require.NoError(t, m.Validate())
	assert.Equal(t, []int{5, 10, 20, 25, 30}, m.Keys())
	assert.Equal(t, 5, m.Len())
	assert.False(t, m.IsEmpty())

	v, ok := m.Get(25)
	assert.True(t, ok)
	assert.Equal(t, "Twenty Five", v)
	_, ok = m.Get(99)
	assert.False(t, ok)

	m.Put(10, "Updated")
	v, _ = m.Get(10)
	assert.Equal(t, "Updated", v)
	assert.Equal(t, 5, m.Len())

	v, ok = m.Remove(10)
	assert.True(t, ok)
	assert.Equal(t, "Updated", v)
	_, ok = m.Get(10)
	assert.False(t, ok)
	_, ok = m.Remove(99)
	assert.False(t, ok)
	assert.Equal(t, 4, m.Len())
	require.NoError(t, m.Validate())

	assert.True(t, m.ContainsKey(20))
	assert.False(t, m.ContainsKey(100))
	assert.True(t, m.ContainsValue("Thirty"))

	m.Clear()
	assert.True(t, m.IsEmpty())
	_, ok = m.FirstEntry()
	assert.False(t, ok)
	_, ok = m.LastEntry()
	assert.False(t, ok)
}

func TestTreapRemoveReturnsValue(t *testing.T) {
	m := numbersTreap()
	v, ok := m.Remove(10)
	assert.True(t, ok)
	assert.Equal(t, "Ten", v)
	_, ok = m.Get(10)
	assert.False(t, ok)
	_, ok = m.Remove(100)
	assert.False(t, ok)
}

func TestTreapOrderQueries(t *testing.T) {
	m := numbersTreap()

	e, ok := m.FirstEntry()
	require.True(t, ok)
	assert.Equal(t, Entry[int, string]{5, "Five"}, e)
	e, ok = m.LastEntry()
	require.True(t, ok)
	assert.Equal(t, Entry[int, string]{30, "Thirty"}, e)

	type query struct {
		name string
		f    func(int) (Entry[int, string], bool)
		key  int
		want int // -1 means absent
	}
	queries := []query{
		{"ceiling", m.CeilingEntry, 9, 10},
		{"ceiling", m.CeilingEntry, 20, 20},
		{"ceiling", m.CeilingEntry, 31, -1},
		{"floor", m.FloorEntry, 10, 10},
		{"floor", m.FloorEntry, 7, 5},
		{"floor", m.FloorEntry, 4, -1},
		{"lower", m.LowerEntry, 20, 10},
		{"lower", m.LowerEntry, 10, 5},
		{"lower", m.LowerEntry, 5, -1},
		{"higher", m.HigherEntry, 20, 25},
		{"higher", m.HigherEntry, 5, 10},
		{"higher", m.HigherEntry, 30, -1},
	}
	for _, q := range queries {
		e, ok := q.f(q.key)
		if q.want < 0 {
			assert.False(t, ok, "%s(%d) = %v", q.name, q.key, e)
			continue
		}
		if assert.True(t, ok, "%s(%d) absent", q.name, q.key) {
			assert.Equal(t, q.want, e.Key, "%s(%d)", q.name, q.key)
		}
	}

	assert.Equal(t, []int{10, 20, 25}, keysOf(m.SubMap(10, 26)))
	assert.Equal(t, []int{5, 10, 20, 25, 30}, keysOf(m.SubMap(0, 100)))
	assert.Empty(t, m.SubMap(10, 10))
	assert.Empty(t, m.SubMap(26, 10))
	assert.Equal(t, []int{30}, keysOf(m.SubMap(30, 31)))
}

// TestTreapOrderQueriesScan checks the order-statistics queries
// against a linear scan for present and absent keys.
func TestTreapOrderQueriesScan(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for range 20 {
		m := NewTreap[int, int](WithSource(rand.NewPCG(r.Uint64(), r.Uint64())))
		for range 30 {
			k := 2 * r.IntN(40) // even keys, so odd queries are absent
			m.Put(k, -k)
		}
		keys := m.Keys()
		scan := func(pred func(k int) bool, last bool) (int, bool) {
			var hit []int
			for _, k := range keys {
				if pred(k) {
					hit = append(hit, k)
				}
			}
			if len(hit) == 0 {
				return 0, false
			}
			if last {
				return hit[len(hit)-1], true
			}
			return hit[0], true
		}
		for q := -2; q <= 82; q++ {
			check := func(name string, got Entry[int, int], ok bool, want int, wok bool) {
				t.Helper()
				if ok != wok || ok && (got.Key != want || got.Value != -want) {
					t.Fatalf("%s(%d) = %v, %v, want %d, %v; keys %v", name, q, got, ok, want, wok, keys)
				}
			}
			e, ok := m.CeilingEntry(q)
			w, wok := scan(func(k int) bool { return k >= q }, false)
			check("CeilingEntry", e, ok, w, wok)
			e, ok = m.HigherEntry(q)
			w, wok = scan(func(k int) bool { return k > q }, false)
			check("HigherEntry", e, ok, w, wok)
			e, ok = m.FloorEntry(q)
			w, wok = scan(func(k int) bool { return k <= q }, true)
			check("FloorEntry", e, ok, w, wok)
			e, ok = m.LowerEntry(q)
			w, wok = scan(func(k int) bool { return k < q }, true)
			check("LowerEntry", e, ok, w, wok)

			for hi := q; hi <= q+10; hi++ {
				var want []int
				for _, k := range keys {
					if q <= k && k < hi {
						want = append(want, k)
					}
				}
				assert.Equal(t, want, keysOf(m.SubMap(q, hi)), "SubMap(%d, %d)", q, hi)
			}
		}
	}
}

func TestTreapHeapOrder(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 9))
	m := NewTreap[int, int](WithSeed(10))
	for i := range 2000 {
		k := r.IntN(500)
		if r.IntN(4) == 0 {
			m.Remove(k)
		} else {
			m.Put(k, i)
		}
		if i%100 == 0 {
			require.NoError(t, m.Validate())
		}
	}
	require.NoError(t, m.Validate())
}

func TestTreapSeedDeterminesShape(t *testing.T) {
	a := numbersTreap(WithSeed(42))
	b := numbersTreap(WithSeed(42))
	assert.Equal(t, a.Dump(), b.Dump())

	// Overwrites draw no priority, so they leave the shape alone
	// and do not advance the source.
	a.Put(10, "Ten")
	a.Put(11, "Eleven")
	b.Put(11, "Eleven")
	assert.Equal(t, a.Dump(), b.Dump())
}

func TestTreapSortedInput(t *testing.T) {
	const N = 1 << 14
	m := NewTreap[int, int](WithSeed(1))
	for i := range N {
		m.Put(i, i)
	}
	require.NoError(t, m.Validate())
	// Expected depth is about 3 ln N ≈ 29; a degenerate tree would be N deep.
	assert.Less(t, m.Depth(), 80)
	for i := range N {
		_, ok := m.Remove(i)
		require.True(t, ok)
	}
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Depth())
}

func TestTreapMerge(t *testing.T) {
	// Build (20 (10) (30)) by hand with 10 outranking 30.
	m := NewTreap[int, int]()
	m.root = &tnode[int, int]{key: 20, pri: 100,
		left:  &tnode[int, int]{key: 10, pri: 50, right: &tnode[int, int]{key: 15, pri: 5}},
		right: &tnode[int, int]{key: 30, pri: 40, left: &tnode[int, int]{key: 25, pri: 30}},
	}
	m.count = 5
	require.NoError(t, m.Validate())

	_, ok := m.Remove(20)
	require.True(t, ok)
	require.NoError(t, m.Validate())
	assert.Equal(t, "(10:0 nil (30:0 (25:0 (15:0 nil nil) nil) nil))", m.Dump())

	// Equal priorities: the right subtree wins.
	m = NewTreap[int, int]()
	m.root = &tnode[int, int]{key: 2, pri: 9,
		left:  &tnode[int, int]{key: 1, pri: 3},
		right: &tnode[int, int]{key: 3, pri: 3},
	}
	m.count = 3
	m.Remove(2)
	assert.Equal(t, "(3:0 (1:0 nil nil) nil)", m.Dump())
}

func TestTreapInvalidKey(t *testing.T) {
	m := NewTreapFunc[float64, int](lessCompare)
	m.Put(1, 1)
	m.Put(2, 2)
	nan := math.NaN()

	_, ok := m.CeilingEntry(nan)
	assert.False(t, ok)
	_, ok = m.FloorEntry(nan)
	assert.False(t, ok)
	assert.Nil(t, m.SubMap(nan, 3))
	_, ok = m.Remove(nan)
	assert.False(t, ok)

	assert.Panics(t, func() { m.Put(nan, 3) })
	defer func() {
		assert.True(t, merry.Is(recover().(error), ErrInvalidKey))
	}()
	m.Put(nan, 3)
}

func TestTreapNilCompare(t *testing.T) {
	assert.Panics(t, func() { NewTreapFunc[int, int](nil) })
}

func TestTreapValidateDetectsHeapViolation(t *testing.T) {
	m := NewTreap[int, int]()
	m.root = &tnode[int, int]{key: 2, pri: 1, left: &tnode[int, int]{key: 1, pri: 2}}
	m.count = 2
	err := m.Validate()
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrCorrupt))
}
