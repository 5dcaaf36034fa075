// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/NVIDIA/sortedmap"
	"github.com/ansel1/merry"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/trees/avltree"
	"github.com/google/btree"
	llrb "github.com/petar/GoLLRB/llrb"

	"github.com/treemaps/omap"
)

// A Mapper is the int-keyed ordered map interface the benchmarks drive.
type Mapper interface {
	Put(k, v int)
	Get(k int) (int, bool)
	Remove(k int)
	Keys() []int // increasing order
	Len() int
}

// ErrUnknownMap is returned by NewMapper.
var ErrUnknownMap = merry.New("unknown map implementation")

var mappers = map[string]func(seed uint64) Mapper{
	"avl": func(uint64) Mapper {
		return omapMapper{omap.NewAVL[int, int]()}
	},
	"treap": func(seed uint64) Mapper {
		return omapMapper{omap.NewTreap[int, int](omap.WithSeed(seed))}
	},
	"btree": func(uint64) Mapper {
		return btreeMapper{btree.NewG(32, func(a, b btreeItem) bool { return a.k < b.k })}
	},
	"gods-rbtree": func(uint64) Mapper {
		return godsTreeMap{treemap.NewWithIntComparator()}
	},
	"gods-avl": func(uint64) Mapper {
		return godsAVL{avltree.NewWithIntComparator()}
	},
	"gollrb": func(uint64) Mapper {
		return gollrbMapper{llrb.New()}
	},
	"sortedmap-llrb": func(uint64) Mapper {
		return sortedmapMapper{sortedmap.NewLLRBTree(sortedmap.CompareInt, intDumper{})}
	},
	"builtin": func(uint64) Mapper {
		return builtinMapper{}
	},
}

// MapNames lists the names accepted by NewMapper, the two omap engines first.
func MapNames() []string {
	names := []string{"avl", "treap"}
	var rest []string
	for name := range mappers {
		if name != "avl" && name != "treap" {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// NewMapper returns an empty map of the named implementation.
// Randomized implementations draw from a source seeded with seed.
func NewMapper(name string, seed uint64) (Mapper, error) {
	f, ok := mappers[name]
	if !ok {
		return nil, ErrUnknownMap.Here().Appendf("%q", name).WithValue("map", name)
	}
	return f(seed), nil
}

type omapMapper struct {
	m omap.Map[int, int]
}

func (m omapMapper) Put(k, v int)          { m.m.Put(k, v) }
func (m omapMapper) Get(k int) (int, bool) { return m.m.Get(k) }
func (m omapMapper) Remove(k int)          { m.m.Remove(k) }
func (m omapMapper) Keys() []int           { return m.m.Keys() }
func (m omapMapper) Len() int              { return m.m.Len() }

type btreeItem struct{ k, v int }

type btreeMapper struct {
	t *btree.BTreeG[btreeItem]
}

func (m btreeMapper) Put(k, v int) { m.t.ReplaceOrInsert(btreeItem{k, v}) }
func (m btreeMapper) Remove(k int) { m.t.Delete(btreeItem{k: k}) }
func (m btreeMapper) Len() int     { return m.t.Len() }

func (m btreeMapper) Get(k int) (int, bool) {
	it, ok := m.t.Get(btreeItem{k: k})
	return it.v, ok
}

func (m btreeMapper) Keys() []int {
	keys := make([]int, 0, m.t.Len())
	m.t.Ascend(func(it btreeItem) bool {
		keys = append(keys, it.k)
		return true
	})
	return keys
}

type godsTreeMap struct {
	m *treemap.Map
}

func (m godsTreeMap) Put(k, v int) { m.m.Put(k, v) }
func (m godsTreeMap) Remove(k int) { m.m.Remove(k) }
func (m godsTreeMap) Len() int     { return m.m.Size() }
func (m godsTreeMap) Keys() []int  { return ints(m.m.Keys()) }

func (m godsTreeMap) Get(k int) (int, bool) {
	v, ok := m.m.Get(k)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

type godsAVL struct {
	t *avltree.Tree
}

func (m godsAVL) Put(k, v int) { m.t.Put(k, v) }
func (m godsAVL) Remove(k int) { m.t.Remove(k) }
func (m godsAVL) Len() int     { return m.t.Size() }
func (m godsAVL) Keys() []int  { return ints(m.t.Keys()) }

func (m godsAVL) Get(k int) (int, bool) {
	v, ok := m.t.Get(k)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

func ints(xs []interface{}) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[i] = x.(int)
	}
	return out
}

type llrbItem struct{ k, v int }

func (a llrbItem) Less(than llrb.Item) bool { return a.k < than.(llrbItem).k }

type gollrbMapper struct {
	t *llrb.LLRB
}

func (m gollrbMapper) Put(k, v int) { m.t.ReplaceOrInsert(llrbItem{k, v}) }
func (m gollrbMapper) Remove(k int) { m.t.Delete(llrbItem{k: k}) }
func (m gollrbMapper) Len() int     { return m.t.Len() }

func (m gollrbMapper) Get(k int) (int, bool) {
	it := m.t.Get(llrbItem{k: k})
	if it == nil {
		return 0, false
	}
	return it.(llrbItem).v, true
}

func (m gollrbMapper) Keys() []int {
	keys := make([]int, 0, m.t.Len())
	if m.t.Len() == 0 {
		return keys
	}
	m.t.AscendGreaterOrEqual(m.t.Min(), func(it llrb.Item) bool {
		keys = append(keys, it.(llrbItem).k)
		return true
	})
	return keys
}

// intDumper formats keys and values for sortedmap's Dump.
type intDumper struct{}

func (intDumper) DumpKey(key sortedmap.Key) (string, error) {
	return strconv.Itoa(key.(int)), nil
}

func (intDumper) DumpValue(value sortedmap.Value) (string, error) {
	return fmt.Sprint(value), nil
}

// sortedmapMapper adapts sortedmap's LLRB tree. Its methods only fail
// on comparator errors, which CompareInt cannot produce for int keys,
// so errors are treated as bugs.
type sortedmapMapper struct {
	t sortedmap.LLRBTree
}

func must(err error) {
	if err != nil {
		panic(merry.Wrap(err))
	}
}

func (m sortedmapMapper) Put(k, v int) {
	ok, err := m.t.Put(k, v)
	must(err)
	if !ok {
		_, err = m.t.PatchByKey(k, v)
		must(err)
	}
}

func (m sortedmapMapper) Get(k int) (int, bool) {
	v, ok, err := m.t.GetByKey(k)
	must(err)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

func (m sortedmapMapper) Remove(k int) {
	_, err := m.t.DeleteByKey(k)
	must(err)
}

func (m sortedmapMapper) Len() int {
	n, err := m.t.Len()
	must(err)
	return n
}

func (m sortedmapMapper) Keys() []int {
	n := m.Len()
	keys := make([]int, 0, n)
	for i := range n {
		k, _, ok, err := m.t.GetByIndex(i)
		must(err)
		if ok {
			keys = append(keys, k.(int))
		}
	}
	return keys
}

// builtinMapper is a Go map that sorts its keys on demand,
// the baseline every tree has to beat on traversal-light workloads.
type builtinMapper map[int]int

func (m builtinMapper) Put(k, v int) { m[k] = v }
func (m builtinMapper) Remove(k int) { delete(m, k) }
func (m builtinMapper) Len() int     { return len(m) }

func (m builtinMapper) Get(k int) (int, bool) {
	v, ok := m[k]
	return v, ok
}

func (m builtinMapper) Keys() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
