// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package omap

import (
	"bytes"
	"cmp"
	"fmt"
	"iter"
	"math/rand/v2"
)

// A Treap is an ordered map stored as a treap: a binary search tree
// on keys that is also a max-heap on random per-node priorities.
// The random priorities give the tree the shape of a randomly built
// binary search tree, so operations take O(log n) expected time.
type Treap[K, V any] struct {
	root  *tnode[K, V]
	count int
	cmp   func(K, K) int
	src   rand.Source // nil means the math/rand/v2 top-level generator

	path []**tnode[K, V]
}

// A tnode is a node in the treap.
type tnode[K, V any] struct {
	left  *tnode[K, V]
	right *tnode[K, V]
	pri   uint64
	key   K
	val   V
}

// A TreapOption configures a Treap.
type TreapOption func(*treapConfig)

type treapConfig struct {
	src rand.Source
}

// WithSource makes the treap draw node priorities from src.
// Two treaps given identically seeded sources and the same sequence
// of operations have the same shape.
func WithSource(src rand.Source) TreapOption {
	return func(c *treapConfig) { c.src = src }
}

// WithSeed is shorthand for WithSource(rand.NewPCG(seed, seed)).
func WithSeed(seed uint64) TreapOption {
	return WithSource(rand.NewPCG(seed, seed))
}

// NewTreap returns an empty Treap ordered by K's standard Go ordering.
func NewTreap[K cmp.Ordered, V any](opts ...TreapOption) *Treap[K, V] {
	return newTreap[K, V](cmp.Compare[K], opts)
}

// NewTreapFunc returns an empty Treap ordered by cmp,
// which must return a negative number when a < b,
// zero when a == b and a positive number when a > b.
func NewTreapFunc[K, V any](cmp func(K, K) int, opts ...TreapOption) *Treap[K, V] {
	if cmp == nil {
		panic(ErrNilCompare.Here())
	}
	return newTreap[K, V](cmp, opts)
}

func newTreap[K, V any](cmp func(K, K) int, opts []TreapOption) *Treap[K, V] {
	var c treapConfig
	for _, opt := range opts {
		opt(&c)
	}
	return &Treap[K, V]{cmp: cmp, src: c.src}
}

func (t *Treap[K, V]) priority() uint64 {
	if t.src == nil {
		return rand.Uint64()
	}
	return t.src.Uint64()
}

func (t *Treap[K, V]) valid(key K) bool {
	return t.cmp(key, key) == 0
}

// rotateLeft rotates the subtree rooted at node x,
// turning (x a (y b c)) into (y (x a b) c), and returns y.
func (x *tnode[K, V]) rotateLeft() *tnode[K, V] {
	y := x.right
	x.right = y.left
	y.left = x
	return y
}

// rotateRight rotates the subtree rooted at node y,
// turning (y (x a b) c) into (x a (y b c)), and returns x.
func (y *tnode[K, V]) rotateRight() *tnode[K, V] {
	x := y.left
	y.left = x.right
	x.right = y
	return x
}

// Put sets t[key] = val and returns val.
// Put panics with ErrInvalidKey if key does not compare equal to itself.
func (t *Treap[K, V]) Put(key K, val V) V {
	if !t.valid(key) {
		panic(invalidKey(key))
	}
	t.path = t.path[:0]
	pos := &t.root
	for x := *pos; x != nil; x = *pos {
		c := t.cmp(key, x.key)
		if c == 0 {
			x.val = val
			return val
		}
		t.path = append(t.path, pos)
		if c < 0 {
			pos = &x.left
		} else {
			pos = &x.right
		}
	}
	x := &tnode[K, V]{key: key, val: val, pri: t.priority()}
	*pos = x
	t.count++
	t.rotateUp(x)
	return val
}

// rotateUp rotates the new node x up along t.path
// until its parent's priority is at least its own.
// The rest of the tree was heap-ordered before x arrived,
// so no rotation is needed above the first dominating parent.
func (t *Treap[K, V]) rotateUp(x *tnode[K, V]) {
	for i := len(t.path) - 1; i >= 0; i-- {
		pos := t.path[i]
		p := *pos
		if p.pri >= x.pri {
			break
		}
		if p.left == x {
			*pos = p.rotateRight()
		} else {
			*pos = p.rotateLeft()
		}
	}
	clear(t.path)
	t.path = t.path[:0]
}

// Get returns t[key] and whether key was present.
func (t *Treap[K, V]) Get(key K) (val V, ok bool) {
	x := t.get(key)
	if x == nil {
		return
	}
	return x.val, true
}

func (t *Treap[K, V]) get(key K) *tnode[K, V] {
	if t == nil || !t.valid(key) {
		return nil
	}
	x := t.root
	for x != nil {
		c := t.cmp(key, x.key)
		if c == 0 {
			return x
		}
		if c < 0 {
			x = x.left
		} else {
			x = x.right
		}
	}
	return nil
}

// Remove deletes t[key] and returns the value it held.
func (t *Treap[K, V]) Remove(key K) (val V, ok bool) {
	if !t.valid(key) {
		return
	}
	pos := &t.root
	for x := *pos; x != nil; x = *pos {
		c := t.cmp(key, x.key)
		if c == 0 {
			merge(pos, x.left, x.right)
			t.count--
			return x.val, true
		}
		if c < 0 {
			pos = &x.left
		} else {
			pos = &x.right
		}
	}
	return
}

// merge stores into *pos the union of the heap-ordered treaps l and r,
// all of whose keys in l are less than those in r.
// The root with the higher priority becomes the merged root
// and the other treap merges into its inner child slot;
// ties go to r.
func merge[K, V any](pos **tnode[K, V], l, r *tnode[K, V]) {
	for {
		switch {
		case l == nil:
			*pos = r
			return
		case r == nil:
			*pos = l
			return
		case l.pri > r.pri:
			*pos = l
			pos, l = &l.right, l.right
		default:
			*pos = r
			pos, r = &r.left, r.left
		}
	}
}

// ContainsKey reports whether key is present in t.
func (t *Treap[K, V]) ContainsKey(key K) bool {
	return t.get(key) != nil
}

// ContainsValue reports whether some key maps to a value equal to val.
func (t *Treap[K, V]) ContainsValue(val V) bool {
	return t.ContainsValueFunc(func(v V) bool { return valueEqual(v, val) })
}

// ContainsValueFunc reports whether match returns true for some value,
// visiting values in key order and stopping at the first match.
func (t *Treap[K, V]) ContainsValueFunc(match func(V) bool) bool {
	found := false
	t.root.walk(func(x *tnode[K, V]) bool {
		found = match(x.val)
		return !found
	})
	return found
}

// PutAll calls t.Put(k, v) for each pair produced by seq.
func (t *Treap[K, V]) PutAll(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		t.Put(k, v)
	}
}

// Clear removes all entries from t.
func (t *Treap[K, V]) Clear() {
	t.root = nil
	t.count = 0
}

// Len returns the number of entries in t.
func (t *Treap[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

func (t *Treap[K, V]) IsEmpty() bool {
	return t.Len() == 0
}

func (x *tnode[K, V]) walk(f func(*tnode[K, V]) bool) bool {
	if x == nil {
		return true
	}
	return x.left.walk(f) && f(x) && x.right.walk(f)
}

func (x *tnode[K, V]) entry() Entry[K, V] {
	return Entry[K, V]{x.key, x.val}
}

// Keys returns the keys of t in increasing order.
func (t *Treap[K, V]) Keys() []K {
	keys := make([]K, 0, t.Len())
	t.root.walk(func(x *tnode[K, V]) bool {
		keys = append(keys, x.key)
		return true
	})
	return keys
}

// Values returns the values of t in key order.
func (t *Treap[K, V]) Values() []V {
	vals := make([]V, 0, t.Len())
	t.root.walk(func(x *tnode[K, V]) bool {
		vals = append(vals, x.val)
		return true
	})
	return vals
}

// Entries returns the entries of t in key order.
func (t *Treap[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, t.Len())
	t.root.walk(func(x *tnode[K, V]) bool {
		entries = append(entries, x.entry())
		return true
	})
	return entries
}

// All returns an iterator over the entries of t in key order.
// The entries are copied when All is called;
// later changes to t are not visible to the iterator.
func (t *Treap[K, V]) All() iter.Seq2[K, V] {
	return snapshot(t.Entries())
}

// Depth returns the height of the tree, 0 for an empty tree.
func (t *Treap[K, V]) Depth() int {
	return t.root.depth()
}

func (x *tnode[K, V]) depth() int {
	if x == nil {
		return 0
	}
	return 1 + max(x.left.depth(), x.right.depth())
}

// Validate checks the ordering and heap invariants of t
// and that Len matches the number of nodes.
// It returns an error wrapping ErrCorrupt if one does not hold.
func (t *Treap[K, V]) Validate() error {
	n, err := t.check(t.root, nil, nil)
	if err != nil {
		return err
	}
	if n != t.count {
		return corrupt("count %d, found %d nodes", t.count, n)
	}
	return nil
}

func (t *Treap[K, V]) check(x *tnode[K, V], lo, hi *K) (int, error) {
	if x == nil {
		return 0, nil
	}
	if lo != nil && t.cmp(x.key, *lo) <= 0 || hi != nil && t.cmp(x.key, *hi) >= 0 {
		return 0, corrupt("key %v out of order", x.key)
	}
	for _, c := range []*tnode[K, V]{x.left, x.right} {
		if c != nil && c.pri > x.pri {
			return 0, corrupt("key %v: child %v has higher priority", x.key, c.key)
		}
	}
	nl, err := t.check(x.left, lo, &x.key)
	if err != nil {
		return 0, err
	}
	nr, err := t.check(x.right, &x.key, hi)
	if err != nil {
		return 0, err
	}
	return nl + 1 + nr, nil
}

// Dump returns the tree structure as nested (key:val left right) lists.
func (t *Treap[K, V]) Dump() string {
	var buf bytes.Buffer
	var walk func(*tnode[K, V])
	walk = func(x *tnode[K, V]) {
		if x == nil {
			fmt.Fprintf(&buf, "nil")
			return
		}
		fmt.Fprintf(&buf, "(%v:%v ", x.key, x.val)
		walk(x.left)
		fmt.Fprintf(&buf, " ")
		walk(x.right)
		fmt.Fprintf(&buf, ")")
	}
	walk(t.root)
	return buf.String()
}
