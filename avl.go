// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package omap

import (
	"bytes"
	"cmp"
	"fmt"
	"iter"
)

// An AVL is an ordered map stored as a height-balanced binary search tree:
// the heights of every node's two subtrees differ by at most one,
// so Put, Get and Remove take O(log n) time in the worst case.
type AVL[K, V any] struct {
	root  *anode[K, V]
	count int
	cmp   func(K, K) int

	// path holds the child slots visited by the current Put or Remove,
	// root slot first. Reused between calls.
	path []**anode[K, V]
}

// An anode is a node in the AVL tree.
type anode[K, V any] struct {
	left   *anode[K, V]
	right  *anode[K, V]
	height int
	key    K
	val    V
}

// NewAVL returns an empty AVL ordered by K's standard Go ordering.
func NewAVL[K cmp.Ordered, V any]() *AVL[K, V] {
	return &AVL[K, V]{cmp: cmp.Compare[K]}
}

// NewAVLFunc returns an empty AVL ordered by cmp,
// which must return a negative number when a < b,
// zero when a == b and a positive number when a > b.
func NewAVLFunc[K, V any](cmp func(K, K) int) *AVL[K, V] {
	if cmp == nil {
		panic(ErrNilCompare.Here())
	}
	return &AVL[K, V]{cmp: cmp}
}

func (n *anode[K, V]) safeHeight() int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *anode[K, V]) setHeight() {
	n.height = 1 + max(n.left.safeHeight(), n.right.safeHeight())
}

// bal returns the balance factor of n: left height minus right height.
func (n *anode[K, V]) bal() int {
	if n == nil {
		return 0
	}
	return n.left.safeHeight() - n.right.safeHeight()
}

// rotateRight rotates the subtree rooted at node y,
// turning (y (x a b) c) into (x a (y b c)), and returns x.
func rotateRight[K, V any](y *anode[K, V]) *anode[K, V] {
	x := y.left
	y.left = x.right
	x.right = y
	y.setHeight()
	x.setHeight()
	return x
}

// rotateLeft rotates the subtree rooted at node x,
// turning (x a (y b c)) into (y (x a b) c), and returns y.
func rotateLeft[K, V any](x *anode[K, V]) *anode[K, V] {
	y := x.right
	x.right = y.left
	y.left = x
	x.setHeight()
	y.setHeight()
	return y
}

// rebalance recomputes n's height, restores the balance invariant at n
// and returns the new root of the subtree.
// Both subtrees of n must already be balanced.
func rebalance[K, V any](n *anode[K, V]) *anode[K, V] {
	n.setHeight()
	switch b := n.bal(); {
	case b > 1:
		if n.left.bal() < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case b < -1:
		if n.right.bal() > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

// rebalancePath rebalances every slot recorded in t.path, deepest first.
// Each slot lives in a node above the one it holds,
// so rotations below a slot never move the slot itself.
func (t *AVL[K, V]) rebalancePath() {
	for i := len(t.path) - 1; i >= 0; i-- {
		pos := t.path[i]
		*pos = rebalance(*pos)
		t.path[i] = nil
	}
	t.path = t.path[:0]
}

func (t *AVL[K, V]) valid(key K) bool {
	return t.cmp(key, key) == 0
}

// Put sets t[key] = val and returns val.
// Put panics with ErrInvalidKey if key does not compare equal to itself.
func (t *AVL[K, V]) Put(key K, val V) V {
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
	*pos = &anode[K, V]{key: key, val: val, height: 1}
	t.count++
	t.rebalancePath()
	return val
}

// Get returns t[key] and whether key was present.
func (t *AVL[K, V]) Get(key K) (val V, ok bool) {
	x := t.get(key)
	if x == nil {
		return
	}
	return x.val, true
}

func (t *AVL[K, V]) get(key K) *anode[K, V] {
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
func (t *AVL[K, V]) Remove(key K) (val V, ok bool) {
	if !t.valid(key) {
		return
	}
	t.path = t.path[:0]
	pos := &t.root
	for x := *pos; x != nil; x = *pos {
		c := t.cmp(key, x.key)
		if c == 0 {
			break
		}
		t.path = append(t.path, pos)
		if c < 0 {
			pos = &x.left
		} else {
			pos = &x.right
		}
	}

	x := *pos
	if x == nil {
		clear(t.path)
		t.path = t.path[:0]
		return
	}
	val = x.val
	switch {
	case x.left == nil:
		*pos = x.right
	case x.right == nil:
		*pos = x.left
	default:
		// x takes over its in-order successor's content,
		// and the successor node is unlinked instead.
		t.path = append(t.path, pos)
		spos := &x.right
		for (*spos).left != nil {
			t.path = append(t.path, spos)
			spos = &(*spos).left
		}
		s := *spos
		x.key, x.val = s.key, s.val
		*spos = s.right
	}
	t.count--
	t.rebalancePath()
	return val, true
}

// ContainsKey reports whether key is present in t.
func (t *AVL[K, V]) ContainsKey(key K) bool {
	return t.get(key) != nil
}

// ContainsValue reports whether some key maps to a value equal to val.
func (t *AVL[K, V]) ContainsValue(val V) bool {
	return t.ContainsValueFunc(func(v V) bool { return valueEqual(v, val) })
}

// ContainsValueFunc reports whether match returns true for some value,
// visiting values in key order and stopping at the first match.
func (t *AVL[K, V]) ContainsValueFunc(match func(V) bool) bool {
	found := false
	t.root.walk(func(x *anode[K, V]) bool {
		found = match(x.val)
		return !found
	})
	return found
}

// PutAll calls t.Put(k, v) for each pair produced by seq.
func (t *AVL[K, V]) PutAll(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		t.Put(k, v)
	}
}

// Clear removes all entries from t.
func (t *AVL[K, V]) Clear() {
	t.root = nil
	t.count = 0
}

// Len returns the number of entries in t.
func (t *AVL[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

func (t *AVL[K, V]) IsEmpty() bool {
	return t.Len() == 0
}

// walk calls f for each node of the subtree in key order,
// stopping early if f returns false.
func (x *anode[K, V]) walk(f func(*anode[K, V]) bool) bool {
	if x == nil {
		return true
	}
	return x.left.walk(f) && f(x) && x.right.walk(f)
}

// Keys returns the keys of t in increasing order.
func (t *AVL[K, V]) Keys() []K {
	keys := make([]K, 0, t.Len())
	t.root.walk(func(x *anode[K, V]) bool {
		keys = append(keys, x.key)
		return true
	})
	return keys
}

// Values returns the values of t in key order.
func (t *AVL[K, V]) Values() []V {
	vals := make([]V, 0, t.Len())
	t.root.walk(func(x *anode[K, V]) bool {
		vals = append(vals, x.val)
		return true
	})
	return vals
}

// Entries returns the entries of t in key order.
func (t *AVL[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, t.Len())
	t.root.walk(func(x *anode[K, V]) bool {
		entries = append(entries, Entry[K, V]{x.key, x.val})
		return true
	})
	return entries
}

// All returns an iterator over the entries of t in key order.
// The entries are copied when All is called;
// later changes to t are not visible to the iterator.
func (t *AVL[K, V]) All() iter.Seq2[K, V] {
	return snapshot(t.Entries())
}

// Depth returns the height of the tree, 0 for an empty tree.
func (t *AVL[K, V]) Depth() int {
	return t.root.safeHeight()
}

// Validate checks the ordering, height and balance invariants of t
// and that Len matches the number of nodes.
// It returns an error wrapping ErrCorrupt if one does not hold.
func (t *AVL[K, V]) Validate() error {
	n, err := t.check(t.root, nil, nil)
	if err != nil {
		return err
	}
	if n != t.count {
		return corrupt("count %d, found %d nodes", t.count, n)
	}
	return nil
}

// check validates the subtree rooted at x, whose keys must lie
// strictly between *lo and *hi (when non-nil), and returns its size.
func (t *AVL[K, V]) check(x *anode[K, V], lo, hi *K) (int, error) {
	if x == nil {
		return 0, nil
	}
	if lo != nil && t.cmp(x.key, *lo) <= 0 || hi != nil && t.cmp(x.key, *hi) >= 0 {
		return 0, corrupt("key %v out of order", x.key)
	}
	if want := 1 + max(x.left.safeHeight(), x.right.safeHeight()); x.height != want {
		return 0, corrupt("key %v: height %d, want %d", x.key, x.height, want)
	}
	if b := x.bal(); b < -1 || b > 1 {
		return 0, corrupt("key %v: balance %+d", x.key, b)
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

// Dump returns the tree structure as nested (height key:val left right) lists.
func (t *AVL[K, V]) Dump() string {
	var buf bytes.Buffer
	var walk func(*anode[K, V])
	walk = func(x *anode[K, V]) {
		if x == nil {
			fmt.Fprintf(&buf, "nil")
			return
		}
		fmt.Fprintf(&buf, "(h%d %v:%v ", x.height, x.key, x.val)
		walk(x.left)
		fmt.Fprintf(&buf, " ")
		walk(x.right)
		fmt.Fprintf(&buf, ")")
	}
	walk(t.root)
	return buf.String()
}
