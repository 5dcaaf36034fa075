// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package omap

func entryOf[K, V any](x *tnode[K, V]) (e Entry[K, V], ok bool) {
	if x == nil {
		return
	}
	return x.entry(), true
}

// FirstEntry returns the entry with the smallest key.
func (t *Treap[K, V]) FirstEntry() (Entry[K, V], bool) {
	x := t.root
	for x != nil && x.left != nil {
		x = x.left
	}
	return entryOf(x)
}

// LastEntry returns the entry with the largest key.
func (t *Treap[K, V]) LastEntry() (Entry[K, V], bool) {
	x := t.root
	for x != nil && x.right != nil {
		x = x.right
	}
	return entryOf(x)
}

// CeilingEntry returns the entry with the smallest key ≥ key.
func (t *Treap[K, V]) CeilingEntry(key K) (Entry[K, V], bool) {
	return entryOf(t.successor(key, false))
}

// HigherEntry returns the entry with the smallest key > key.
func (t *Treap[K, V]) HigherEntry(key K) (Entry[K, V], bool) {
	return entryOf(t.successor(key, true))
}

// FloorEntry returns the entry with the largest key ≤ key.
func (t *Treap[K, V]) FloorEntry(key K) (Entry[K, V], bool) {
	return entryOf(t.predecessor(key, false))
}

// LowerEntry returns the entry with the largest key < key.
func (t *Treap[K, V]) LowerEntry(key K) (Entry[K, V], bool) {
	return entryOf(t.predecessor(key, true))
}

// successor returns the node with the smallest key > key if strict,
// or ≥ key otherwise. Each node passed on the way left is the best
// candidate seen so far, since everything below it to the left is smaller.
func (t *Treap[K, V]) successor(key K, strict bool) (p *tnode[K, V]) {
	if !t.valid(key) {
		return nil
	}
	for x := t.root; x != nil; {
		c := t.cmp(key, x.key)
		switch {
		case c == 0 && !strict:
			return x
		case c < 0:
			p = x
			x = x.left
		default:
			x = x.right
		}
	}
	return p
}

// predecessor returns the node with the largest key < key if strict,
// or ≤ key otherwise.
func (t *Treap[K, V]) predecessor(key K, strict bool) (p *tnode[K, V]) {
	if !t.valid(key) {
		return nil
	}
	for x := t.root; x != nil; {
		c := t.cmp(key, x.key)
		switch {
		case c == 0 && !strict:
			return x
		case c > 0:
			p = x
			x = x.right
		default:
			x = x.left
		}
	}
	return p
}

// SubMap returns the entries with from ≤ key < to, in key order.
// It returns nil if no key lies in the range.
func (t *Treap[K, V]) SubMap(from, to K) []Entry[K, V] {
	if !t.valid(from) || !t.valid(to) {
		return nil
	}
	var entries []Entry[K, V]
	var walk func(*tnode[K, V])
	walk = func(x *tnode[K, V]) {
		if x == nil {
			return
		}
		lo := t.cmp(from, x.key)
		hi := t.cmp(to, x.key)
		if lo < 0 {
			walk(x.left)
		}
		if lo <= 0 && hi > 0 {
			entries = append(entries, x.entry())
		}
		if hi > 0 {
			walk(x.right)
		}
	}
	walk(t.root)
	return entries
}
