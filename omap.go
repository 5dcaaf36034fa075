// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package omap implements in-memory ordered maps.
//
// Two balancing strategies implement the same [Map] contract:
// [AVL] keeps every node's subtree heights within one of each other,
// and [Treap] keeps random node priorities in max-heap order.
// [Treap] additionally implements [SortedMap].
//
// Maps built with [NewAVL] or [NewTreap] order keys by their standard
// Go ordering; [NewAVLFunc] and [NewTreapFunc] accept arbitrary keys
// and a comparison function.
//
// Neither map is safe for concurrent use. Callers sharing a map
// between goroutines must guard the whole map with their own lock.
package omap

// AVL trees: see Lewis & Denenberg, Data Structures and Their Algorithms.
// Treaps: see https://faculty.washington.edu/aragon/pubs/rst89.pdf.

import (
	"iter"
	"reflect"
)

// An Entry is a key-value pair copied out of a map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// A Map is an ordered map from K to V.
//
// Keys, Values, Entries and All return snapshots: modifying the map
// afterward does not change a previously returned result.
type Map[K, V any] interface {
	// Put sets m[key] = val and returns val.
	Put(key K, val V) V
	// Get returns m[key] and whether key was present.
	Get(key K) (V, bool)
	// Remove deletes m[key] and returns its former value, if any.
	Remove(key K) (V, bool)
	ContainsKey(key K) bool
	ContainsValue(val V) bool
	// PutAll calls Put for each pair of seq, in seq's order.
	PutAll(seq iter.Seq2[K, V])
	Clear()
	Len() int
	IsEmpty() bool
	Keys() []K
	Values() []V
	Entries() []Entry[K, V]
	All() iter.Seq2[K, V]
}

// A SortedMap is a Map that also answers order-statistics queries.
type SortedMap[K, V any] interface {
	Map[K, V]
	FirstEntry() (Entry[K, V], bool)
	LastEntry() (Entry[K, V], bool)
	// CeilingEntry returns the entry with the smallest key ≥ key.
	CeilingEntry(key K) (Entry[K, V], bool)
	// FloorEntry returns the entry with the largest key ≤ key.
	FloorEntry(key K) (Entry[K, V], bool)
	// LowerEntry returns the entry with the largest key < key.
	LowerEntry(key K) (Entry[K, V], bool)
	// HigherEntry returns the entry with the smallest key > key.
	HigherEntry(key K) (Entry[K, V], bool)
	// SubMap returns the entries with from ≤ key < to, in key order.
	SubMap(from, to K) []Entry[K, V]
}

var (
	_ Map[int, int]       = (*AVL[int, int])(nil)
	_ SortedMap[int, int] = (*Treap[int, int])(nil)
)

// snapshot returns an iterator over a copy of entries.
func snapshot[K, V any](entries []Entry[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// valueEqual reports whether a and b are equal map values.
// A value type with an Equal(V) bool method decides for itself;
// everything else is compared with reflect.DeepEqual,
// since V need not be comparable.
func valueEqual[V any](a, b V) bool {
	if e, ok := any(a).(interface{ Equal(V) bool }); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
