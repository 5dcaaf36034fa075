// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"container/heap"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/ansel1/merry"
	log "github.com/sirupsen/logrus"

	"github.com/treemaps/omap"
	"github.com/treemaps/omap/internal/workload"
)

// A Sorter sorts data in place and returns the sorted prefix.
// Tree sorts drop duplicate keys, so the prefix may be shorter than data.
type Sorter func(data []int, seed uint64) []int

// ErrUnknownSorter is returned for a sorter name that is not registered.
var ErrUnknownSorter = merry.New("unknown sorter")

var sorters = map[string]Sorter{
	"treap":  treeSort(func(seed uint64) omap.Map[int, int] { return omap.NewTreap[int, int](omap.WithSeed(seed)) }),
	"avl":    treeSort(func(uint64) omap.Map[int, int] { return omap.NewAVL[int, int]() }),
	"heap":   heapSort,
	"slices": sliceSort,
}

// SorterNames lists the registered sorters.
func SorterNames() []string {
	return []string{"treap", "avl", "heap", "slices"}
}

// SortPatterns are the input orders the sort benchmark uses by default.
var SortPatterns = []workload.Pattern{workload.Random, workload.Reverse, workload.NearlySorted}

// treeSort puts every element into a fresh map and reads the keys back.
func treeSort(newMap func(seed uint64) omap.Map[int, int]) Sorter {
	return func(data []int, seed uint64) []int {
		m := newMap(seed)
		for _, x := range data {
			m.Put(x, x)
		}
		return data[:copy(data, m.Keys())]
	}
}

type intHeap []int

func (h intHeap) Len() int           { return len(h) }
func (h intHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x any)        { *h = append(*h, x.(int)) }

func (h *intHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// heapSort pushes everything onto a priority queue and pops it back in order.
func heapSort(data []int, _ uint64) []int {
	h := make(intHeap, 0, len(data))
	for _, x := range data {
		heap.Push(&h, x)
	}
	for i := range data {
		data[i] = heap.Pop(&h).(int)
	}
	return data
}

func sliceSort(data []int, _ uint64) []int {
	slices.Sort(data)
	return data
}

// A SortResult holds the time one sorter took on one input.
type SortResult struct {
	Sorter  string
	Size    int
	Pattern workload.Pattern
	Out     int // length of the sorted output
	Elapsed time.Duration
}

// RunSorts times every sorter of plan on every size and pattern.
// The patterns come from plan.Patterns; each sorter gets its own copy
// of the same input. Outputs are checked to be sorted.
func RunSorts(plan *Plan, logger *log.Logger) ([]SortResult, error) {
	if err := plan.Check(); err != nil {
		return nil, err
	}
	r := rand.New(rand.NewPCG(plan.Seed, plan.Seed))
	var results []SortResult
	for _, size := range plan.Sizes {
		for _, pattern := range plan.Patterns {
			base := workload.Generate[int](size, pattern, r)
			for _, name := range plan.Sorters {
				data := slices.Clone(base)
				start := time.Now()
				out := sorters[name](data, plan.Seed)
				elapsed := time.Since(start)
				if !slices.IsSorted(out) {
					return nil, ErrMismatch.Here().Appendf("%s output not sorted", name).WithValue("sorter", name)
				}
				logger.WithFields(log.Fields{
					"sorter":  name,
					"size":    size,
					"pattern": pattern,
					"elapsed": elapsed,
				}).Debug("sort done")
				results = append(results, SortResult{name, size, pattern, len(out), elapsed})
			}
		}
	}
	return results, nil
}
