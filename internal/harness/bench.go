// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package harness times the omap engines against reference ordered maps
// and against other ways of sorting.
package harness

import (
	"math/rand/v2"
	"time"

	"github.com/ansel1/merry"
	log "github.com/sirupsen/logrus"

	"github.com/treemaps/omap/internal/workload"
)

// missOffset is added to every key to produce lookups that miss.
const missOffset = 100_000

// ErrMismatch is returned when a map's contents disagree with what the
// benchmark put into it.
var ErrMismatch = merry.New("map contents mismatch")

// A Result holds the timings of one map on one workload.
type Result struct {
	Map      string
	Size     int
	Pattern  workload.Pattern
	Insert   time.Duration
	GetHit   time.Duration
	GetMiss  time.Duration
	Traverse time.Duration
	Delete   time.Duration
}

// RunMaps runs the map benchmark for every size, pattern and map of plan,
// in that nesting order, and returns one Result per combination.
// Every map of one size and pattern sees the same data.
func RunMaps(plan *Plan, logger *log.Logger) ([]Result, error) {
	if err := plan.Check(); err != nil {
		return nil, err
	}
	r := rand.New(rand.NewPCG(plan.Seed, plan.Seed))
	var results []Result
	for _, size := range plan.Sizes {
		for _, pattern := range plan.Patterns {
			data := workload.Generate[int](size, pattern, r)
			for _, name := range plan.Maps {
				entry := logger.WithFields(log.Fields{"map": name, "size": size, "pattern": pattern})
				m, err := NewMapper(name, plan.Seed)
				if err != nil {
					return nil, err
				}
				res, err := timeMap(m, data)
				if err != nil {
					entry.WithError(err).Error("benchmark failed")
					return nil, merry.Wrap(err).WithValue("map", name)
				}
				res.Map, res.Size, res.Pattern = name, size, pattern
				entry.WithFields(log.Fields{
					"insert": res.Insert,
					"delete": res.Delete,
				}).Debug("benchmark done")
				results = append(results, res)
			}
		}
	}
	return results, nil
}

// timeMap loads data into m, which must be empty, looks every key up,
// looks up keys that were never put, scans, and deletes everything.
func timeMap(m Mapper, data []int) (Result, error) {
	var res Result

	start := time.Now()
	for _, x := range data {
		m.Put(x, x)
	}
	res.Insert = time.Since(start)

	start = time.Now()
	for _, x := range data {
		if v, ok := m.Get(x); !ok || v != x {
			return res, ErrMismatch.Here().Appendf("Get(%d) = %d, %v", x, v, ok)
		}
	}
	res.GetHit = time.Since(start)

	start = time.Now()
	for _, x := range data {
		if _, ok := m.Get(x + missOffset); ok && !contains(data, x+missOffset) {
			return res, ErrMismatch.Here().Appendf("Get(%d) found a key never put", x+missOffset)
		}
	}
	res.GetMiss = time.Since(start)

	start = time.Now()
	keys := m.Keys()
	res.Traverse = time.Since(start)
	if len(keys) != len(data) {
		return res, ErrMismatch.Here().Appendf("traversal saw %d keys, want %d", len(keys), len(data))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			return res, ErrMismatch.Here().Appendf("traversal out of order at %d", i)
		}
	}

	start = time.Now()
	for _, x := range data {
		m.Remove(x)
	}
	res.Delete = time.Since(start)
	if n := m.Len(); n != 0 {
		return res, ErrMismatch.Here().Appendf("%d keys left after deleting all", n)
	}
	return res, nil
}

func contains(data []int, x int) bool {
	for _, d := range data {
		if d == x {
			return true
		}
	}
	return false
}
