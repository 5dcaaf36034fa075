// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"os"

	"github.com/ansel1/merry"
	"sigs.k8s.io/yaml"

	"github.com/treemaps/omap/internal/workload"
)

// A Plan describes which benchmarks to run.
// It can be loaded from a YAML file such as:
//
//	sizes: [100, 1000, 10000]
//	patterns: [random, sorted]
//	maps: [avl, treap, btree]
//	sorters: [treap, slices]
//	seed: 1
type Plan struct {
	Sizes    []int              `json:"sizes"`
	Patterns []workload.Pattern `json:"patterns"`
	Maps     []string           `json:"maps"`
	Sorters  []string           `json:"sorters"`
	Seed     uint64             `json:"seed"`
}

// ErrBadPlan is returned for a plan that cannot be run.
var ErrBadPlan = merry.New("invalid benchmark plan")

// DefaultPlan returns the plan used when nothing is configured:
// the sizes and patterns of the original Java benchmarks, every map
// and every sorter.
func DefaultPlan() *Plan {
	return &Plan{
		Sizes:    []int{100, 1_000, 10_000},
		Patterns: []workload.Pattern{workload.Random, workload.Sorted, workload.Reverse, workload.Partial},
		Maps:     MapNames(),
		Sorters:  SorterNames(),
		Seed:     1,
	}
}

// LoadPlan reads a YAML plan from file.
// Fields missing from the file keep their DefaultPlan values.
func LoadPlan(file string) (*Plan, error) {
	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, merry.Wrap(err).WithValue("file", file)
	}
	plan := DefaultPlan()
	if err := yaml.UnmarshalStrict(buf, plan); err != nil {
		return nil, ErrBadPlan.Here().Appendf("%s: %v", file, err)
	}
	if err := plan.Check(); err != nil {
		return nil, merry.Prependf(err, "%s", file)
	}
	return plan, nil
}

// Check reports whether every name in p is known and every size positive.
// It rewrites pattern names to their canonical spelling.
func (p *Plan) Check() error {
	for _, n := range p.Sizes {
		if n <= 0 {
			return ErrBadPlan.Here().Appendf("size %d", n)
		}
	}
	for i, pat := range p.Patterns {
		canon, err := workload.ParsePattern(string(pat))
		if err != nil {
			return err
		}
		p.Patterns[i] = canon
	}
	for _, name := range p.Maps {
		if _, ok := mappers[name]; !ok {
			return ErrUnknownMap.Here().Appendf("%q", name)
		}
	}
	for _, name := range p.Sorters {
		if _, ok := sorters[name]; !ok {
			return ErrUnknownSorter.Here().Appendf("%q", name)
		}
	}
	return nil
}
