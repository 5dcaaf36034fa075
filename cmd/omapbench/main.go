// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Omapbench times the omap engines against other ordered maps
// and against other ways of sorting.
//
// Usage:
//
//	omapbench maps [flags]
//	omapbench sort [flags]
//
// Both commands accept --plan to load a YAML plan;
// flags given on the command line override the plan.
package main

import (
	"os"

	"github.com/ansel1/merry"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/treemaps/omap/internal/harness"
	"github.com/treemaps/omap/internal/workload"
)

var logger = log.New()

type options struct {
	planFile string
	sizes    []int
	patterns []string
	names    []string
	seed     uint64
	logLevel string
}

func main() {
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if err := newRootCmd().Execute(); err != nil {
		logger.WithError(err).Error("omapbench failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "omapbench",
		Short:         "Benchmark the AVL and treap ordered maps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMapsCmd(), newSortCmd())
	return root
}

func addFlags(cmd *cobra.Command, o *options, namesFlag, namesHelp string) {
	f := cmd.Flags()
	f.StringVar(&o.planFile, "plan", "", "YAML plan `file`")
	f.IntSliceVar(&o.sizes, "sizes", nil, "input sizes")
	f.StringSliceVar(&o.patterns, "patterns", nil, "input patterns")
	f.StringSliceVar(&o.names, namesFlag, nil, namesHelp)
	f.Uint64Var(&o.seed, "seed", 1, "random seed for inputs and treap priorities")
	f.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// plan builds the plan from the defaults, the plan file and the flags,
// each overriding the last.
func (o *options) plan(cmd *cobra.Command, namesFlag string) (*harness.Plan, error) {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return nil, merry.Wrap(err)
	}
	logger.SetLevel(level)

	plan := harness.DefaultPlan()
	if o.planFile != "" {
		if plan, err = harness.LoadPlan(o.planFile); err != nil {
			return nil, err
		}
		logger.WithField("file", o.planFile).Debug("loaded plan")
	}
	flags := cmd.Flags()
	if flags.Changed("sizes") {
		plan.Sizes = o.sizes
	}
	if flags.Changed("patterns") {
		plan.Patterns = nil
		for _, s := range o.patterns {
			p, err := workload.ParsePattern(s)
			if err != nil {
				return nil, err
			}
			plan.Patterns = append(plan.Patterns, p)
		}
	}
	if flags.Changed(namesFlag) {
		if namesFlag == "maps" {
			plan.Maps = o.names
		} else {
			plan.Sorters = o.names
		}
	}
	if flags.Changed("seed") || o.planFile == "" {
		plan.Seed = o.seed
	}
	return plan, plan.Check()
}

func newMapsCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "maps",
		Short: "Time insert, lookup, traversal and delete on each map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := o.plan(cmd, "maps")
			if err != nil {
				return err
			}
			logger.WithFields(log.Fields{"sizes": plan.Sizes, "patterns": plan.Patterns, "maps": plan.Maps}).Info("running map benchmark")
			results, err := harness.RunMaps(plan, logger)
			if err != nil {
				return err
			}
			return harness.WriteMapReport(cmd.OutOrStdout(), results)
		},
	}
	addFlags(cmd, &o, "maps", "map implementations")
	return cmd
}

func newSortCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Time sorting with the treap against other sorts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := o.plan(cmd, "sorters")
			if err != nil {
				return err
			}
			if o.planFile == "" && !cmd.Flags().Changed("patterns") {
				plan.Patterns = harness.SortPatterns
			}
			logger.WithFields(log.Fields{"sizes": plan.Sizes, "patterns": plan.Patterns, "sorters": plan.Sorters}).Info("running sort benchmark")
			results, err := harness.RunSorts(plan, logger)
			if err != nil {
				return err
			}
			return harness.WriteSortReport(cmd.OutOrStdout(), results)
		},
	}
	addFlags(cmd, &o, "sorters", "sorting implementations")
	return cmd
}
