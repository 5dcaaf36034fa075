// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2f ms", float64(d)/float64(time.Millisecond))
}

// WriteMapReport writes results as a table, one block per size and pattern,
// in the order RunMaps produced them.
func WriteMapReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, r := range results {
		if i == 0 || r.Size != results[i-1].Size || r.Pattern != results[i-1].Pattern {
			if i > 0 {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "--- Size: %s | Pattern: %s ---\n", humanize.Comma(int64(r.Size)), r.Pattern)
			fmt.Fprintln(tw, "map\tinsert\tget hit\tget miss\ttraverse\tdelete\t")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Map, ms(r.Insert), ms(r.GetHit), ms(r.GetMiss), ms(r.Traverse), ms(r.Delete))
	}
	return tw.Flush()
}

// WriteSortReport writes sort results as a table.
func WriteSortReport(w io.Writer, results []SortResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, r := range results {
		if i == 0 || r.Size != results[i-1].Size || r.Pattern != results[i-1].Pattern {
			if i > 0 {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "--- Size: %s | Pattern: %s ---\n", humanize.Comma(int64(r.Size)), r.Pattern)
			fmt.Fprintln(tw, "sorter\ttime\toutput\t")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.Sorter, ms(r.Elapsed), humanize.Comma(int64(r.Out)))
	}
	return tw.Flush()
}
