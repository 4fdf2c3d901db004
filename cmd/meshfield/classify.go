// seehuhn.de/go/meshfield - scalar fields on meshes, rendered in software
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"cogentcore.org/core/math32/minmax"
	"github.com/spf13/cobra"

	"seehuhn.de/go/meshfield"
)

// classifyBatch is the number of values classified at once.
const classifyBatch = 1 << 16

func newClassifyCmd() *cobra.Command {
	var rng minmax.F64
	var workers int
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Print the band colour of each number read from stdin",
		Long: `Classify reads whitespace separated numbers from standard input and
prints one "r g b" line per number.  Without --min and --max the numbers
must already be normalised to [0, 1).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rescale := cmd.Flags().Changed("min") || cmd.Flags().Changed("max")
			return classify(cmd, cmd.InOrStdin(), cmd.OutOrStdout(), rng, rescale, workers)
		},
	}
	cmd.Flags().Float64Var(&rng.Min, "min", 0, "field value mapped to 0")
	cmd.Flags().Float64Var(&rng.Max, "max", 1, "field value mapped to 1")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of goroutines (0 means one per CPU)")
	return cmd
}

func classify(cmd *cobra.Command, r io.Reader, w io.Writer, rng minmax.F64, rescale bool, workers int) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	out := bufio.NewWriter(w)

	values := make([]float64, 0, classifyBatch)
	colors := make([]meshfield.RGB, classifyBatch)
	flush := func() error {
		if rescale {
			meshfield.RescaleInto(values, values, rng)
		}
		if err := meshfield.ClassifyAll(cmd.Context(), values, colors, workers); err != nil {
			return err
		}
		for _, c := range colors[:len(values)] {
			fmt.Fprintf(out, "%.6f %.6f %.6f\n", c.R, c.G, c.B)
		}
		values = values[:0]
		return nil
	}

	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return err
		}
		values = append(values, v)
		if len(values) == classifyBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}
	return out.Flush()
}
