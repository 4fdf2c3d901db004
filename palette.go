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

package meshfield

import (
	"context"
	"fmt"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BandCount is the number of colour bands covering the interval [0, 1).
const BandCount = 21

// RGB is an opaque colour with components in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// RGBA implements the [color.Color] interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return unit16(c.R), unit16(c.G), unit16(c.B), 0xffff
}

// NRGBA converts c to an 8-bit colour with alpha 255.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: 0xff}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", c.R, c.G, c.B)
}

func unit16(x float64) uint32 {
	return uint32(min(max(x, 0), 1)*0xffff + 0.5)
}

func unit8(x float64) uint8 {
	return uint8(min(max(x, 0), 1)*0xff + 0.5)
}

// ColorBand assigns a colour to the half-open interval [Lower, Upper).
type ColorBand struct {
	Lower, Upper float64
	Color        RGB
}

// Contains reports whether v lies in [b.Lower, b.Upper).
func (b ColorBand) Contains(v float64) bool {
	return v >= b.Lower && v < b.Upper
}

// Fallback is the colour used for values outside [0, 1), including NaN.
var Fallback = RGB{R: 1, G: 1, B: 1}

// EdgeRGB is the colour of dataset edges and of the wireframe.
var EdgeRGB = RGB{}

// Bands is the contour palette, in ascending order.
// The bounds are the constants i/21, rounded once at compile time, so that
// the upper bound of each band is bit-identical to the lower bound of the
// next one.
var Bands = [BandCount]ColorBand{
	{Lower: 0.0 / BandCount, Upper: 1.0 / BandCount, Color: RGB{0.501961, 0.000000, 1.000000}},
	{Lower: 1.0 / BandCount, Upper: 2.0 / BandCount, Color: RGB{0.200000, 0.000000, 1.000000}},
	{Lower: 2.0 / BandCount, Upper: 3.0 / BandCount, Color: RGB{0.000000, 0.000000, 0.800000}},
	{Lower: 3.0 / BandCount, Upper: 4.0 / BandCount, Color: RGB{0.000000, 0.250980, 0.698039}},
	{Lower: 4.0 / BandCount, Upper: 5.0 / BandCount, Color: RGB{0.000000, 0.501961, 0.600000}},
	{Lower: 5.0 / BandCount, Upper: 6.0 / BandCount, Color: RGB{0.000000, 0.749020, 0.501961}},
	{Lower: 6.0 / BandCount, Upper: 7.0 / BandCount, Color: RGB{0.000000, 1.000000, 0.400000}},
	{Lower: 7.0 / BandCount, Upper: 8.0 / BandCount, Color: RGB{0.000000, 0.874510, 0.298039}},
	{Lower: 8.0 / BandCount, Upper: 9.0 / BandCount, Color: RGB{0.000000, 0.749020, 0.200000}},
	{Lower: 9.0 / BandCount, Upper: 10.0 / BandCount, Color: RGB{0.000000, 0.623529, 0.101961}},
	{Lower: 10.0 / BandCount, Upper: 11.0 / BandCount, Color: RGB{0.000000, 0.501961, 0.000000}},
	{Lower: 11.0 / BandCount, Upper: 12.0 / BandCount, Color: RGB{0.168627, 0.584314, 0.000000}},
	{Lower: 12.0 / BandCount, Upper: 13.0 / BandCount, Color: RGB{0.333333, 0.666667, 0.000000}},
	{Lower: 13.0 / BandCount, Upper: 14.0 / BandCount, Color: RGB{0.498039, 0.749020, 0.000000}},
	{Lower: 14.0 / BandCount, Upper: 15.0 / BandCount, Color: RGB{0.666667, 0.831373, 0.000000}},
	{Lower: 15.0 / BandCount, Upper: 16.0 / BandCount, Color: RGB{0.831373, 0.917647, 0.000000}},
	{Lower: 16.0 / BandCount, Upper: 17.0 / BandCount, Color: RGB{1.000000, 1.000000, 0.000000}},
	{Lower: 17.0 / BandCount, Upper: 18.0 / BandCount, Color: RGB{1.000000, 0.749020, 0.000000}},
	{Lower: 18.0 / BandCount, Upper: 19.0 / BandCount, Color: RGB{1.000000, 0.501961, 0.000000}},
	{Lower: 19.0 / BandCount, Upper: 20.0 / BandCount, Color: RGB{0.874510, 0.250980, 0.000000}},
	{Lower: 20.0 / BandCount, Upper: 21.0 / BandCount, Color: RGB{0.749020, 0.000000, 0.000000}},
}

// BandIndex returns the index of the band containing v.
// The second return value is false if v lies outside [0, 1) or is NaN.
func BandIndex(v float64) (int, bool) {
	// The negated form is also true for NaN.
	if !(v >= 0 && v < 1) {
		return -1, false
	}

	// v*BandCount can land one ulp on the wrong side of an integer, and
	// may round up to BandCount for v just below 1.  The table bounds
	// decide in both cases.
	i := min(int(v*BandCount), BandCount-1)
	if v < Bands[i].Lower {
		i--
	} else if v >= Bands[i].Upper {
		i++
	}
	return i, true
}

// Classify maps a normalised field value to its band colour.
// Values outside [0, 1), infinities and NaN map to [Fallback].
func Classify(v float64) RGB {
	i, ok := BandIndex(v)
	if !ok {
		return Fallback
	}
	return Bands[i].Color
}

// EdgeColor is the fragment colour of the edge and wireframe passes.
func EdgeColor() color.NRGBA {
	return EdgeRGB.NRGBA()
}

// classifyChunk is the number of values one worker classifies before
// checking for cancellation.
const classifyChunk = 4096

// ClassifyAll stores Classify(values[i]) in out[i] for every i.
// The work is split across at most workers goroutines; workers <= 0 means
// GOMAXPROCS.  out must be at least as long as values.
func ClassifyAll(ctx context.Context, values []float64, out []RGB, workers int) error {
	if len(out) < len(values) {
		return fmt.Errorf("output has length %d, need %d", len(out), len(values))
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(values); start += classifyChunk {
		end := min(start+classifyChunk, len(values))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i, v := range values[start:end] {
				out[start+i] = Classify(v)
			}
			return nil
		})
	}
	return g.Wait()
}
