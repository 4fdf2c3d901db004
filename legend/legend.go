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


// Package legend draws the colour key for the contour bands.
package legend

import (
	"image"
	"image/color"
	"strconv"

	"cogentcore.org/core/math32/minmax"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"seehuhn.de/go/meshfield"
)

const (
	margin     = 6  // pixels around the bar
	labelGap   = 4  // between bar and labels
	minSpacing = 16 // minimal vertical distance between labels
)

// Draw returns a width×height image with a vertical bar of the colour
// bands, lowest value at the bottom, labelled with the field values of
// the band bounds.
func Draw(rng minmax.F64, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	barW := float64(max(width/4, 8))
	top := float64(margin)
	bottom := float64(height - margin)
	bandH := (bottom - top) / meshfield.BandCount

	for i, b := range meshfield.Bands {
		y := bottom - float64(i+1)*bandH
		dc.SetColor(b.Color)
		dc.DrawRectangle(margin, y, barW, bandH)
		dc.Fill()
	}

	dc.SetColor(meshfield.EdgeRGB)
	dc.SetLineWidth(1)
	dc.DrawRectangle(margin+0.5, top+0.5, barW-1, bottom-top-1)
	dc.Stroke()

	step := 1
	for float64(step)*bandH < minSpacing && step < meshfield.BandCount {
		step++
	}
	dc.SetFontFace(basicfont.Face7x13)
	x := margin + barW + labelGap
	for k := 0; k <= meshfield.BandCount; k += step {
		t := float64(k) / meshfield.BandCount
		y := bottom - float64(k)*bandH
		dc.DrawStringAnchored(formatValue(rng.ProjValue(t)), x, y, 0, 0.5)
	}
	if meshfield.BandCount%step != 0 {
		dc.DrawStringAnchored(formatValue(rng.Max), x, top, 0, 0.5)
	}

	return dc.Image()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// Save draws the legend and writes it to path as PNG.
func Save(path string, rng minmax.F64, width, height int) error {
	return gg.SavePNG(path, Draw(rng, width, height))
}
