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
	"context"
	"fmt"
	"os"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
	"github.com/spf13/cobra"

	"seehuhn.de/go/meshfield"
	"seehuhn.de/go/meshfield/camera"
	"seehuhn.de/go/meshfield/config"
	"seehuhn.de/go/meshfield/legend"
	"seehuhn.de/go/meshfield/meshio"
)

type renderOptions struct {
	configPath   string
	outPath      string
	legendPath   string
	legendWidth  int
	legendHeight int
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [flags] mesh-file",
		Short: "Render a mesh file to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, args[0])
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "meshfield.yaml", "scene configuration file")
	flags.StringVarP(&opts.outPath, "out", "o", "field.png", "output image")
	flags.StringVar(&opts.legendPath, "legend", "", "also write the colour legend to this file")
	flags.IntVar(&opts.legendWidth, "legend-width", 120, "legend width in pixels")
	flags.IntVar(&opts.legendHeight, "legend-height", 400, "legend height in pixels")
	return cmd
}

func runRender(ctx context.Context, opts *renderOptions, meshPath string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	m, err := meshio.Open(meshPath)
	if err != nil {
		return err
	}

	rng, err := fieldRange(cfg, m)
	if err != nil {
		return err
	}
	cam := newCamera(cfg, m)
	transform := cam.Transform()
	scene, err := m.Scene(&transform, meshfield.SceneOptions{
		Range:          rng,
		ElementAverage: cfg.Field.ElementAverage,
		SkipField:      !*cfg.Passes.Field,
		SkipFreeEdges:  !*cfg.Passes.FreeEdges,
		SkipWireframe:  !*cfg.Passes.Wireframe,
	})
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	if err := r.Render(ctx, scene); err != nil {
		return err
	}
	if err := writePNG(opts.outPath, r.Frame); err != nil {
		return err
	}
	meshfield.Logger().Info("image written", "path", opts.outPath,
		"width", cfg.Image.Width, "height", cfg.Image.Height)

	if opts.legendPath != "" {
		if err := legend.Save(opts.legendPath, rng, opts.legendWidth, opts.legendHeight); err != nil {
			return err
		}
	}
	return nil
}

// fieldRange returns the configured range, or the range of the data if
// auto_range is set and the mesh has a field.
func fieldRange(cfg *config.Config, m *meshfield.Mesh) (minmax.F64, error) {
	if cfg.Field.AutoRange && len(m.Field) > 0 {
		return meshfield.FieldRange(m.Field)
	}
	return minmax.F64{Min: cfg.Field.Min, Max: cfg.Field.Max}, nil
}

func newCamera(cfg *config.Config, m *meshfield.Mesh) *camera.Camera {
	c := camera.New(cfg.Image.Width, cfg.Image.Height)
	cc := cfg.Camera
	c.FOV = cc.FOV
	c.Near = cc.Near
	c.Far = cc.Far
	c.Eye = vec3(cc.Eye)
	c.Target = vec3(cc.Target)
	c.Up = vec3(cc.Up)
	c.Scale = cc.Scale
	c.Center = math32.Vec3(float32(m.Center[0]), float32(m.Center[1]), float32(m.Center[2]))
	if cc.RotateDegrees != 0 && cc.RotateAxis != [3]float32{} {
		c.Rotate(vec3(cc.RotateAxis), math32.DegToRad(cc.RotateDegrees))
	}
	return c
}

func vec3(v [3]float32) math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}

func newRenderer(cfg *config.Config) (*meshfield.Renderer, error) {
	lineCap, err := cfg.LineCap()
	if err != nil {
		return nil, err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}

	r := meshfield.NewRenderer(cfg.Image.Width, cfg.Image.Height)
	r.Background = bg
	r.CullBackFaces = *cfg.Render.CullBackFaces
	r.LineWidth = cfg.Lines.Width
	r.LineCap = lineCap
	r.Workers = cfg.Render.Workers
	return r, nil
}

func writePNG(path string, fb *meshfield.Framebuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := fb.WritePNG(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
