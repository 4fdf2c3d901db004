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


// Package meshio reads and writes meshes in the JSON format of the data
// backend.  Files may be compressed with gzip or zstd.
package meshio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"seehuhn.de/go/meshfield"
)

// document is the on-disk representation of a mesh.
type document struct {
	Nodes       []float64  `json:"nodes"`
	NodesCenter [3]float64 `json:"nodesCenter"`
	Tets        []int      `json:"tets"` // surface triangles of the tetrahedral mesh
	Wireframe   []int      `json:"wireframe,omitempty"`
	FreeEdges   []int      `json:"freeEdges,omitempty"`
	Field       []float64  `json:"field,omitempty"`
	FieldType   string     `json:"fieldType,omitempty"` // "nodal" (default) or "elemental"
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Load decodes a mesh from r and validates it.  Compressed input is
// recognised by its magic number.
func Load(r io.Reader) (*meshfield.Mesh, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(4)

	var src io.Reader = br
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		src = zr
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		src = zr
	}

	var doc document
	if err := json.NewDecoder(src).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding mesh: %w", err)
	}

	fieldType, err := meshfield.ParseFieldType(doc.FieldType)
	if err != nil {
		return nil, err
	}
	m := &meshfield.Mesh{
		Nodes:     doc.Nodes,
		Center:    doc.NodesCenter,
		Triangles: doc.Tets,
		Wireframe: doc.Wireframe,
		FreeEdges: doc.FreeEdges,
		Field:     doc.Field,
		FieldType: fieldType,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Open reads a mesh file.
func Open(path string) (m *meshfield.Mesh, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	m, err = Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Compression selects the encoding used by [Write].
type Compression int

// These are the supported compression methods.
const (
	None Compression = iota
	Gzip
	Zstd
)

// CompressionFor returns the compression implied by the file name
// extension.
func CompressionFor(path string) Compression {
	switch filepath.Ext(path) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	}
	return None
}

// Write encodes m to w.
func Write(w io.Writer, m *meshfield.Mesh, c Compression) error {
	doc := document{
		Nodes:       m.Nodes,
		NodesCenter: m.Center,
		Tets:        m.Triangles,
		Wireframe:   m.Wireframe,
		FreeEdges:   m.FreeEdges,
		Field:       m.Field,
	}
	if len(m.Field) > 0 {
		doc.FieldType = m.FieldType.String()
	}

	var zw io.WriteCloser
	switch c {
	case Gzip:
		zw = gzip.NewWriter(w)
	case Zstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		zw = enc
	}

	dst := w
	if zw != nil {
		dst = zw
	}
	if err := json.NewEncoder(dst).Encode(&doc); err != nil {
		if zw != nil {
			zw.Close()
		}
		return err
	}
	if zw != nil {
		return zw.Close()
	}
	return nil
}

// Create writes m to the named file, compressed according to the file
// name extension.
func Create(path string, m *meshfield.Mesh) (err error) {
	if m == nil {
		return errors.New("nil mesh")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, m, CompressionFor(path))
}
