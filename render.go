// Package meshfield draws scalar fields on triangle meshes in software.
//
// Field values are normalised to [0, 1) and classified into 21 colour
// bands ([Classify]); values outside this interval are drawn white.  The
// pipeline mirrors a GPU draw call: a vertex stage ([TransformField],
// [TransformEdge]) maps attributes to clip space, a coverage [Rasteriser]
// finds the covered pixels, and the fragment stage colours them.  A
// [Renderer] runs the field, free edge and wireframe passes of a [Scene]
// into a depth-tested [Framebuffer].
package meshfield

//go:generate go run ./testcases/export
