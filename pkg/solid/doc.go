// Package solid is a small parametric-solid library for the twin generator.
//
// Geometry synthesis describes shapes by their parameters only: a [Box] by
// its extents, a [Frustum] by its two footprints and height, an [Extrusion]
// by a profile polygon (optionally with holes) and a depth. Vertex and face
// bookkeeping lives here, behind [Solid.Mesh], so that renderers can turn
// any description into polygons without knowing how it was built.
//
// # Coordinates
//
// All solids are centered on their local origin. Y points up. Profiles of
// an [Extrusion] lie in the local XY plane and are extruded along Z.
// A [Transform] rotates about X, then Y, then Z (radians) and then
// translates.
package solid
