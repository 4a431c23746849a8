// Package schematic draws a structure as a chain of axes along the
// alignment using Graphviz.
//
// Each row is a node placed in chainage order; rows sharing an axis (the
// left and right halves of a pier) share a rank. Consecutive axes are
// joined by an edge labeled with their spacing. Optionally a column is
// chosen whose cell status colors every node, giving a one-glance
// progress overview of that checkpoint.
//
//	dot := schematic.ToDOT(st, rows, offsets, schematic.Options{Column: "col-pile"})
//	svg, err := schematic.RenderSVG(ctx, dot)
package schematic
