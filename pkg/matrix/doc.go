// Package matrix defines the progress matrix consumed by the twin generator.
//
// A progress matrix is a grid of structural rows (one physical axis of a
// bridge or culvert) against checkpoint columns (setting-out, verification
// and info steps). Every intersection is a [Cell] carrying a free-text
// reference code and a [Status] in the completion lifecycle.
//
// The types in this package are plain values. Nothing here persists or
// mutates the matrix: loaders in [github.com/matzehuels/progresstwin/pkg/source]
// build a [Dataset] and the synthesis packages only read it.
//
// # Graceful Parsing
//
// Input coming from spreadsheets and databases is loosely structured, so
// the parse helpers never fail:
//
//   - [ParseStatus] maps anything unknown to [StatusEmpty]
//   - [ParseDirection] maps anything malformed to [DirectionCenter]
//   - [Row.Cell] returns [Placeholder] for missing cells
package matrix
