// Package pkg provides the core libraries for progresstwin, a generator of
// progress-driven digital twins for bridges and culverts.
//
// # Overview
//
// A progress matrix records, for every physical axis of a structure (a row)
// and every construction checkpoint (a column), the reference and
// completion status of that work. Progresstwin turns the matrix into a
// 3D scene in which each element is drawn where it stands and colored by
// the status of the cell it belongs to. Clicking an element identifies the
// cell behind it.
//
// # Architecture
//
// The typical data flow:
//
//	JSON / TOML / XLSX / MongoDB
//	         ↓
//	    [source] (load and validate a [matrix.Dataset])
//	         ↓
//	    [roles] + [chainage] (which column drives which element; where each row stands)
//	         ↓
//	    [synth] (bridge and culvert geometry as a [scene.Scene])
//	         ↓
//	    [render/sink], [render/schematic] (JSON, CBOR, SVG, PNG, PDF, axis diagram)
//
// [pipeline] runs these stages with caching for the CLI and [server].
//
// # Main Packages
//
// ## Domain
//
// [matrix] - Structures, columns, rows, cells and statuses.
//
// [roles] - The column role resolver: maps bridge roles (piles, cap beam,
// girder, ...) to the columns that track them, driven by a keyword table.
//
// [chainage] - Longitudinal offsets of rows from their location labels and
// transverse offsets from their direction.
//
// [synth] - Bridge and culvert synthesis. Pure and total: any input yields
// a scene, possibly empty.
//
// [scene], [solid] - The renderer-independent primitive list and the
// geometry behind each primitive kind.
//
// [palette] - The status-color mapper.
//
// [interact] - Click targets, the dispatcher and click handlers (log,
// Redis pub/sub).
//
// ## Infrastructure
//
// [pipeline] - Load → synthesize → render, shared by CLI and API.
//
// [cache] - File, Redis and compressed caches keyed by the BLAKE3 hash of
// canonical CBOR input.
//
// [config] - TOML/YAML configuration with defaults.
//
// [errors] - Error codes shared by CLI and API.
//
// [observability] - Hooks for metrics and tracing.
//
// [server] - The HTTP API.
//
// # Quick Start
//
//	d, _ := source.Load(ctx, "site.xlsx")
//	st, _ := d.Structure("K-101")
//	sc := synth.Build(synth.Input{
//	    Structure: st,
//	    Rows:      d.RowsOf(st.ID),
//	    Columns:   d.ColumnsOf(st.Family),
//	})
//	svg := sink.RenderSVG(sc, sink.WithSVGLegend())
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/synth/...              # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis and MongoDB tests run only when PROGRESSTWIN_TEST_REDIS_URL or
// PROGRESSTWIN_TEST_MONGO_URI is set.
//
// [matrix]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/matrix
// [matrix.Dataset]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/matrix#Dataset
// [roles]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/roles
// [chainage]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/chainage
// [synth]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/synth
// [scene]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/scene
// [scene.Scene]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/scene#Scene
// [solid]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/solid
// [palette]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/palette
// [interact]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/interact
// [source]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/source
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/render/sink
// [render/schematic]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/render/schematic
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/progresstwin/pkg/server
package pkg
