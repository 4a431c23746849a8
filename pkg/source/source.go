package source

import (
	"context"
	"strings"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// Loader reads a dataset from one kind of source.
type Loader interface {
	// Load reads the dataset at src.
	Load(ctx context.Context, src string) (*matrix.Dataset, error)
	// Supports reports whether this loader handles src.
	Supports(src string) bool
	// Type returns the loader identifier (e.g. "json", "xlsx").
	Type() string
}

// Loaders returns every built-in loader.
func Loaders() []Loader {
	return []Loader{JSONLoader{}, TOMLLoader{}, XLSXLoader{}, NewMongoLoader()}
}

// Detect finds a loader that supports src.
func Detect(src string, loaders ...Loader) (Loader, error) {
	if len(loaders) == 0 {
		loaders = Loaders()
	}
	for _, l := range loaders {
		if l.Supports(src) {
			return l, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported dataset source: %s", src)
}

// Load detects the loader for src, reads the dataset, normalizes it and
// validates it.
func Load(ctx context.Context, src string, loaders ...Loader) (*matrix.Dataset, error) {
	l, err := Detect(src, loaders...)
	if err != nil {
		return nil, err
	}
	d, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	d.Normalize()
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks ids and cross references: every id is well formed and
// unique within its kind, and every row belongs to a known structure.
// Cells referring to unknown columns are kept; they are never read.
func Validate(d *matrix.Dataset) error {
	structures := make(map[string]bool, len(d.Structures))
	for _, s := range d.Structures {
		if err := errors.ValidateID("structure", s.ID); err != nil {
			return err
		}
		if structures[s.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate structure %q", s.ID)
		}
		structures[s.ID] = true
	}

	columns := make(map[string]bool, len(d.Columns))
	for _, c := range d.Columns {
		if err := errors.ValidateID("column", c.ID); err != nil {
			return err
		}
		if columns[c.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate column %q", c.ID)
		}
		columns[c.ID] = true
	}

	rows := make(map[string]bool, len(d.Rows))
	for _, r := range d.Rows {
		if err := errors.ValidateID("row", r.ID); err != nil {
			return err
		}
		if rows[r.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate row %q", r.ID)
		}
		rows[r.ID] = true
		if !structures[r.StructureID] {
			return errors.New(errors.ErrCodeInvalidInput, "row %q references unknown structure %q", r.ID, r.StructureID)
		}
	}
	return nil
}

func hasExt(src, ext string) bool {
	return strings.EqualFold(extOf(src), ext)
}

func extOf(src string) string {
	i := strings.LastIndexByte(src, '.')
	if i < 0 || strings.ContainsAny(src[i:], `/\`) {
		return ""
	}
	return src[i:]
}
