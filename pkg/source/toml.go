package source

import (
	"context"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// TOMLLoader reads .toml datasets:
//
//	[[structures]]
//	id = "K-101"
//	family = "bridge"
//	name = { en = "Creek Bridge" }
//
//	[[rows]]
//	id = "r1"
//	structure_id = "K-101"
//	location = "P1"
//	[rows.cells.c-pile]
//	code = "K-12"
//	status = "SIGNED"
type TOMLLoader struct{}

// Type implements [Loader].
func (TOMLLoader) Type() string { return "toml" }

// Supports implements [Loader].
func (TOMLLoader) Supports(src string) bool { return hasExt(src, ".toml") }

// Load implements [Loader].
func (TOMLLoader) Load(_ context.Context, src string) (*matrix.Dataset, error) {
	f, err := openFile(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var d matrix.Dataset
	md, err := toml.NewDecoder(f).Decode(&d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", src)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "read %s: unknown key %s", src, keys[0])
	}
	return &d, nil
}
