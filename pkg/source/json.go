package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// JSONLoader reads .json datasets.
type JSONLoader struct{}

// Type implements [Loader].
func (JSONLoader) Type() string { return "json" }

// Supports implements [Loader].
func (JSONLoader) Supports(src string) bool { return hasExt(src, ".json") }

// Load implements [Loader].
func (JSONLoader) Load(_ context.Context, src string) (*matrix.Dataset, error) {
	f, err := openFile(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", src)
	}
	return d, nil
}

// ReadJSON decodes a dataset from r.
//
// The input is an object with "structures", "columns" and "rows" arrays:
//
//	{
//	  "structures": [{"id": "K-101", "family": "bridge", "name": {"en": "Creek Bridge"}}],
//	  "columns": [{"id": "c-pile", "family": "bridge", "type": "verification",
//	               "order_index": 3, "name": {"en": "Concrete"}, "group": {"en": "Piles"}}],
//	  "rows": [{"id": "r1", "structure_id": "K-101", "location": "P1",
//	            "foundation_type": "PIER", "direction": "LEFT",
//	            "cells": {"c-pile": {"code": "K-12", "status": "SIGNED"}}}]
//	}
//
// Unknown fields are rejected so typos surface instead of silently
// producing placeholder cells. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*matrix.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var d matrix.Dataset
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &d, nil
}

// WriteJSON encodes d to w in the layout read by [ReadJSON].
func WriteJSON(w io.Writer, d *matrix.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSource, err, "open %s", path)
	}
	return f, nil
}
