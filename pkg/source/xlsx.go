package source

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// Workbook sheet names.
const (
	SheetStructures = "structures"
	SheetColumns    = "columns"
	SheetRows       = "rows"
	SheetCells      = "cells"
)

// Localized headers carry a language suffix: name_en, name_tr, group_en.
var (
	structureHeaders = []string{"id", "family"}
	columnHeaders    = []string{"id", "family", "type", "order_index"}
	rowHeaders       = []string{"id", "structure_id", "location", "foundation_type", "direction", "order_index"}
	cellHeaders      = []string{"row_id", "column_id", "code", "status"}
)

// XLSXLoader reads .xlsx workbooks. Each sheet's first row names its
// columns; header order is free and unknown headers are ignored. Sheet and
// header names are matched case-insensitively.
type XLSXLoader struct{}

// Type implements [Loader].
func (XLSXLoader) Type() string { return "xlsx" }

// Supports implements [Loader].
func (XLSXLoader) Supports(src string) bool { return hasExt(src, ".xlsx") }

// Load implements [Loader].
func (XLSXLoader) Load(_ context.Context, src string) (*matrix.Dataset, error) {
	in, err := openFile(src)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	d, err := ReadXLSX(in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", src)
	}
	return d, nil
}

// ReadXLSX decodes a workbook from r.
func ReadXLSX(r io.Reader) (*matrix.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var d matrix.Dataset
	structures, err := readSheet(f, SheetStructures, true)
	if err != nil {
		return nil, err
	}
	for _, rec := range structures {
		d.Structures = append(d.Structures, matrix.Structure{
			ID:     rec.str("id"),
			Family: matrix.Family(rec.str("family")),
			Name:   rec.localized("name"),
		})
	}

	columns, err := readSheet(f, SheetColumns, false)
	if err != nil {
		return nil, err
	}
	for _, rec := range columns {
		order, err := rec.integer("order_index")
		if err != nil {
			return nil, err
		}
		d.Columns = append(d.Columns, matrix.Column{
			ID:         rec.str("id"),
			Family:     matrix.Family(rec.str("family")),
			Type:       matrix.ColumnType(rec.str("type")),
			OrderIndex: order,
			Name:       rec.localized("name"),
			Group:      rec.localized("group"),
		})
	}

	rows, err := readSheet(f, SheetRows, true)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(rows))
	for _, rec := range rows {
		order, err := rec.integer("order_index")
		if err != nil {
			return nil, err
		}
		id := rec.str("id")
		index[id] = len(d.Rows)
		d.Rows = append(d.Rows, matrix.Row{
			ID:             id,
			StructureID:    rec.str("structure_id"),
			Location:       rec.str("location"),
			FoundationType: matrix.FoundationType(rec.str("foundation_type")),
			Direction:      matrix.Direction(rec.str("direction")),
			OrderIndex:     order,
		})
	}

	cells, err := readSheet(f, SheetCells, false)
	if err != nil {
		return nil, err
	}
	for _, rec := range cells {
		i, ok := index[rec.str("row_id")]
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown row %q", SheetCells, rec.line, rec.str("row_id"))
		}
		row := &d.Rows[i]
		if row.Cells == nil {
			row.Cells = make(map[string]matrix.Cell)
		}
		row.Cells[rec.str("column_id")] = matrix.Cell{
			Code:   rec.str("code"),
			Status: matrix.Status(rec.str("status")),
		}
	}
	return &d, nil
}

// record is one data row of a sheet keyed by lower-cased header.
type record struct {
	line   int
	values map[string]string
}

func (r record) str(key string) string { return r.values[key] }

func (r record) integer(key string) (int, error) {
	v := r.values[key]
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if fl, ferr := strconv.ParseFloat(v, 64); ferr == nil && fl == float64(int(fl)) {
			return int(fl), nil
		}
		return 0, fmt.Errorf("row %d: %s: not an integer: %q", r.line, key, v)
	}
	return n, nil
}

// localized collects prefix_<lang> headers. A bare prefix header is
// treated as English.
func (r record) localized(prefix string) matrix.LocalizedText {
	var out matrix.LocalizedText
	for k, v := range r.values {
		if v == "" {
			continue
		}
		var lang string
		switch {
		case k == prefix:
			lang = matrix.DefaultLanguage
		case strings.HasPrefix(k, prefix+"_"):
			lang = strings.TrimPrefix(k, prefix+"_")
		default:
			continue
		}
		if out == nil {
			out = make(matrix.LocalizedText)
		}
		out[lang] = v
	}
	return out
}

func findSheet(f *excelize.File, name string) string {
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return s
		}
	}
	return ""
}

// readSheet returns the non-blank data rows of a sheet. A missing optional
// sheet yields no records.
func readSheet(f *excelize.File, name string, required bool) ([]record, error) {
	sheet := findSheet(f, name)
	if sheet == "" {
		if required {
			return nil, fmt.Errorf("missing sheet %q", name)
		}
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	if !slices.Contains(headers, requiredHeader(name)) {
		return nil, fmt.Errorf("sheet %q: missing %q header", name, requiredHeader(name))
	}

	var out []record
	for i, row := range rows[1:] {
		rec := record{line: i + 2, values: make(map[string]string, len(headers))}
		blank := true
		for j, v := range row {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			v = strings.TrimSpace(v)
			if v != "" {
				blank = false
			}
			rec.values[headers[j]] = v
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out, nil
}

func requiredHeader(sheet string) string {
	if sheet == SheetCells {
		return "row_id"
	}
	return "id"
}

// WriteXLSX encodes d as a workbook readable by [ReadXLSX], with name and
// group columns for every language present.
func WriteXLSX(w io.Writer, d *matrix.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	langs := languages(d)

	sheet := func(name string, header []string, rows [][]any) error {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return err
			}
		}
		return nil
	}

	var structs [][]any
	for _, s := range d.Structures {
		row := []any{s.ID, string(s.Family)}
		for _, l := range langs {
			row = append(row, s.Name[l])
		}
		structs = append(structs, row)
	}
	if err := sheet(SheetStructures, withLangs(structureHeaders, langs, "name"), structs); err != nil {
		return err
	}

	var cols [][]any
	for _, c := range d.Columns {
		row := []any{c.ID, string(c.Family), string(c.Type), c.OrderIndex}
		for _, l := range langs {
			row = append(row, c.Name[l])
		}
		for _, l := range langs {
			row = append(row, c.Group[l])
		}
		cols = append(cols, row)
	}
	if err := sheet(SheetColumns, withLangs(withLangs(columnHeaders, langs, "name"), langs, "group"), cols); err != nil {
		return err
	}

	var rows, cells [][]any
	for _, r := range d.Rows {
		rows = append(rows, []any{r.ID, r.StructureID, r.Location, string(r.FoundationType), string(r.Direction), r.OrderIndex})
		keys := make([]string, 0, len(r.Cells))
		for k := range r.Cells {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			c := r.Cells[k]
			cells = append(cells, []any{r.ID, k, c.Code, string(c.Status)})
		}
	}
	if err := sheet(SheetRows, rowHeaders, rows); err != nil {
		return err
	}
	if err := sheet(SheetCells, cellHeaders, cells); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if idx, err := f.GetSheetIndex(SheetStructures); err == nil {
		f.SetActiveSheet(idx)
	}
	return f.Write(w)
}

func withLangs(base, langs []string, prefix string) []string {
	out := slices.Clone(base)
	for _, l := range langs {
		out = append(out, prefix+"_"+l)
	}
	return out
}

func languages(d *matrix.Dataset) []string {
	seen := map[string]bool{}
	add := func(t matrix.LocalizedText) {
		for l := range t {
			seen[l] = true
		}
	}
	for _, s := range d.Structures {
		add(s.Name)
	}
	for _, c := range d.Columns {
		add(c.Name)
		add(c.Group)
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}
