package matrix

import (
	"cmp"
	"slices"
)

// Dataset is a loaded progress matrix for one or more structures.
type Dataset struct {
	Structures []Structure `json:"structures" toml:"structures"`
	Columns    []Column    `json:"columns" toml:"columns"`
	Rows       []Row       `json:"rows" toml:"rows"`
}

// Structure returns the structure with the given id.
func (d *Dataset) Structure(id string) (Structure, bool) {
	for _, s := range d.Structures {
		if s.ID == id {
			return s, true
		}
	}
	return Structure{}, false
}

// RowsOf returns the rows of a structure in input order.
func (d *Dataset) RowsOf(structureID string) []Row {
	var out []Row
	for _, r := range d.Rows {
		if r.StructureID == structureID {
			out = append(out, r)
		}
	}
	return out
}

// ColumnsOf returns the family's columns sorted by OrderIndex, ties broken
// by id so the order is stable across loaders.
func (d *Dataset) ColumnsOf(f Family) []Column {
	var out []Column
	for _, c := range d.Columns {
		if c.Family == f {
			out = append(out, c)
		}
	}
	SortColumns(out)
	return out
}

// SortColumns orders columns by OrderIndex, then id.
func SortColumns(cols []Column) {
	slices.SortStableFunc(cols, func(a, b Column) int {
		if c := cmp.Compare(a.OrderIndex, b.OrderIndex); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Normalize canonicalizes enumerations parsed from loose input in place.
func (d *Dataset) Normalize() {
	for i := range d.Structures {
		d.Structures[i].Family = ParseFamily(string(d.Structures[i].Family))
	}
	for i := range d.Columns {
		c := &d.Columns[i]
		c.Family = ParseFamily(string(c.Family))
		c.Type = ParseColumnType(string(c.Type))
	}
	for i := range d.Rows {
		r := &d.Rows[i]
		r.Direction = ParseDirection(string(r.Direction))
		r.FoundationType = ParseFoundationType(string(r.FoundationType))
	}
}

// StatusCounts tallies the statuses of a structure's cells.
func (d *Dataset) StatusCounts(structureID string) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, r := range d.RowsOf(structureID) {
		for _, c := range r.Cells {
			counts[ParseStatus(string(c.Status))]++
		}
	}
	return counts
}
