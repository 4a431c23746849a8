// Package chainage places structural rows along the road alignment.
//
// Rows arrive unordered and only their free-text location ("C1", "P3",
// "P12-L") hints at where they stand. [Layout] turns that hint into a
// longitudinal offset:
//
//   - the start abutment (ordinal containing "1") sits at 0
//   - pier i sits at i x spacing
//   - the end abutment (ordinal containing "2") sits one spacing past the
//     last pier
//   - rows that are neither (culvert barrels) are spread 0, s, 2s, ... in
//     input order
//
// Rows sharing an axis, such as the left and right halves of one pier,
// share an offset. [Transverse] separates them sideways.
package chainage

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// DefaultSpacing is the longitudinal distance between consecutive axes.
const DefaultSpacing = 25.0

// DefaultTransverseGap is the sideways distance of LEFT/RIGHT rows from the
// alignment centerline.
const DefaultTransverseGap = 8.0

// Offsets maps row id to longitudinal offset.
type Offsets map[string]float64

// Layout computes the longitudinal offset of every row. A non-positive
// spacing falls back to [DefaultSpacing].
func Layout(rows []matrix.Row, spacing float64) Offsets {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	out := make(Offsets, len(rows))

	var abutments, piers, others []matrix.Row
	for _, r := range rows {
		switch {
		case r.IsAbutment():
			abutments = append(abutments, r)
		case r.IsPier():
			piers = append(piers, r)
		default:
			others = append(others, r)
		}
	}

	slices.SortStableFunc(piers, func(a, b matrix.Row) int {
		_, oa := Ordinal(a.Location)
		_, ob := Ordinal(b.Location)
		return cmp.Compare(oa, ob)
	})

	maxPier := 0
	for _, p := range piers {
		_, n := Ordinal(p.Location)
		out[p.ID] = float64(n) * spacing
		maxPier = max(maxPier, n)
	}

	for _, a := range abutments {
		digits, _ := Ordinal(a.Location)
		switch {
		case strings.Contains(digits, "1"):
			out[a.ID] = 0
		case strings.Contains(digits, "2"):
			out[a.ID] = float64(maxPier+1) * spacing
		default:
			out[a.ID] = 0
		}
	}

	for i, o := range others {
		out[o.ID] = float64(i) * spacing
	}
	return out
}

// Sequential places rows at 0, spacing, 2*spacing, ... in input order,
// ignoring their locations. A non-positive spacing falls back to
// [DefaultSpacing].
func Sequential(rows []matrix.Row, spacing float64) Offsets {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	out := make(Offsets, len(rows))
	for i, r := range rows {
		out[r.ID] = float64(i) * spacing
	}
	return out
}

// ForFamily lays out the rows of one structure. Culvert rows are never
// supports, so a location such as "Culvert A" does not make one an
// abutment: they are placed with [Sequential]. Other families use [Layout].
func ForFamily(f matrix.Family, rows []matrix.Row, spacing float64) Offsets {
	if f == matrix.FamilyCulvert {
		return Sequential(rows, spacing)
	}
	return Layout(rows, spacing)
}

// Ordinal extracts the first run of digits from a location. It returns the
// digits as written and their numeric value; locations without digits, or
// with a run too long to parse, yield 0.
func Ordinal(location string) (string, int) {
	start := strings.IndexFunc(location, isDigit)
	if start < 0 {
		return "", 0
	}
	end := start
	for end < len(location) && isDigit(rune(location[end])) {
		end++
	}
	digits := location[start:end]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return digits, 0
	}
	return digits, n
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Transverse returns the sideways offset for a direction: LEFT is negative,
// RIGHT positive, anything else on the centerline.
func Transverse(d matrix.Direction, gap float64) float64 {
	switch matrix.ParseDirection(string(d)) {
	case matrix.DirectionLeft:
		return -gap
	case matrix.DirectionRight:
		return gap
	default:
		return 0
	}
}

// Sequence returns rows ordered by offset, then transverse side, then id.
func Sequence(rows []matrix.Row, offsets Offsets) []matrix.Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b matrix.Row) int {
		if c := cmp.Compare(offsets[a.ID], offsets[b.ID]); c != 0 {
			return c
		}
		if c := cmp.Compare(Transverse(a.Direction, 1), Transverse(b.Direction, 1)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
