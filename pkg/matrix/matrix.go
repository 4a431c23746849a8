package matrix

import "strings"

// Family is a structure family with its own column schema and geometry.
type Family string

const (
	FamilyBridge  Family = "bridge"
	FamilyCulvert Family = "culvert"
)

// ParseFamily normalizes a family name. Unknown names are returned lowercased
// so callers can report them.
func ParseFamily(s string) Family {
	switch f := Family(strings.ToLower(strings.TrimSpace(s))); f {
	case "box-culvert", "menfez":
		return FamilyCulvert
	case "viaduct", "kopru", "köprü":
		return FamilyBridge
	default:
		return f
	}
}

// Valid reports whether f is a supported family.
func (f Family) Valid() bool { return f == FamilyBridge || f == FamilyCulvert }

// FoundationType classifies the support carried by a row.
type FoundationType string

const (
	FoundationPier     FoundationType = "PIER"
	FoundationAbutment FoundationType = "ABUTMENT"
	FoundationMain     FoundationType = "MAIN"
)

// ParseFoundationType uppercases known foundation types. Other values are
// kept trimmed so they still display.
func ParseFoundationType(s string) FoundationType {
	switch t := FoundationType(strings.ToUpper(strings.TrimSpace(s))); t {
	case FoundationPier, FoundationAbutment, FoundationMain:
		return t
	case "AYAK":
		return FoundationPier
	case "KENARAYAK", "KENAR AYAK":
		return FoundationAbutment
	default:
		return FoundationType(strings.TrimSpace(s))
	}
}

// ColumnType is the kind of checkpoint a column records.
type ColumnType string

const (
	ColumnSettingOut   ColumnType = "setting-out"
	ColumnVerification ColumnType = "verification"
	ColumnInfo         ColumnType = "info"
)

// ParseColumnType normalizes column type spellings found in exports.
func ParseColumnType(s string) ColumnType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verification", "control", "kontrol":
		return ColumnVerification
	case "setting-out", "setting_out", "settingout", "aplikasyon":
		return ColumnSettingOut
	default:
		return ColumnInfo
	}
}

// Structure is one bridge or culvert of the alignment.
type Structure struct {
	ID     string        `json:"id" toml:"id" bson:"_id"`
	Name   LocalizedText `json:"name,omitempty" toml:"name" bson:"name,omitempty"`
	Family Family        `json:"family" toml:"family" bson:"family"`
}

// Column is one checkpoint of a family's progress schema.
type Column struct {
	ID         string        `json:"id" toml:"id" bson:"_id"`
	Family     Family        `json:"family" toml:"family" bson:"family"`
	Name       LocalizedText `json:"name" toml:"name" bson:"name"`
	Group      LocalizedText `json:"group,omitempty" toml:"group" bson:"group,omitempty"`
	Type       ColumnType    `json:"type" toml:"type" bson:"type"`
	OrderIndex int           `json:"order_index" toml:"order_index" bson:"order_index"`
}

// IsVerification reports whether the column records an as-built check.
func (c Column) IsVerification() bool { return c.Type == ColumnVerification }

// Row is one physical axis of a structure.
type Row struct {
	ID             string          `json:"id" toml:"id" bson:"_id"`
	StructureID    string          `json:"structure_id" toml:"structure_id" bson:"structure_id"`
	Location       string          `json:"location" toml:"location" bson:"location"`
	FoundationType FoundationType  `json:"foundation_type,omitempty" toml:"foundation_type" bson:"foundation_type,omitempty"`
	Direction      Direction       `json:"direction,omitempty" toml:"direction" bson:"direction,omitempty"`
	OrderIndex     int             `json:"order_index,omitempty" toml:"order_index" bson:"order_index,omitempty"`
	Cells          map[string]Cell `json:"cells,omitempty" toml:"cells" bson:"cells,omitempty"`
}

// Cell returns the cell stored under columnID exactly as stored, or
// [Placeholder] when the row has no entry for it. Consumers that compare
// statuses go through [ParseStatus] or [Cell.Normalize].
func (r Row) Cell(columnID string) Cell {
	if c, ok := r.Cells[columnID]; ok {
		return c
	}
	return Placeholder()
}

// IsAbutment reports whether the row is an end support.
func (r Row) IsAbutment() bool {
	if ParseFoundationType(string(r.FoundationType)) == FoundationAbutment {
		return true
	}
	l := strings.ToUpper(strings.TrimSpace(r.Location))
	return strings.HasPrefix(l, "C") || strings.HasPrefix(l, "A")
}

// IsPier reports whether the row is an intermediate support.
func (r Row) IsPier() bool {
	if ParseFoundationType(string(r.FoundationType)) == FoundationAbutment {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(r.Location)), "P")
}

// Cell is a row x column intersection.
type Cell struct {
	Code   string `json:"code" toml:"code" bson:"code"`
	Status Status `json:"status" toml:"status" bson:"status"`
}

// EmptyCode marks a cell without a reference.
const EmptyCode = "-"

// Placeholder is the synthetic cell used wherever a cell is missing.
func Placeholder() Cell {
	return Cell{Code: EmptyCode, Status: StatusEmpty}
}

// Normalize fills a blank code and canonicalizes the status.
func (c Cell) Normalize() Cell {
	if strings.TrimSpace(c.Code) == "" {
		c.Code = EmptyCode
	}
	c.Status = ParseStatus(string(c.Status))
	return c
}
