package roles

import (
	"strings"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// Role names a construction feature inferred for a column.
type Role string

// Bridge roles, bottom to top.
const (
	Excavation   Role = "excavation"
	Platform     Role = "platform"
	Piles        Role = "piles"
	LeanConcrete Role = "lean_concrete"
	Foundation   Role = "foundation"
	Elevation    Role = "elevation"
	CapBeam      Role = "cap_beam"
	Bearing      Role = "bearing"
	Girder       Role = "girder"
	Deck         Role = "deck"
)

// Rule is one row of the role table.
type Rule struct {
	Role               Role     `toml:"role" yaml:"role" json:"role"`
	GroupKeywords      []string `toml:"group_keywords" yaml:"group_keywords" json:"group_keywords"`
	NameKeywords       []string `toml:"name_keywords" yaml:"name_keywords" json:"name_keywords"`
	Exclude            []string `toml:"exclude" yaml:"exclude" json:"exclude,omitempty"`
	PreferVerification bool     `toml:"prefer_verification" yaml:"prefer_verification" json:"prefer_verification"`
}

// RuleSet is an ordered role table plus the generic markers used when no
// name keyword matches inside a group.
type RuleSet struct {
	Rules          []Rule   `toml:"rules" yaml:"rules" json:"rules"`
	GenericMarkers []string `toml:"generic_markers" yaml:"generic_markers" json:"generic_markers"`
}

// DefaultGenericMarkers identify a group's concrete or verification step.
var DefaultGenericMarkers = []string{"- v", "beton"}

// RoleMap is the resolver output. Every role of the evaluated rule set has
// an entry; unresolved roles map to the empty string.
type RoleMap map[Role]string

// Lookup returns the column id resolved for role.
func (m RoleMap) Lookup(role Role) (string, bool) {
	id, ok := m[role]
	return id, ok && id != ""
}

// Unresolved lists the roles without a column, in rule order of rs.
func (m RoleMap) Unresolved(rs RuleSet) []Role {
	var out []Role
	for _, r := range rs.Rules {
		if _, ok := m.Lookup(r.Role); !ok {
			out = append(out, r.Role)
		}
	}
	return out
}

// Resolve evaluates every rule of rs against columns, which must already be
// in table order. Identical input always yields an identical map.
func Resolve(columns []matrix.Column, rs RuleSet) RoleMap {
	markers := rs.GenericMarkers
	if markers == nil {
		markers = DefaultGenericMarkers
	}
	out := make(RoleMap, len(rs.Rules))
	for _, rule := range rs.Rules {
		out[rule.Role] = resolveOne(columns, rule, markers)
	}
	return out
}

func resolveOne(columns []matrix.Column, rule Rule, markers []string) string {
	var group []matrix.Column
	for _, c := range columns {
		if c.Group.ContainsAny(rule.GroupKeywords...) && !excluded(c.Group, rule.Exclude) {
			group = append(group, c)
		}
	}

	if rule.PreferVerification {
		if v := verificationOnly(group); len(v) > 0 {
			group = v
		}
	}

	if len(group) == 0 {
		for _, kw := range rule.NameKeywords {
			for _, c := range columns {
				if c.IsVerification() && nameMatches(c, kw, rule.Exclude) {
					return c.ID
				}
			}
		}
		return ""
	}

	for _, kw := range rule.NameKeywords {
		for _, c := range group {
			if nameMatches(c, kw, rule.Exclude) {
				return c.ID
			}
		}
	}
	for _, c := range group {
		if c.Name.ContainsAny(markers...) && !excluded(c.Name, rule.Exclude) {
			return c.ID
		}
	}
	return group[len(group)-1].ID
}

func verificationOnly(cols []matrix.Column) []matrix.Column {
	var out []matrix.Column
	for _, c := range cols {
		if c.IsVerification() {
			out = append(out, c)
		}
	}
	return out
}

func nameMatches(c matrix.Column, keyword string, exclude []string) bool {
	return c.Name.ContainsAny(keyword) && !excluded(c.Name, exclude)
}

func excluded(t matrix.LocalizedText, exclude []string) bool {
	for _, v := range t.Variants() {
		for _, x := range exclude {
			if x != "" && strings.Contains(v, strings.ToLower(x)) {
				return true
			}
		}
	}
	return false
}
