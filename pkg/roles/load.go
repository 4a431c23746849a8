package roles

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadRules reads a TOML role table:
//
//	generic_markers = ["- v", "beton"]
//
//	[[rules]]
//	role = "piles"
//	group_keywords = ["pile", "kazık"]
//	name_keywords = ["concrete", "beton"]
//	exclude = []
//	prefer_verification = true
//
// prefer_verification defaults to true when omitted and generic_markers
// defaults to [DefaultGenericMarkers].
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(string(data))
}

// ParseRules decodes a TOML role table. See [LoadRules].
func ParseRules(doc string) (RuleSet, error) {
	var rs RuleSet
	md, err := toml.Decode(doc, &rs)
	if err != nil {
		return RuleSet{}, fmt.Errorf("decode rules: %w", err)
	}
	if !md.IsDefined("generic_markers") {
		rs.GenericMarkers = append([]string(nil), DefaultGenericMarkers...)
	}

	// Array-of-tables keys cannot be queried per element through MetaData,
	// so decode the flag a second time into pointers to detect omission.
	var raw struct {
		Rules []struct {
			PreferVerification *bool `toml:"prefer_verification"`
		} `toml:"rules"`
	}
	if _, err := toml.Decode(doc, &raw); err != nil {
		return RuleSet{}, fmt.Errorf("decode rules: %w", err)
	}

	seen := make(map[Role]bool, len(rs.Rules))
	for i := range rs.Rules {
		r := &rs.Rules[i]
		if r.Role == "" {
			return RuleSet{}, fmt.Errorf("rule %d: role is required", i+1)
		}
		if seen[r.Role] {
			return RuleSet{}, fmt.Errorf("rule %d: duplicate role %q", i+1, r.Role)
		}
		seen[r.Role] = true
		if i < len(raw.Rules) && raw.Rules[i].PreferVerification == nil {
			r.PreferVerification = true
		}
	}
	return rs, nil
}
