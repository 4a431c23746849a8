package synth

import (
	"github.com/matzehuels/progresstwin/pkg/chainage"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/roles"
)

// CulvertRefs are the four column ids a culvert row is colored from. They
// form a closed set instead of going through the role table.
type CulvertRefs struct {
	Stone    string `json:"stone" toml:"stone" yaml:"stone"`
	Slope    string `json:"slope" toml:"slope" yaml:"slope"`
	Concrete string `json:"concrete" toml:"concrete" yaml:"concrete"`
	Chamber  string `json:"chamber" toml:"chamber" yaml:"chamber"`
}

// DefaultCulvertRefs are the column ids of the stock culvert schema.
var DefaultCulvertRefs = CulvertRefs{
	Stone:    "culvert-stone-bedding",
	Slope:    "culvert-lean-concrete",
	Concrete: "culvert-concrete",
	Chamber:  "culvert-chamber",
}

// Options tune synthesis. The zero value is usable after SetDefaults.
type Options struct {
	// Spacing is the chainage distance between consecutive supports; it
	// also fixes the girder span.
	Spacing float64 `json:"spacing" toml:"spacing" yaml:"spacing"`
	// TransverseGap separates LEFT and RIGHT rows sharing one axis.
	TransverseGap float64 `json:"transverse_gap" toml:"transverse_gap" yaml:"transverse_gap"`
	// Language selects label and title text only.
	Language string `json:"language" toml:"language" yaml:"language"`
	// Rules is the bridge role table; empty means [roles.BridgeRules].
	Rules roles.RuleSet `json:"-" toml:"-" yaml:"-"`
	// Culvert holds the culvert column references.
	Culvert CulvertRefs `json:"culvert" toml:"culvert" yaml:"culvert"`
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Spacing <= 0 {
		o.Spacing = chainage.DefaultSpacing
	}
	if o.TransverseGap <= 0 {
		o.TransverseGap = chainage.DefaultTransverseGap
	}
	if o.Language == "" {
		o.Language = matrix.DefaultLanguage
	}
	if len(o.Rules.Rules) == 0 {
		o.Rules = roles.BridgeRules()
	}
	o.Culvert.setDefaults()
}

// setDefaults fills each unset reference on its own, so overriding one
// column keeps the stock ids for the rest.
func (r *CulvertRefs) setDefaults() {
	if r.Stone == "" {
		r.Stone = DefaultCulvertRefs.Stone
	}
	if r.Slope == "" {
		r.Slope = DefaultCulvertRefs.Slope
	}
	if r.Concrete == "" {
		r.Concrete = DefaultCulvertRefs.Concrete
	}
	if r.Chamber == "" {
		r.Chamber = DefaultCulvertRefs.Chamber
	}
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}
