package roles

// BridgeRules returns the default role table for the bridge family. Keywords
// cover the English and Turkish column schemas used on site.
func BridgeRules() RuleSet {
	return RuleSet{
		GenericMarkers: append([]string(nil), DefaultGenericMarkers...),
		Rules: []Rule{
			{
				Role:               Excavation,
				GroupKeywords:      []string{"excavation", "kazı"},
				NameKeywords:       []string{"excavation", "kazı"},
				Exclude:            []string{"kazık", "pile"},
				PreferVerification: true,
			},
			{
				Role:               Platform,
				GroupKeywords:      []string{"working platform", "çalışma platformu", "platform"},
				NameKeywords:       []string{"platform"},
				PreferVerification: true,
			},
			{
				Role:               Piles,
				GroupKeywords:      []string{"pile", "kazık"},
				NameKeywords:       []string{"pile concrete", "kazık beton", "pile", "kazık"},
				PreferVerification: true,
			},
			{
				Role:               LeanConcrete,
				GroupKeywords:      []string{"lean concrete", "blinding", "grobeton"},
				NameKeywords:       []string{"lean", "blinding", "grobeton"},
				PreferVerification: true,
			},
			{
				Role:               Foundation,
				GroupKeywords:      []string{"foundation", "footing", "temel"},
				NameKeywords:       []string{"foundation concrete", "temel beton", "foundation", "temel"},
				Exclude:            []string{"excavation", "kazı", "lean", "grobeton"},
				PreferVerification: true,
			},
			{
				Role:               Elevation,
				GroupKeywords:      []string{"elevation", "column", "shaft", "abutment wall", "gövde", "kolon", "perde"},
				NameKeywords:       []string{"elevation concrete", "gövde beton", "column concrete", "kolon beton", "elevation", "gövde"},
				PreferVerification: true,
			},
			{
				Role:               CapBeam,
				GroupKeywords:      []string{"cap beam", "başlık"},
				NameKeywords:       []string{"cap beam concrete", "başlık beton", "cap beam", "başlık"},
				PreferVerification: true,
			},
			{
				Role:               Bearing,
				GroupKeywords:      []string{"bearing", "mesnet", "elastomer"},
				NameKeywords:       []string{"bearing", "mesnet"},
				PreferVerification: true,
			},
			{
				Role:               Girder,
				GroupKeywords:      []string{"girder", "beam erection", "kiriş"},
				NameKeywords:       []string{"erection", "montaj", "girder", "kiriş"},
				Exclude:            []string{"cap beam", "başlık"},
				PreferVerification: true,
			},
			{
				Role:               Deck,
				GroupKeywords:      []string{"deck", "slab", "tabliye", "döşeme"},
				NameKeywords:       []string{"deck concrete", "tabliye beton", "deck", "tabliye"},
				PreferVerification: true,
			},
		},
	}
}
