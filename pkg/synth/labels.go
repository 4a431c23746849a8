package synth

import "github.com/matzehuels/progresstwin/pkg/matrix"

// Feature names, shared by primitive ids and hover titles.
const (
	FeatureExcavation   = "excavation"
	FeaturePlatform     = "platform"
	FeaturePile         = "pile"
	FeatureLeanConcrete = "lean_concrete"
	FeatureFoundation   = "foundation"
	FeatureColumn       = "column"
	FeatureWall         = "wall"
	FeatureCapBeam      = "cap_beam"
	FeaturePedestal     = "pedestal"
	FeatureBearingBlock = "bearing_block"
	FeatureBearingPlate = "bearing_plate"
	FeatureGirder       = "girder"
	FeatureRestraint    = "seismic_restraint"
	FeatureDeck         = "deck"
	FeatureLabel        = "label"

	FeatureBedding     = "stone_bedding"
	FeatureBarrel      = "barrel"
	FeatureJoint       = "joint"
	FeatureHeadwall    = "headwall"
	FeatureApron       = "apron"
	FeatureWingWall    = "wing_wall"
	FeatureWingFooting = "wing_footing"
	FeatureCutOff      = "cut_off_wall"
)

var featureTitles = map[string]matrix.LocalizedText{
	FeatureExcavation:   {"en": "Excavation", "tr": "Kazı"},
	FeaturePlatform:     {"en": "Working platform", "tr": "Çalışma platformu"},
	FeaturePile:         {"en": "Pile", "tr": "Kazık"},
	FeatureLeanConcrete: {"en": "Lean concrete", "tr": "Grobeton"},
	FeatureFoundation:   {"en": "Foundation", "tr": "Temel"},
	FeatureColumn:       {"en": "Pier column", "tr": "Ayak kolonu"},
	FeatureWall:         {"en": "Elevation wall", "tr": "Elevasyon perdesi"},
	FeatureCapBeam:      {"en": "Cap beam", "tr": "Başlık kirişi"},
	FeaturePedestal:     {"en": "Bearing pedestal", "tr": "Mesnet kaidesi"},
	FeatureBearingBlock: {"en": "Bearing block", "tr": "Mesnet bloğu"},
	FeatureBearingPlate: {"en": "Bearing", "tr": "Mesnet"},
	FeatureGirder:       {"en": "Girder", "tr": "Kiriş"},
	FeatureRestraint:    {"en": "Seismic restraint", "tr": "Deprem takozu"},
	FeatureDeck:         {"en": "Deck slab", "tr": "Tabliye"},
	FeatureBedding:      {"en": "Stone bedding", "tr": "Taş yatak"},
	FeatureBarrel:       {"en": "Barrel segment", "tr": "Menfez gövdesi"},
	FeatureJoint:        {"en": "Segment joint", "tr": "Derz"},
	FeatureHeadwall:     {"en": "Headwall", "tr": "Başlık duvarı"},
	FeatureApron:        {"en": "Apron", "tr": "Radye"},
	FeatureWingWall:     {"en": "Wing wall", "tr": "Kanat duvarı"},
	FeatureWingFooting:  {"en": "Wing wall footing", "tr": "Kanat temeli"},
	FeatureCutOff:       {"en": "Cut-off wall", "tr": "Topuk duvarı"},
}

// Title returns the display name of a feature in lang. Unknown features
// are returned as is.
func Title(feature, lang string) string {
	if t, ok := featureTitles[feature]; ok {
		return t.Get(lang)
	}
	return feature
}

// title is the hover text of a feature on a row: "P1 · Pile".
func title(feature, where, lang string) string {
	if where == "" {
		return Title(feature, lang)
	}
	return where + " · " + Title(feature, lang)
}
