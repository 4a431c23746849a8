package synth

import (
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/palette"
	"github.com/matzehuels/progresstwin/pkg/roles"
	"github.com/matzehuels/progresstwin/pkg/scene"
	"github.com/matzehuels/progresstwin/pkg/solid"
)

// element sizes one support class.
type element struct {
	width    float64 // foundation, transverse
	length   float64 // foundation, longitudinal
	depth    float64 // foundation, vertical
	pileRows int     // along the alignment
	pileCols int     // across the alignment
	girders  int
}

var (
	centerElement = element{width: 12, length: 6, depth: 1.5, pileRows: 2, pileCols: 4, girders: 6}
	edgeElement   = element{width: 7, length: 4, depth: 1.2, pileRows: 1, pileCols: 3, girders: 4}
)

// Substructure dimensions.
const (
	excavationMargin  = 1.0 // working space around the foundation
	excavationSlope   = 1.0 // horizontal run per unit of depth
	excavationCover   = 1.0 // grade above the foundation top
	excavationOpacity = 0.25

	platformMargin = 0.5
	platformThick  = 0.3

	leanMargin = 0.2
	leanThick  = 0.1

	pileDiameter  = 1.0
	pileLength    = 10.0
	pileEdgeClear = 1.0 // pile axis to foundation edge

	elevationHeight = 6.0
	columnDiameter  = 1.5
	wallThick       = 1.2
	wallInset       = 0.5

	capDepth  = 2.0
	capHeight = 1.5
)

// Superstructure dimensions.
const (
	bearingOffset   = 0.5 // bearing axis to cap-beam centerline
	pedestalSize    = 0.6
	pedestalHeight  = 0.2
	blockSize       = 0.45
	blockHeight     = 0.1
	plateSize       = 0.6
	plateHeight     = 0.05
	girderWidth     = 0.8
	girderHeight    = 1.6
	minSpan         = 1.0
	restraintSize   = 0.4
	restraintHeight = 0.6
	deckThick       = 0.25
	deckOverhang    = 0.5
	labelClearance  = 1.5
)

// classify picks the support class of a row: abutments and LEFT/RIGHT
// halves are edge elements, everything else is a full-width center pier.
func classify(row matrix.Row) element {
	if row.IsAbutment() || matrix.ParseDirection(string(row.Direction)) != matrix.DirectionCenter {
		return edgeElement
	}
	return centerElement
}

// spread returns n positions evenly covering extent, centered on zero.
func spread(n int, extent float64) []float64 {
	if n <= 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	step := extent / float64(n-1)
	for i := range out {
		out[i] = -extent/2 + float64(i)*step
	}
	return out
}

// Bridge builds the layer stack of one bridge support axis, bottom to top:
// excavation, working platform, piles, lean concrete, foundation,
// elevation, cap beam, bearings with girders and seismic restraints, deck,
// and a location label. Every layer is colored by the status of its role's
// cell on row; unresolved roles are drawn EMPTY and inert.
//
// Girders span forward (+X) from the forward bearing over Spacing minus
// the two bearing offsets, landing on the aft bearing of the next axis.
func Bridge(row matrix.Row, rm roles.RoleMap, transverse, longitudinal float64, opts Options) []scene.Primitive {
	opts.SetDefaults()
	el := classify(row)
	where := row.Location
	if where == "" {
		where = row.ID
	}

	b := scene.NewBuilder(row.ID, solid.V3(longitudinal, 0, transverse))
	add := func(feature string, bd binding, p scene.Primitive) {
		b.Add(feature, bd.apply(p).Titled(title(feature, where, opts.Language)))
	}

	fw, fl, fh := el.width, el.length, el.depth
	formation := -fh - leanThick

	// Excavation: from the platform underside up to grade.
	bottom := formation - platformThick
	h := excavationCover - bottom
	bx, bz := fl+2*excavationMargin, fw+2*excavationMargin
	run := 2 * h * excavationSlope
	pit := solid.Frustum{BottomWidth: bx, BottomDepth: bz, TopWidth: bx + run, TopDepth: bz + run, Height: h}
	add(FeatureExcavation, bindRole(row, rm, roles.Excavation),
		scene.NewFrustum(pit).At(solid.V3(0, bottom+h/2, 0)).Translucent(excavationOpacity))

	add(FeaturePlatform, bindRole(row, rm, roles.Platform),
		scene.NewBox(bx+2*platformMargin, platformThick, bz+2*platformMargin).At(solid.V3(0, formation-platformThick/2, 0)))

	piles := bindRole(row, rm, roles.Piles)
	for _, x := range spread(el.pileRows, fl-2*pileEdgeClear) {
		for _, z := range spread(el.pileCols, fw-2*pileEdgeClear) {
			add(FeaturePile, piles,
				scene.NewCylinder(pileDiameter/2, pileLength).At(solid.V3(x, formation-pileLength/2, z)))
		}
	}

	add(FeatureLeanConcrete, bindRole(row, rm, roles.LeanConcrete),
		scene.NewBox(fl+2*leanMargin, leanThick, fw+2*leanMargin).At(solid.V3(0, formation+leanThick/2, 0)))

	add(FeatureFoundation, bindRole(row, rm, roles.Foundation),
		scene.NewBox(fl, fh, fw).At(solid.V3(0, -fh/2, 0)))

	elevation := bindRole(row, rm, roles.Elevation)
	if matrix.ParseFoundationType(string(row.FoundationType)) == matrix.FoundationPier {
		for _, z := range []float64{-fw / 4, fw / 4} {
			add(FeatureColumn, elevation,
				scene.NewCylinder(columnDiameter/2, elevationHeight).At(solid.V3(0, elevationHeight/2, z)))
		}
	} else {
		add(FeatureWall, elevation,
			scene.NewBox(wallThick, elevationHeight, fw-2*wallInset).At(solid.V3(0, elevationHeight/2, 0)))
	}

	capBeam := bindRole(row, rm, roles.CapBeam)
	add(FeatureCapBeam, capBeam,
		scene.NewBox(capDepth, capHeight, fw).At(solid.V3(0, elevationHeight+capHeight/2, 0)))

	// Superstructure.
	top := elevationHeight + capHeight
	seat := top + pedestalHeight + blockHeight + plateHeight
	span := max(opts.Spacing-2*bearingOffset, minSpan)
	mid := bearingOffset + span/2

	lines := spread(el.girders, fw*float64(el.girders-1)/float64(el.girders))
	bearing := bindRole(row, rm, roles.Bearing)
	girder := bindRole(row, rm, roles.Girder)
	pedestal := binding{color: palette.Pedestal}
	block := binding{color: palette.BearingBlock}
	for _, z := range lines {
		for _, x := range []float64{-bearingOffset, bearingOffset} {
			add(FeaturePedestal, pedestal,
				scene.NewBox(pedestalSize, pedestalHeight, pedestalSize).At(solid.V3(x, top+pedestalHeight/2, z)))
			add(FeatureBearingBlock, block,
				scene.NewBox(blockSize, blockHeight, blockSize).At(solid.V3(x, top+pedestalHeight+blockHeight/2, z)))
			add(FeatureBearingPlate, bearing,
				scene.NewBox(plateSize, plateHeight, plateSize).At(solid.V3(x, seat-plateHeight/2, z)))
		}
		add(FeatureGirder, girder,
			scene.NewBox(span, girderHeight, girderWidth).At(solid.V3(mid, seat+girderHeight/2, z)))
	}
	for i := 1; i < len(lines); i++ {
		z := (lines[i-1] + lines[i]) / 2
		add(FeatureRestraint, capBeam,
			scene.NewBox(restraintSize, restraintHeight, restraintSize).At(solid.V3(0, top+restraintHeight/2, z)))
	}

	deckY := seat + girderHeight
	add(FeatureDeck, bindRole(row, rm, roles.Deck),
		scene.NewBox(span, deckThick, fw+2*deckOverhang).At(solid.V3(mid, deckY+deckThick/2, 0)))

	b.Add(FeatureLabel, scene.NewLabel(where).
		At(solid.V3(0, excavationCover+labelClearance, fw/2+labelClearance)).
		Titled(where))

	return b.Primitives()
}
