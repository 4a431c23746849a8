package synth

import (
	"math"

	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/palette"
	"github.com/matzehuels/progresstwin/pkg/scene"
	"github.com/matzehuels/progresstwin/pkg/solid"
)

// Barrel dimensions. The barrel runs across the alignment (along Z).
const (
	barrelSpan     = 3.0 // clear width
	barrelRise     = 3.0 // clear height
	barrelWall     = 0.3
	barrelChamfer  = 0.2
	barrelSegments = 5
	segmentLength  = 2.0
	jointWidth     = 0.05
	jointProud     = 0.05 // band thickness outside the barrel face
)

// Bedding and end-structure dimensions.
const (
	beddingThick      = 0.3
	beddingMargin     = 0.8
	culvertLeanThick  = 0.1
	culvertLeanMargin = 0.3

	headwallHeight = 0.8
	headwallDepth  = 0.5
	headwallMargin = 0.5

	apronLength = 3.0
	apronThick  = 0.3

	wingLength    = 3.0
	wingThick     = 0.4
	wingEndHeight = 1.0
	flareAngle    = math.Pi / 6

	footingThick    = 0.4
	footingWidth    = 1.0
	footingOverhang = 0.1

	cutOffDepth = 1.0
	cutOffThick = 0.3
)

// Placement adjustments taken over from the survey drawings.
// TODO(culvert): confirm with the structures team whether these are design
// minimums or drawing artifacts.
const (
	footingOutset = 0.15 // footing axis pushed away from the wing axis
	footingDrop   = 0.05 // footing top below the wing base
	cutOffInset   = 0.15 // cut-off wall pulled back from the apron edge
	cutOffDrop    = 0.1  // cut-off wall top below grade
)

// Culvert builds a buried box culvert for row: stone bedding, lean
// concrete, a segmented barrel with joint bands, and at both ends a
// headwall, a flared apron, two flared wing walls on their own footings,
// and a cut-off wall. Colors come from the four columns in refs: bedding
// from Stone, lean concrete from Slope, wing walls from Chamber, and every
// other concrete part from Concrete. Joint bands are inert.
func Culvert(row matrix.Row, refs CulvertRefs, transverse, longitudinal float64, opts Options) []scene.Primitive {
	opts.SetDefaults()
	name := row.StructureID
	if name == "" {
		name = row.ID
	}

	b := scene.NewBuilder(row.ID, solid.V3(longitudinal, 0, transverse))
	add := func(feature string, bd binding, p scene.Primitive) {
		b.Add(feature, bd.apply(p).Titled(title(feature, name, opts.Language)))
	}

	stone := bind(row, refs.Stone)
	slope := bind(row, refs.Slope)
	concrete := bind(row, refs.Concrete)
	chamber := bind(row, refs.Chamber)

	outerW := barrelSpan + 2*barrelWall
	outerH := barrelRise + 2*barrelWall
	length := barrelSegments * segmentLength
	half := length / 2

	add(FeatureBedding, stone,
		scene.NewBox(outerW+2*beddingMargin, beddingThick, length+2*beddingMargin).
			At(solid.V3(0, -culvertLeanThick-beddingThick/2, 0)))
	add(FeatureLeanConcrete, slope,
		scene.NewBox(outerW+2*culvertLeanMargin, culvertLeanThick, length).
			At(solid.V3(0, -culvertLeanThick/2, 0)))

	// Barrel segments: outer rectangle minus the chamfered opening.
	outer := solid.Translate(solid.Rect(outerW, outerH), 0, outerH/2)
	opening := solid.Translate(solid.ChamferedRect(barrelSpan, barrelRise, barrelChamfer), 0, outerH/2)
	for i := range barrelSegments {
		z := -half + segmentLength*(float64(i)+0.5)
		add(FeatureBarrel, concrete, scene.NewExtrusion(solid.Extrusion{
			Outer: outer,
			Holes: [][]solid.Vec2{opening},
			Depth: segmentLength,
		}).At(solid.V3(0, 0, z)))
	}
	band := solid.Extrusion{
		Outer: solid.Translate(solid.Rect(outerW+2*jointProud, outerH+2*jointProud), 0, outerH/2),
		Holes: [][]solid.Vec2{outer},
		Depth: jointWidth,
	}
	joint := binding{color: palette.Joint}
	for i := 1; i < barrelSegments; i++ {
		add(FeatureJoint, joint, scene.NewExtrusion(band).At(solid.V3(0, 0, -half+segmentLength*float64(i))))
	}

	sin, cos := math.Sincos(flareAngle)
	apronWide := outerW + 2*apronLength*math.Tan(flareAngle)
	for _, end := range []float64{-1, 1} {
		zEnd := end * half

		add(FeatureHeadwall, concrete,
			scene.NewBox(outerW+2*headwallMargin, headwallHeight, headwallDepth).
				At(solid.V3(0, outerH+headwallHeight/2, end*(half-headwallDepth/2))))

		// The apron profile lies in XY; a quarter turn about X lays it flat
		// and points its wide edge away from the barrel.
		add(FeatureApron, concrete, scene.NewExtrusion(solid.Extrusion{
			Outer: solid.FlaredTrapezoid(outerW, apronWide, apronLength),
			Depth: apronThick,
		}).At(solid.V3(0, -apronThick/2, zEnd)).Rotated(solid.V3(end*math.Pi/2, 0, 0)))

		for _, side := range []float64{-1, 1} {
			// Wing axis runs along (side·sin, 0, end·cos); yaw maps local +X
			// onto it.
			yaw := solid.V3(0, math.Atan2(-end*cos, side*sin), 0)
			base := solid.V3(side*(outerW/2+wingThick/2), 0, zEnd)
			normal := solid.V3(side*cos, 0, -end*sin)

			add(FeatureWingWall, chamber, scene.NewExtrusion(solid.Extrusion{
				Outer: solid.RightTrapezoid(wingLength, outerH+headwallHeight, wingEndHeight),
				Depth: wingThick,
			}).At(base).Rotated(yaw))

			footing := solid.Translate(solid.Rect(wingLength+2*footingOverhang, footingThick),
				wingLength/2, -footingThick/2-footingDrop)
			add(FeatureWingFooting, concrete, scene.NewExtrusion(solid.Extrusion{
				Outer: footing,
				Depth: footingWidth,
			}).At(base.Add(normal.Scale(footingOutset))).Rotated(yaw))
		}

		add(FeatureCutOff, concrete,
			scene.NewBox(apronWide, cutOffDepth, cutOffThick).
				At(solid.V3(0, -cutOffDrop-cutOffDepth/2, end*(half+apronLength-cutOffInset-cutOffThick/2))))
	}

	b.Add(FeatureLabel, scene.NewLabel(name).
		At(solid.V3(0, outerH+headwallHeight+labelClearance, 0)).
		Titled(name))

	return b.Primitives()
}
