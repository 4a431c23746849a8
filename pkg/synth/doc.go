// Package synth turns progress-matrix rows into scene primitives.
//
// Each structure family has its own synthesizer. [Bridge] stacks the
// layers of one support axis (excavation up to the deck); [Culvert] builds
// a buried box culvert with its barrel and mirrored end structures. Both
// are pure functions of a row, the resolved column references, and the
// row's placement, and both always return a complete silhouette: a layer
// whose column did not resolve is still drawn, in the EMPTY color and
// without a click target.
//
// [Build] runs the whole chain for one structure: role resolution,
// chainage layout, transverse separation, and per-row synthesis.
//
// # Coordinates
//
// X runs along the alignment (chainage), Y points up, and Z is the
// transverse axis with LEFT rows on negative Z. Lengths are meters. For a
// bridge row the top of the foundation sits on y = 0; for a culvert the
// barrel invert does.
package synth
