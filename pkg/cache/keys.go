package cache

// SceneKeyOpts are the synthesis options that change a scene.
type SceneKeyOpts struct {
	Structure     string  `cbor:"structure"`
	Spacing       float64 `cbor:"spacing"`
	TransverseGap float64 `cbor:"transverse_gap"`
	Language      string  `cbor:"language"`
	RulesHash     string  `cbor:"rules_hash,omitempty"`
	CulvertRefs   string  `cbor:"culvert_refs,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format       string  `cbor:"format"`
	Scale        float64 `cbor:"scale,omitempty"`
	Meshes       bool    `cbor:"meshes,omitempty"`
	Legend       bool    `cbor:"legend,omitempty"`
	ClickURL     string  `cbor:"click_url,omitempty"`
	StatusColumn string  `cbor:"status_column,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SceneKey keys a synthesized scene by the hash of its rows and
	// columns and the synthesis options.
	SceneKey(inputHash string, opts SceneKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of its scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey implements [Keyer].
func (DefaultKeyer) SceneKey(inputHash string, opts SceneKeyOpts) string {
	return hashKey("scene", inputHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
