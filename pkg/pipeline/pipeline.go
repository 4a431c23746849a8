// Package pipeline provides the digital-twin pipeline shared by the CLI and
// the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the progress matrix from a file or MongoDB
//  2. Synthesize: resolve roles, lay out rows and build the scene of one
//     structure
//  3. Render: encode the scene (JSON, CBOR), draw it (SVG, PNG, PDF) or draw
//     the structure's axis schematic
//
// Synthesis and rendering are pure, so their results are cached by the
// identity of their inputs; a cache hit returns exactly what recomputing
// would.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:    "progress.xlsx",
//	    Structure: "K-101",
//	    Formats:   []string{"json", "svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	d, err := runner.Load(ctx, opts)
//	sc, err := runner.Synthesize(ctx, d, opts)
//	artifacts, err := runner.Render(ctx, d, sc, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/progresstwin/pkg/cache"
	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/scene"
	"github.com/matzehuels/progresstwin/pkg/synth"
)

// Format constants for output formats.
const (
	FormatJSON      = "json"
	FormatCBOR      = "cbor"
	FormatSVG       = "svg"
	FormatSchematic = "schematic"
	FormatPNG       = "png"
	FormatPDF       = "pdf"
)

// DefaultScale is the PNG resolution factor.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:      true,
	FormatCBOR:      true,
	FormatSVG:       true,
	FormatSchematic: true,
	FormatPNG:       true,
	FormatPDF:       true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatSchematic {
		return "schematic.svg"
	}
	return format
}

// ContentType returns the media type of a rendered format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatCBOR:
		return "application/cbor"
	case FormatSVG, FormatSchematic:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	Source  string          `json:"source,omitempty"`
	Dataset *matrix.Dataset `json:"-"` // preloaded dataset; Source is ignored when set

	// Synthesis options
	Structure string        `json:"structure"`
	Synth     synth.Options `json:"synth"`
	Refresh   bool          `json:"refresh,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`         // PNG scale factor
	Meshes       bool     `json:"meshes,omitempty"`        // JSON: include scene-space meshes
	Legend       bool     `json:"legend,omitempty"`        // JSON/SVG: include the status legend
	ClickURL     string   `json:"click_url,omitempty"`     // SVG: POST clicks here
	StatusColumn string   `json:"status_column,omitempty"` // schematic: color nodes by this column

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded progress matrix.
	Dataset *matrix.Dataset

	// Structure is the rendered structure.
	Structure matrix.Structure

	// Scene is the synthesized twin.
	Scene *scene.Scene

	// SceneHash is the content hash of the encoded scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount       int
	PrimitiveCount int
	ClickableCount int
	LoadTime       time.Duration
	SynthTime      time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, cbor, svg, schematic, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
// An empty string yields nil.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForSynth(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a dataset source is given.
func (o *Options) ValidateForLoad() error {
	if o.Dataset == nil && o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "dataset source is required")
	}
	o.setLogger()
	return nil
}

// ValidateForSynth checks the structure id and synthesis options and
// applies their defaults.
func (o *Options) ValidateForSynth() error {
	if err := errors.ValidateID("structure", o.Structure); err != nil {
		return err
	}
	if err := errors.ValidateLanguage(o.Synth.Language); err != nil {
		return err
	}
	o.Synth.SetDefaults()
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SceneKeyOpts returns cache key options for synthesis. It fails when the
// rule table cannot be hashed.
func (o *Options) SceneKeyOpts() (cache.SceneKeyOpts, error) {
	rules, err := cache.HashValue(o.Synth.Rules)
	if err != nil {
		return cache.SceneKeyOpts{}, errors.Wrap(errors.ErrCodeInternal, err, "hash role rules")
	}
	c := o.Synth.Culvert
	return cache.SceneKeyOpts{
		Structure:     o.Structure,
		Spacing:       o.Synth.Spacing,
		TransverseGap: o.Synth.TransverseGap,
		Language:      o.Synth.Language,
		RulesHash:     rules,
		CulvertRefs:   fmt.Sprintf("%s|%s|%s|%s", c.Stone, c.Slope, c.Concrete, c.Chamber),
	}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatJSON:
		k.Meshes = o.Meshes
	}
	k.Legend = o.Legend
	k.ClickURL = o.ClickURL
	k.StatusColumn = o.StatusColumn
	return k
}
