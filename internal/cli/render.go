package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/progresstwin/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	structure    string  // structure id to render
	output       string  // output file (single format) or base path
	formats      string  // comma-separated output formats
	lang         string  // label language
	spacing      float64 // chainage spacing override
	gap          float64 // transverse gap override
	scale        float64 // PNG scale factor
	legend       bool    // include the status legend
	meshes       bool    // JSON: include scene-space meshes
	clickURL     string  // SVG: POST clicks to this URL
	statusColumn string  // schematic: color nodes by this column
	refresh      bool    // bypass the scene cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render the digital twin of one structure",
		Long: `Render synthesizes the twin of one structure from a progress matrix and
writes it in the requested formats.

Formats:
  json       scene primitives (add --meshes for triangulated faces)
  cbor       deterministic binary scene
  svg        isometric drawing with clickable elements
  png, pdf   rasterized drawing (requires rsvg-convert)
  schematic  axis diagram in chainage order (Graphviz)`,
		Example: `  progresstwin render site.xlsx -s K-101
  progresstwin render examples/creek.json -s K-101 -f svg,schematic --lang tr --legend
  progresstwin render mongodb://localhost/progress -s M-7 -f png -o m7.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.datasetArg(args)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), src, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.structure, "structure", "s", "", "structure id (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json (default), cbor, svg, schematic, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "label language (default from config, then en)")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", 0, "chainage spacing in meters (default from config, then 25)")
	cmd.Flags().Float64Var(&opts.gap, "gap", 0, "transverse gap between LEFT and RIGHT rows in meters")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "include the status legend")
	cmd.Flags().BoolVar(&opts.meshes, "meshes", false, "include triangulated meshes in JSON output")
	cmd.Flags().StringVar(&opts.clickURL, "click-url", "", "SVG: POST clicked primitive ids to this URL")
	cmd.Flags().StringVar(&opts.statusColumn, "status-column", "", "schematic: color rows by this column's status")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached scenes and artifacts")
	_ = cmd.MarkFlagRequired("structure")
	_ = cmd.RegisterFlagCompletionFunc("structure", c.completeStructures)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// pipelineOptions merges flags over the configuration.
func (c *CLI) pipelineOptions(src string, opts renderOpts) pipeline.Options {
	synthOpts := c.Config.Synth
	if opts.lang != "" {
		synthOpts.Language = opts.lang
	}
	if opts.spacing > 0 {
		synthOpts.Spacing = opts.spacing
	}
	if opts.gap > 0 {
		synthOpts.TransverseGap = opts.gap
	}
	return pipeline.Options{
		Source:       src,
		Structure:    opts.structure,
		Synth:        synthOpts,
		Formats:      pipeline.ParseFormats(opts.formats),
		Scale:        opts.scale,
		Meshes:       opts.meshes,
		Legend:       opts.legend,
		ClickURL:     opts.clickURL,
		StatusColumn: opts.statusColumn,
		Refresh:      opts.refresh,
		Logger:       c.Logger,
	}
}

func (c *CLI) runRender(ctx context.Context, src string, opts renderOpts) error {
	popts := c.pipelineOptions(src, opts)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := startSpinner(ctx, os.Stderr, fmt.Sprintf("Preparing %s...", popts.Structure))
	restore := reportStages(spin)
	result, err := runner.Execute(ctx, popts)
	restore()
	spin.Stop()
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(result.Structure.ID))
	printStats(result.Stats, result.CacheInfo)

	base := basePath(opts.output, result.Structure.ID)
	for _, format := range popts.Formats {
		path := base + "." + pipeline.Extension(format)
		if len(popts.Formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path. Without an output it is the
// structure id; a known format extension on output is stripped.
func basePath(output, structureID string) string {
	if output == "" {
		return structureID
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
