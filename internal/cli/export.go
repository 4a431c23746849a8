package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/source"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "export [dataset]",
		Short: "Convert a dataset to JSON or XLSX",
		Long: `Export loads a dataset from any supported source (JSON, TOML, XLSX or
MongoDB) and writes it as JSON or as an XLSX workbook with structures,
columns, rows and cells sheets. The format follows the output extension.`,
		Example: `  progresstwin export mongodb://localhost/progress -o snapshot.xlsx
  progresstwin export site.xlsx -o site.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.datasetArg(args)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), src, output, force)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .json or .xlsx (required)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing output file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, src, output string, force bool) error {
	if fileExists(output) && !force {
		return errors.New(errors.ErrCodeInvalidInput, "%s exists (use --force to overwrite)", output)
	}

	d, err := c.loadDataset(ctx, src)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".json":
		err = source.WriteJSON(&buf, d)
	case ".xlsx":
		err = source.WriteXLSX(&buf, d)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q (must be .json or .xlsx)", ext)
	}
	if err != nil {
		return err
	}
	if err := writeFile(output, buf.Bytes()); err != nil {
		return err
	}

	printSuccess("Exported %d structures, %d columns, %d rows", len(d.Structures), len(d.Columns), len(d.Rows))
	printFile(output)
	return nil
}
