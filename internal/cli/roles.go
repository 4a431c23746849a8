package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/progresstwin/pkg/chainage"
	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/roles"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// newTable returns a table in the CLI's border style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// rolesCommand creates the roles command.
func (c *CLI) rolesCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "roles [dataset]",
		Short: "Show how bridge columns resolve to structural roles",
		Long: `Roles evaluates the bridge role table (built-in, or rules_file from the
config) against the dataset's bridge columns and prints the column chosen
for every role. Unresolved roles are drawn EMPTY and are not clickable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.datasetArg(args)
			if err != nil {
				return err
			}
			if lang == "" {
				lang = c.Config.Synth.Language
			}
			return c.runRoles(cmd.Context(), src, lang)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "column name language")
	return cmd
}

func (c *CLI) runRoles(ctx context.Context, src, lang string) error {
	d, err := c.loadDataset(ctx, src)
	if err != nil {
		return err
	}
	cols := d.ColumnsOf(matrix.FamilyBridge)
	if len(cols) == 0 {
		printWarning("No bridge columns in %s", src)
		return nil
	}

	rules := c.Config.Synth.Rules
	rm := roles.Resolve(cols, rules)
	names := make(map[string]matrix.Column, len(cols))
	for _, col := range cols {
		names[col.ID] = col
	}

	t := newTable("Role", "Column", "Group", "Name")
	for _, rule := range rules.Rules {
		id, ok := rm.Lookup(rule.Role)
		if !ok {
			t.Row(string(rule.Role), StyleDim.Render("-"), "", "")
			continue
		}
		col := names[id]
		t.Row(string(rule.Role), id, col.Group.Get(lang), col.Name.Get(lang))
	}
	fmt.Fprintln(stdout, t.Render())

	if missing := rm.Unresolved(rules); len(missing) > 0 {
		printWarning("%d unresolved role(s)", len(missing))
		for _, r := range missing {
			printDetail("%s", r)
		}
	}
	return nil
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var structure string
	var spacing float64

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Show chainage offsets of a structure's rows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.datasetArg(args)
			if err != nil {
				return err
			}
			if spacing <= 0 {
				spacing = c.Config.Synth.Spacing
			}
			return c.runLayout(cmd.Context(), src, structure, spacing)
		},
	}
	cmd.Flags().StringVarP(&structure, "structure", "s", "", "structure id (required)")
	cmd.Flags().Float64Var(&spacing, "spacing", 0, "chainage spacing in meters")
	_ = cmd.MarkFlagRequired("structure")
	_ = cmd.RegisterFlagCompletionFunc("structure", c.completeStructures)
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, src, structure string, spacing float64) error {
	d, err := c.loadDataset(ctx, src)
	if err != nil {
		return err
	}
	st, ok := d.Structure(structure)
	if !ok {
		return errors.New(errors.ErrCodeStructureNotFound, "no structure %q", structure)
	}

	rows := d.RowsOf(st.ID)
	offsets := chainage.ForFamily(st.Family, rows, spacing)
	gap := c.Config.Synth.TransverseGap

	t := newTable("Row", "Location", "Foundation", "Side", "Offset (m)", "Transverse (m)")
	for _, r := range chainage.Sequence(rows, offsets) {
		t.Row(
			r.ID,
			r.Location,
			string(r.FoundationType),
			string(r.Direction),
			strconv.FormatFloat(offsets[r.ID], 'f', -1, 64),
			strconv.FormatFloat(chainage.Transverse(r.Direction, gap), 'f', -1, 64),
		)
	}
	printInfo("%s %s", StyleTitle.Render(st.ID), StyleDim.Render(string(st.Family)))
	fmt.Fprintln(stdout, t.Render())
	return nil
}
