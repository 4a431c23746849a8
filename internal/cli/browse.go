package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/progresstwin/pkg/chainage"
	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "browse [dataset]",
		Short: "Pick a structure interactively and show its progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.datasetArg(args)
			if err != nil {
				return err
			}
			if lang == "" {
				lang = c.Config.Synth.Language
			}
			return c.runBrowse(cmd.Context(), src, lang)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "name language")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, src, lang string) error {
	d, err := c.loadDataset(ctx, src)
	if err != nil {
		return err
	}
	if len(d.Structures) == 0 {
		printWarning("No structures in %s", src)
		return nil
	}

	final, err := tea.NewProgram(NewStructureListModel(d, lang), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	m, ok := final.(StructureListModel)
	if !ok || m.Selected == nil {
		return nil
	}

	printStructure(d, *m.Selected, lang, c.Config.Synth.Spacing)
	printNewline()
	printNextStep("Render it", fmt.Sprintf("%s render %s -s %s -f svg --legend", appName, src, m.Selected.ID))
	return nil
}

// printStructure prints the per-row progress of st in chainage order.
func printStructure(d *matrix.Dataset, st matrix.Structure, lang string, spacing float64) {
	printNewline()
	fmt.Fprintln(stdout, StyleTitle.Render(st.ID) + " " + StyleDim.Render(st.Name.Get(lang)))
	printKeyValue("Family", string(st.Family))

	rows := d.RowsOf(st.ID)
	printKeyValue("Rows", fmt.Sprintf("%d", len(rows)))
	fmt.Fprintln(stdout, progressBar(d.StatusCounts(st.ID), 40))
	fmt.Fprintln(stdout, legendLine())
	printNewline()

	offsets := chainage.ForFamily(st.Family, rows, spacing)
	t := newTable("Row", "Location", "Side", "Offset (m)", "Progress")
	for _, r := range chainage.Sequence(rows, offsets) {
		counts := make(map[matrix.Status]int)
		for _, cell := range r.Cells {
			counts[cell.Normalize().Status]++
		}
		t.Row(r.ID, r.Location, string(r.Direction), fmt.Sprintf("%g", offsets[r.ID]), progressBar(counts, 20))
	}
	fmt.Fprintln(stdout, t.Render())
}
