package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/progresstwin/pkg/pipeline"
	"github.com/matzehuels/progresstwin/pkg/source"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell. Besides commands and flags
it completes structure ids for --structure by reading the dataset given on
the command line (or the configured one) and output formats for --format.

  $ source <(progresstwin completion bash)
  $ progresstwin completion zsh > "${fpath[1]}/_progresstwin"
  $ progresstwin completion fish > ~/.config/fish/completions/progresstwin.fish
  PS> progresstwin completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeStructures suggests structure ids, described by their names.
// Completion runs without the persistent pre-run, so the config is read here.
func (c *CLI) completeStructures(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	_ = c.loadConfig()
	src, err := c.datasetArg(args)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := source.Load(ctx, src)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	for _, st := range d.Structures {
		if strings.HasPrefix(st.ID, toComplete) {
			out = append(out, st.ID+"\t"+st.Name.Get(c.Config.Synth.Language))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completionFormats lists formats in the order they are offered.
var completionFormats = []string{
	pipeline.FormatJSON,
	pipeline.FormatSVG,
	pipeline.FormatSchematic,
	pipeline.FormatPNG,
	pipeline.FormatPDF,
	pipeline.FormatCBOR,
}

// completeFormats completes the last entry of a comma-separated format
// list, skipping formats already chosen.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	head, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		head, last = toComplete[:i+1], toComplete[i+1:]
	}
	chosen := make(map[string]bool)
	for _, f := range pipeline.ParseFormats(head) {
		chosen[f] = true
	}

	var out []string
	for _, f := range completionFormats {
		if !chosen[f] && strings.HasPrefix(f, strings.ToLower(last)) {
			out = append(out, head+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
