package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "run index|label",
		Short: "Run a quick-build entry",
		Long: `Run one of the quick-build entries stored in the configuration file.
The output is disassembled afterwards when AUTO_DISS_ON_QUICKBUILD is enabled.`,
		Example: `
# Run the first entry
adhoctool run 0

# Run an entry by label, always disassembling the result
adhoctool run arcade --diss
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, _ := cmd.Flags().GetBool("quiet")

			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			index, err := st.FindQuickBuild(args[0])
			if err != nil {
				return err
			}
			q := st.QuickBuilds[index]

			autoDiss := st.AutoDisassemble
			if cmd.Flags().Changed("diss") {
				autoDiss, _ = cmd.Flags().GetBool("diss")
			}

			tool, err := locateTool(cmd)
			if err != nil {
				return err
			}

			slog.Info("Running quick build", "label", q.Label, "args", strings.Join(q.Tuple()[1:], " "))
			diss, err := tool.RunQuickBuild(cmd.Context(), q, autoDiss)
			if err != nil {
				return err
			}

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Built %s\n", q.OutputADC)
				if diss != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Disassembled %s\n", diss)
				}
			}
			return nil
		},
	}

	c.Flags().BoolP("quiet", "q", false, "Only report errors")
	c.Flags().Bool("diss", false, "Disassemble the output (overrides AUTO_DISS_ON_QUICKBUILD)")
	return c
}
