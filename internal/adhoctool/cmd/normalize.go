package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"adhoctool/internal/disasm"
	"adhoctool/internal/normalize"
	"adhoctool/internal/ui/colorize"
)

func newNormalizeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "normalize file.ad.diss",
		Short: "Print the normalized instruction stream of a dump",
		Long: `Prints the instructions of a disassembly dump the way the comparison sees them:
allocation metadata removed, jump targets replaced and LEAVE instructions dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := disasm.ReadFile(args[0])
			if err != nil {
				return err
			}

			var opts normalize.Options
			opts.ShowJump, _ = cmd.Flags().GetBool("showjump")
			opts.ShowLeave, _ = cmd.Flags().GetBool("showleave")

			out := cmd.OutOrStdout()
			if header, _ := cmd.Flags().GetBool("header"); header {
				h, err := doc.Header()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Version: %s\nRoot Instructions: %s\n", h.Version, h.RootInstructions)
				if h.Stack != nil {
					fmt.Fprintf(out, "Stack Size: %s - Variable Heap Size: %s - Variable Heap Size Static: %s\n",
						h.Stack.StackSize, h.Stack.HeapSize, h.Stack.HeapSizeStatic)
				}
				fmt.Fprintln(out)
			}

			lines := normalize.Document(doc, opts)
			if styled(cmd) {
				fmt.Fprint(out, colorize.Lines(lines))
				return nil
			}
			for _, l := range lines {
				fmt.Fprintln(out, l)
			}
			return nil
		},
	}

	c.Flags().BoolP("showjump", "j", false, "Keep absolute jump targets")
	c.Flags().BoolP("showleave", "l", false, "Keep LEAVE instructions")
	c.Flags().Bool("header", false, "Print the dump header first")
	return c
}
