package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"adhoctool/internal/adhoctool/styles"
	"adhoctool/internal/compare"
	"adhoctool/internal/toolchain"
)

func newCompareCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "compare new_file original_file [output_file]",
		Short: "Compare a rebuilt script against an original",
		Long: `Compares two compiled Adhoc scripts, usually one original game file and one
reverse engineered and recompiled file, and writes a side-by-side HTML report.

new_file may be a .ad.diss dump, a compiled .adc or an .ad source; original_file a
.ad.diss or .adc. Compiled inputs are disassembled, and sources built, with adhoc.exe.`,
		Example: `
# Compare two dumps into comparison.html
adhoctool compare arcade.ad.diss original/arcade.ad.diss

# Only look at the first lines while a script is still being written
adhoctool compare -L 20 arcade.ad original/arcade.adc partial.html
  `,
		Args: cobra.RangeArgs(2, 3),
		RunE: runCompare,
	}

	c.Flags().IntP("limiter", "L", 0, "Amount of line difference to limit (useful for testing while writing)")
	c.Flags().BoolP("showjump", "j", false, "Don't obfuscate jump targets (can cause lots of differences due to LEAVE instructions)")
	c.Flags().BoolP("showleave", "l", false, "Keep LEAVE instructions in the output (will cause a lot of differences)")
	return c
}

func compareOptions(cmd *cobra.Command, args []string) (compare.Options, error) {
	opts := compare.Options{
		NewFile:      args[0],
		OriginalFile: args[1],
		Output:       compare.DefaultOutput,
		Limiter:      compare.NoLimit,
		Tool:         func() (*toolchain.Tool, error) { return locateTool(cmd) },
	}
	if len(args) == 3 {
		opts.Output = args[2]
	}

	if cmd.Flags().Changed("limiter") {
		limiter, _ := cmd.Flags().GetInt("limiter")
		if limiter < 0 {
			return opts, fmt.Errorf("--limiter must not be negative, got %d", limiter)
		}
		opts.Limiter = limiter
	}
	opts.Normalize.ShowJump, _ = cmd.Flags().GetBool("showjump")
	opts.Normalize.ShowLeave, _ = cmd.Flags().GetBool("showleave")
	return opts, nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	opts, err := compareOptions(cmd, args)
	if err != nil {
		return err
	}

	res, err := compare.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printDiags(cmd, res.Diags)

	out := cmd.OutOrStdout()
	if !styled(cmd) {
		fmt.Fprintf(out, "Built %s: %d equal, %d changed, %d added, %d removed\n",
			res.Output, res.Stats.Equal, res.Stats.Changed, res.Stats.Added, res.Stats.Removed)
		return nil
	}
	fmt.Fprintf(out, "Built %s: %s equal, %s changed, %s added, %s removed\n",
		styles.Path.Render(res.Output),
		styles.Muted.Render(fmt.Sprint(res.Stats.Equal)),
		styles.Changed.Render(fmt.Sprint(res.Stats.Changed)),
		styles.Added.Render(fmt.Sprint(res.Stats.Added)),
		styles.Removed.Render(fmt.Sprint(res.Stats.Removed)))
	return nil
}
