package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"adhoctool/internal/config"
	"adhoctool/internal/toolchain"
)

func newQuickCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "quick",
		Aliases: []string{"qb"},
		Short:   "Manage quick-build entries",
	}
	c.AddCommand(
		newQuickListCmd(),
		newQuickAddCmd(),
		newQuickRemoveCmd(),
		newQuickMoveCmd(),
	)
	return c
}

func newQuickListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quick-build entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return renderMarkdown(cmd, quickBuildTable(st))
		},
	}
}

func quickBuildTable(st *config.Settings) string {
	if len(st.QuickBuilds) == 0 {
		return "No quick builds configured.\n"
	}

	var b strings.Builder
	b.WriteString("| # | Label | Mode | Input | Version | Output |\n")
	b.WriteString("|---|-------|------|-------|---------|--------|\n")
	for i, q := range st.QuickBuilds {
		input := q.ADInput
		if q.Mode == config.ModeYAML {
			input = q.YAMLInput
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			i, cell(q.Label), q.Mode, cell(input), cell(q.Version), cell(q.OutputADC))
	}
	fmt.Fprintf(&b, "\nAuto disassemble: %t\n", st.AutoDisassemble)
	return b.String()
}

// cell escapes pipes so a value cannot break the table.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

func newQuickAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add label",
		Short: "Add a quick-build entry",
		Example: `
# Project build
adhoctool quick add arcade --mode yaml --yaml arcade.yaml --output arcade.adc

# Single script build for GT6
adhoctool quick add main --mode single --ad main.ad --version 12 --output main.adc
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			q := config.QuickBuild{
				Label: args[0],
				Mode:  config.BuildMode(strings.ToUpper(mode)),
			}
			q.ADInput, _ = cmd.Flags().GetString("ad")
			q.Version, _ = cmd.Flags().GetString("version")
			q.YAMLInput, _ = cmd.Flags().GetString("yaml")
			q.OutputADC, _ = cmd.Flags().GetString("output")

			if err := toolchain.Validate(q); err != nil {
				return err
			}

			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			index := st.AddQuickBuild(q)
			if err := st.SaveQuickBuilds(configPath(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added quick build %d: %s\n", index, q.Label)
			return nil
		},
	}

	c.Flags().String("mode", string(config.ModeSingle), "Build mode (yaml or single)")
	c.Flags().String("ad", "", "Script input for single builds")
	c.Flags().StringP("version", "v", "", "Adhoc version for single builds")
	c.Flags().String("yaml", "", "Project input for yaml builds")
	c.Flags().StringP("output", "o", "", "Output .adc file")
	return c
}

func newQuickRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove index|label",
		Aliases: []string{"rm"},
		Short:   "Remove a quick-build entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			index, err := st.FindQuickBuild(args[0])
			if err != nil {
				return err
			}
			label := st.QuickBuilds[index].Label
			if err := st.RemoveQuickBuild(index); err != nil {
				return err
			}
			if err := st.SaveQuickBuilds(configPath(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed quick build %d: %s\n", index, label)
			return nil
		},
	}
}

func newQuickMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "move index|label up|down",
		Short:     "Move a quick-build entry up or down",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var direction int
			switch strings.ToLower(args[1]) {
			case "up":
				direction = -1
			case "down":
				direction = 1
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}

			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			index, err := st.FindQuickBuild(args[0])
			if err != nil {
				return err
			}
			target, err := st.MoveQuickBuild(index, direction)
			if err != nil {
				return err
			}
			if err := st.SaveQuickBuilds(configPath(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %d\n", st.QuickBuilds[target].Label, target)
			return nil
		},
	}
}
