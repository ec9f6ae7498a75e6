package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"adhoctool/internal/toolchain"
)

func newBuildCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "build input.yaml|input.ad",
		Short: "Compile a YAML project or a single script",
		Example: `
# Build a project
adhoctool build project.yaml -o project.adc

# Build a single script for GT4
adhoctool build main.ad -o main.adc -v 5

# Build next to the source and disassemble the result
adhoctool build main.ad -D
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			output, _ := cmd.Flags().GetString("output")
			version, _ := cmd.Flags().GetString("version")
			diss, _ := cmd.Flags().GetBool("disassemble")

			tool, err := locateTool(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			switch ext := strings.ToLower(filepath.Ext(input)); ext {
			case ".yaml", ".yml":
				if output == "" {
					return fmt.Errorf("--output is required for project builds")
				}
				err = tool.BuildProject(ctx, input, output)
			case ".ad":
				switch {
				case output == "":
					output, err = tool.BuildInPlace(ctx, input)
				case version == "":
					return fmt.Errorf("--version is required when --output is given for a single script")
				default:
					if !toolchain.KnownVersion(version) {
						slog.Warn("Unknown Adhoc version", "version", version)
					}
					err = tool.BuildScript(ctx, input, output, version)
				}
			default:
				return fmt.Errorf("unsupported input %q: expected a .yaml project or an .ad script", input)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %s\n", output)

			if diss {
				path, err := tool.Disassemble(ctx, output)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Disassembled %s\n", path)
			}
			return nil
		},
	}

	c.Flags().StringP("output", "o", "", "Output .adc file")
	c.Flags().StringP("version", "v", "", "Adhoc version for single scripts ("+versionList()+")")
	c.Flags().BoolP("disassemble", "D", false, "Disassemble the output after building")
	return c
}

func versionList() string {
	parts := make([]string, len(toolchain.Versions))
	for i, v := range toolchain.Versions {
		parts[i] = v.Number + ": " + v.Games
	}
	return strings.Join(parts, "; ")
}

func newDisassembleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "disassemble file.adc",
		Aliases: []string{"diss"},
		Short:   "Disassemble a compiled script into a .ad.diss dump",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.HasSuffix(args[0], ".adc") {
				return fmt.Errorf("expected an .adc file, got %q", args[0])
			}
			tool, err := locateTool(cmd)
			if err != nil {
				return err
			}
			path, err := tool.Disassemble(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Disassembled %s\n", path)
			return nil
		},
	}
}
