package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"adhoctool/internal/adhoctool/log"
	"adhoctool/internal/adhoctool/styles"
	"adhoctool/internal/config"
	"adhoctool/internal/diag"
	"adhoctool/internal/toolchain"
	"adhoctool/internal/ui/colorize"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "adhoctool",
		Short: "Build, disassemble and compare Adhoc scripts",
		Long: `Adhoctool drives the Adhoc toolchain (adhoc.exe) and compares rebuilt scripts
against original game files. Quick-build entries and the toolchain location are kept
in a plain config.txt file.`,
		Example: `
# Compare a rebuilt script against the original
adhoctool compare arcade.ad original/arcade.adc

# Build a single script for GT5
adhoctool build main.ad -o main.adc -v 12

# Run the first quick-build entry
adhoctool run 0
  `,
		PersistentPreRunE: setup,
	}
	addGlobalFlags(root)

	root.AddCommand(
		newCompareCmd(),
		newNormalizeCmd(),
		newBuildCmd(),
		newDisassembleCmd(),
		newRunCmd(),
		newQuickCmd(),
		newSettingsCmd(),
		newSchemaCmd(),
	)
	return root
}

// newCompareRoot is the root of the standalone adhoccompare binary.
func newCompareRoot() *cobra.Command {
	root := newCompareCmd()
	root.Use = "adhoccompare new_file original_file [output_file]"
	root.PersistentPreRunE = setup
	addGlobalFlags(root)
	return root
}

func addGlobalFlags(c *cobra.Command) {
	c.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	c.PersistentFlags().StringP("config", "C", config.DefaultFile, "Configuration file")
	c.PersistentFlags().String("adhoc", "", "Path to adhoc.exe (overrides ADHOC_DIR)")
	c.PersistentFlags().BoolP("debug", "d", false, "Debug")
	c.PersistentFlags().BoolP("plain", "p", false, "Plain output without colors or markdown rendering")
}

func setup(cmd *cobra.Command, _ []string) error {
	if cwd, _ := cmd.Flags().GetString("cwd"); cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return fmt.Errorf("failed to change directory: %v", err)
		}
	}

	debug, _ := cmd.Flags().GetBool("debug")
	log.Setup(debug)

	plain, _ := cmd.Flags().GetBool("plain")
	if plain || !isTerminal(cmd.OutOrStdout()) {
		os.Setenv(colorize.NoColorEnv, "1")
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// styled reports whether output to w gets colors and markdown rendering.
func styled(cmd *cobra.Command) bool {
	plain, _ := cmd.Flags().GetBool("plain")
	return !plain && isTerminal(cmd.OutOrStdout())
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFile
	}
	return path
}

// loadSettings reads the config file, logging anything that had to be skipped.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path := configPath(cmd)
	st, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	for _, d := range st.Diags() {
		slog.Warn(d.Msg, "config", path, "kind", d.Kind)
	}
	return st, nil
}

// locateTool resolves the toolchain from --adhoc, then ADHOC_DIR, then the search
// path.
func locateTool(cmd *cobra.Command) (*toolchain.Tool, error) {
	configured, _ := cmd.Flags().GetString("adhoc")
	if configured == "" {
		st, err := loadSettings(cmd)
		if err != nil {
			return nil, err
		}
		configured = st.AdhocPath
	}
	return toolchain.Locate(configured)
}

// renderMarkdown prints md through glamour on a terminal and as-is otherwise.
func renderMarkdown(cmd *cobra.Command, md string) error {
	out := cmd.OutOrStdout()
	if !styled(cmd) {
		_, err := io.WriteString(out, md)
		return err
	}
	width := 100
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
			width = w
		}
	}
	rendered, err := styles.RenderMarkdown(md, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// printDiags writes diagnostics as "[E] message" lines.
func printDiags(cmd *cobra.Command, items []diag.Diag) {
	out := cmd.OutOrStdout()
	color := styled(cmd)
	for _, d := range items {
		tag := fmt.Sprintf("[%s]", d.Severity)
		if color {
			switch d.Severity {
			case diag.Error:
				tag = styles.ErrorTag.Render(tag)
			case diag.Warning:
				tag = styles.WarningTag.Render(tag)
			default:
				tag = styles.InfoTag.Render(tag)
			}
		}
		fmt.Fprintf(out, "%s %s\n", tag, d.Msg)
	}
}

func execute(root *cobra.Command) {
	defer log.Close()

	// Bypass fang when plain output is requested or output is being piped
	plain := !term.IsTerminal(os.Stdout.Fd())
	for _, arg := range os.Args[1:] {
		if arg == "--plain" || arg == "-p" {
			plain = true
			break
		}
	}

	if plain {
		if err := root.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// Execute runs the adhoctool command line.
func Execute() {
	execute(newRootCmd())
}

// ExecuteCompare runs the standalone comparison command line.
func ExecuteCompare() {
	execute(newCompareRoot())
}
