package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"adhoctool/internal/config"
)

func newSettingsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the persisted settings",
	}
	c.AddCommand(newSettingsShowCmd(), newSettingsSetCmd())
	return c
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			adhoc := st.AdhocPath
			if adhoc == "" {
				adhoc = "(search PATH)"
			}
			var b strings.Builder
			fmt.Fprintf(&b, "# Settings\n\n")
			fmt.Fprintf(&b, "- **Config file:** `%s`\n", configPath(cmd))
			fmt.Fprintf(&b, "- **%s:** `%s`\n", config.KeyAdhocDir, adhoc)
			fmt.Fprintf(&b, "- **%s:** `%s`\n", config.KeyDefaultTab, st.DefaultTab)
			fmt.Fprintf(&b, "- **%s:** `%t`\n", config.KeyAutoDisassemble, st.AutoDisassemble)
			fmt.Fprintf(&b, "- **Quick builds:** %d\n", len(st.QuickBuilds))
			return renderMarkdown(cmd, b.String())
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set adhoc-dir|default-tab|auto-diss value",
		Short:     "Change one setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"adhoc-dir", "default-tab", "auto-diss"},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			path := configPath(cmd)
			key, value := args[0], args[1]

			switch key {
			case "adhoc-dir":
				st.AdhocPath = value
				err = st.SaveGeneral(path)
			case "default-tab":
				if err := st.SetDefaultTab(value); err != nil {
					return err
				}
				err = st.SaveGeneral(path)
			case "auto-diss":
				b, perr := strconv.ParseBool(value)
				if perr != nil {
					return fmt.Errorf("auto-diss expects true or false, got %q", value)
				}
				st.AutoDisassemble = b
				err = st.SaveQuickBuilds(path)
			default:
				return fmt.Errorf("unknown setting %q", key)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", key)
			return nil
		},
	}
}
