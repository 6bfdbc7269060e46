package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edopro-tools/cardsmith/internal/script"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List the effect patterns scripts can be generated from",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		patterns := script.Patterns()
		for _, name := range script.PatternNames() {
			fmt.Fprintf(out, "  %s %s\n", color.CyanString("%-12s", name), patterns[name])
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Spell types: %s\n", strings.Join(taxonomy.SpellSubtypes(), ", "))
		fmt.Fprintf(out, "Trap types:  %s\n", strings.Join(taxonomy.TrapSubtypes(), ", "))
	},
}

var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "List monster attributes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range taxonomy.Attributes() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var racesCmd = &cobra.Command{
	Use:   "races",
	Short: "List monster races",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range taxonomy.Races() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "List legality scopes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range taxonomy.Scopes() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	RootCmd.AddCommand(effectsCmd)
	RootCmd.AddCommand(attributesCmd)
	RootCmd.AddCommand(racesCmd)
	RootCmd.AddCommand(scopesCmd)
}
