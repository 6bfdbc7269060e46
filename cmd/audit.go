package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edopro-tools/cardsmith/internal/audit"
	"github.com/edopro-tools/cardsmith/internal/card"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check custom cards for missing names, scripts and artwork",
	Long: `Audit lists the custom cards in the database and checks each one: a card
without a name is an error; a missing script, missing or oddly sized
artwork, or a name shared with another card is a warning.

With --prune, cards that have no artwork are deleted together with their
scripts. --dry-run only lists what would be deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		minID, _ := cmd.Flags().GetInt64("min")
		maxID, _ := cmd.Flags().GetInt64("max")
		prune, _ := cmd.Flags().GetBool("prune")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()

		c, err := newCreator()
		if err != nil {
			return err
		}
		report, err := audit.Run(c.Store, c.Scripts, c.Artwork, minID, maxID)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Audit Results:")
		fmt.Fprintln(out, "--------------")
		fmt.Fprintf(out, "%d card(s) between %d and %d\n", report.Cards, minID, maxID)

		if len(report.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range report.Warnings {
				fmt.Fprintf(out, "%s %d. %s\n", warnMark, i+1, warn)
			}
		}
		if len(report.Errors) > 0 {
			fmt.Fprintln(out, "\nErrors:")
			for i, e := range report.Errors {
				fmt.Fprintf(out, "%s %d. %s\n", failMark, i+1, e)
			}
		}

		if prune {
			if err := pruneMissingArtwork(cmd, report.MissingArtwork(), dryRun, yes); err != nil {
				return err
			}
		}

		if !report.OK() {
			return fmt.Errorf("audit found %d error(s)", len(report.Errors))
		}
		if len(report.Warnings) == 0 {
			fmt.Fprintf(out, "\n%s all cards complete\n", okMark)
		}
		return nil
	},
}

func pruneMissingArtwork(cmd *cobra.Command, cards []card.Summary, dryRun, yes bool) error {
	out := cmd.OutOrStdout()
	if len(cards) == 0 {
		fmt.Fprintln(out, "\nNo cards without artwork.")
		return nil
	}

	fmt.Fprintf(out, "\n%d card(s) without artwork:\n", len(cards))
	for _, c := range cards {
		fmt.Fprintf(out, "  %d  %s\n", c.ID, c.Name)
	}
	if dryRun {
		fmt.Fprintln(out, color.YellowString("Dry run: nothing deleted."))
		return nil
	}
	if !yes && !confirm(cmd, "Delete these cards and their scripts?") {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	c, err := newCreator()
	if err != nil {
		return err
	}
	deleted := 0
	for _, s := range cards {
		res := c.Remove(s.ID, true)
		if !res.OK() {
			fmt.Fprintf(out, "%s %d: %v\n", failMark, s.ID, res.Record.Err)
			continue
		}
		deleted++
	}
	fmt.Fprintf(out, "%s deleted %d card(s)\n", okMark, deleted)
	return nil
}

func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	RootCmd.AddCommand(auditCmd)

	f := auditCmd.Flags()
	f.Int64("min", card.CustomIDMin, "lowest card ID")
	f.Int64("max", card.CustomIDMax, "highest card ID")
	f.Bool("prune", false, "delete cards that have no artwork")
	f.Bool("dry-run", false, "with --prune, only list the cards")
	f.BoolP("yes", "y", false, "with --prune, do not ask for confirmation")
}
