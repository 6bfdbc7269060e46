package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards in an ID range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		minID, _ := cmd.Flags().GetInt64("min")
		maxID, _ := cmd.Flags().GetInt64("max")
		if minID > maxID {
			return fmt.Errorf("--min %d is above --max %d", minID, maxID)
		}

		cards, err := store.New(cfg.Database).List(minID, maxID)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No cards between %d and %d.\n", minID, maxID)
			return nil
		}

		if err := writeCardTable(cmd.OutOrStdout(), cards); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d card(s)\n", len(cards))
		return nil
	},
}

const noName = "(no name)"

// writeCardTable aligns the plain text first and colours whole cells
// afterwards, so escape codes never count towards column widths.
func writeCardTable(out io.Writer, cards []card.Summary) error {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tATK/DEF\tLEVEL")
	for _, c := range cards {
		stats, level := "-", "-"
		if c.Type.IsMonster() {
			stats = fmt.Sprintf("%d/%d", c.Attack, c.Defense)
			level = fmt.Sprint(c.Level)
		}
		name := c.Name
		if name == "" {
			name = noName
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, name, c.Type.Label(), stats, level)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			line = color.CyanString("%s", line)
		case cards[i-1].Name == "":
			line = strings.Replace(line, noName, color.RedString(noName), 1)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

var nextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "Print the next free card ID",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := cfg.IDStart
		if cmd.Flags().Changed("start") {
			start, _ = cmd.Flags().GetInt64("start")
		}
		id, err := store.New(cfg.Database).NextAvailableID(start)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(nextIDCmd)

	listCmd.Flags().Int64("min", card.CustomIDMin, "lowest card ID")
	listCmd.Flags().Int64("max", card.CustomIDMax, "highest card ID")
	nextIDCmd.Flags().Int64("start", card.DefaultStart, "first ID to consider (default from config id_start)")
}
