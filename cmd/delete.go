package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a card from the database",
	Long: `Delete removes the card's datas and texts rows. With --files its script and
artwork are removed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		withFiles, _ := cmd.Flags().GetBool("files")

		c, err := newCreator()
		if err != nil {
			return err
		}
		res := c.Remove(id, withFiles)
		printResult(cmd.OutOrStdout(), "removed", res)
		if !res.OK() {
			return fmt.Errorf("card %d not deleted: %w", id, res.Record.Err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().Bool("files", false, "also delete the card's script and artwork")
}
