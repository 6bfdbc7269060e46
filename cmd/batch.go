package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edopro-tools/cardsmith/internal/manifest"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.toml>",
	Short: "Create every card listed in a manifest",
	Long: `Batch creates the [[card]] entries of a TOML manifest in order. Each card
is independent: an invalid or failed entry is reported and the rest still
run. Entries without an id get the next free ID from id_start.

Use --check to validate the manifest without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.Load(args[0])
		if err != nil {
			return err
		}
		checkOnly, _ := cmd.Flags().GetBool("check")
		out := cmd.OutOrStdout()

		if checkOnly {
			invalid := 0
			for _, e := range m.Cards {
				if _, err := e.Request(); err != nil {
					invalid++
					fmt.Fprintf(out, "%s %v\n", failMark, err)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d manifest entries are invalid", invalid, len(m.Cards))
			}
			fmt.Fprintf(out, "%s %d entries valid\n", okMark, len(m.Cards))
			return nil
		}

		c, err := newCreator()
		if err != nil {
			return err
		}
		if m.IDStart != 0 {
			c.IDStart = m.IDStart
		}
		c.Reserve(m.ExplicitIDs()...)

		created, failed, warned := 0, 0, 0
		for _, e := range m.Cards {
			fmt.Fprintf(out, "%s\n", color.HiWhiteString("%s", e.Label()))
			req, err := e.Request()
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s %v\n", failMark, err)
				continue
			}
			res := c.Create(req)
			printResult(out, "written", res)
			if !res.OK() {
				failed++
				continue
			}
			created++
			if len(res.Warnings()) > 0 {
				warned++
			}
		}

		fmt.Fprintf(out, "\n%d created, %d with warnings, %d failed\n", created, warned, failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d cards failed", failed, len(m.Cards))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(batchCmd)
	batchCmd.Flags().Bool("check", false, "validate the manifest only")
}
