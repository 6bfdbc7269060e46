package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edopro-tools/cardsmith/internal/creator"
	"github.com/edopro-tools/cardsmith/internal/script"
)

var scriptCmd = &cobra.Command{
	Use:   "script <id>",
	Short: "Generate the Lua script for a card already in the database",
	Long: `Script renders the template for an existing card and writes c<ID>.lua.
Use --print to write the script to stdout instead of the script directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		pattern, _ := cmd.Flags().GetString("effect")
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		toStdout, _ := cmd.Flags().GetBool("print")
		var params script.Params
		if cmd.Flags().Changed("effect-amount") {
			amount, _ := cmd.Flags().GetInt64("effect-amount")
			params = script.Params{"amount": amount}
		}

		c, err := newCreator()
		if err != nil {
			return err
		}

		if toStdout {
			cd, err := c.Store.Get(id)
			if err != nil {
				return err
			}
			out, err := c.Engine.Generate(cd, pattern, params)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		}

		r, err := c.Regenerate(id, pattern, params, overwrite)
		if err != nil {
			return err
		}
		if r.Status != creator.Succeeded {
			return r.Err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s script written: %s\n", okMark, r.Path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scriptCmd)

	f := scriptCmd.Flags()
	f.String("effect", "", "effect pattern (see 'cardsmith effects')")
	f.Int64("effect-amount", 0, "amount passed to the effect pattern")
	f.Bool("overwrite", false, "replace an existing script")
	f.Bool("print", false, "print the script instead of saving it")
}
