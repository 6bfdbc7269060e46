package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/edopro-tools/cardsmith/internal/creator"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a card: database record, script and artwork",
	Long: `Create inserts a new card into the database, generates its Lua script and
places its artwork. Only the database step is required to succeed; a failed
script or image is reported as a warning and the card is kept.

Examples:
  cardsmith create --name "Healing Light" --desc "Restore 500 Life Points" \
    --type spell --effect recover_lp --effect-amount 500
  cardsmith create --id 10000200 --name "Ember Wyrm" --desc "A small dragon." \
    --type monster --atk 1800 --def 1200 --level 4 --attribute FIRE --race Dragon \
    --image https://example.com/wyrm.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := draftFromFlags(cmd.Flags()).Request()
		if err != nil {
			return err
		}

		c, err := newCreator()
		if err != nil {
			return err
		}
		res := c.Create(req)
		printResult(cmd.OutOrStdout(), "written", res)
		if !res.OK() {
			return fmt.Errorf("card not created: %w", res.Record.Err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s card %s created\n",
			okMark, color.HiWhiteString("%d", res.ID))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(createCmd)

	f := createCmd.Flags()
	f.Int64("id", 0, "card ID (0 picks the next free ID)")
	f.String("name", "", "card name")
	f.String("desc", "", "card text")
	f.String("type", "", "card kind: monster, spell or trap")
	f.Int64("atk", 0, "monster ATK")
	f.Int64("def", 0, "monster DEF")
	f.Int64("level", 0, "monster level or rank")
	f.String("attribute", "", "monster attribute, e.g. LIGHT")
	f.String("race", "", "monster race, e.g. Spellcaster")
	f.Bool("effect-monster", false, "make the monster an effect monster instead of a normal one")
	f.String("spell-type", "", "spell subtype: normal, quickplay, continuous, equip, field")
	f.String("trap-type", "", "trap subtype: normal, continuous, counter")
	f.String("effect", "", "effect pattern for the script (see 'cardsmith effects')")
	f.Int64("effect-amount", 0, "amount passed to the effect pattern")
	f.String("image", "", "artwork URL or local file")
	f.Bool("no-resize", false, "keep the artwork as downloaded instead of normalizing it")
	f.Bool("overwrite", false, "replace an existing script or image")
	f.Bool("no-script", false, "skip script generation")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("desc")
	createCmd.MarkFlagRequired("type")
}

// draftFromFlags reads create flags. Stat flags count as given only when
// set, so a missing --def is an error rather than a silent 0.
func draftFromFlags(f *pflag.FlagSet) creator.Draft {
	optional := func(name string) *int64 {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetInt64(name)
		return &v
	}

	d := creator.Draft{
		Attack:  optional("atk"),
		Defense: optional("def"),
		Level:   optional("level"),
		Amount:  optional("effect-amount"),
	}
	d.ID, _ = f.GetInt64("id")
	d.Name, _ = f.GetString("name")
	d.Desc, _ = f.GetString("desc")
	d.Kind, _ = f.GetString("type")
	d.Attribute, _ = f.GetString("attribute")
	d.Race, _ = f.GetString("race")
	d.SpellType, _ = f.GetString("spell-type")
	d.TrapType, _ = f.GetString("trap-type")
	d.Effect, _ = f.GetString("effect")
	d.Image, _ = f.GetString("image")
	d.EffectMonster, _ = f.GetBool("effect-monster")
	d.NoResize, _ = f.GetBool("no-resize")
	d.Overwrite, _ = f.GetBool("overwrite")
	d.NoScript, _ = f.GetBool("no-script")
	return d
}
