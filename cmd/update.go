package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/store"
	"github.com/edopro-tools/cardsmith/internal/taxonomy"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of an existing card",
	Long: `Update rewrites only the fields whose flags are given; everything else keeps
its stored value.

Examples:
  cardsmith update 10000100 --race Fairy
  cardsmith update 10000100 --desc "Restore 1000 Life Points" --str 1="Gain LP"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		u, err := updateFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		if u.Empty() {
			return fmt.Errorf("nothing to update: pass at least one field flag")
		}

		if err := store.New(cfg.Database).Update(id, u); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s card %d updated\n", okMark, id)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(updateCmd)

	f := updateCmd.Flags()
	f.String("name", "", "card name")
	f.String("desc", "", "card text")
	f.Int64("atk", 0, "monster ATK")
	f.Int64("def", 0, "monster DEF")
	f.Int64("level", 0, "monster level or rank")
	f.String("attribute", "", "monster attribute")
	f.String("race", "", "monster race")
	f.String("scope", "", "legality scope, e.g. OCG_TCG or CUSTOM")
	f.String("type-flags", "", "raw type bitmask, e.g. 0x21")
	f.Int64("alias", 0, "alias card ID")
	f.Int64("setcode", 0, "archetype set code")
	f.String("category", "", "raw effect category bitmask")
	f.StringArray("str", nil, "hint string as N=text (N from 1 to 16), repeatable")
}

func updateFromFlags(f *pflag.FlagSet) (card.Update, error) {
	var u card.Update
	text := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	number := func(name string) *int64 {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetInt64(name)
		return &v
	}

	u.Name = text("name")
	u.Desc = text("desc")
	u.Attack = number("atk")
	u.Defense = number("def")
	u.Level = number("level")
	u.Alias = number("alias")
	u.SetCode = number("setcode")

	if s := text("attribute"); s != nil {
		a, err := taxonomy.ParseAttribute(*s)
		if err != nil {
			return u, err
		}
		u.Attribute = &a
	}
	if s := text("race"); s != nil {
		r, err := taxonomy.ParseRace(*s)
		if err != nil {
			return u, err
		}
		u.Race = &r
	}
	if s := text("scope"); s != nil {
		sc, err := taxonomy.ParseScope(*s)
		if err != nil {
			return u, err
		}
		u.Scope = &sc
	}
	if s := text("type-flags"); s != nil {
		v, err := strconv.ParseUint(*s, 0, 32)
		if err != nil {
			return u, fmt.Errorf("invalid --type-flags %q: %w", *s, err)
		}
		t := taxonomy.Type(v)
		u.Type = &t
	}
	if s := text("category"); s != nil {
		v, err := strconv.ParseUint(*s, 0, 64)
		if err != nil {
			return u, fmt.Errorf("invalid --category %q: %w", *s, err)
		}
		c := taxonomy.Category(v)
		u.Category = &c
	}

	strs, _ := f.GetStringArray("str")
	for _, kv := range strs {
		n, v, ok := strings.Cut(kv, "=")
		if !ok {
			return u, fmt.Errorf("invalid --str %q: want N=text", kv)
		}
		i, err := strconv.Atoi(n)
		if err != nil || i < 1 || i > card.StringCount {
			return u, fmt.Errorf("invalid --str index %q: want 1 to %d", n, card.StringCount)
		}
		if u.Strings == nil {
			u.Strings = map[int]string{}
		}
		u.Strings[i] = v
	}
	return u, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid card ID: %s", s)
	}
	return id, nil
}
