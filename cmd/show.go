package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/edopro-tools/cardsmith/internal/artwork"
	"github.com/edopro-tools/cardsmith/internal/card"
	"github.com/edopro-tools/cardsmith/internal/script"
	"github.com/edopro-tools/cardsmith/internal/store"
)

// Preview size in terminal cells; roughly the card's aspect ratio.
const (
	previewCols = 24
	previewRows = 17
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a card with an ANSI preview of its artwork",
	Long: `Show prints the card's database fields next to a terminal rendering of its
artwork, and reports whether its script exists.

Examples:
  cardsmith show 10000100
  cardsmith show --no-art 10000100`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		noArt, _ := cmd.Flags().GetBool("no-art")

		c, err := store.New(cfg.Database).Get(id)
		if err != nil {
			return err
		}

		placer := artwork.NewPlacer(cfg.PicsDir)
		var art string
		if !noArt {
			if path, ok := placer.FindExisting(id); ok {
				art, err = artwork.RenderFile(path, previewCols, previewRows, true)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s could not render %s: %v\n", warnMark, path, err)
				}
			}
		}

		hasScript := script.NewWriter(cfg.ScriptDir).Exists(id)
		displayCard(cmd.OutOrStdout(), c, art, hasScript)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("no-art", false, "skip the artwork preview")
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			result = append(result, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		result = append(result, line)
	}
	return result
}

func field(name, format string, args ...any) string {
	return colorize.CyanString("%-10s", name+":") + colorize.HiWhiteString(format, args...)
}

// displayCard prints the artwork on the left and the card fields on the right.
func displayCard(w io.Writer, c *card.Card, art string, hasScript bool) {
	var artLines []string
	if art != "" {
		artLines = strings.Split(strings.TrimRight(art, "\n"), "\n")
	}
	artWidth := 0
	for _, line := range artLines {
		if n := len([]rune(stripAnsi(line))); n > artWidth {
			artWidth = n
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	info := []string{
		field("Card", "%s", c.Name),
		field("ID", "%d", c.ID),
		field("Type", "%s", c.Type.Label()),
	}
	if c.Type.IsMonster() {
		info = append(info,
			field("Attribute", "%s", c.Attribute.Name()),
			field("Race", "%s", c.Race.Name()),
			field("Level", "%d", c.Level),
			field("ATK/DEF", "%d/%d", c.Attack, c.Defense),
		)
	}
	info = append(info, field("Scope", "%s", c.Scope.Label()))
	if c.Alias != 0 {
		info = append(info, field("Alias", "%d", c.Alias))
	}
	if c.SetCode != 0 {
		info = append(info, field("Setcode", "%#x", c.SetCode))
	}
	if hasScript {
		info = append(info, field("Script", "c%d.lua", c.ID))
	} else {
		info = append(info, colorize.CyanString("%-10s", "Script:")+colorize.YellowString("missing"))
	}

	spacing := 4
	infoStart := artWidth + spacing
	if artWidth == 0 {
		infoStart = 0
	}
	infoWidth := width - infoStart - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	info = append(info, "", colorize.CyanString("Description:"))
	info = append(info, wrapText(c.Desc, infoWidth)...)
	for i, s := range c.Strings {
		if s != "" {
			info = append(info, field(fmt.Sprintf("str%d", i+1), "%s", s))
		}
	}

	fmt.Fprintln(w)
	lines := max(len(artLines), len(info))
	for i := 0; i < lines; i++ {
		fmt.Fprint(w, "  ")
		if i < len(artLines) {
			fmt.Fprint(w, artLines[i])
			fmt.Fprint(w, strings.Repeat(" ", infoStart-len([]rune(stripAnsi(artLines[i])))))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStart))
		}
		if i < len(info) {
			fmt.Fprint(w, info[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
