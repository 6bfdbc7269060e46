package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/edopro-tools/cardsmith/internal/config"
	"github.com/edopro-tools/cardsmith/internal/creator"
)

var (
	configPath string
	verbosity  int
	logFile    string

	cfg *config.Config
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardsmith",
	Short: "Author custom cards for EDOPro",
	Long: `Cardsmith creates custom cards for the EDOPro engine.
It writes the card record into the SQLite card database, generates a Lua
script from a template and an optional effect pattern, and places the card
artwork in the pics directory at the size the engine expects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var path *string
		if logFile != "" {
			path = &logFile
		}
		commonlog.Configure(verbosity, path)

		loaded, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cardsmith/config.toml)")
	flags.String("db", "", "card database (.cdb) to write to")
	flags.String("script-dir", "", "directory for generated c<ID>.lua scripts")
	flags.String("pics-dir", "", "directory for card artwork")
	flags.String("templates-dir", "", "directory overriding the built-in script templates")
	flags.CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// newCreator builds a creator from the loaded configuration.
func newCreator() (*creator.Creator, error) {
	c, err := creator.New(creator.Paths{
		Database:     cfg.Database,
		ScriptDir:    cfg.ScriptDir,
		PicsDir:      cfg.PicsDir,
		TemplatesDir: cfg.TemplatesDir,
	})
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.Download.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	c.IDStart = cfg.IDStart
	c.Artwork.Attempts = cfg.Download.Attempts
	c.Artwork.Client.Timeout = timeout
	c.Artwork.UserAgent = cfg.Download.UserAgent
	return c, nil
}
