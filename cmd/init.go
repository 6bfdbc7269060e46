package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/edopro-tools/cardsmith/internal/config"
	"github.com/edopro-tools/cardsmith/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the config file and create a blank card database",
	Long: `Init creates the directories cardsmith writes to, a card database with empty
datas and texts tables (existing tables are left alone), and the config file
if it does not exist yet. --force rewrites the config file with defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		out := cmd.OutOrStdout()

		path := configPath
		if path == "" {
			path = config.GetConfigFilePath()
		}
		_, statErr := os.Stat(path)
		if force || errors.Is(statErr, fs.ErrNotExist) {
			if err := config.WriteDefault(path); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, "Config file initialized at:", path)

		if err := store.CreateBlank(cfg.Database); err != nil {
			return err
		}
		fmt.Fprintln(out, "Card database initialized at:", cfg.Database)

		c, err := newCreator()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Scripts directory:", c.Scripts.Dir)
		fmt.Fprintln(out, "Pics directory:   ", c.Artwork.Dir)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing config file with defaults")
}
