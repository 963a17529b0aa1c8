package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"socialdb/pkg/config"
	"socialdb/pkg/content"
	"socialdb/pkg/identity"
	"socialdb/pkg/logger"
	"socialdb/pkg/messaging"
	"socialdb/pkg/models"
	"socialdb/pkg/store"
)

var (
	home    string
	cfgPath string

	blob     store.Blob
	identSvc *identity.Store
	postsSvc *content.Store
	msgSvc   *messaging.Store
)

// Execute wires config, logging, storage and the three stores, then
// dispatches to the subcommands.
func Execute() error {
	root := &cobra.Command{
		Use:          "socialdb",
		Short:        "Local social feed and direct messages, stored on this device",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load(".env")
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".socialdb")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			path := config.ResolveConfigPath(cfgPath, cmd.Flags().Changed("config"))
			if path == "" {
				path = filepath.Join(home, "config.yaml")
			}
			cfg, _, err := config.LoadEffective(path)
			if err != nil {
				return err
			}
			logger.InitWithLevel(cfg.Logging.Level, cfg.Logging.Format)

			dbPath := cfg.Storage.DBPath
			if dbPath == "" {
				dbPath = filepath.Join(home, "db")
			}
			p, err := store.OpenPebble(dbPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			blob = p

			if identSvc, err = identity.NewStore(blob); err != nil {
				return err
			}
			if postsSvc, err = content.NewStore(blob); err != nil {
				return err
			}
			if msgSvc, err = messaging.NewStore(blob); err != nil {
				return err
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if blob == nil {
				return nil
			}
			return blob.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.socialdb)")
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default <home>/config.yaml)")

	root.AddCommand(
		registerCmd(), loginCmd(), logoutCmd(), whoamiCmd(), usersCmd(), profileCmd(),
		postCmd(), feedCmd(),
		msgCmd(),
		statsCmd(),
	)
	return root.Execute()
}

// requireUser returns the session user or an error telling the caller
// to log in.
func requireUser() (models.User, error) {
	u, ok := identSvc.CurrentUser()
	if !ok {
		return models.User{}, fmt.Errorf("not logged in; run `socialdb login <username>` first")
	}
	return u, nil
}

// displayName resolves a user id to something printable. Unresolvable
// authors render as the raw id; user records are never deleted, so this
// path is theoretical.
func displayName(id models.UserID) string {
	if u, ok := identSvc.GetUserByID(id); ok {
		return u.DisplayName
	}
	return string(id)
}
