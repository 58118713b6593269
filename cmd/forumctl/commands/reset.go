package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"threadboard/internal/repository/sqlite"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate every table",
	Long: `Drop every forum table and create the schema again from scratch.

All data is lost. Pass --yes to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		logger.Info("dropping tables")
		if err := sqlite.DropAll(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("creating tables")
		if err := sqlite.CreateAll(cmd.Context(), db); err != nil {
			return err
		}
		logger.Infof("schema reset: %v", sqlite.TableNames())
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create any missing tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := sqlite.CreateAll(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(migrateCmd)

	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm destroying all data")
}
