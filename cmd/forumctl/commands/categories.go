package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"threadboard/internal/repository"
	"threadboard/internal/repository/sqlite"
	"threadboard/internal/service"
)

var categoriesCmd = &cobra.Command{
	Use:   "add-categories NAME...",
	Short: "Create categories, skipping names that already exist",
	Args:  cobra.MinimumNArgs(1),
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
		forum := service.NewForumService(
			sqlite.NewUserRepository(db),
			sqlite.NewCategoryRepository(db),
			sqlite.NewThreadRepository(db),
			sqlite.NewCommentRepository(db),
		)

		for _, name := range args {
			category, err := forum.CreateCategory(cmd.Context(), name)
			switch {
			case errors.Is(err, repository.ErrConflict):
				logger.Infof("category %q already exists", name)
			case err != nil:
				return err
			default:
				logger.Infof("created category %q (id %d)", category.Name, category.ID)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
