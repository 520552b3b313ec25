package cmd

import (
	"context"
	"fmt"
	"time"

	"spacebook/database"
	"spacebook/database/repository"
	"spacebook/utils"

	"github.com/spf13/cobra"
)

const indexTimeout = time.Minute

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes for every collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.GetLogger()
		database.InitDB()
		defer database.CloseDB(context.Background())

		if err := ensureIndexes(context.Background(), repository.NewMongoRepositories()); err != nil {
			return err
		}
		logger.Info("indexes created")
		return nil
	},
}

type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes creates the unique indexes that favorites, ratings and card
// references rely on. serve runs it before accepting traffic.
func ensureIndexes(ctx context.Context, repos indexEnsurer) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := repos.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}
