package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"spacebook/cron"
	"spacebook/database"
	"spacebook/database/repository"
	"spacebook/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume the booking notification queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.GetLogger()

		database.InitDB()
		initFirebase(logger)

		repos := repository.NewMongoRepositories()
		notifier := newNotifier(repos, logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err := cron.RunNotificationWorker(ctx, notifier, logger)

		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := database.CloseDB(closeCtx); cerr != nil {
			logger.Warn("failed to disconnect MongoDB", zap.Error(cerr))
		}
		return err
	},
}
