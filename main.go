package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/finexa/finexa-server/api"
	"github.com/finexa/finexa-server/internal/config"
	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/insights"
	"github.com/finexa/finexa-server/internal/jobs/inmemory"
	"github.com/finexa/finexa-server/internal/logging"
	"github.com/finexa/finexa-server/internal/notify"
	"github.com/finexa/finexa-server/internal/operator"
	"github.com/finexa/finexa-server/internal/scheduler"
	"github.com/finexa/finexa-server/internal/service"
	"github.com/finexa/finexa-server/internal/storage"
)

const operatorWorkers = 4

func main() {
	// .env is for local development; absence is fine in production.
	_ = godotenv.Load()

	logger := logging.SetupLogging()
	logrus.Info("finexa-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbStorage, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	svc := service.NewService(dbStorage)

	delegator := operator.NewOperatorDelegator(dbStorage, operatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	notifier := notify.NewResendNotifier(envConfig.ResendAPIKey, envConfig.EmailFrom)

	var scanner *insights.Client
	if envConfig.GeminiAPIKey != "" {
		scanner, err = insights.NewClient(ctx, envConfig.GeminiAPIKey, logger)
		if err != nil {
			logrus.WithError(err).Fatal("insights.NewClient")
			return
		}
	} else {
		logger.Warn("GEMINI_API_KEY unset, receipt scanning disabled")
	}

	queue := inmemory.NewQueue(inmemory.Config{
		BufferSize:            envConfig.QueueSize,
		Workers:               envConfig.QueueWorkers,
		MaxAttempts:           envConfig.TaskMaxAttempts,
		TasksPerUserPerMinute: envConfig.TasksPerUserPerMinute,
		RetryBaseDelay:        time.Second,
	}, logger)
	if err := queue.Start(ctx, scheduler.RecurringHandler(delegator, logger)); err != nil {
		logrus.WithError(err).Fatal("queue.Start")
		return
	}

	var reportInsights scheduler.InsightsGenerator = staticInsights{}
	if scanner != nil {
		reportInsights = scanner
	}

	runner := scheduler.NewRunner(
		scheduler.NewRecurringSweep(dbStorage, queue, logger),
		scheduler.NewBudgetMonitor(dbStorage, notifier, logger),
		scheduler.NewReportJob(dbStorage, notifier, reportInsights, logger),
		envConfig.BudgetCheckInterval,
		logger,
	)
	runner.Start(ctx)

	httpRest := api.Rest{
		Logger:   logger,
		Port:     envConfig.ServerPort,
		Operator: delegator,
		Service:  svc,
		Scanner:  scanner,
	}
	go httpRest.Serve()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.WithField("signal", sig.String()).Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpRest.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("http shutdown")
	}
	runner.Stop()
	if err := queue.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("queue shutdown")
	}
	cancel()
	logger.Info("finexa-server stopped")
}

// staticInsights serves canned commentary when no model key is configured.
type staticInsights struct{}

func (staticInsights) GenerateInsights(_ context.Context, _ domain.MonthlyStats, _ string) []string {
	return []string{
		"Your highest expense category this month might need attention.",
		"Consider setting up a budget for better financial management.",
		"Track your recurring expenses to identify potential savings.",
	}
}
