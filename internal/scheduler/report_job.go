package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/notify"
	"github.com/finexa/finexa-server/internal/recurring"
	"github.com/finexa/finexa-server/internal/storage"
)

// InsightsGenerator produces the short commentary block for report emails.
// Implementations are expected to fall back to canned text rather than fail.
type InsightsGenerator interface {
	GenerateInsights(ctx context.Context, stats domain.MonthlyStats, month string) []string
}

// ReportJob emails every user a summary of the previous calendar month on
// the first of each month.
type ReportJob struct {
	store    *storage.Storage
	notifier notify.Notifier
	insights InsightsGenerator
	logger   *logrus.Logger
}

func NewReportJob(store *storage.Storage, notifier notify.Notifier, insights InsightsGenerator, logger *logrus.Logger) *ReportJob {
	return &ReportJob{store: store, notifier: notifier, insights: insights, logger: logger}
}

func (j *ReportJob) Name() string { return "monthly_report" }

func (j *ReportJob) Run(ctx context.Context, now time.Time) error {
	users, err := j.store.Users.ListAll(ctx)
	if err != nil {
		return err
	}

	from, to := recurring.PreviousMonth(now.UTC())

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(4)

	for _, user := range users {
		user := user
		group.Go(func() error {
			// One failed report must not block everyone else's.
			if err := j.sendReport(ctx, user, from, to); err != nil {
				j.logger.WithError(err).WithField("user_id", user.ID).Error("monthly report failed")
			}
			return nil
		})
	}

	return group.Wait()
}

func (j *ReportJob) sendReport(ctx context.Context, user *domain.User, from, to time.Time) error {
	transactions, err := j.store.Transactions.ListInRange(ctx, user.ID, from, to)
	if err != nil {
		return err
	}

	stats := domain.ComputeMonthlyStats(transactions)
	monthName := from.Format("January 2006")
	insights := j.insights.GenerateInsights(ctx, stats, monthName)

	email, err := notify.RenderMonthlyReport(user.Email, notify.MonthlyReportData{
		UserName:      user.Name,
		Month:         monthName,
		TotalIncome:   stats.TotalIncome,
		TotalExpenses: stats.TotalExpenses,
		ByCategory:    stats.ByCategory,
		Insights:      insights,
	})
	if err != nil {
		return err
	}

	return j.notifier.Send(ctx, email)
}
