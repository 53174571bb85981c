package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/minicrmhq/minicrm-backend/internal/reminders"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	"github.com/minicrmhq/minicrm-backend/pkg/logger"
	"github.com/minicrmhq/minicrm-backend/pkg/metrics"
)

const digestWindowDays = 7

type reminderDigestRepo interface {
	CountUnsentByStore(ctx context.Context, from, to dbtypes.Date) ([]reminders.StoreDueCount, error)
}

// ReminderDigestJobParams configure the reminder digest job.
type ReminderDigestJobParams struct {
	Logger     *logger.Logger
	Repository reminderDigestRepo
	Metrics    *metrics.ReminderMetrics
	WindowDays int
}

// NewReminderDigestJob builds the job that surveys unsent reminders due in
// the coming window, per store, and publishes the counts as log lines and a
// gauge for alerting.
func NewReminderDigestJob(params ReminderDigestJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("reminders repository required")
	}
	window := params.WindowDays
	if window <= 0 {
		window = digestWindowDays
	}
	return &reminderDigestJob{
		logg:    params.Logger,
		repo:    params.Repository,
		metrics: params.Metrics,
		window:  window,
		now:     time.Now,
	}, nil
}

type reminderDigestJob struct {
	logg    *logger.Logger
	repo    reminderDigestRepo
	metrics *metrics.ReminderMetrics
	window  int
	now     func() time.Time
}

func (j *reminderDigestJob) Name() string { return "reminder-digest" }

func (j *reminderDigestJob) Run(ctx context.Context) error {
	from := dbtypes.DateOf(j.now().UTC())
	to := from.AddDays(j.window)

	counts, err := j.repo.CountUnsentByStore(ctx, from, to)
	if err != nil {
		return fmt.Errorf("reminder digest: %w", err)
	}

	var total int64
	for _, count := range counts {
		total += count.Due
		if j.metrics != nil {
			j.metrics.SetDue(count.StoreID.String(), float64(count.Due))
		}
		storeCtx := j.logg.WithFields(ctx, map[string]any{
			"store_id":      count.StoreID,
			"reminders_due": count.Due,
			"window_start":  from.String(),
			"window_end":    to.String(),
		})
		j.logg.Info(storeCtx, "store has unsent follow-up reminders")
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"stores":      len(counts),
		"total_due":   total,
		"window_days": j.window,
	})
	j.logg.Info(logCtx, "reminder digest complete")
	return nil
}
