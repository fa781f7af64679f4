package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcel/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type ExpireIdleFlowsHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireIdleFlowsCommand) (int, error)
}

// FlowExpiryJob resets booking flows that were abandoned mid-way, releasing
// their attachments.
type FlowExpiryJob struct {
	handler  ExpireIdleFlowsHandler
	ttl      time.Duration
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewFlowExpiryJob(handler ExpireIdleFlowsHandler, ttl time.Duration, schedule string, logger *slog.Logger) *FlowExpiryJob {
	return &FlowExpiryJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "flow_expiry_job"),
	}
}

func (j *FlowExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Flow expiry job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// Run expires idle flows once.
func (j *FlowExpiryJob) Run(ctx context.Context) {
	cmd, err := commands.NewExpireIdleFlowsCommand(j.now(), j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Flow expiry command rejected", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Flow expiry job failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Idle flows expired", "count", expired)
	}
}

func (j *FlowExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Flow expiry job stopped")
}
