package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules are six-field cron expressions, seconds first.
type Schedules struct {
	OutboxRelay string
	FlowExpiry  string
}

// DefaultSchedules relays every second and sweeps idle flows every minute.
var DefaultSchedules = Schedules{
	OutboxRelay: "* * * * * *",
	FlowExpiry:  "0 * * * * *",
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
	flowExpiryJob  *FlowExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
// A nil relayHandler leaves events in the outbox until a broker is configured.
func NewJobManager(
	relayHandler RelayOutboxHandler,
	expiryHandler ExpireIdleFlowsHandler,
	flowTTL time.Duration,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		flowExpiryJob: NewFlowExpiryJob(expiryHandler, flowTTL, schedules.FlowExpiry, logger),
	}
	if relayHandler != nil {
		jm.outboxRelayJob = NewOutboxRelayJob(relayHandler, schedules.OutboxRelay, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.outboxRelayJob != nil {
		if err := jm.outboxRelayJob.Start(); err != nil {
			return fmt.Errorf("failed to start outbox relay job: %w", err)
		}
	}

	if err := jm.flowExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		if jm.outboxRelayJob != nil {
			jm.outboxRelayJob.Stop()
		}
		return fmt.Errorf("failed to start flow expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.flowExpiryJob.Stop()
	if jm.outboxRelayJob != nil {
		jm.outboxRelayJob.Stop()
	}
}
