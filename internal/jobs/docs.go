// Package jobs provides scheduled background tasks for the parcel service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes shipment events stored in the outbox to Kafka
// 2. FlowExpiryJob - resets booking flows left idle longer than the flow TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(relayHandler, expiryHandler, 30*time.Minute, jobs.DefaultSchedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six-field cron expressions with a leading seconds field.
// By default the relay runs every second and the expiry sweep every minute.
// A relay run still in progress when the next tick fires is skipped.
//
// # Error Handling
//
// Both jobs log failures and wait for the next tick. A failed relay leaves
// its batch unpublished, so events are delivered at least once. Failed job
// starts stop any already running jobs.
package jobs
