// Package jobs provides scheduled background tasks for the order service.
//
// The only job today is the WebhookRelayJob, a cron-based loop built on
// github.com/robfig/cron/v3 that drains the webhook outbox: it picks up due
// event records, resolves each account's subscription, delivers over HTTP
// and applies bounded retry with exponential backoff. Records whose attempt
// budget runs out move to a dead-letter state for manual inspection.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(relayJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
