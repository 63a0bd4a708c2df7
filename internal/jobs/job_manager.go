package jobs

import "fmt"

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	webhookRelayJob *WebhookRelayJob
}

// NewJobManager creates a job manager owning the webhook relay job.
func NewJobManager(relayJob *WebhookRelayJob) *JobManager {
	return &JobManager{webhookRelayJob: relayJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.webhookRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start webhook relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.webhookRelayJob.Stop()
}
