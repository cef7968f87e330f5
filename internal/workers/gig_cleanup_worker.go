package workers

import (
	"github.com/robfig/cron/v3"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/services"
)

// GigCleanupWorker drops ingested external gigs whose deadline has
// passed. Runs hourly.
type GigCleanupWorker struct {
	gigs services.ExternalGigService
}

func NewGigCleanupWorker(gigs services.ExternalGigService) *GigCleanupWorker {
	return &GigCleanupWorker{gigs: gigs}
}

func (w *GigCleanupWorker) Register(c *cron.Cron) error {
	_, err := c.AddFunc("0 * * * *", w.run)
	return err
}

func (w *GigCleanupWorker) run() {
	removed, err := w.gigs.CleanupExpired()
	logger.WorkerLog("gig_cleanup", "cleanup expired gigs", err)
	if err == nil && removed > 0 {
		logger.Info("removed expired external gigs", "count", removed)
	}
}
