package workers

import (
	"time"

	"github.com/robfig/cron/v3"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/repositories"
)

const notificationRetention = 90 * 24 * time.Hour

// CleanupWorker prunes expired refresh tokens and stale notifications
// nightly.
type CleanupWorker struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

func NewCleanupWorker(users repositories.UserRepository, notifications repositories.NotificationRepository) *CleanupWorker {
	return &CleanupWorker{users: users, notifications: notifications}
}

func (w *CleanupWorker) Register(c *cron.Cron) error {
	_, err := c.AddFunc("30 3 * * *", w.run)
	return err
}

func (w *CleanupWorker) run() {
	logger.WorkerLog("cleanup", "expired refresh tokens", w.users.CleanExpiredRefreshTokens())

	removed, err := w.notifications.DeleteOlderThan(time.Now().Add(-notificationRetention))
	logger.WorkerLog("cleanup", "old notifications", err)
	if err == nil && removed > 0 {
		logger.Info("pruned old notifications", "count", removed)
	}
}
