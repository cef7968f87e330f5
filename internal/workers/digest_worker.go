package workers

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/pkg/email"
	"connecta_backend/internal/repositories"
)

// DigestWorker mails undelivered job matches grouped per user. The daily
// run covers the previous day; the weekly run sweeps up anything the
// daily runs missed.
type DigestWorker struct {
	matches repositories.JobMatchRepository
	users   repositories.UserRepository
	mailer  email.Provider
}

func NewDigestWorker(matches repositories.JobMatchRepository, users repositories.UserRepository, mailer email.Provider) *DigestWorker {
	return &DigestWorker{matches: matches, users: users, mailer: mailer}
}

func (w *DigestWorker) Register(c *cron.Cron) error {
	if _, err := c.AddFunc("0 8 * * *", func() { w.run("daily", 24*time.Hour) }); err != nil {
		return err
	}
	_, err := c.AddFunc("0 8 * * 1", func() { w.run("weekly", 7*24*time.Hour) })
	return err
}

func (w *DigestWorker) run(kind string, window time.Duration) {
	matches, err := w.matches.FindUndelivered(time.Now().Add(-window))
	if err != nil {
		logger.WorkerLog("digest", kind+" digest query", err)
		return
	}
	if len(matches) == 0 {
		return
	}

	sent := 0
	for userID, userMatches := range groupByUser(matches) {
		if w.sendDigest(userID, userMatches) {
			sent++
		}
	}
	logger.WorkerLog("digest", fmt.Sprintf("%s digest sent to %d users", kind, sent), nil)
}

func (w *DigestWorker) sendDigest(userID string, matches []models.JobMatch) bool {
	user, err := w.users.FindByID(userID)
	if err != nil {
		logger.SideEffectLog("digest recipient lookup", err, "user_id", userID)
		return false
	}

	jobs := make([]email.TemplateData, 0, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Job == nil {
			continue
		}
		jobs = append(jobs, email.TemplateData{
			"Title":   m.Job.Title,
			"Company": m.Job.Company,
		})
		ids = append(ids, m.ID)
	}
	if len(jobs) == 0 {
		return false
	}

	err = w.mailer.SendTemplate([]string{user.Email}, "Jobs picked for you", "job_digest", email.TemplateData{
		"Name":  user.FullName,
		"Count": len(jobs),
		"Jobs":  jobs,
	})
	if err != nil {
		logger.SideEffectLog("digest email", err, "user_id", userID)
		return false
	}

	if err := w.matches.MarkDelivered(ids); err != nil {
		logger.SideEffectLog("mark digest delivered", err, "user_id", userID)
	}
	return true
}

func groupByUser(matches []models.JobMatch) map[string][]models.JobMatch {
	grouped := make(map[string][]models.JobMatch)
	for _, m := range matches {
		grouped[m.UserID] = append(grouped[m.UserID], m)
	}
	return grouped
}
