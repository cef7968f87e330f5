package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/config"
	"connecta_backend/internal/models"
	"connecta_backend/internal/services/dto"
)

const systemClientID = "00000000-0000-0000-0000-000000000000"

func newGigService(t *testing.T) (ExternalGigService, *fakeJobRepo) {
	t.Helper()
	if config.AppConfig == nil {
		cfg := &config.Config{}
		cfg.ExternalGigs.SystemClientID = systemClientID
		config.AppConfig = cfg
	}
	jobs := newFakeJobRepo()
	return NewExternalGigService(jobs), jobs
}

func gigRequest(externalID string) *dto.UpsertExternalGigRequest {
	return &dto.UpsertExternalGigRequest{
		Source:      "remoteok",
		ExternalID:  externalID,
		Title:       "Go backend engineer",
		Description: "Build APIs",
		Category:    "development",
		Skills:      []string{"go", "postgresql"},
		BudgetMin:   3000,
		BudgetMax:   5000,
		Company:     "Acme",
		ApplyURL:    "https://remoteok.test/jobs/1",
	}
}

func TestUpsertExternalGig(t *testing.T) {
	svc, jobs := newGigService(t)

	resp, err := svc.Upsert(gigRequest("rok-1"))
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, systemClientID, jobs.jobs[resp.Job.ID].ClientID)
	assert.True(t, jobs.jobs[resp.Job.ID].IsExternal)
	assert.Equal(t, models.JobStatusActive, jobs.jobs[resp.Job.ID].Status)
}

func TestUpsertExternalGigRefreshesExisting(t *testing.T) {
	svc, jobs := newGigService(t)

	first, err := svc.Upsert(gigRequest("rok-1"))
	require.NoError(t, err)

	updated := gigRequest("rok-1")
	updated.Title = "Senior Go backend engineer"
	second, err := svc.Upsert(updated)
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.Job.ID, second.Job.ID)
	assert.Equal(t, "Senior Go backend engineer", jobs.jobs[first.Job.ID].Title)
	assert.Len(t, jobs.jobs, 1)
}

func TestUpsertDistinctSources(t *testing.T) {
	svc, jobs := newGigService(t)

	_, err := svc.Upsert(gigRequest("shared-id"))
	require.NoError(t, err)

	other := gigRequest("shared-id")
	other.Source = "weworkremotely"
	resp, err := svc.Upsert(other)
	require.NoError(t, err)

	assert.True(t, resp.Created)
	assert.Len(t, jobs.jobs, 2)
}

func TestDeleteExternalGig(t *testing.T) {
	svc, jobs := newGigService(t)

	_, err := svc.Upsert(gigRequest("rok-1"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete("remoteok", "rok-1"))
	assert.Empty(t, jobs.jobs)

	assert.Error(t, svc.Delete("remoteok", "rok-1"))
}

func TestCleanupExpiredGigs(t *testing.T) {
	svc, jobs := newGigService(t)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired := gigRequest("rok-old")
	expired.Deadline = &past
	_, err := svc.Upsert(expired)
	require.NoError(t, err)

	fresh := gigRequest("rok-new")
	fresh.Deadline = &future
	_, err = svc.Upsert(fresh)
	require.NoError(t, err)

	removed, err := svc.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Len(t, jobs.jobs, 1)
}
