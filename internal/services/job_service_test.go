package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/models"
	"connecta_backend/internal/services/dto"
)

type jobFixture struct {
	svc      JobService
	jobs     *fakeJobRepo
	matches  *fakeJobMatchRepo
	clientID string
}

func newJobFixture(t *testing.T, profiles ...*models.Profile) *jobFixture {
	t.Helper()
	f := &jobFixture{
		jobs:     newFakeJobRepo(),
		matches:  newFakeJobMatchRepo(),
		clientID: newID(),
	}
	f.svc = NewJobService(f.jobs, newFakeProposalRepo(f.jobs), newFakeProfileRepo(profiles...), f.matches)
	return f
}

func jobRequest(skills ...string) *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:       "Build a payments backend",
		Description: "Wire up charges, escrow and webhooks for the marketplace.",
		Category:    "development",
		Skills:      skills,
		BudgetMin:   1000,
		BudgetMax:   3000,
		Duration:    "1 month",
	}
}

func TestCreateJobRecordsMatches(t *testing.T) {
	t.Parallel()
	goDev := &models.Profile{UserID: newID(), Skills: []string{"Go", "PostgreSQL"}}
	designer := &models.Profile{UserID: newID(), Skills: []string{"figma"}}
	f := newJobFixture(t, goDev, designer)

	resp, err := f.svc.Create(f.clientID, jobRequest("go", "postgresql"))
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusActive, resp.Status)

	// Skill comparison ignores case; the designer has no overlap at all.
	require.Len(t, f.matches.matches, 1)
	match := f.matches.matches[goDev.UserID+"/"+resp.ID]
	require.NotNil(t, match)
	assert.Equal(t, 1.0, match.Score)
	assert.False(t, match.Delivered)
}

func TestCreateJobPartialOverlapScore(t *testing.T) {
	t.Parallel()
	halfway := &models.Profile{UserID: newID(), Skills: []string{"go"}}
	f := newJobFixture(t, halfway)

	resp, err := f.svc.Create(f.clientID, jobRequest("go", "kubernetes"))
	require.NoError(t, err)

	match := f.matches.matches[halfway.UserID+"/"+resp.ID]
	require.NotNil(t, match)
	assert.Equal(t, 0.5, match.Score)
}

func TestCreateDraftJobSkipsMatching(t *testing.T) {
	t.Parallel()
	goDev := &models.Profile{UserID: newID(), Skills: []string{"go"}}
	f := newJobFixture(t, goDev)

	req := jobRequest("go")
	req.Draft = true
	resp, err := f.svc.Create(f.clientID, req)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDraft, resp.Status)
	assert.Empty(t, f.matches.matches)
}

func TestDeleteJobDropsMatches(t *testing.T) {
	t.Parallel()
	goDev := &models.Profile{UserID: newID(), Skills: []string{"go"}}
	f := newJobFixture(t, goDev)

	resp, err := f.svc.Create(f.clientID, jobRequest("go"))
	require.NoError(t, err)
	require.Len(t, f.matches.matches, 1)

	require.NoError(t, f.svc.Delete(f.clientID, resp.ID))
	assert.Empty(t, f.matches.matches)
	assert.Empty(t, f.jobs.jobs)
}

func TestSkillOverlap(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1.0, skillOverlap([]string{"Go"}, []string{"go", "rust"}))
	assert.Equal(t, 0.0, skillOverlap([]string{"go"}, []string{"rust"}))
	assert.Equal(t, 0.0, skillOverlap(nil, []string{"go"}))
}
