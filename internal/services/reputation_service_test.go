package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/models"
)

type reputationFixture struct {
	svc        ReputationService
	users      *fakeUserRepo
	contracts  *fakeContractRepo
	reviews    *fakeReviewRepo
	freelancer *models.User
	client     *models.User
}

func newReputationFixture(t *testing.T) *reputationFixture {
	t.Helper()
	freelancer := &models.User{Email: "dev@test.io", FullName: "Fred Freelancer", UserType: models.UserTypeFreelancer, JobSuccessScore: 100}
	client := &models.User{Email: "client@test.io", FullName: "Carla Client", UserType: models.UserTypeClient}
	f := &reputationFixture{
		users:      newFakeUserRepo(freelancer, client),
		contracts:  newFakeContractRepo(),
		reviews:    newFakeReviewRepo(),
		freelancer: freelancer,
		client:     client,
	}
	f.svc = NewReputationService(f.users, f.contracts, f.reviews)
	return f
}

func (f *reputationFixture) closedContract(t *testing.T, status models.ContractStatus, rating int) {
	t.Helper()
	projectID := newID()
	contract := &models.Contract{
		ProjectID:    projectID,
		ClientID:     f.client.ID,
		FreelancerID: f.freelancer.ID,
		Amount:       500,
		Status:       status,
	}
	require.NoError(t, f.contracts.Create(contract))
	if rating > 0 {
		review := &models.Review{
			ReviewerID:   f.client.ID,
			RevieweeID:   f.freelancer.ID,
			ReviewerType: models.UserTypeClient,
			ProjectID:    &projectID,
			Rating:       rating,
			Comment:      fmt.Sprintf("rated %d", rating),
		}
		require.NoError(t, f.reviews.Create(review))
	}
}

func TestRecalculateNoHistory(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)

	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	assert.Equal(t, 100.0, f.freelancer.JobSuccessScore)
	assert.Equal(t, 0, f.freelancer.TotalReviews)
	assert.Empty(t, badgeList(f.freelancer.Badges))
}

func TestRecalculateLowRatingCountsAgainst(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)
	f.closedContract(t, models.ContractStatusCompleted, 3)

	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	assert.Equal(t, 0.0, f.freelancer.JobSuccessScore)
	assert.Equal(t, 3.0, f.freelancer.AverageRating)
	assert.Equal(t, 1, f.freelancer.TotalReviews)
}

func TestRecalculateUnreviewedCompletionSucceeds(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)
	f.closedContract(t, models.ContractStatusCompleted, 0)

	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	assert.Equal(t, 100.0, f.freelancer.JobSuccessScore)
}

func TestRecalculateTerminatedCountsAgainst(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)
	f.closedContract(t, models.ContractStatusCompleted, 5)
	f.closedContract(t, models.ContractStatusTerminated, 0)

	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	assert.Equal(t, 50.0, f.freelancer.JobSuccessScore)
}

func TestRisingTalentBadge(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)
	f.closedContract(t, models.ContractStatusCompleted, 5)

	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	assert.Equal(t, []string{BadgeRisingTalent}, badgeList(f.freelancer.Badges))
}

func TestTopRatedBadge(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)
	for i := 0; i < 5; i++ {
		f.closedContract(t, models.ContractStatusCompleted, 5)
	}

	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	assert.Equal(t, []string{BadgeTopRated}, badgeList(f.freelancer.Badges))
	assert.Equal(t, 5.0, f.freelancer.AverageRating)
	assert.Equal(t, 5, f.freelancer.TotalReviews)
}

func TestTopRatedNeedsHighAverage(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)
	for i := 0; i < 5; i++ {
		f.closedContract(t, models.ContractStatusCompleted, 4)
	}

	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	// Score is perfect but a 4.0 average misses the badge cutoff.
	assert.Equal(t, 100.0, f.freelancer.JobSuccessScore)
	assert.Empty(t, badgeList(f.freelancer.Badges))
}

func TestPeerReviewExcludedFromAverage(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)
	f.closedContract(t, models.ContractStatusCompleted, 5)

	// A projectless peer review from another freelancer never feeds the
	// client-authored average.
	peer := &models.User{Email: "peer@test.io", FullName: "Pat Peer", UserType: models.UserTypeFreelancer}
	require.NoError(t, f.users.Create(peer))
	require.NoError(t, f.reviews.Create(&models.Review{
		ReviewerID:   peer.ID,
		RevieweeID:   f.freelancer.ID,
		ReviewerType: models.UserTypeFreelancer,
		Rating:       1,
		Comment:      "peer feedback",
	}))

	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	assert.Equal(t, 5.0, f.freelancer.AverageRating)
	assert.Equal(t, 1, f.freelancer.TotalReviews)
	assert.Equal(t, 100.0, f.freelancer.JobSuccessScore)
}

func TestGetReputation(t *testing.T) {
	t.Parallel()
	f := newReputationFixture(t)
	f.closedContract(t, models.ContractStatusCompleted, 5)
	require.NoError(t, f.svc.Recalculate(f.freelancer.ID))

	resp, err := f.svc.GetReputation(f.freelancer.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.JobSuccessScore)
	assert.Equal(t, 5.0, resp.AverageRating)
	assert.Equal(t, 1, resp.ClosedContracts)
	assert.Equal(t, []string{BadgeRisingTalent}, resp.Badges)
}
