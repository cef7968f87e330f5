package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/models"
	"connecta_backend/internal/services/dto"
)

type proposalFixture struct {
	svc           ProposalService
	jobs          *fakeJobRepo
	proposals     *fakeProposalRepo
	projects      *fakeProjectRepo
	contracts     *fakeContractRepo
	notifications *fakeNotifications
	mailer        *fakeMailer
	client        *models.User
	freelancer    *models.User
	clientID      string
	freelancerID  string
	job           *models.Job
}

func newProposalFixture(t *testing.T) *proposalFixture {
	t.Helper()
	client := &models.User{Email: "client@test.io", FullName: "Carla Client", UserType: models.UserTypeClient}
	freelancer := &models.User{Email: "dev@test.io", FullName: "Fred Freelancer", UserType: models.UserTypeFreelancer}
	f := &proposalFixture{
		jobs:          newFakeJobRepo(),
		projects:      newFakeProjectRepo(),
		contracts:     newFakeContractRepo(),
		notifications: &fakeNotifications{},
		mailer:        &fakeMailer{},
		client:        client,
		freelancer:    freelancer,
	}
	users := newFakeUserRepo(client, freelancer)
	f.clientID = client.ID
	f.freelancerID = freelancer.ID
	f.proposals = newFakeProposalRepo(f.jobs)
	f.job = &models.Job{
		ClientID:    f.clientID,
		Title:       "Build a billing service",
		Description: "Stripe-like invoicing",
		Status:      models.JobStatusActive,
	}
	require.NoError(t, f.jobs.Create(f.job))
	f.svc = NewProposalService(f.proposals, f.jobs, f.projects, f.contracts, users, f.notifications, f.mailer)
	return f
}

func (f *proposalFixture) submit(t *testing.T, freelancerID string, bid float64) *dto.ProposalResponse {
	t.Helper()
	resp, err := f.svc.Create(freelancerID, &dto.CreateProposalRequest{
		JobID:       f.job.ID,
		CoverLetter: "I have shipped three of these.",
		BidAmount:   bid,
		Duration:    "2 weeks",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateProposal(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	resp := f.submit(t, f.freelancerID, 1200)
	assert.Equal(t, models.ProposalStatusPending, resp.Status)

	require.Len(t, f.notifications.sent, 1)
	assert.Equal(t, f.clientID, f.notifications.sent[0].UserID)
	assert.Equal(t, "proposal", f.notifications.sent[0].Type)

	emails := f.mailer.sentTo(f.client.Email)
	require.Len(t, emails, 1)
	assert.Equal(t, "proposal_received", emails[0].Template)
	assert.Equal(t, "Fred Freelancer", emails[0].Data["FreelancerName"])
}

func TestCreateProposalDuplicate(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	f.submit(t, f.freelancerID, 1200)
	_, err := f.svc.Create(f.freelancerID, &dto.CreateProposalRequest{
		JobID:       f.job.ID,
		CoverLetter: "Again",
		BidAmount:   1100,
		Duration:    "1 week",
	})
	assert.Error(t, err)
}

func TestCreateProposalOnOwnJob(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	_, err := f.svc.Create(f.clientID, &dto.CreateProposalRequest{
		JobID:       f.job.ID,
		CoverLetter: "Me myself",
		BidAmount:   100,
		Duration:    "1 day",
	})
	assert.Error(t, err)
}

func TestCreateProposalOnExternalGig(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	external := &models.Job{
		ClientID:   newID(),
		Title:      "Ingested gig",
		Status:     models.JobStatusActive,
		IsExternal: true,
		Source:     "remoteok",
		ExternalID: "rok-9",
	}
	require.NoError(t, f.jobs.Create(external))

	_, err := f.svc.Create(f.freelancerID, &dto.CreateProposalRequest{
		JobID:       external.ID,
		CoverLetter: "Hi",
		BidAmount:   100,
		Duration:    "1 day",
	})
	assert.Error(t, err)
}

func TestAcceptProposal(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	accepted := f.submit(t, f.freelancerID, 1200)
	rivalID := newID()
	rival := f.submit(t, rivalID, 900)

	resp, err := f.svc.Accept(f.clientID, accepted.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ProposalStatusAccepted, resp.Proposal.Status)
	assert.Equal(t, models.ProjectStatusOngoing, resp.Project.Status)
	assert.Equal(t, 1200.0, resp.Project.Budget)
	assert.Equal(t, models.ContractStatusPendingSignatures, resp.Contract.Status)
	assert.Equal(t, 1200.0, resp.Contract.Amount)
	assert.Equal(t, resp.Project.ID, resp.Contract.ProjectID)

	// The job closes and the rival proposal is auto-declined.
	assert.Equal(t, models.JobStatusClosed, f.jobs.jobs[f.job.ID].Status)
	assert.Equal(t, models.ProposalStatusDeclined, f.proposals.proposals[rival.ID].Status)

	notified := map[string]bool{}
	for _, n := range f.notifications.sent {
		notified[n.UserID+"/"+n.Title] = true
	}
	assert.True(t, notified[f.freelancerID+"/Proposal accepted"])

	emails := f.mailer.sentTo(f.freelancer.Email)
	require.Len(t, emails, 1)
	assert.Equal(t, "proposal_accepted", emails[0].Template)
	assert.Equal(t, f.job.Title, emails[0].Data["JobTitle"])
}

func TestAcceptProposalWrongClient(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	resp := f.submit(t, f.freelancerID, 1200)
	_, err := f.svc.Accept(newID(), resp.ID)
	assert.Error(t, err)
	assert.Equal(t, models.ProposalStatusPending, f.proposals.proposals[resp.ID].Status)
}

func TestAcceptProposalTwice(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	resp := f.submit(t, f.freelancerID, 1200)
	_, err := f.svc.Accept(f.clientID, resp.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(f.clientID, resp.ID)
	assert.Error(t, err)
	assert.Len(t, f.projects.projects, 1)
	assert.Len(t, f.contracts.contracts, 1)
}

func TestWithdrawProposal(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	resp := f.submit(t, f.freelancerID, 1200)
	require.NoError(t, f.svc.Withdraw(f.freelancerID, resp.ID))
	assert.Equal(t, models.ProposalStatusWithdrawn, f.proposals.proposals[resp.ID].Status)

	assert.Error(t, f.svc.Withdraw(f.freelancerID, resp.ID))
}

func TestDeclineProposal(t *testing.T) {
	t.Parallel()
	f := newProposalFixture(t)

	resp := f.submit(t, f.freelancerID, 1200)
	require.NoError(t, f.svc.Decline(f.clientID, resp.ID))
	assert.Equal(t, models.ProposalStatusDeclined, f.proposals.proposals[resp.ID].Status)

	require.Len(t, f.notifications.sent, 2)
	assert.Equal(t, f.freelancerID, f.notifications.sent[1].UserID)
}
