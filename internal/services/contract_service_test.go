package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/models"
	"connecta_backend/internal/services/dto"
)

type contractFixture struct {
	svc           ContractService
	contracts     *fakeContractRepo
	projects      *fakeProjectRepo
	reviews       *fakeReviewRepo
	notifications *fakeNotifications
	client        *models.User
	freelancer    *models.User
	contract      *models.Contract
	project       *models.Project
}

func newContractFixture(t *testing.T) *contractFixture {
	t.Helper()
	client := &models.User{Email: "client@test.io", FullName: "Carla Client", UserType: models.UserTypeClient}
	freelancer := &models.User{Email: "dev@test.io", FullName: "Fred Freelancer", UserType: models.UserTypeFreelancer}
	f := &contractFixture{
		contracts:     newFakeContractRepo(),
		projects:      newFakeProjectRepo(),
		reviews:       newFakeReviewRepo(),
		notifications: &fakeNotifications{},
		client:        client,
		freelancer:    freelancer,
	}
	users := newFakeUserRepo(client, freelancer)

	f.project = &models.Project{
		ClientID:     client.ID,
		FreelancerID: freelancer.ID,
		Title:        "Billing service",
		Budget:       1200,
		Status:       models.ProjectStatusOngoing,
	}
	require.NoError(t, f.projects.Create(f.project))

	f.contract = &models.Contract{
		ProjectID:    f.project.ID,
		ClientID:     client.ID,
		FreelancerID: freelancer.ID,
		Terms:        "Engagement at the accepted bid.",
		Amount:       1200,
		Status:       models.ContractStatusPendingSignatures,
	}
	require.NoError(t, f.contracts.Create(f.contract))

	reputation := NewReputationService(users, f.contracts, f.reviews)
	f.svc = NewContractService(f.contracts, f.projects, f.notifications, reputation)
	return f
}

func TestSignContractBothParties(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t)

	first, err := f.svc.Sign(f.client.ID, f.contract.ID, "10.0.0.1", &dto.SignContractRequest{Name: "Carla Client"})
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusPendingSignatures, first.Status)

	second, err := f.svc.Sign(f.freelancer.ID, f.contract.ID, "10.0.0.2", &dto.SignContractRequest{Name: "Fred Freelancer"})
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusActive, second.Status)
	require.NotNil(t, second.StartDate)

	var signatures map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Signatures, &signatures))
	assert.Contains(t, signatures, "client")
	assert.Contains(t, signatures, "freelancer")

	assert.Equal(t, models.ProjectStatusInProgress, f.projects.projects[f.project.ID].Status)
}

func TestSignContractTwiceSameParty(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t)

	_, err := f.svc.Sign(f.client.ID, f.contract.ID, "", &dto.SignContractRequest{Name: "Carla"})
	require.NoError(t, err)

	_, err = f.svc.Sign(f.client.ID, f.contract.ID, "", &dto.SignContractRequest{Name: "Carla"})
	assert.Error(t, err)
}

func TestSignContractOutsider(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t)

	_, err := f.svc.Sign(newID(), f.contract.ID, "", &dto.SignContractRequest{Name: "Mallory"})
	assert.Error(t, err)
}

func TestUpdateTermsResetsSignatures(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t)

	_, err := f.svc.Sign(f.client.ID, f.contract.ID, "", &dto.SignContractRequest{Name: "Carla"})
	require.NoError(t, err)

	updated, err := f.svc.UpdateTerms(f.client.ID, f.contract.ID, &dto.UpdateContractRequest{Terms: "Revised scope and rate."})
	require.NoError(t, err)
	assert.Equal(t, "Revised scope and rate.", updated.Terms)
	assert.Empty(t, updated.Signatures)

	// The earlier signature no longer counts toward activation.
	resigned, err := f.svc.Sign(f.client.ID, f.contract.ID, "", &dto.SignContractRequest{Name: "Carla"})
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusPendingSignatures, resigned.Status)
}

func TestUpdateTermsFreelancerForbidden(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t)

	_, err := f.svc.UpdateTerms(f.freelancer.ID, f.contract.ID, &dto.UpdateContractRequest{Terms: "My terms"})
	assert.Error(t, err)
}

func TestTerminateContract(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t)

	resp, err := f.svc.Terminate(f.client.ID, f.contract.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusTerminated, resp.Status)
	assert.Equal(t, models.ProjectStatusCancelled, f.projects.projects[f.project.ID].Status)

	// Termination drags the freelancer's success score down.
	assert.Equal(t, 0.0, f.freelancer.JobSuccessScore)

	_, err = f.svc.Terminate(f.client.ID, f.contract.ID)
	assert.Error(t, err)
}

func TestDisputeContract(t *testing.T) {
	t.Parallel()
	f := newContractFixture(t)

	resp, err := f.svc.Dispute(f.freelancer.ID, f.contract.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusDisputed, resp.Status)

	require.NotEmpty(t, f.notifications.sent)
	last := f.notifications.sent[len(f.notifications.sent)-1]
	assert.Equal(t, f.client.ID, last.UserID)
}
