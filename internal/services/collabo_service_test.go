package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/models"
	"connecta_backend/internal/services/dto"
)

type collaboFixture struct {
	svc           CollaboService
	collabo       *fakeCollaboRepo
	notifications *fakeNotifications
	owner         *models.User
	freelancer    *models.User
}

func newCollaboFixture(t *testing.T) *collaboFixture {
	t.Helper()
	owner := &models.User{Email: "owner@test.io", FullName: "Olga Owner", UserType: models.UserTypeClient}
	freelancer := &models.User{Email: "dev@test.io", FullName: "Fred Freelancer", UserType: models.UserTypeFreelancer}
	f := &collaboFixture{
		collabo:       newFakeCollaboRepo(),
		notifications: &fakeNotifications{},
		owner:         owner,
		freelancer:    freelancer,
	}
	users := newFakeUserRepo(owner, freelancer)
	f.svc = NewCollaboService(f.collabo, users, f.notifications)
	return f
}

// newProject creates a one-role team project and returns the project and
// role ids.
func (f *collaboFixture) newProject(t *testing.T) (string, string) {
	t.Helper()
	resp, err := f.svc.Create(f.owner.ID, &dto.CreateCollaboRequest{
		Title:       "Marketplace relaunch",
		Description: "Rebuild the storefront with a small crew",
		TotalBudget: 4000,
		Roles: []dto.CreateCollaboRoleInput{
			{Title: "Backend", Budget: 2500, Skills: []string{"go", "postgres"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Roles, 1)
	return resp.ID, resp.Roles[0].ID
}

func (f *collaboFixture) invite(t *testing.T, projectID, roleID string) {
	t.Helper()
	require.NoError(t, f.svc.InviteToRole(f.owner.ID, projectID, roleID, &dto.InviteToRoleRequest{UserID: f.freelancer.ID}))
}

func TestAcceptInviteBumpsOwnerUnread(t *testing.T) {
	t.Parallel()
	f := newCollaboFixture(t)
	projectID, roleID := f.newProject(t)
	f.invite(t, projectID, roleID)

	require.NoError(t, f.svc.RespondToInvite(f.freelancer.ID, projectID, roleID, true))

	project := f.collabo.projects[projectID]
	assert.Equal(t, models.CollaboRoleStatusFilled, project.Roles[0].Status)
	assert.Equal(t, 1, unreadFor(project.UnreadCounts, f.owner.ID))
	assert.Equal(t, 0, unreadFor(project.UnreadCounts, f.freelancer.ID))
}

func TestDeclineInviteBumpsOwnerUnread(t *testing.T) {
	t.Parallel()
	f := newCollaboFixture(t)
	projectID, roleID := f.newProject(t)
	f.invite(t, projectID, roleID)

	require.NoError(t, f.svc.RespondToInvite(f.freelancer.ID, projectID, roleID, false))

	project := f.collabo.projects[projectID]
	assert.Equal(t, models.CollaboRoleStatusOpen, project.Roles[0].Status)
	assert.Nil(t, project.Roles[0].AssigneeID)
	assert.Equal(t, 1, unreadFor(project.UnreadCounts, f.owner.ID))
}

func TestStatusUpdateBumpsMemberUnread(t *testing.T) {
	t.Parallel()
	f := newCollaboFixture(t)
	projectID, roleID := f.newProject(t)
	f.invite(t, projectID, roleID)
	require.NoError(t, f.svc.RespondToInvite(f.freelancer.ID, projectID, roleID, true))

	_, err := f.svc.UpdateStatus(f.owner.ID, projectID, models.CollaboStatusCompleted)
	require.NoError(t, err)

	project := f.collabo.projects[projectID]
	assert.Equal(t, 1, unreadFor(project.UnreadCounts, f.freelancer.ID))
	// The owner drove the change, their own counter stays where the
	// earlier accept left it.
	assert.Equal(t, 1, unreadFor(project.UnreadCounts, f.owner.ID))
}

func TestOpenWorkspaceClearsViewerUnread(t *testing.T) {
	t.Parallel()
	f := newCollaboFixture(t)
	projectID, roleID := f.newProject(t)
	f.invite(t, projectID, roleID)
	require.NoError(t, f.svc.RespondToInvite(f.freelancer.ID, projectID, roleID, true))
	_, err := f.svc.UpdateStatus(f.owner.ID, projectID, models.CollaboStatusInProgress)
	require.NoError(t, err)

	resp, err := f.svc.GetByID(f.freelancer.ID, projectID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.UnreadCount)

	project := f.collabo.projects[projectID]
	assert.Equal(t, 0, unreadFor(project.UnreadCounts, f.freelancer.ID))
	// Other members keep their counters.
	assert.Equal(t, 1, unreadFor(project.UnreadCounts, f.owner.ID))
}

func TestOpenWorkspaceOutsiderLeavesCounts(t *testing.T) {
	t.Parallel()
	f := newCollaboFixture(t)
	projectID, roleID := f.newProject(t)
	f.invite(t, projectID, roleID)
	require.NoError(t, f.svc.RespondToInvite(f.freelancer.ID, projectID, roleID, true))

	stranger := newID()
	_, err := f.svc.GetByID(stranger, projectID)
	require.NoError(t, err)

	project := f.collabo.projects[projectID]
	assert.Equal(t, 1, unreadFor(project.UnreadCounts, f.owner.ID))
}
