package services

import (
	"fmt"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type CollaboService interface {
	Create(ownerID string, req *dto.CreateCollaboRequest) (*dto.CollaboResponse, error)
	GetByID(userID, projectID string) (*dto.CollaboResponse, error)
	ListOpen(viewerID string, page, pageSize int) (*dto.PagedResponse[dto.CollaboResponse], error)
	ListMine(userID string, page, pageSize int) (*dto.PagedResponse[dto.CollaboResponse], error)
	InviteToRole(ownerID, projectID, roleID string, req *dto.InviteToRoleRequest) error
	RespondToInvite(userID, projectID, roleID string, accept bool) error
	UpdateStatus(ownerID, projectID string, status models.CollaboStatus) (*dto.CollaboResponse, error)
	Delete(ownerID, projectID string) error
}

type CollaboServiceImpl struct {
	collaboRepo   repositories.CollaboRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
}

func NewCollaboService(
	collaboRepo repositories.CollaboRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) CollaboService {
	return &CollaboServiceImpl{
		collaboRepo:   collaboRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// ---------------- Projects ----------------

func (s *CollaboServiceImpl) Create(ownerID string, req *dto.CreateCollaboRequest) (*dto.CollaboResponse, error) {
	project := &models.CollaboProject{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		TotalBudget: req.TotalBudget,
		Status:      models.CollaboStatusOpen,
	}
	for _, role := range req.Roles {
		project.Roles = append(project.Roles, models.CollaboRole{
			Title:       role.Title,
			Description: role.Description,
			Budget:      role.Budget,
			Skills:      pq.StringArray(role.Skills),
			Status:      models.CollaboRoleStatusOpen,
		})
	}

	if err := s.collaboRepo.Create(project); err != nil {
		return nil, apperrors.InternalError(err)
	}
	created, err := s.collaboRepo.FindByID(project.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toCollaboResponse(created, ownerID), nil
}

// GetByID returns the project. A member opening their workspace clears
// their unread counter.
func (s *CollaboServiceImpl) GetByID(userID, projectID string) (*dto.CollaboResponse, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}
	if isWorkspaceMember(project, userID) && unreadFor(project.UnreadCounts, userID) > 0 {
		counts := project.UnreadCounts
		if counts == nil {
			counts = datatypes.JSONMap{}
		}
		counts[userID] = 0
		if err := s.collaboRepo.SetUnreadCounts(projectID, counts); err != nil {
			logger.SideEffectLog("clear workspace unread", err, "collabo_id", projectID)
		}
		project.UnreadCounts = counts
	}
	return toCollaboResponse(project, userID), nil
}

func (s *CollaboServiceImpl) ListOpen(viewerID string, page, pageSize int) (*dto.PagedResponse[dto.CollaboResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	projects, total, err := s.collaboRepo.FindOpen(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPagedResponse(toCollaboResponses(projects, viewerID), total, page, pageSize), nil
}

func (s *CollaboServiceImpl) ListMine(userID string, page, pageSize int) (*dto.PagedResponse[dto.CollaboResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	projects, total, err := s.collaboRepo.FindByMember(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPagedResponse(toCollaboResponses(projects, userID), total, page, pageSize), nil
}

func (s *CollaboServiceImpl) UpdateStatus(ownerID, projectID string, status models.CollaboStatus) (*dto.CollaboResponse, error) {
	project, err := s.ownedProject(ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status == models.CollaboStatusCompleted || project.Status == models.CollaboStatusCancelled {
		return nil, apperrors.ErrInvalidStatus("collabo", "Finished team projects cannot change status")
	}
	if err := s.collaboRepo.UpdateStatus(projectID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	for i := range project.Roles {
		role := project.Roles[i]
		if role.AssigneeID != nil {
			s.notifications.Notify(*role.AssigneeID, "collabo", "Team project updated",
				fmt.Sprintf("\"%s\" is now %s", project.Title, status),
				map[string]string{"relatedId": projectID, "relatedType": "collabo", "actorId": ownerID})
		}
	}
	s.bumpWorkspaceUnread(project, ownerID)

	project.Status = status
	return toCollaboResponse(project, ownerID), nil
}

func (s *CollaboServiceImpl) Delete(ownerID, projectID string) error {
	project, err := s.ownedProject(ownerID, projectID)
	if err != nil {
		return err
	}
	for i := range project.Roles {
		if project.Roles[i].Status == models.CollaboRoleStatusFilled {
			return apperrors.ErrConflict(nil, "collabo", "Team projects with filled roles cannot be deleted")
		}
	}
	if err := s.collaboRepo.Delete(projectID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Roles ----------------

func (s *CollaboServiceImpl) InviteToRole(ownerID, projectID, roleID string, req *dto.InviteToRoleRequest) error {
	project, err := s.ownedProject(ownerID, projectID)
	if err != nil {
		return err
	}
	role, err := s.projectRole(project, roleID)
	if err != nil {
		return err
	}
	if role.Status == models.CollaboRoleStatusFilled {
		return apperrors.ErrInvalidStatus("collabo", "Role is already filled")
	}
	if req.UserID == ownerID {
		return apperrors.ErrCannotActOnSelf
	}

	invitee, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if invitee.UserType != models.UserTypeFreelancer {
		return apperrors.ErrInvalidOperation("collabo", "Only freelancers can be invited to roles")
	}

	if err := s.collaboRepo.AssignRole(roleID, req.UserID, models.CollaboRoleStatusInvited); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifications.Notify(req.UserID, "collabo", "Role invitation",
		fmt.Sprintf("You were invited to \"%s\" on \"%s\"", role.Title, project.Title),
		map[string]string{"relatedId": projectID, "relatedType": "collabo", "actorId": ownerID})
	return nil
}

func (s *CollaboServiceImpl) RespondToInvite(userID, projectID, roleID string, accept bool) error {
	project, err := s.loadProject(projectID)
	if err != nil {
		return err
	}
	role, err := s.projectRole(project, roleID)
	if err != nil {
		return err
	}
	if role.Status != models.CollaboRoleStatusInvited || role.AssigneeID == nil || *role.AssigneeID != userID {
		return apperrors.NewForbiddenError("No pending invitation for this role")
	}

	if accept {
		if err := s.collaboRepo.AssignRole(roleID, userID, models.CollaboRoleStatusFilled); err != nil {
			return apperrors.InternalError(err)
		}
		s.notifications.Notify(project.OwnerID, "collabo", "Invitation accepted",
			fmt.Sprintf("Your invite for \"%s\" was accepted", role.Title),
			map[string]string{"relatedId": projectID, "relatedType": "collabo", "actorId": userID})
		s.bumpWorkspaceUnread(project, userID)

		if allRolesFilled(project, roleID) && project.Status == models.CollaboStatusOpen {
			if err := s.collaboRepo.UpdateStatus(projectID, models.CollaboStatusInProgress); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	}

	role.AssigneeID = nil
	role.Status = models.CollaboRoleStatusOpen
	if err := s.collaboRepo.UpdateRole(role); err != nil {
		return apperrors.InternalError(err)
	}
	s.notifications.Notify(project.OwnerID, "collabo", "Invitation declined",
		fmt.Sprintf("Your invite for \"%s\" was declined", role.Title),
		map[string]string{"relatedId": projectID, "relatedType": "collabo", "actorId": userID})
	s.bumpWorkspaceUnread(project, userID)
	return nil
}

// ---------------- Workspace unread ----------------

// bumpWorkspaceUnread increments the workspace counter of every member
// except the actor. Counters feed the messaging unread aggregate and are
// cleared when the member opens the workspace. Best effort.
func (s *CollaboServiceImpl) bumpWorkspaceUnread(project *models.CollaboProject, actorID string) {
	counts := project.UnreadCounts
	if counts == nil {
		counts = datatypes.JSONMap{}
	}
	for _, member := range workspaceMembers(project) {
		if member == actorID {
			continue
		}
		counts[member] = unreadFor(counts, member) + 1
	}
	if err := s.collaboRepo.SetUnreadCounts(project.ID, counts); err != nil {
		logger.SideEffectLog("bump workspace unread", err, "collabo_id", project.ID)
	}
	project.UnreadCounts = counts
}

func workspaceMembers(project *models.CollaboProject) []string {
	members := []string{project.OwnerID}
	for i := range project.Roles {
		if id := project.Roles[i].AssigneeID; id != nil && *id != project.OwnerID {
			members = append(members, *id)
		}
	}
	return members
}

func isWorkspaceMember(project *models.CollaboProject, userID string) bool {
	for _, member := range workspaceMembers(project) {
		if member == userID {
			return true
		}
	}
	return false
}

// allRolesFilled reports whether every role is filled once the role being
// accepted is counted as filled.
func allRolesFilled(project *models.CollaboProject, acceptedRoleID string) bool {
	for i := range project.Roles {
		role := project.Roles[i]
		if role.ID == acceptedRoleID {
			continue
		}
		if role.Status != models.CollaboRoleStatusFilled {
			return false
		}
	}
	return true
}

func (s *CollaboServiceImpl) loadProject(projectID string) (*models.CollaboProject, error) {
	project, err := s.collaboRepo.FindByID(projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCollaboNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return project, nil
}

func (s *CollaboServiceImpl) ownedProject(ownerID, projectID string) (*models.CollaboProject, error) {
	project, err := s.loadProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, apperrors.NewForbiddenError("Team project belongs to another client")
	}
	return project, nil
}

func (s *CollaboServiceImpl) projectRole(project *models.CollaboProject, roleID string) (*models.CollaboRole, error) {
	for i := range project.Roles {
		if project.Roles[i].ID == roleID {
			return &project.Roles[i], nil
		}
	}
	return nil, apperrors.ErrNotFound(repositories.ErrCollaboRoleNotFound)
}
