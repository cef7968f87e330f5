package services

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ProjectService interface {
	GetByID(userID, projectID string) (*dto.ProjectResponse, error)
	List(userID string, page, pageSize int) (*dto.PagedResponse[dto.ProjectResponse], error)
	Update(userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Complete(clientID, projectID string) (*dto.ProjectResponse, error)
	Cancel(userID, projectID string) error
}

type ProjectServiceImpl struct {
	projectRepo   repositories.ProjectRepository
	contractRepo  repositories.ContractRepository
	notifications NotificationService
	reputation    ReputationService
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	contractRepo repositories.ContractRepository,
	notifications NotificationService,
	reputation ReputationService,
) ProjectService {
	return &ProjectServiceImpl{
		projectRepo:   projectRepo,
		contractRepo:  contractRepo,
		notifications: notifications,
		reputation:    reputation,
	}
}

func (s *ProjectServiceImpl) GetByID(userID, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.memberProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

func (s *ProjectServiceImpl) List(userID string, page, pageSize int) (*dto.PagedResponse[dto.ProjectResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	projects, total, err := s.projectRepo.FindByParticipant(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, *toProjectResponse(&projects[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

func (s *ProjectServiceImpl) Update(userID, projectID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.memberProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status == models.ProjectStatusCompleted || project.Status == models.ProjectStatusCancelled {
		return nil, apperrors.ErrInvalidStatus("projects", "Finished projects cannot be edited")
	}

	if req.Title != "" {
		project.Title = req.Title
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Status != "" {
		if req.Status == models.ProjectStatusCompleted {
			return nil, apperrors.ErrInvalidOperation("projects", "Use the complete endpoint to finish a project")
		}
		project.Status = req.Status
	}
	if req.Milestones != nil {
		project.Milestones = datatypes.JSON(req.Milestones)
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toProjectResponse(project), nil
}

// Complete finishes the project and its contract. Client only.
func (s *ProjectServiceImpl) Complete(clientID, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.memberProject(clientID, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, apperrors.NewForbiddenError("Only the client can complete a project")
	}
	if project.Status == models.ProjectStatusCompleted {
		return toProjectResponse(project), nil
	}
	if project.Status == models.ProjectStatusCancelled {
		return nil, apperrors.ErrInvalidStatus("projects", "Cancelled projects cannot be completed")
	}

	if err := s.projectRepo.MarkCompleted(projectID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if contract, cerr := s.contractRepo.FindByProject(projectID); cerr == nil &&
		contract.Status != models.ContractStatusTerminated && contract.Status != models.ContractStatusDisputed {
		now := time.Now()
		contract.Status = models.ContractStatusCompleted
		contract.CompletedAt = &now
		if err := s.contractRepo.Update(contract); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	s.notifications.Notify(project.FreelancerID, "project", "Project completed",
		fmt.Sprintf("\"%s\" was marked completed", project.Title),
		map[string]string{"relatedId": projectID, "relatedType": "project", "actorId": clientID})
	if err := s.reputation.Recalculate(project.FreelancerID); err != nil {
		logger.SideEffectLog("recalculate reputation", err, "user_id", project.FreelancerID)
	}

	updated, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toProjectResponse(updated), nil
}

func (s *ProjectServiceImpl) Cancel(userID, projectID string) error {
	project, err := s.memberProject(userID, projectID)
	if err != nil {
		return err
	}
	if project.Status == models.ProjectStatusCompleted {
		return apperrors.ErrInvalidStatus("projects", "Completed projects cannot be cancelled")
	}
	if project.Status == models.ProjectStatusCancelled {
		return nil
	}

	if err := s.projectRepo.UpdateStatus(projectID, models.ProjectStatusCancelled); err != nil {
		return apperrors.InternalError(err)
	}

	other := project.FreelancerID
	if userID == project.FreelancerID {
		other = project.ClientID
	}
	s.notifications.Notify(other, "project", "Project cancelled",
		fmt.Sprintf("\"%s\" was cancelled", project.Title),
		map[string]string{"relatedId": projectID, "relatedType": "project", "actorId": userID})
	return nil
}

func (s *ProjectServiceImpl) memberProject(userID, projectID string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if project.ClientID != userID && project.FreelancerID != userID {
		return nil, apperrors.NewForbiddenError("Project belongs to other users")
	}
	return project, nil
}
