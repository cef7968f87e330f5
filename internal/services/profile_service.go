package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/datatypes"

	"connecta_backend/internal/imageprocessor"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/internal/storage"
	"connecta_backend/pkg/apperrors"
)

type ProfileService interface {
	Get(userID string) (*dto.ProfileResponse, error)
	Save(userID string, req *dto.SaveProfileRequest) (*dto.ProfileResponse, error)
	UploadAvatar(ctx context.Context, userID, filename, contentType string, reader io.Reader) (string, error)
	SearchFreelancers(req *dto.FreelancerSearchRequest) (*dto.PagedResponse[dto.ProfileResponse], error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	store       storage.Storage
	images      *imageprocessor.Processor
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
	images *imageprocessor.Processor,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		store:       store,
		images:      images,
	}
}

// Get returns the profile, materializing an empty one for users who have
// not saved theirs yet.
func (s *ProfileServiceImpl) Get(userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		if _, uerr := s.userRepo.FindByID(userID); uerr != nil {
			return nil, apperrors.ErrNotFound(uerr)
		}
		profile = &models.Profile{UserID: userID}
		if cerr := s.profileRepo.Create(profile); cerr != nil {
			return nil, apperrors.InternalError(cerr)
		}
	}
	return toProfileResponse(profile), nil
}

func (s *ProfileServiceImpl) Save(userID string, req *dto.SaveProfileRequest) (*dto.ProfileResponse, error) {
	existing, err := s.profileRepo.FindByUserID(userID)
	if err != nil && !apperrors.Is(err, repositories.ErrProfileNotFound) {
		return nil, apperrors.InternalError(err)
	}

	profile := &models.Profile{
		UserID:      userID,
		Title:       req.Title,
		Bio:         req.Bio,
		Skills:      req.Skills,
		HourlyRate:  req.HourlyRate,
		Location:    req.Location,
		Languages:   datatypes.JSON(req.Languages),
		Portfolio:   datatypes.JSON(req.Portfolio),
		Employment:  datatypes.JSON(req.Employment),
		Education:   datatypes.JSON(req.Education),
		Preferences: datatypes.JSON(req.Preferences),
	}
	if existing != nil {
		profile.AvatarURL = existing.AvatarURL
	}

	if err := s.profileRepo.Upsert(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	saved, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toProfileResponse(saved), nil
}

func (s *ProfileServiceImpl) UploadAvatar(ctx context.Context, userID, filename, contentType string, reader io.Reader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext != "jpg" && ext != "jpeg" && ext != "png" {
		return "", apperrors.NewBadRequestError("Avatar must be a JPEG or PNG image")
	}

	processed, err := s.images.ProcessImage(reader, imageprocessor.SizeAvatar, ext)
	if err != nil {
		return "", apperrors.NewBadRequestError("Could not process image")
	}

	path := fmt.Sprintf("avatars/%s.%s", userID, ext)
	if err := s.store.Save(ctx, path, processed, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrProfileNotFound) {
			return "", apperrors.InternalError(err)
		}
		profile = &models.Profile{UserID: userID}
	}
	profile.AvatarURL = url
	if err := s.profileRepo.Upsert(profile); err != nil {
		return "", apperrors.InternalError(err)
	}

	return url, nil
}

func (s *ProfileServiceImpl) SearchFreelancers(req *dto.FreelancerSearchRequest) (*dto.PagedResponse[dto.ProfileResponse], error) {
	profiles, total, err := s.profileRepo.SearchFreelancers(repositories.FreelancerFilter{
		Skills:   req.Skills,
		Search:   req.Search,
		Location: req.Location,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, *toProfileResponse(&profiles[i]))
	}
	return dto.NewPagedResponse(items, total, req.Page, req.PageSize), nil
}
