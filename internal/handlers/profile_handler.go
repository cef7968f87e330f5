package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ProfileHandler struct {
	BaseHandler
	profiles services.ProfileService
}

func NewProfileHandler(base BaseHandler, profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.MyProfile)
	r.PUT("/me", h.SaveMyProfile)
	r.POST("/me/avatar", h.UploadAvatar)
	r.GET("/search", h.SearchFreelancers)
	r.GET("/:userId", h.GetProfile)
}

func (h *ProfileHandler) MyProfile(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, profile)
}

func (h *ProfileHandler) SaveMyProfile(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.SaveProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profiles.Save(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, profile)
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Avatar file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	url, err := h.profiles.UploadAvatar(c.Request.Context(), userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"avatarUrl": url})
}

func (h *ProfileHandler) SearchFreelancers(c *gin.Context) {
	var req dto.FreelancerSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	result, err := h.profiles.SearchFreelancers(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Param("userId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, profile)
}
