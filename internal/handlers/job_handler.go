package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/middleware"
	"connecta_backend/internal/models"
	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type JobHandler struct {
	BaseHandler
	jobs      services.JobService
	proposals services.ProposalService
}

func NewJobHandler(base BaseHandler, jobs services.JobService, proposals services.ProposalService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobs: jobs, proposals: proposals}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Search)
	r.GET("/:id", h.Get)
	r.GET("/mine", middleware.RequireUserTypes(models.UserTypeClient), h.Mine)

	client := r.Group("", middleware.RequireUserTypes(models.UserTypeClient))
	{
		client.POST("", h.Create)
		client.PUT("/:id", h.Update)
		client.POST("/:id/close", h.Close)
		client.DELETE("/:id", h.Delete)
		client.GET("/:id/proposals", h.Proposals)
	}
}

func (h *JobHandler) Search(c *gin.Context) {
	var req dto.JobSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	result, err := h.jobs.Search(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.GetByID(c.Param("id"), true)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, job)
}

func (h *JobHandler) Mine(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	jobs, err := h.jobs.ListByClient(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, jobs)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobs.Create(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobs.Update(userID, c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, job)
}

func (h *JobHandler) Close(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.jobs.Close(userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Job closed")
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.jobs.Delete(userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Job deleted")
}

func (h *JobHandler) Proposals(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.proposals.ListByJob(userID, c.Param("id"), page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}
