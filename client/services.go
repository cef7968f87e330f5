package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"connecta_backend/internal/services/dto"
)

const apiPrefix = "/api/v1"

// ---------------- Auth ----------------

func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.post(ctx, apiPrefix+"/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RegisterAccount(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.post(ctx, apiPrefix+"/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.get(ctx, apiPrefix+"/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------- Jobs ----------------

func (c *Client) SearchJobs(ctx context.Context, req dto.JobSearchRequest) (*dto.PagedResponse[dto.JobResponse], error) {
	query := pageQuery(req.Page, req.PageSize)
	if req.Category != "" {
		query.Set("category", req.Category)
	}
	if req.Search != "" {
		query.Set("search", req.Search)
	}
	for _, skill := range req.Skills {
		query.Add("skills", skill)
	}

	out := &dto.PagedResponse[dto.JobResponse]{Items: []dto.JobResponse{}}
	if err := c.get(ctx, apiPrefix+"/jobs", query, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	var out dto.JobResponse
	if err := c.get(ctx, apiPrefix+"/jobs/"+jobID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateJob(ctx context.Context, req dto.CreateJobRequest) (*dto.JobResponse, error) {
	var out dto.JobResponse
	if err := c.post(ctx, apiPrefix+"/jobs", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyJobs(ctx context.Context, page, pageSize int) ([]dto.JobResponse, error) {
	out := []dto.JobResponse{}
	if err := c.get(ctx, apiPrefix+"/jobs/mine", pageQuery(page, pageSize), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------- Profiles ----------------

// MyProfile returns nil without an error when no profile exists yet.
func (c *Client) MyProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	err := c.get(ctx, apiPrefix+"/profiles/me", nil, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveMyProfile(ctx context.Context, req dto.SaveProfileRequest) (*dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	if err := c.put(ctx, apiPrefix+"/profiles/me", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	if err := c.get(ctx, apiPrefix+"/profiles/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchFreelancers(ctx context.Context, req dto.FreelancerSearchRequest) (*dto.PagedResponse[dto.ProfileResponse], error) {
	query := pageQuery(req.Page, req.PageSize)
	if req.Search != "" {
		query.Set("search", req.Search)
	}
	if req.Location != "" {
		query.Set("location", req.Location)
	}
	for _, skill := range req.Skills {
		query.Add("skills", skill)
	}

	out := &dto.PagedResponse[dto.ProfileResponse]{Items: []dto.ProfileResponse{}}
	if err := c.get(ctx, apiPrefix+"/profiles/search", query, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------- Proposals ----------------

func (c *Client) SubmitProposal(ctx context.Context, req dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	var out dto.ProposalResponse
	if err := c.post(ctx, apiPrefix+"/proposals", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyProposals(ctx context.Context, page, pageSize int) (*dto.PagedResponse[dto.ProposalResponse], error) {
	out := &dto.PagedResponse[dto.ProposalResponse]{Items: []dto.ProposalResponse{}}
	if err := c.get(ctx, apiPrefix+"/proposals/mine", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WithdrawProposal(ctx context.Context, proposalID string) error {
	return c.post(ctx, apiPrefix+"/proposals/"+proposalID+"/withdraw", nil, nil)
}

func (c *Client) AcceptProposal(ctx context.Context, proposalID string) (*dto.AcceptProposalResponse, error) {
	var out dto.AcceptProposalResponse
	if err := c.post(ctx, apiPrefix+"/proposals/"+proposalID+"/accept", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeclineProposal(ctx context.Context, proposalID string) error {
	return c.post(ctx, apiPrefix+"/proposals/"+proposalID+"/decline", nil, nil)
}

func (c *Client) JobProposals(ctx context.Context, jobID string, page, pageSize int) (*dto.PagedResponse[dto.ProposalResponse], error) {
	out := &dto.PagedResponse[dto.ProposalResponse]{Items: []dto.ProposalResponse{}}
	if err := c.get(ctx, apiPrefix+"/jobs/"+jobID+"/proposals", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------- Projects and contracts ----------------

func (c *Client) MyProjects(ctx context.Context, page, pageSize int) (*dto.PagedResponse[dto.ProjectResponse], error) {
	out := &dto.PagedResponse[dto.ProjectResponse]{Items: []dto.ProjectResponse{}}
	if err := c.get(ctx, apiPrefix+"/projects", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, projectID string) (*dto.ProjectResponse, error) {
	var out dto.ProjectResponse
	if err := c.get(ctx, apiPrefix+"/projects/"+projectID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CompleteProject(ctx context.Context, projectID string) error {
	return c.post(ctx, apiPrefix+"/projects/"+projectID+"/complete", nil, nil)
}

func (c *Client) MyContracts(ctx context.Context, page, pageSize int) (*dto.PagedResponse[dto.ContractResponse], error) {
	out := &dto.PagedResponse[dto.ContractResponse]{Items: []dto.ContractResponse{}}
	if err := c.get(ctx, apiPrefix+"/contracts", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SignContract(ctx context.Context, contractID string, req dto.SignContractRequest) (*dto.ContractResponse, error) {
	var out dto.ContractResponse
	if err := c.post(ctx, apiPrefix+"/contracts/"+contractID+"/sign", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------- Collabo ----------------

func (c *Client) OpenCollaboProjects(ctx context.Context, page, pageSize int) (*dto.PagedResponse[dto.CollaboResponse], error) {
	out := &dto.PagedResponse[dto.CollaboResponse]{Items: []dto.CollaboResponse{}}
	if err := c.get(ctx, apiPrefix+"/collabo", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyCollaboProjects(ctx context.Context, page, pageSize int) (*dto.PagedResponse[dto.CollaboResponse], error) {
	out := &dto.PagedResponse[dto.CollaboResponse]{Items: []dto.CollaboResponse{}}
	if err := c.get(ctx, apiPrefix+"/collabo/mine", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCollaboProject(ctx context.Context, req dto.CreateCollaboRequest) (*dto.CollaboResponse, error) {
	var out dto.CollaboResponse
	if err := c.post(ctx, apiPrefix+"/collabo", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InviteToCollaboRole(ctx context.Context, projectID, roleID string, req dto.InviteToRoleRequest) error {
	path := fmt.Sprintf("%s/collabo/%s/roles/%s/invite", apiPrefix, projectID, roleID)
	return c.post(ctx, path, req, nil)
}

func (c *Client) RespondToCollaboInvite(ctx context.Context, projectID, roleID string, accept bool) error {
	action := "decline"
	if accept {
		action = "accept"
	}
	path := fmt.Sprintf("%s/collabo/%s/roles/%s/%s", apiPrefix, projectID, roleID, action)
	return c.post(ctx, path, nil, nil)
}

// ---------------- Messaging ----------------

func (c *Client) Conversations(ctx context.Context, page, pageSize int) (*dto.PagedResponse[dto.ConversationResponse], error) {
	out := &dto.PagedResponse[dto.ConversationResponse]{Items: []dto.ConversationResponse{}}
	if err := c.get(ctx, apiPrefix+"/conversations", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) StartConversation(ctx context.Context, req dto.StartConversationRequest) (*dto.ConversationResponse, error) {
	var out dto.ConversationResponse
	if err := c.post(ctx, apiPrefix+"/conversations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Messages(ctx context.Context, conversationID string, page, pageSize int) (*dto.PagedResponse[dto.MessageResponse], error) {
	out := &dto.PagedResponse[dto.MessageResponse]{Items: []dto.MessageResponse{}}
	if err := c.get(ctx, apiPrefix+"/conversations/"+conversationID+"/messages", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendMessage(ctx context.Context, conversationID string, req dto.SendMessageRequest) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	if err := c.post(ctx, apiPrefix+"/conversations/"+conversationID+"/messages", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkConversationRead(ctx context.Context, conversationID string) error {
	return c.post(ctx, apiPrefix+"/conversations/"+conversationID+"/read", nil, nil)
}

// ---------------- Reviews ----------------

func (c *Client) CreateReview(ctx context.Context, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	var out dto.ReviewResponse
	if err := c.post(ctx, apiPrefix+"/reviews", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserReviews(ctx context.Context, userID string, page, pageSize int) (*dto.PagedResponse[dto.ReviewResponse], error) {
	out := &dto.PagedResponse[dto.ReviewResponse]{Items: []dto.ReviewResponse{}}
	if err := c.get(ctx, apiPrefix+"/users/"+userID+"/reviews", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------- Notifications and dashboard ----------------

func (c *Client) Notifications(ctx context.Context, page, pageSize int) (*dto.PagedResponse[dto.NotificationResponse], error) {
	out := &dto.PagedResponse[dto.NotificationResponse]{Items: []dto.NotificationResponse{}}
	if err := c.get(ctx, apiPrefix+"/notifications", pageQuery(page, pageSize), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.post(ctx, apiPrefix+"/notifications/"+notificationID+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.post(ctx, apiPrefix+"/notifications/read-all", nil, nil)
}

func (c *Client) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	if err := c.get(ctx, apiPrefix+"/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(page, pageSize int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}
	return query
}
