package services

import (
	"encoding/json"

	"connecta_backend/internal/models"
	"connecta_backend/internal/services/dto"
)

func toUserResponse(user *models.User) *dto.UserResponse {
	var badges []string
	if len(user.Badges) > 0 {
		_ = json.Unmarshal(user.Badges, &badges)
	}
	if badges == nil {
		badges = []string{}
	}

	return &dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		UserType:        user.UserType,
		IsVerified:      user.IsVerified,
		IsPremium:       user.IsPremium,
		AverageRating:   user.AverageRating,
		TotalReviews:    user.TotalReviews,
		JobSuccessScore: user.JobSuccessScore,
		Badges:          badges,
		CreatedAt:       user.CreatedAt,
	}
}

func toProfileResponse(profile *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserID:      profile.UserID,
		Title:       profile.Title,
		Bio:         profile.Bio,
		Skills:      profile.Skills,
		HourlyRate:  profile.HourlyRate,
		Location:    profile.Location,
		AvatarURL:   profile.AvatarURL,
		Languages:   json.RawMessage(profile.Languages),
		Portfolio:   json.RawMessage(profile.Portfolio),
		Employment:  json.RawMessage(profile.Employment),
		Education:   json.RawMessage(profile.Education),
		Preferences: json.RawMessage(profile.Preferences),
	}
}

func toJobResponse(job *models.Job) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:          job.ID,
		ClientID:    job.ClientID,
		Title:       job.Title,
		Description: job.Description,
		Category:    job.Category,
		Skills:      job.Skills,
		BudgetMin:   job.BudgetMin,
		BudgetMax:   job.BudgetMax,
		Duration:    job.Duration,
		Status:      job.Status,
		Views:       job.Views,
		IsExternal:  job.IsExternal,
		Source:      job.Source,
		Company:     job.Company,
		ApplyURL:    job.ApplyURL,
		Deadline:    job.Deadline,
		CreatedAt:   job.CreatedAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if job.Client != nil {
		resp.ClientName = job.Client.FullName
	}
	return resp
}

func toProposalResponse(proposal *models.Proposal) *dto.ProposalResponse {
	resp := &dto.ProposalResponse{
		ID:           proposal.ID,
		JobID:        proposal.JobID,
		FreelancerID: proposal.FreelancerID,
		CoverLetter:  proposal.CoverLetter,
		BidAmount:    proposal.BidAmount,
		Duration:     proposal.Duration,
		Status:       proposal.Status,
		CreatedAt:    proposal.CreatedAt,
	}
	if proposal.Job != nil {
		resp.JobTitle = proposal.Job.Title
	}
	if proposal.Freelancer != nil {
		resp.FreelancerName = proposal.Freelancer.FullName
	}
	return resp
}

func toProjectResponse(project *models.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:           project.ID,
		JobID:        project.JobID,
		ClientID:     project.ClientID,
		FreelancerID: project.FreelancerID,
		Title:        project.Title,
		Description:  project.Description,
		Budget:       project.Budget,
		Status:       project.Status,
		Milestones:   json.RawMessage(project.Milestones),
		CompletedAt:  project.CompletedAt,
		CreatedAt:    project.CreatedAt,
	}
	if project.Client != nil {
		resp.ClientName = project.Client.FullName
	}
	if project.Freelancer != nil {
		resp.FreelancerName = project.Freelancer.FullName
	}
	return resp
}

func toContractResponse(contract *models.Contract) *dto.ContractResponse {
	return &dto.ContractResponse{
		ID:           contract.ID,
		ProjectID:    contract.ProjectID,
		ClientID:     contract.ClientID,
		FreelancerID: contract.FreelancerID,
		Terms:        contract.Terms,
		Amount:       contract.Amount,
		Status:       contract.Status,
		Signatures:   json.RawMessage(contract.Signatures),
		StartDate:    contract.StartDate,
		EndDate:      contract.EndDate,
		CreatedAt:    contract.CreatedAt,
	}
}

func toPaymentResponse(payment *models.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:           payment.ID,
		PayerID:      payment.PayerID,
		PayeeID:      payment.PayeeID,
		ProjectID:    payment.ProjectID,
		JobID:        payment.JobID,
		Amount:       payment.Amount,
		Fee:          payment.Fee,
		NetAmount:    payment.NetAmount,
		Currency:     payment.Currency,
		PaymentType:  payment.PaymentType,
		Status:       payment.Status,
		EscrowStatus: payment.EscrowStatus,
		GatewayRef:   payment.GatewayRef,
		CompletedAt:  payment.CompletedAt,
		CreatedAt:    payment.CreatedAt,
	}
}

func toReviewResponse(review *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:           review.ID,
		ReviewerID:   review.ReviewerID,
		RevieweeID:   review.RevieweeID,
		ProjectID:    review.ProjectID,
		ReviewerType: review.ReviewerType,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
	}
	if review.Reviewer != nil {
		resp.ReviewerName = review.Reviewer.FullName
	}
	return resp
}

func toNotificationResponse(n *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      json.RawMessage(n.Data),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func toMessageResponse(m *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ReceiverID:     m.ReceiverID,
		Text:           m.Text,
		Attachments:    json.RawMessage(m.Attachments),
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

func toCollaboResponse(p *models.CollaboProject, viewerID string) *dto.CollaboResponse {
	roles := make([]dto.CollaboRoleResponse, 0, len(p.Roles))
	for i := range p.Roles {
		role := &p.Roles[i]
		rr := dto.CollaboRoleResponse{
			ID:          role.ID,
			Title:       role.Title,
			Description: role.Description,
			Budget:      role.Budget,
			Skills:      role.Skills,
			Status:      role.Status,
			AssigneeID:  role.AssigneeID,
		}
		if rr.Skills == nil {
			rr.Skills = []string{}
		}
		if role.Assignee != nil {
			rr.AssigneeName = role.Assignee.FullName
		}
		roles = append(roles, rr)
	}

	resp := &dto.CollaboResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		TotalBudget: p.TotalBudget,
		Status:      p.Status,
		Roles:       roles,
		UnreadCount: unreadFor(p.UnreadCounts, viewerID),
		CreatedAt:   p.CreatedAt,
	}
	if p.Owner != nil {
		resp.OwnerName = p.Owner.FullName
	}
	return resp
}

func toCollaboResponses(projects []models.CollaboProject, viewerID string) []dto.CollaboResponse {
	items := make([]dto.CollaboResponse, 0, len(projects))
	for i := range projects {
		items = append(items, *toCollaboResponse(&projects[i], viewerID))
	}
	return items
}

// unreadFor reads one counter out of a JSONB unread map.
func unreadFor(counts map[string]interface{}, userID string) int {
	if counts == nil || userID == "" {
		return 0
	}
	switch v := counts[userID].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
