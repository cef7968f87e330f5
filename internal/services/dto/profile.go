package dto

import "encoding/json"

type SaveProfileRequest struct {
	Title       string          `json:"title" validate:"omitempty,max=120"`
	Bio         string          `json:"bio" validate:"omitempty,max=4000"`
	Skills      []string        `json:"skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	HourlyRate  *float64        `json:"hourlyRate" validate:"omitempty,gt=0"`
	Location    string          `json:"location" validate:"omitempty,max=120"`
	Languages   json.RawMessage `json:"languages"`
	Portfolio   json.RawMessage `json:"portfolio"`
	Employment  json.RawMessage `json:"employment"`
	Education   json.RawMessage `json:"education"`
	Preferences json.RawMessage `json:"preferences"`
}

type ProfileResponse struct {
	UserID      string          `json:"userId"`
	Title       string          `json:"title"`
	Bio         string          `json:"bio"`
	Skills      []string        `json:"skills"`
	HourlyRate  *float64        `json:"hourlyRate"`
	Location    string          `json:"location"`
	AvatarURL   string          `json:"avatarUrl"`
	Languages   json.RawMessage `json:"languages,omitempty"`
	Portfolio   json.RawMessage `json:"portfolio,omitempty"`
	Employment  json.RawMessage `json:"employment,omitempty"`
	Education   json.RawMessage `json:"education,omitempty"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}

type FreelancerSearchRequest struct {
	Skills   []string `form:"skills"`
	Search   string   `form:"search"`
	Location string   `form:"location"`
	Page     int      `form:"page"`
	PageSize int      `form:"pageSize"`
}
