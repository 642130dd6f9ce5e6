package application

import (
	"time"

	domain "sba-portal/internal/domain/application"
	"sba-portal/internal/domain/progress"
)

type TransitionInput struct {
	ApplicationID string
	Action        string
}

type StageInput struct {
	ApplicationID string
	Stage         string
	Notes         *string
}

type ApplicationDTO struct {
	ApplicationID string          `json:"application_id"`
	OwnerID       string          `json:"owner_id"`
	Status        domain.Status   `json:"status"`
	Stage         string          `json:"stage"`
	Notes         string          `json:"notes"`
	SubmittedAt   *time.Time      `json:"submitted_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Actions       []domain.Action `json:"actions"`
}

type ProgressDTO struct {
	ApplicationID string        `json:"application_id"`
	Status        domain.Status `json:"status"`
	Stage         string        `json:"stage"`
	progress.Projection
}
