package dto

import (
	"time"

	"github.com/hugh/orgroster/internal/database/models"
)

type CreateTeamRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateTeamRequest is a partial update; absent or empty fields are kept.
type UpdateTeamRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type TeamResponse struct {
	ID             uint      `json:"id"`
	OrganisationID uint      `json:"organisation_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

func TeamFromModel(t *models.Team) TeamResponse {
	return TeamResponse{
		ID:             t.ID,
		OrganisationID: t.OrganisationID,
		Name:           t.Name,
		Description:    t.Description,
		CreatedAt:      t.CreatedAt,
	}
}

func TeamsFromModels(teams []models.Team) []TeamResponse {
	out := make([]TeamResponse, len(teams))
	for i := range teams {
		out[i] = TeamFromModel(&teams[i])
	}
	return out
}
