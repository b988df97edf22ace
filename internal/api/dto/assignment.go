package dto

import (
	"time"

	"github.com/hugh/orgroster/internal/database/models"
)

type AssignmentRequest struct {
	EmployeeID uint `json:"employeeId" validate:"required"`
}

type AssignmentResponse struct {
	ID             uint      `json:"id"`
	EmployeeID     uint      `json:"employee_id"`
	TeamID         uint      `json:"team_id"`
	OrganisationID uint      `json:"organisation_id"`
	AssignedAt     time.Time `json:"assigned_at"`
}

func AssignmentsFromModels(rows []models.EmployeeTeam) []AssignmentResponse {
	out := make([]AssignmentResponse, len(rows))
	for i, a := range rows {
		out[i] = AssignmentResponse{
			ID:             a.ID,
			EmployeeID:     a.EmployeeID,
			TeamID:         a.TeamID,
			OrganisationID: a.OrganisationID,
			AssignedAt:     a.AssignedAt,
		}
	}
	return out
}
