package dto

import (
	"time"

	"github.com/hugh/orgroster/internal/database/models"
)

// EmployeeRequest is the body of both create and update. Update replaces
// every field, so clients must send the full record.
type EmployeeRequest struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"omitempty,max=32,phone"`
}

type EmployeeResponse struct {
	ID             uint      `json:"id"`
	OrganisationID uint      `json:"organisation_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
}

func EmployeeFromModel(e *models.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		OrganisationID: e.OrganisationID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		CreatedAt:      e.CreatedAt,
	}
}

func EmployeesFromModels(emps []models.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(emps))
	for i := range emps {
		out[i] = EmployeeFromModel(&emps[i])
	}
	return out
}
