package dto

import (
	"time"

	"github.com/hugh/orgroster/internal/database/models"
)

type RegisterRequest struct {
	OrgName   string `json:"orgName" validate:"required,max=200"`
	AdminName string `json:"adminName" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	OrganisationID uint   `json:"organisation_id"`
}

type OrganisationDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type MeResponse struct {
	UserDTO
	CreatedAt    time.Time        `json:"created_at"`
	Organisation *OrganisationDTO `json:"organisation,omitempty"`
}

func UserFromModel(u *models.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		OrganisationID: u.OrganisationID,
	}
}

func MeFromModel(u *models.User) MeResponse {
	resp := MeResponse{UserDTO: UserFromModel(u), CreatedAt: u.CreatedAt}
	if u.Organisation != nil {
		resp.Organisation = &OrganisationDTO{
			ID:        u.Organisation.ID,
			Name:      u.Organisation.Name,
			CreatedAt: u.Organisation.CreatedAt,
		}
	}
	return resp
}
