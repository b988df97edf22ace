package models

// User is an administrator of one organisation. Email is unique across all
// organisations because login is by email alone.
type User struct {
	Base
	OrganisationID uint   `gorm:"not null;index" json:"organisation_id"`
	Email          string `gorm:"uniqueIndex:ux_users_email;not null" json:"email"`
	PasswordHash   string `gorm:"not null" json:"-"`
	Name           string `json:"name"`

	Organisation *Organisation `gorm:"foreignKey:OrganisationID;constraint:OnDelete:RESTRICT" json:"organisation,omitempty"`
}

func (User) TableName() string {
	return "users"
}
