package models

type Employee struct {
	Base
	OrganisationID uint   `gorm:"not null;index;uniqueIndex:ux_employees_org_email,priority:1" json:"organisation_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `gorm:"not null;uniqueIndex:ux_employees_org_email,priority:2" json:"email"`
	Phone          string `json:"phone"`

	Organisation *Organisation `gorm:"foreignKey:OrganisationID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}
