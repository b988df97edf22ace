package models

import "time"

// EmployeeTeam records that an employee is a member of a team. Rows are
// removed by the database when either side is deleted.
type EmployeeTeam struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EmployeeID     uint      `gorm:"not null;uniqueIndex:ux_employee_teams_membership,priority:1" json:"employee_id"`
	TeamID         uint      `gorm:"not null;index;uniqueIndex:ux_employee_teams_membership,priority:2" json:"team_id"`
	OrganisationID uint      `gorm:"not null;index;uniqueIndex:ux_employee_teams_membership,priority:3" json:"organisation_id"`
	AssignedAt     time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	Employee     *Employee     `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"-"`
	Team         *Team         `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	Organisation *Organisation `gorm:"foreignKey:OrganisationID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (EmployeeTeam) TableName() string {
	return "employee_teams"
}
