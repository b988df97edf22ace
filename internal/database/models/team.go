package models

type Team struct {
	Base
	OrganisationID uint    `gorm:"not null;index;uniqueIndex:ux_teams_org_name,priority:1" json:"organisation_id"`
	Name           string  `gorm:"not null;uniqueIndex:ux_teams_org_name,priority:2;check:chk_teams_name_not_empty,name <> ''" json:"name"`
	Description    *string `json:"description"`

	Organisation *Organisation `gorm:"foreignKey:OrganisationID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Team) TableName() string {
	return "teams"
}
