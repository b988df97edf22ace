package models

import "time"

// Log mirrors the logs table. Nothing writes to it yet; it exists so the
// schema matches deployments that expect it.
type Log struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrganisationID *uint     `gorm:"index" json:"organisation_id"`
	UserID         *uint     `gorm:"index" json:"user_id"`
	Action         string    `json:"action"`
	Meta           string    `json:"meta"`
	Timestamp      time.Time `gorm:"autoCreateTime" json:"timestamp"`

	Organisation *Organisation `gorm:"foreignKey:OrganisationID" json:"-"`
	User         *User         `gorm:"foreignKey:UserID" json:"-"`
}

func (Log) TableName() string {
	return "logs"
}
