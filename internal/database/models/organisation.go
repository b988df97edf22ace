package models

// Organisation is the tenant boundary. Every employee, team and assignment
// belongs to exactly one.
type Organisation struct {
	Base
	Name string `gorm:"not null" json:"name"`
}

func (Organisation) TableName() string {
	return "organisations"
}
