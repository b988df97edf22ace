package models

import "time"

// Base model with an auto-increment primary key and creation timestamp.
// Rows in scope are never soft-deleted, so there is no DeletedAt.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
