package models

import "time"

// Hub is a named topical community. Read-only from the client's perspective;
// the name doubles as the routing key.
type Hub struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Icon        string    `json:"icon"`
	Members     int       `gorm:"default:0" json:"members"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
