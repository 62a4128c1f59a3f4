package domain

import "time"

// Goal Model
type Goal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"` // Owning user reference
	Text      string    `gorm:"not null" json:"text"`          // Goal text
	CreatedAt time.Time `json:"created_at"`                    // Set by the store on insert
	UpdatedAt time.Time `json:"updated_at"`                    // Set by the store on every write
}
