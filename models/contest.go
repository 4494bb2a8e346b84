package models

import (
	"time"
)

// Contest is a scoring window. At most one contest is active at any time;
// flipping the flag on one deactivates all others in the same transaction.
type Contest struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"nom" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"index"`
	StartTime time.Time `json:"debut" gorm:"not null"`
	EndTime   time.Time `json:"fin" gorm:"not null"`
	Active    bool      `json:"actif" gorm:"default:false;index"`
	PosterURL string    `json:"poster_url,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Blocs []Bloc `json:"blocs,omitempty" gorm:"foreignKey:ContestID"`
}
