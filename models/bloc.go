package models

import (
	"time"
)

// Bloc is a climbing problem. Topping the bloc is the "top" accomplishment;
// its zones mark partial progress. In practice each bloc carries one zone.
type Bloc struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ContestID   string    `json:"contest_id" gorm:"not null;index"`
	Name        string    `json:"nom" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Zones []Zone `json:"zones,omitempty" gorm:"foreignKey:BlocID"`
}

// Zone is a hold/section of a bloc, ordered among its siblings.
type Zone struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	BlocID    string    `json:"bloc_id" gorm:"not null;index"`
	Name      string    `json:"nom" gorm:"not null"`
	SortOrder int       `json:"ordre" gorm:"column:sort_order;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
