package models

import (
	"time"
)

// Categories a participant can compete in (age brackets plus Senior).
var Categories = []string{"U11", "U13", "U15", "U19", "Senior"}

// Sexes accepted on registration forms.
var Sexes = []string{"femme", "homme"}

// Participant is a registered climber (grimpeur).
type Participant struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"prenom" gorm:"not null"`
	LastName  string    `json:"nom" gorm:"not null"`
	Category  string    `json:"categorie" gorm:"not null"`
	Sex       string    `json:"sexe" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func IsValidSex(s string) bool {
	for _, v := range Sexes {
		if v == s {
			return true
		}
	}
	return false
}
