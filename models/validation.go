package models

import (
	"fmt"
	"time"
)

// ValidationKind tells what a ledger row certifies. "intermediaire" is a
// UI-only marker and never scores.
type ValidationKind string

const (
	KindZone         ValidationKind = "zone"
	KindTop          ValidationKind = "top"
	KindIntermediate ValidationKind = "intermediaire"
)

// ParseValidationKind maps a request value to a kind.
func ParseValidationKind(s string) (ValidationKind, error) {
	switch ValidationKind(s) {
	case KindZone, KindTop, KindIntermediate:
		return ValidationKind(s), nil
	}
	return "", fmt.Errorf("invalid validation kind %q (want zone, top or intermediaire)", s)
}

// Scores reports whether rows of this kind contribute points.
func (k ValidationKind) Scores() bool {
	return k == KindZone || k == KindTop
}

// Validation is one ledger fact: a participant achieved `kind` on a zone.
// The unique index rejects a second identical fact instead of overwriting it;
// the constraint (not an app-level check) is what closes the concurrent
// double-insert race.
type Validation struct {
	ID            string         `json:"id" gorm:"primaryKey"`
	ParticipantID string         `json:"grimpeur_id" gorm:"not null;index;uniqueIndex:idx_validations_unique"`
	ZoneID        string         `json:"zone_id" gorm:"not null;index;uniqueIndex:idx_validations_unique"`
	BlocID        string         `json:"bloc_id" gorm:"not null;index"`
	Kind          ValidationKind `json:"kind" gorm:"type:varchar(16);not null;uniqueIndex:idx_validations_unique"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// ValidationDetail is a ledger row enriched with display names, as returned
// by the list endpoint.
type ValidationDetail struct {
	ID            string         `json:"id"`
	ParticipantID string         `json:"grimpeur_id"`
	ZoneID        string         `json:"zone_id"`
	BlocID        string         `json:"bloc_id"`
	Kind          ValidationKind `json:"kind"`
	CreatedAt     time.Time      `json:"created_at"`
	FirstName     string         `json:"prenom"`
	LastName      string         `json:"nom"`
	Category      string         `json:"categorie"`
	Sex           string         `json:"sexe"`
	ZoneName      string         `json:"zone_nom"`
	BlocName      string         `json:"bloc_nom"`
}
