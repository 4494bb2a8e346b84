package services

import (
	"errors"
	"log"

	"contest-scoring-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidationService owns the ledger of validation facts. Entity CRUD lives in
// the other services; everything that mutates the ledger goes through here so
// the rankings notifier fires exactly when the ledger actually changed.
type ValidationService struct {
	DB       *gorm.DB
	Notifier *RankingsNotifier
}

func NewValidationService(db *gorm.DB, notifier *RankingsNotifier) *ValidationService {
	return &ValidationService{DB: db, Notifier: notifier}
}

// Record inserts one ledger fact. The duplicate check is the unique index on
// (grimpeur, zone, kind): two concurrent calls for the same tuple get exactly
// one success and one ErrDuplicateEntry, never two rows. The reference checks
// and the insert share one transaction, so a participant delete (which removes
// the participant and their ledger rows atomically) cannot interleave and
// leave an orphaned row behind.
func (s *ValidationService) Record(participantID, zoneID, blocID string, kind models.ValidationKind) (*models.Validation, error) {
	v := &models.Validation{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		ZoneID:        zoneID,
		BlocID:        blocID,
		Kind:          kind,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Participant{}, "id = ?", participantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("grimpeur")
			}
			return err
		}
		var zone models.Zone
		if err := tx.First(&zone, "id = ?", zoneID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("zone")
			}
			return err
		}
		if err := tx.First(&models.Bloc{}, "id = ?", blocID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("bloc")
			}
			return err
		}
		if zone.BlocID != blocID {
			return notFound("zone in bloc")
		}
		if err := tx.Create(v).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEntry
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Notifier.Notify()
	return v, nil
}

// RemoveFilter narrows which of a participant's ledger rows to delete.
// ParticipantID is mandatory; empty optional fields match everything.
type RemoveFilter struct {
	ParticipantID string
	ZoneID        string
	BlocID        string
	Kind          models.ValidationKind
}

// Remove deletes all matching rows and reports how many went. Removing zero
// rows is a success (idempotent); the notifier only fires when something
// actually changed.
func (s *ValidationService) Remove(f RemoveFilter) (int64, error) {
	q := s.DB.Where("participant_id = ?", f.ParticipantID)
	if f.ZoneID != "" {
		q = q.Where("zone_id = ?", f.ZoneID)
	}
	if f.BlocID != "" {
		q = q.Where("bloc_id = ?", f.BlocID)
	}
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	result := q.Delete(&models.Validation{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		s.Notifier.Notify()
	}
	return result.RowsAffected, nil
}

// RemoveByID deletes a single ledger row (the admin results editor toggles
// validations off this way).
func (s *ValidationService) RemoveByID(id string) error {
	result := s.DB.Delete(&models.Validation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("validation")
	}
	s.Notifier.Notify()
	return nil
}

// Query lists ledger rows, optionally for one participant, enriched with
// participant/zone/bloc names for display.
func (s *ValidationService) Query(participantID string) ([]models.ValidationDetail, error) {
	query := `
        SELECT
            v.id,
            v.participant_id,
            v.zone_id,
            v.bloc_id,
            v.kind,
            v.created_at,
            g.first_name,
            g.last_name,
            g.category,
            g.sex,
            z.name AS zone_name,
            b.name AS bloc_name
        FROM validations v
        JOIN participants g ON v.participant_id = g.id
        JOIN zones z ON v.zone_id = z.id
        JOIN blocs b ON v.bloc_id = b.id
    `
	args := []interface{}{}
	if participantID != "" {
		query += " WHERE v.participant_id = ?"
		args = append(args, participantID)
	}
	query += " ORDER BY v.created_at DESC"

	var details []models.ValidationDetail
	if err := s.DB.Raw(query, args...).Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// --- HTTP handlers ---

func (s *ValidationService) CreateValidation(c *fiber.Ctx) error {
	type Req struct {
		ParticipantID string `json:"grimpeur_id"`
		ZoneID        string `json:"zone_id"`
		BlocID        string `json:"bloc_id"`
		Kind          string `json:"kind"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.ParticipantID == "" || req.ZoneID == "" || req.BlocID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "grimpeur_id, zone_id et bloc_id sont obligatoires"})
	}
	if req.Kind == "" {
		req.Kind = string(models.KindZone)
	}
	kind, err := models.ParseValidationKind(req.Kind)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	v, err := s.Record(req.ParticipantID, req.ZoneID, req.BlocID, kind)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEntry):
			return c.Status(409).JSON(fiber.Map{"error": "Validation déjà existante"})
		case errors.Is(err, ErrNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("ERROR recording validation: %v", err)
			return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
		}
	}
	return c.Status(201).JSON(v)
}

func (s *ValidationService) GetValidations(c *fiber.Ctx) error {
	details, err := s.Query(c.Query("grimpeur_id"))
	if err != nil {
		log.Printf("ERROR fetching validations: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch validations"})
	}
	return c.JSON(details)
}

func (s *ValidationService) DeleteValidations(c *fiber.Ctx) error {
	participantID := c.Query("grimpeur_id")
	if participantID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "grimpeur_id est obligatoire"})
	}
	filter := RemoveFilter{
		ParticipantID: participantID,
		ZoneID:        c.Query("zone_id"),
		BlocID:        c.Query("bloc_id"),
	}
	if kindStr := c.Query("kind"); kindStr != "" {
		kind, err := models.ParseValidationKind(kindStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		filter.Kind = kind
	}
	count, err := s.Remove(filter)
	if err != nil {
		log.Printf("ERROR deleting validations: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	return c.JSON(fiber.Map{"success": true, "removed": count})
}

func (s *ValidationService) DeleteValidationByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.RemoveByID(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "validation non trouvée"})
		}
		log.Printf("ERROR deleting validation %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	return c.JSON(fiber.Map{"success": true})
}
