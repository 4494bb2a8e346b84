package services

import (
	"errors"
	"log"

	"contest-scoring-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantService struct {
	DB       *gorm.DB
	Notifier *RankingsNotifier
}

func NewParticipantService(db *gorm.DB, notifier *RankingsNotifier) *ParticipantService {
	return &ParticipantService{DB: db, Notifier: notifier}
}

func (s *ParticipantService) GetAllParticipants(c *fiber.Ctx) error {
	var participants []models.Participant
	if err := s.DB.Order("last_name, first_name").Find(&participants).Error; err != nil {
		log.Printf("ERROR fetching participants: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch participants"})
	}
	return c.JSON(participants)
}

func (s *ParticipantService) CreateParticipant(c *fiber.Ctx) error {
	type Req struct {
		FirstName string `json:"prenom"`
		LastName  string `json:"nom"`
		Category  string `json:"categorie"`
		Sex       string `json:"sexe"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.FirstName == "" || req.LastName == "" || req.Category == "" || req.Sex == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Tous les champs sont obligatoires"})
	}
	if !models.IsValidCategory(req.Category) {
		return c.Status(400).JSON(fiber.Map{"error": "categorie invalide"})
	}
	if !models.IsValidSex(req.Sex) {
		return c.Status(400).JSON(fiber.Map{"error": "sexe invalide"})
	}

	p := &models.Participant{
		ID:        uuid.NewString(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Category:  req.Category,
		Sex:       req.Sex,
	}
	if err := s.DB.Create(p).Error; err != nil {
		log.Printf("ERROR creating participant: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}
	return c.Status(201).JSON(p)
}

func (s *ParticipantService) UpdateParticipant(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		FirstName string `json:"prenom"`
		LastName  string `json:"nom"`
		Category  string `json:"categorie"`
		Sex       string `json:"sexe"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.FirstName == "" || req.LastName == "" || req.Category == "" || req.Sex == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Tous les champs sont obligatoires"})
	}
	if !models.IsValidCategory(req.Category) {
		return c.Status(400).JSON(fiber.Map{"error": "categorie invalide"})
	}
	if !models.IsValidSex(req.Sex) {
		return c.Status(400).JSON(fiber.Map{"error": "sexe invalide"})
	}

	result := s.DB.Model(&models.Participant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"category":   req.Category,
		"sex":        req.Sex,
	})
	if result.Error != nil {
		log.Printf("ERROR updating participant %s: %v", id, result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Grimpeur non trouvé"})
	}
	// Category/sex changes move the participant between filtered leaderboards.
	s.Notifier.Notify()
	return c.JSON(fiber.Map{"success": true})
}

// DeleteParticipant removes a climber and all of their ledger rows as one
// atomic unit; a partial cascade would leave orphaned facts inflating group
// denominators.
func (s *ParticipantService) DeleteParticipant(c *fiber.Ctx) error {
	id := c.Params("id")
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("participant_id = ?", id).Delete(&models.Validation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Participant{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("grimpeur")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Grimpeur non trouvé"})
		}
		log.Printf("ERROR deleting participant %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	s.Notifier.Notify()
	return c.JSON(fiber.Map{"success": true})
}
