package services

import (
	"errors"
	"log"
	"time"

	"contest-scoring-system/models"
	"contest-scoring-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type ContestService struct {
	DB       *gorm.DB
	Notifier *RankingsNotifier
}

func NewContestService(db *gorm.DB, notifier *RankingsNotifier) *ContestService {
	return &ContestService{DB: db, Notifier: notifier}
}

func (s *ContestService) GetAllContests(c *fiber.Ctx) error {
	var contests []models.Contest
	if err := s.DB.Order("created_at DESC").Find(&contests).Error; err != nil {
		log.Printf("ERROR fetching contests: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch contests"})
	}
	return c.JSON(contests)
}

func (s *ContestService) CreateContest(c *fiber.Ctx) error {
	type Req struct {
		Name      string `json:"nom"`
		StartTime string `json:"debut"`
		EndTime   string `json:"fin"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" || req.StartTime == "" || req.EndTime == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Tous les champs sont obligatoires"})
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid debut (use RFC3339)"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid fin (use RFC3339)"})
	}
	if !end.After(start) {
		return c.Status(400).JSON(fiber.Map{"error": "fin must be after debut"})
	}

	contest := &models.Contest{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      slug.Make(req.Name),
		StartTime: start,
		EndTime:   end,
		Active:    false,
	}
	if err := s.DB.Create(contest).Error; err != nil {
		log.Printf("ERROR creating contest: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}
	return c.Status(201).JSON(contest)
}

func (s *ContestService) UpdateContest(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		Name      string `json:"nom"`
		StartTime string `json:"debut"`
		EndTime   string `json:"fin"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" || req.StartTime == "" || req.EndTime == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Tous les champs sont obligatoires"})
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid debut (use RFC3339)"})
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid fin (use RFC3339)"})
	}
	if !end.After(start) {
		return c.Status(400).JSON(fiber.Map{"error": "fin must be after debut"})
	}

	result := s.DB.Model(&models.Contest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":       req.Name,
		"slug":       slug.Make(req.Name),
		"start_time": start,
		"end_time":   end,
	})
	if result.Error != nil {
		log.Printf("ERROR updating contest %s: %v", id, result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Contest non trouvé"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// ToggleContestActive flips one contest's active flag. Activating deactivates
// every other contest inside the same transaction, so "at most one active"
// holds at every commit point, even under concurrent toggles.
func (s *ContestService) ToggleContestActive(c *fiber.Ctx) error {
	id := c.Params("id")
	var newState bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var contest models.Contest
		if err := tx.First(&contest, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("contest")
			}
			return err
		}
		newState = !contest.Active
		if newState {
			if err := tx.Model(&models.Contest{}).Where("active = ?", true).
				Update("active", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Contest{}).Where("id = ?", id).
			Update("active", newState).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Contest non trouvé"})
		}
		log.Printf("ERROR toggling contest %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	s.Notifier.Notify()
	message := "Contest désactivé avec succès!"
	if newState {
		message = "Contest activé avec succès!"
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "actif": newState})
}

func (s *ContestService) GetActiveContest(c *fiber.Ctx) error {
	var contest models.Contest
	err := s.DB.First(&contest, "active = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(nil)
	}
	if err != nil {
		log.Printf("ERROR fetching active contest: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(contest)
}

// DeleteContest removes a contest with its blocs, their zones and every
// ledger row referencing those blocs, all-or-nothing. Other contests' data is
// untouched.
func (s *ContestService) DeleteContest(c *fiber.Ctx) error {
	id := c.Params("id")
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bloc_id IN (?)",
			tx.Model(&models.Bloc{}).Select("id").Where("contest_id = ?", id),
		).Delete(&models.Validation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bloc_id IN (?)",
			tx.Model(&models.Bloc{}).Select("id").Where("contest_id = ?", id),
		).Delete(&models.Zone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contest_id = ?", id).Delete(&models.Bloc{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Contest{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("contest")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Contest non trouvé"})
		}
		log.Printf("ERROR deleting contest %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	s.Notifier.Notify()
	return c.JSON(fiber.Map{"success": true, "message": "Contest supprimé avec succès"})
}

// UploadContestPoster stores a poster image on R2 and records its URL.
func (s *ContestService) UploadContestPoster(c *fiber.Ctx) error {
	id := c.Params("id")
	if !utils.R2Enabled() {
		return c.Status(503).JSON(fiber.Map{"error": "object storage not configured"})
	}
	var contest models.Contest
	if err := s.DB.First(&contest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Contest non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	poster, err := c.FormFile("poster")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "poster file is required"})
	}
	ext, err := utils.ValidatePosterFile(poster)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	key := "contests/posters/" + uuid.NewString() + ext
	url, err := utils.UploadFileToR2(poster, key)
	if err != nil {
		log.Printf("ERROR uploading poster for contest %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to upload poster"})
	}
	if err := s.DB.Model(&contest).Update("poster_url", url).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	return c.JSON(fiber.Map{"success": true, "poster_url": url})
}
