package services

import (
	"errors"
	"fmt"
	"log"

	"contest-scoring-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlocService manages blocs and their zones. Deletes cascade through zones
// and ledger rows so no orphaned facts survive.
type BlocService struct {
	DB       *gorm.DB
	Notifier *RankingsNotifier
}

func NewBlocService(db *gorm.DB, notifier *RankingsNotifier) *BlocService {
	return &BlocService{DB: db, Notifier: notifier}
}

func (s *BlocService) GetAllBlocs(c *fiber.Ctx) error {
	q := s.DB.Preload("Zones", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	})
	if contestID := c.Query("contest_id"); contestID != "" {
		q = q.Where("contest_id = ?", contestID)
	}
	var blocs []models.Bloc
	if err := q.Order("created_at").Find(&blocs).Error; err != nil {
		log.Printf("ERROR fetching blocs: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch blocs"})
	}
	return c.JSON(blocs)
}

func (s *BlocService) CreateBloc(c *fiber.Ctx) error {
	type Req struct {
		ContestID   string `json:"contest_id"`
		Name        string `json:"nom"`
		Description string `json:"description"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.ContestID == "" || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "contest_id et nom sont obligatoires"})
	}
	if err := s.DB.First(&models.Contest{}, "id = ?", req.ContestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Contest non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	bloc := &models.Bloc{
		ID:          uuid.NewString(),
		ContestID:   req.ContestID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.DB.Create(bloc).Error; err != nil {
		log.Printf("ERROR creating bloc: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}
	return c.Status(201).JSON(bloc)
}

func (s *BlocService) UpdateBloc(c *fiber.Ctx) error {
	id := c.Params("id")
	type Req struct {
		ContestID   string `json:"contest_id"`
		Name        string `json:"nom"`
		Description string `json:"description"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.ContestID == "" || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "contest_id et nom sont obligatoires"})
	}
	if err := s.DB.First(&models.Contest{}, "id = ?", req.ContestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Contest non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	result := s.DB.Model(&models.Bloc{}).Where("id = ?", id).Updates(map[string]interface{}{
		"contest_id":  req.ContestID,
		"name":        req.Name,
		"description": req.Description,
	})
	if result.Error != nil {
		log.Printf("ERROR updating bloc %s: %v", id, result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Bloc non trouvé"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteBloc removes one bloc with its zones and ledger rows, all-or-nothing.
func (s *BlocService) DeleteBloc(c *fiber.Ctx) error {
	id := c.Params("id")
	var removedValidations int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("bloc_id = ?", id).Delete(&models.Validation{})
		if result.Error != nil {
			return result.Error
		}
		removedValidations = result.RowsAffected
		if err := tx.Where("bloc_id = ?", id).Delete(&models.Zone{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Bloc{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("bloc")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Bloc non trouvé"})
		}
		log.Printf("ERROR deleting bloc %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	if removedValidations > 0 {
		s.Notifier.Notify()
	}
	return c.JSON(fiber.Map{"success": true, "message": "Bloc supprimé avec succès"})
}

// DeleteAllBlocs wipes every bloc, zone and ledger row (admin reset).
func (s *BlocService) DeleteAllBlocs(c *fiber.Ctx) error {
	var removed int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("1 = 1").Delete(&models.Validation{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		if err := tx.Where("1 = 1").Delete(&models.Zone{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Bloc{}).Error
	})
	if err != nil {
		log.Printf("ERROR deleting all blocs: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	if removed > 0 {
		s.Notifier.Notify()
	}
	return c.JSON(fiber.Map{"success": true, "message": "Tous les blocs et zones ont été supprimés"})
}

// QuickSetup creates N numbered blocs, each with a single zone, in one
// transaction — the server-side version of the admin UI's setup loop, which
// used to fire 2N requests and could stop halfway.
func (s *BlocService) QuickSetup(c *fiber.Ctx) error {
	type Req struct {
		ContestID string `json:"contest_id"`
		Count     int    `json:"nombre_blocs"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.ContestID == "" || req.Count < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "contest_id et nombre_blocs sont obligatoires"})
	}
	if err := s.DB.First(&models.Contest{}, "id = ?", req.ContestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Contest non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	blocs := make([]models.Bloc, 0, req.Count)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i := 1; i <= req.Count; i++ {
			bloc := models.Bloc{
				ID:          uuid.NewString(),
				ContestID:   req.ContestID,
				Name:        fmt.Sprintf("Bloc %d", i),
				Description: fmt.Sprintf("Bloc numéro %d du contest", i),
			}
			if err := tx.Create(&bloc).Error; err != nil {
				return err
			}
			zone := models.Zone{
				ID:        uuid.NewString(),
				BlocID:    bloc.ID,
				Name:      fmt.Sprintf("Zone Bloc %d", i),
				SortOrder: 1,
			}
			if err := tx.Create(&zone).Error; err != nil {
				return err
			}
			bloc.Zones = []models.Zone{zone}
			blocs = append(blocs, bloc)
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR in quick setup: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}
	return c.Status(201).JSON(blocs)
}

// --- Zones ---

func (s *BlocService) GetAllZones(c *fiber.Ctx) error {
	type ZoneWithBloc struct {
		ID        string `json:"id"`
		BlocID    string `json:"bloc_id"`
		Name      string `json:"nom"`
		SortOrder int    `json:"ordre"`
		BlocName  string `json:"bloc_nom"`
	}
	query := `
        SELECT z.id, z.bloc_id, z.name, z.sort_order, b.name AS bloc_name
        FROM zones z
        JOIN blocs b ON z.bloc_id = b.id
    `
	args := []interface{}{}
	if blocID := c.Query("bloc_id"); blocID != "" {
		query += " WHERE z.bloc_id = ?"
		args = append(args, blocID)
	}
	query += " ORDER BY z.bloc_id, z.sort_order"

	var zones []ZoneWithBloc
	if err := s.DB.Raw(query, args...).Scan(&zones).Error; err != nil {
		log.Printf("ERROR fetching zones: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch zones"})
	}
	return c.JSON(zones)
}

func (s *BlocService) CreateZone(c *fiber.Ctx) error {
	type Req struct {
		BlocID    string `json:"bloc_id"`
		Name      string `json:"nom"`
		SortOrder *int   `json:"ordre"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.BlocID == "" || req.Name == "" || req.SortOrder == nil {
		return c.Status(400).JSON(fiber.Map{"error": "bloc_id, nom et ordre sont obligatoires"})
	}
	if err := s.DB.First(&models.Bloc{}, "id = ?", req.BlocID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Bloc non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	zone := &models.Zone{
		ID:        uuid.NewString(),
		BlocID:    req.BlocID,
		Name:      req.Name,
		SortOrder: *req.SortOrder,
	}
	if err := s.DB.Create(zone).Error; err != nil {
		log.Printf("ERROR creating zone: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB insert failed"})
	}
	return c.Status(201).JSON(zone)
}

// RenameZones bulk-renames every zone currently carrying old_name.
func (s *BlocService) RenameZones(c *fiber.Ctx) error {
	type Req struct {
		OldName string `json:"old_name"`
		NewName string `json:"new_name"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.OldName == "" || req.NewName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "old_name et new_name sont obligatoires"})
	}
	result := s.DB.Model(&models.Zone{}).Where("name = ?", req.OldName).Update("name", req.NewName)
	if result.Error != nil {
		log.Printf("ERROR renaming zones: %v", result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB update failed"})
	}
	return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("%d zone(s) renommée(s)", result.RowsAffected)})
}

// DeleteAllZones wipes every zone and the whole ledger (admin reset).
func (s *BlocService) DeleteAllZones(c *fiber.Ctx) error {
	var removed int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("1 = 1").Delete(&models.Validation{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return tx.Where("1 = 1").Delete(&models.Zone{}).Error
	})
	if err != nil {
		log.Printf("ERROR deleting all zones: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB delete failed"})
	}
	if removed > 0 {
		s.Notifier.Notify()
	}
	return c.JSON(fiber.Map{"success": true, "message": "Toutes les zones ont été supprimées"})
}
