package services

import (
	"log"
	"sort"

	"contest-scoring-system/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// RankingService turns ledger + participants into the leaderboard. It owns no
// state of its own: every call reads a fresh snapshot and recomputes.
type RankingService struct {
	DB *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{DB: db}
}

// BuildRankings computes the ordered leaderboard, optionally restricted to a
// category and/or sex. The whole ledger is read in a single statement inside
// a transaction, so every group denominator and every per-entry
// credit come from the same snapshot; reading mid-write could otherwise
// double- or under-count a group.
//
// Participants with nothing validated are dropped, the rest are ordered by
// score desc, zones desc, tops desc, then surname and given name under French
// collation. Ranks are numbered after filtering, so position 3 means "3rd in
// the filtered field".
func (s *RankingService) BuildRankings(category, sex string) ([]models.RankingRow, error) {
	var participants []models.Participant
	var entries []models.Validation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&participants).Error; err != nil {
			return err
		}
		return tx.Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}

	scores := ComputeScores(entries)

	rows := make([]models.RankingRow, 0, len(participants))
	for _, p := range participants {
		if category != "" && p.Category != category {
			continue
		}
		if sex != "" && p.Sex != sex {
			continue
		}
		b := scores[p.ID]
		if b.ZonesValidated == 0 && b.TopsValidated == 0 {
			continue
		}
		rows = append(rows, models.RankingRow{
			ParticipantID:  p.ID,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Category:       p.Category,
			Sex:            p.Sex,
			ZonesValidated: b.ZonesValidated,
			TopsValidated:  b.TopsValidated,
			ScoreTotal:     b.ScoreTotal,
		})
	}

	coll := collate.New(language.French)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ScoreTotal != b.ScoreTotal {
			return a.ScoreTotal > b.ScoreTotal
		}
		if a.ZonesValidated != b.ZonesValidated {
			return a.ZonesValidated > b.ZonesValidated
		}
		if a.TopsValidated != b.TopsValidated {
			return a.TopsValidated > b.TopsValidated
		}
		if cmp := coll.CompareString(a.LastName, b.LastName); cmp != 0 {
			return cmp < 0
		}
		return coll.CompareString(a.FirstName, b.FirstName) < 0
	})

	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].ScoreTotal = RoundScore(rows[i].ScoreTotal)
	}
	return rows, nil
}

// RawScores exposes the unfiltered score map for consumers like the admin
// results editor. Every participant appears, with an all-zero breakdown when
// they have nothing in the ledger yet.
func (s *RankingService) RawScores() (map[string]ScoreBreakdown, error) {
	var participants []models.Participant
	var entries []models.Validation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&participants).Error; err != nil {
			return err
		}
		return tx.Find(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	scores := ComputeScores(entries)
	for _, p := range participants {
		if _, ok := scores[p.ID]; !ok {
			scores[p.ID] = ScoreBreakdown{}
		}
	}
	return scores, nil
}

// --- HTTP handlers ---

func (s *RankingService) GetRankings(c *fiber.Ctx) error {
	rows, err := s.BuildRankings(c.Query("categorie"), c.Query("sexe"))
	if err != nil {
		log.Printf("ERROR building rankings: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to compute rankings"})
	}
	return c.JSON(rows)
}
