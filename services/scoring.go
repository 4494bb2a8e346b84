package services

import (
	"math"

	"contest-scoring-system/models"
)

// GroupValue is the pot shared by everyone holding the same (zone, kind)
// accomplishment: each of the n holders earns GroupValue / n.
const GroupValue = 1000.0

// ScoreBreakdown is a participant's computed standing. ScoreTotal stays
// unrounded here; RoundScore is applied only when a row is presented.
type ScoreBreakdown struct {
	ZonesValidated int
	TopsValidated  int
	ScoreTotal     float64
}

type scoreGroup struct {
	zoneID string
	kind   models.ValidationKind
}

// ComputeScores derives every participant's breakdown from a ledger snapshot.
// Pure function: group sizes are recomputed from the given rows on every call,
// never cached, since each new validation dilutes its group's credit.
//
// A participant with a top but no zone row on the same zone still gets that
// zone counted as validated; the two kinds keep independent credit pools.
// Intermediate rows never score and never count.
func ComputeScores(entries []models.Validation) map[string]ScoreBreakdown {
	groupSizes := make(map[scoreGroup]int)
	for _, e := range entries {
		if !e.Kind.Scores() {
			continue
		}
		groupSizes[scoreGroup{e.ZoneID, e.Kind}]++
	}

	totals := make(map[string]float64)
	zonesDone := make(map[string]map[string]bool) // participant -> zone set
	topsDone := make(map[string]map[string]bool)  // participant -> bloc set

	for _, e := range entries {
		if !e.Kind.Scores() {
			continue
		}
		n := groupSizes[scoreGroup{e.ZoneID, e.Kind}]
		totals[e.ParticipantID] += GroupValue / float64(n)

		if zonesDone[e.ParticipantID] == nil {
			zonesDone[e.ParticipantID] = make(map[string]bool)
		}
		zonesDone[e.ParticipantID][e.ZoneID] = true

		if e.Kind == models.KindTop {
			if topsDone[e.ParticipantID] == nil {
				topsDone[e.ParticipantID] = make(map[string]bool)
			}
			topsDone[e.ParticipantID][e.BlocID] = true
		}
	}

	scores := make(map[string]ScoreBreakdown, len(totals))
	for pid, total := range totals {
		scores[pid] = ScoreBreakdown{
			ZonesValidated: len(zonesDone[pid]),
			TopsValidated:  len(topsDone[pid]),
			ScoreTotal:     total,
		}
	}
	return scores
}

// RoundScore rounds to 2 decimals for display. Rounding anywhere earlier
// would distort totals built from many small shared credits.
func RoundScore(x float64) float64 {
	return math.Round(x*100) / 100
}
