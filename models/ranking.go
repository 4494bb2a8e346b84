package models

// RankingRow is one leaderboard line. Rank is the 1-based position inside the
// filtered sequence (ties still get distinct consecutive ranks).
type RankingRow struct {
	Rank           int     `json:"rang"`
	ParticipantID  string  `json:"id"`
	FirstName      string  `json:"prenom"`
	LastName       string  `json:"nom"`
	Category       string  `json:"categorie"`
	Sex            string  `json:"sexe"`
	ZonesValidated int     `json:"zones_valides"`
	TopsValidated  int     `json:"tops_valides"`
	ScoreTotal     float64 `json:"score_total"`
}
