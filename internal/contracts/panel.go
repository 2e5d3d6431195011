package contracts

import "time"

// Grade is the overall Quick Analysis verdict of a panel
type Grade string

const (
	GradeStrong  Grade = "Strong"
	GradeNeutral Grade = "Neutral"
	GradeWeak    Grade = "Weak"
	GradeNone    Grade = "Unrated"
)

// Rating aggregates the scored indicators of a panel
type Rating struct {
	Overall float64 `json:"overall"` // 0 ~ 100
	Grade   Grade   `json:"grade"`
	Good    int     `json:"good"`
	Medium  int     `json:"medium"`
	Bad     int     `json:"bad"`
	Scored  int     `json:"scored"`
	Skipped int     `json:"skipped"` // informational or unclassified
}

// Panel is the Quick Analysis card for one company
// ⭐ SSOT: API/CLI/스냅샷 공통 출력 구조
type Panel struct {
	Ticker      string       `json:"ticker,omitempty"`
	Sector      Sector       `json:"sector"`
	CatalogHash string       `json:"catalog_hash,omitempty"`
	Evaluations []Evaluation `json:"evaluations"`
	Rating      Rating       `json:"rating"`
	CreatedAt   time.Time    `json:"created_at"`
}
