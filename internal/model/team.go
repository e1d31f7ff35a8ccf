package model

import "time"

const (
	WhiteTeamName = "Equipo Blanco"
	BlackTeamName = "Equipo Negro"
)

// TeamMode selects the generation strategy
type TeamMode string

const (
	TeamModeBalanced TeamMode = "balanced"
	TeamModeRandom   TeamMode = "random"
)

// Valid reports whether m is a known mode
func (m TeamMode) Valid() bool {
	return m == TeamModeBalanced || m == TeamModeRandom
}

// Team is recomputed on every generation call.
// AveragePoints is the sum of the members' average points.
type Team struct {
	Name          string       `json:"name" bson:"name"`
	Players       []PlayerStat `json:"players" bson:"players"`
	AveragePoints float64      `json:"averagePoints" bson:"averagePoints"`
}

// TeamSnapshot is the last generated pair of teams of a balancing session.
// It only exists for display continuity and is not a source of truth.
type TeamSnapshot struct {
	SessionID string    `json:"sessionId" bson:"sessionId"`
	GroupID   string    `json:"groupId" bson:"groupId"`
	Mode      TeamMode  `json:"mode" bson:"mode"`
	Teams     []Team    `json:"teams" bson:"teams"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SnapshotMeta is the listing view of a snapshot
type SnapshotMeta struct {
	SessionID string    `json:"sessionId" bson:"sessionId"`
	GroupID   string    `json:"groupId" bson:"groupId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
