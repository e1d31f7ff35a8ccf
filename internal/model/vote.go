package model

import "time"

const (
	MinVotePoints = 1
	MaxVotePoints = 10
)

// Vote is a directed rating from one player to another within a group.
// There is at most one vote per (GroupID, FromPlayerID, ToPlayerID).
type Vote struct {
	ID           string    `json:"id" bson:"id"`
	GroupID      string    `json:"groupId" bson:"groupId"`
	FromPlayerID string    `json:"fromPlayerId" bson:"fromPlayerId"`
	ToPlayerID   string    `json:"toPlayerId" bson:"toPlayerId"`
	Points       int       `json:"points" bson:"points"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// VoteID is the stable identifier of a vote within its group
func VoteID(fromPlayerID, toPlayerID string) string {
	return fromPlayerID + "_" + toPlayerID
}

// SubmitVoteRequest is the request body for a single vote
type SubmitVoteRequest struct {
	ToPlayerID string `json:"toPlayerId"`
	Points     int    `json:"points"`
}

// BatchVoteRequest is the request body for saving several votes at once
type BatchVoteRequest struct {
	Votes []SubmitVoteRequest `json:"votes"`
}

// BatchVoteResult reports which votes of a batch failed
type BatchVoteResult struct {
	Saved  int               `json:"saved"`
	Errors map[string]string `json:"errors,omitempty"` // toPlayerId -> reason
}

// ResetScoresResponse is returned after wiping a group's votes
type ResetScoresResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}
