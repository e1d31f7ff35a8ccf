package model

import "time"

// BalancingSession is transient state for one team generation round:
// who is present today and the last generated teams. It lives in Redis
// with a TTL and is never part of the vote model.
type BalancingSession struct {
	ID        string          `json:"id"`
	GroupID   string          `json:"groupId"`
	OwnerID   string          `json:"ownerId"`
	Presence  map[string]bool `json:"presence"` // playerId -> present
	Mode      TeamMode        `json:"mode,omitempty"`
	Teams     []Team          `json:"teams,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PresenceRequest toggles a player's presence
type PresenceRequest struct {
	Present bool `json:"present"`
}

// GenerateTeamsResponse is returned by team generation
type GenerateTeamsResponse struct {
	SessionID  string   `json:"sessionId"`
	Mode       TeamMode `json:"mode"`
	Teams      []Team   `json:"teams"`
	Difference float64  `json:"difference"`
}
