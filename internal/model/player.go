package model

// Player is a member of a group. IsActive=false soft-deletes the player
// without losing their vote history.
type Player struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Nickname string `json:"nickname" bson:"nickname"`
	Avatar   string `json:"avatar" bson:"avatar"`
	IsActive bool   `json:"isActive" bson:"isActive"`
}

// AddPlayerRequest is the request body for self-registration
type AddPlayerRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// UpdatePlayerRequest carries optional player changes
type UpdatePlayerRequest struct {
	Name     *string `json:"name,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
