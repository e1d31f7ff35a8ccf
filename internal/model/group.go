package model

import "time"

const (
	DefaultGroupIcon    = "🎓"
	DefaultGroupColor   = "bg-blue-500"
	DefaultPlayerAvatar = "👨‍🎓"
)

// Group is a named roster of players sharing a voting context.
// Players are embedded and never referenced on their own.
type Group struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Icon      string    `json:"icon" bson:"icon"`
	Color     string    `json:"color" bson:"color"`
	Players   []Player  `json:"players" bson:"players"`
	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ActivePlayers returns the players that have not been soft-deleted.
func (g *Group) ActivePlayers() []Player {
	active := make([]Player, 0, len(g.Players))
	for _, p := range g.Players {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}

// FindPlayer returns the index of the player with the given id, or -1.
func (g *Group) FindPlayer(playerID string) int {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// GroupSummary is the admin view of a group
type GroupSummary struct {
	Group
	PlayerCount       int `json:"playerCount"`
	ActivePlayerCount int `json:"activePlayerCount"`
}

// CreateGroupRequest is the admin request body for a new group
type CreateGroupRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// AdminStats are global counters shown on the admin panel
type AdminStats struct {
	TotalGroups   int `json:"totalGroups"`
	ActiveGroups  int `json:"activeGroups"`
	TotalPlayers  int `json:"totalPlayers"`
	ActivePlayers int `json:"activePlayers"`
}

// UpdateGroupRequest is the admin request body for showing or hiding a group
type UpdateGroupRequest struct {
	IsActive *bool `json:"isActive"`
}
