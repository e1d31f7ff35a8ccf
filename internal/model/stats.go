package model

// PlayerStat is derived from votes on read; it is never persisted.
type PlayerStat struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Nickname      string  `json:"nickname"`
	GroupID       string  `json:"groupId"`
	TotalPoints   int     `json:"totalPoints"`
	VoteCount     int     `json:"voteCount"`
	AveragePoints float64 `json:"averagePoints"`
	HasVoted      bool    `json:"hasVoted"`
	IsPresent     bool    `json:"isPresent"`
}

// RankingEntry is a single row of a group ranking
type RankingEntry struct {
	PlayerID      string  `json:"playerId"`
	Name          string  `json:"name,omitempty"`
	Nickname      string  `json:"nickname,omitempty"`
	AveragePoints float64 `json:"averagePoints"`
	Rank          int     `json:"rank"`
}
