package balance

import (
	"math"

	"teambalancer/internal/model"
)

// Aggregate reduces the raw votes of a group into one PlayerStat per
// active player, in roster order. A vote counts as received by its active
// target and as given by its active voter, whatever the other side is, so
// deactivating a player keeps the history they took part in. The result is
// never nil.
func Aggregate(players []model.Player, votes []model.Vote) []model.PlayerStat {
	active := make(map[string]struct{}, len(players))
	for _, p := range players {
		if p.IsActive {
			active[p.ID] = struct{}{}
		}
	}

	type tally struct {
		total    int
		received int
		given    int
	}
	tallies := make(map[string]*tally, len(active))
	for id := range active {
		tallies[id] = &tally{}
	}

	for _, v := range votes {
		if to, ok := tallies[v.ToPlayerID]; ok {
			to.total += v.Points
			to.received++
		}
		if from, ok := tallies[v.FromPlayerID]; ok {
			from.given++
		}
	}

	stats := make([]model.PlayerStat, 0, len(active))
	for _, p := range players {
		if !p.IsActive {
			continue
		}
		t := tallies[p.ID]
		var avg float64
		if t.received > 0 {
			avg = Round2(float64(t.total) / float64(t.received))
		}
		stats = append(stats, model.PlayerStat{
			ID:            p.ID,
			Name:          p.Name,
			Nickname:      p.Nickname,
			TotalPoints:   t.total,
			VoteCount:     t.received,
			AveragePoints: avg,
			HasVoted:      t.given > 0,
			IsPresent:     true,
		})
	}
	return stats
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
