package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teambalancer/internal/model"
)

func roster(ids ...string) []model.Player {
	players := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, model.Player{ID: id, Name: "Player " + id, Nickname: id, IsActive: true})
	}
	return players
}

func vote(from, to string, points int) model.Vote {
	return model.Vote{GroupID: "g1", FromPlayerID: from, ToPlayerID: to, Points: points}
}

func TestAggregate_ReceivedVotes(t *testing.T) {
	players := roster("A", "B", "C")
	votes := []model.Vote{vote("A", "B", 8), vote("C", "B", 6)}

	stats := Aggregate(players, votes)
	require.Len(t, stats, 3)

	byID := map[string]model.PlayerStat{}
	for _, s := range stats {
		byID[s.ID] = s
	}

	assert.Equal(t, 14, byID["B"].TotalPoints)
	assert.Equal(t, 2, byID["B"].VoteCount)
	assert.Equal(t, 7.0, byID["B"].AveragePoints)
	assert.False(t, byID["B"].HasVoted)

	for _, id := range []string{"A", "C"} {
		assert.Equal(t, 0, byID[id].TotalPoints, id)
		assert.Equal(t, 0, byID[id].VoteCount, id)
		assert.Equal(t, 0.0, byID[id].AveragePoints, id)
		assert.True(t, byID[id].HasVoted, id)
	}
}

func TestAggregate_KeepsRosterOrderAndDefaults(t *testing.T) {
	players := roster("C", "A", "B")

	stats := Aggregate(players, nil)
	require.Len(t, stats, 3)
	assert.Equal(t, "C", stats[0].ID)
	assert.Equal(t, "A", stats[1].ID)
	assert.Equal(t, "B", stats[2].ID)
	for _, s := range stats {
		assert.True(t, s.IsPresent)
		assert.False(t, s.HasVoted)
		assert.Equal(t, "Player "+s.ID, s.Name)
	}
}

func TestAggregate_RoundsAverage(t *testing.T) {
	players := roster("A", "B", "C", "D")
	votes := []model.Vote{vote("A", "D", 7), vote("B", "D", 7), vote("C", "D", 6)}

	stats := Aggregate(players, votes)
	assert.Equal(t, 20, stats[3].TotalPoints)
	assert.Equal(t, 6.67, stats[3].AveragePoints)
}

func TestAggregate_KeepsVotesOfInactivePlayers(t *testing.T) {
	players := roster("A", "B")
	players = append(players, model.Player{ID: "X", Name: "Gone", IsActive: false})
	votes := []model.Vote{
		vote("A", "B", 9),
		vote("X", "B", 1),  // voter was deactivated
		vote("A", "X", 10), // target was deactivated
		vote("Z", "A", 3),  // voter no longer on the roster
		vote("X", "Z", 7),  // neither side active
	}

	stats := Aggregate(players, votes)
	require.Len(t, stats, 2)

	assert.Equal(t, "A", stats[0].ID)
	assert.Equal(t, 3, stats[0].TotalPoints)
	assert.Equal(t, 1, stats[0].VoteCount)
	assert.True(t, stats[0].HasVoted)

	assert.Equal(t, "B", stats[1].ID)
	assert.Equal(t, 10, stats[1].TotalPoints)
	assert.Equal(t, 2, stats[1].VoteCount)
	assert.Equal(t, 5.0, stats[1].AveragePoints)
	assert.False(t, stats[1].HasVoted)
}

func TestAggregate_DeactivatedVoterStillCounts(t *testing.T) {
	players := []model.Player{
		{ID: "a", Name: "a", IsActive: false},
		{ID: "b", Name: "b", IsActive: true},
		{ID: "c", Name: "c", IsActive: true},
	}
	votes := []model.Vote{vote("a", "b", 10), vote("c", "b", 4)}

	stats := Aggregate(players, votes)
	require.Len(t, stats, 2)
	assert.Equal(t, "b", stats[0].ID)
	assert.Equal(t, 14, stats[0].TotalPoints)
	assert.Equal(t, 2, stats[0].VoteCount)
	assert.Equal(t, 7.0, stats[0].AveragePoints)
}

func TestAggregate_HasVotedWhenOnlyTargetIsInactive(t *testing.T) {
	players := roster("A", "B")
	players = append(players, model.Player{ID: "X", Name: "Gone", IsActive: false})

	stats := Aggregate(players, []model.Vote{vote("A", "X", 6)})
	require.Len(t, stats, 2)
	assert.True(t, stats[0].HasVoted)
	assert.Equal(t, 0, stats[0].VoteCount)
	assert.False(t, stats[1].HasVoted)
}

func TestAggregate_EmptyRoster(t *testing.T) {
	stats := Aggregate(nil, []model.Vote{vote("A", "B", 5)})
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestAggregate_Deterministic(t *testing.T) {
	players := roster("A", "B", "C", "D")
	votes := []model.Vote{
		vote("A", "B", 3), vote("B", "A", 10), vote("C", "A", 4),
		vote("D", "C", 8), vote("A", "C", 2), vote("B", "D", 5),
	}

	first := Aggregate(players, votes)
	second := Aggregate(players, votes)
	assert.Equal(t, first, second)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{7, 7},
		{20.0 / 3.0, 6.67},
		{10.0 / 3.0, 3.33},
		{1.004, 1},
		{8.125, 8.13},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}
