package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teambalancer/internal/apperror"
	"teambalancer/internal/model"
)

func newStatsService(env *testEnv) *StatsService {
	return NewStatsService(env.groups, env.votes, env.statsCache, env.rankingCache, env.log)
}

func fixtureVotes() []model.Vote {
	return []model.Vote{
		vote("p1", "p2", 8),
		vote("p3", "p2", 6),
		vote("p2", "p1", 9),
		vote("p2", "p3", 5),
		vote("p5", "p3", 10), // from a soft-deleted player
	}
}

func TestStatsService_GroupStats(t *testing.T) {
	env := newTestEnv(t)
	env.groups.On("GetByID", mock.Anything, "g1").Return(fixtureGroup(), nil).Once()
	env.votes.On("ListByGroup", mock.Anything, "g1").Return(fixtureVotes(), nil).Once()
	svc := newStatsService(env)

	stats, err := svc.GroupStats(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, stats, 4)

	assert.Equal(t, model.PlayerStat{
		ID: "p1", Name: "Ana", Nickname: "Anita", GroupID: "g1",
		TotalPoints: 9, VoteCount: 1, AveragePoints: 9, HasVoted: true, IsPresent: true,
	}, stats[0])
	assert.Equal(t, 7.0, stats[1].AveragePoints)
	assert.Equal(t, 2, stats[2].VoteCount, "vote from soft-deleted player still counts")
	assert.Equal(t, 7.5, stats[2].AveragePoints)
	assert.Equal(t, 0, stats[3].VoteCount)
	assert.False(t, stats[3].HasVoted)

	cached, err := svc.GroupStats(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, stats, cached)
	env.assertExpectations(t)
}

func TestStatsService_ComputeStatsUnknownGroup(t *testing.T) {
	env := newTestEnv(t)
	env.groups.On("GetByID", mock.Anything, "nope").Return(nil, nil)

	_, err := newStatsService(env).ComputeStats(context.Background(), "nope")
	assert.True(t, apperror.IsType(err, apperror.ErrorTypeNotFound))
}

func TestStatsService_Ranking(t *testing.T) {
	env := newTestEnv(t)
	env.groups.On("GetByID", mock.Anything, "g1").Return(fixtureGroup(), nil)
	env.votes.On("ListByGroup", mock.Anything, "g1").Return(fixtureVotes(), nil)
	svc := newStatsService(env)

	ranking, err := svc.Ranking(context.Background(), "g1", 0)
	require.NoError(t, err)
	require.Len(t, ranking, 3, "unvoted players are not ranked")
	assert.Equal(t, model.RankingEntry{PlayerID: "p1", Name: "Ana", Nickname: "Anita", AveragePoints: 9, Rank: 1}, ranking[0])
	assert.Equal(t, "p3", ranking[1].PlayerID)
	assert.Equal(t, "p2", ranking[2].PlayerID)

	top, err := svc.Ranking(context.Background(), "g1", 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestStatsService_RankingRebuildsFromStats(t *testing.T) {
	env := newTestEnv(t)
	env.groups.On("GetByID", mock.Anything, "g1").Return(fixtureGroup(), nil)
	env.votes.On("ListByGroup", mock.Anything, "g1").Return(fixtureVotes(), nil)
	svc := newStatsService(env)

	_, err := svc.GroupStats(context.Background(), "g1")
	require.NoError(t, err)
	env.mr.Del("group:g1:ranking")

	ranking, err := svc.Ranking(context.Background(), "g1", 1)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, "p1", ranking[0].PlayerID)
	assert.Equal(t, 1, ranking[0].Rank)
}

func TestStatsService_PlayerRank(t *testing.T) {
	env := newTestEnv(t)
	env.groups.On("GetByID", mock.Anything, "g1").Return(fixtureGroup(), nil).Once()
	env.votes.On("ListByGroup", mock.Anything, "g1").Return(fixtureVotes(), nil).Once()
	svc := newStatsService(env)
	ctx := context.Background()

	tests := []struct {
		playerID string
		rank     int
		avg      float64
	}{
		{"p1", 1, 9},
		{"p3", 2, 7.5},
		{"p2", 3, 7},
		{"p4", 0, 0},
	}
	for _, tt := range tests {
		entry, err := svc.PlayerRank(ctx, "g1", tt.playerID)
		require.NoError(t, err, tt.playerID)
		assert.Equal(t, tt.rank, entry.Rank, tt.playerID)
		assert.Equal(t, tt.avg, entry.AveragePoints, tt.playerID)
	}

	_, err := svc.PlayerRank(ctx, "g1", "p5")
	assert.True(t, apperror.IsType(err, apperror.ErrorTypeNotFound))

	// stats stay cached while the ranking key is gone
	env.mr.Del("group:g1:ranking")
	entry, err := svc.PlayerRank(ctx, "g1", "p3")
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Rank)
	assert.Equal(t, "Caro", entry.Name)
	env.assertExpectations(t)
}
