package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"teambalancer/internal/model"
)

type CacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	ctx    context.Context
}

func (s *CacheTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.ctx = context.Background()
}

func (s *CacheTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func sampleStats() []model.PlayerStat {
	return []model.PlayerStat{
		{ID: "1", Name: "Ana", GroupID: "g1", TotalPoints: 16, VoteCount: 2, AveragePoints: 8, HasVoted: true, IsPresent: true},
		{ID: "2", Name: "Beto", GroupID: "g1", TotalPoints: 13, VoteCount: 2, AveragePoints: 6.5, IsPresent: true},
		{ID: "3", Name: "Caro", GroupID: "g1", IsPresent: true},
	}
}

func (s *CacheTestSuite) TestStatsCacheRoundTrip() {
	c := NewStatsCache(s.client, time.Minute)

	stats, err := c.Get(s.ctx, "g1")
	s.Require().NoError(err)
	s.Nil(stats)

	s.Require().NoError(c.Set(s.ctx, "g1", sampleStats()))
	s.True(s.mr.Exists("group:g1:stats"))

	stats, err = c.Get(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(sampleStats(), stats)

	s.Require().NoError(c.Invalidate(s.ctx, "g1"))
	stats, err = c.Get(s.ctx, "g1")
	s.Require().NoError(err)
	s.Nil(stats)
}

func (s *CacheTestSuite) TestStatsCacheEmptyListIsAHit() {
	c := NewStatsCache(s.client, time.Minute)

	s.Require().NoError(c.Set(s.ctx, "g1", []model.PlayerStat{}))
	stats, err := c.Get(s.ctx, "g1")
	s.Require().NoError(err)
	s.NotNil(stats)
	s.Empty(stats)
}

func (s *CacheTestSuite) TestStatsCacheExpires() {
	c := NewStatsCache(s.client, 2*time.Minute)

	s.Require().NoError(c.Set(s.ctx, "g1", sampleStats()))
	s.mr.FastForward(3 * time.Minute)

	stats, err := c.Get(s.ctx, "g1")
	s.Require().NoError(err)
	s.Nil(stats)
}

func (s *CacheTestSuite) TestStatsCacheCorruptPayload() {
	c := NewStatsCache(s.client, time.Minute)
	s.Require().NoError(s.mr.Set("group:g1:stats", "{not json"))

	_, err := c.Get(s.ctx, "g1")
	s.Error(err)
}

func (s *CacheTestSuite) TestGroupCache() {
	c := NewGroupCache(s.client, 5*time.Minute)

	groups, err := c.GetActive(s.ctx)
	s.Require().NoError(err)
	s.Nil(groups)

	in := []*model.Group{
		{ID: "g1", Name: "Basket", IsActive: true, Players: []model.Player{{ID: "1", Name: "Ana", IsActive: true}}},
		{ID: "g2", Name: "Futbol", IsActive: true, Players: []model.Player{}},
	}
	s.Require().NoError(c.SetActive(s.ctx, in))
	s.Equal(5*time.Minute, s.mr.TTL(activeGroupsKey))

	groups, err = c.GetActive(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal("Basket", groups[0].Name)
	s.Equal("Ana", groups[0].Players[0].Name)

	s.Require().NoError(c.Invalidate(s.ctx))
	s.False(s.mr.Exists(activeGroupsKey))
}

func (s *CacheTestSuite) TestSessionCache() {
	c := NewSessionCache(s.client, 12*time.Hour)

	missing, err := c.Get(s.ctx, "nope")
	s.Require().NoError(err)
	s.Nil(missing)

	session := &model.BalancingSession{
		ID:       "s1",
		GroupID:  "g1",
		OwnerID:  "1",
		Presence: map[string]bool{"1": true, "2": false},
		Mode:     model.TeamModeBalanced,
	}
	s.Require().NoError(c.Set(s.ctx, session))
	s.Equal(12*time.Hour, s.mr.TTL("session:s1"))

	got, err := c.Get(s.ctx, "s1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("g1", got.GroupID)
	s.Equal(map[string]bool{"1": true, "2": false}, got.Presence)

	s.Require().NoError(c.Delete(s.ctx, "s1"))
	got, err = c.Get(s.ctx, "s1")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *CacheTestSuite) TestRankingCache() {
	c := NewRankingCache(s.client)

	s.Require().NoError(c.Replace(s.ctx, "g1", sampleStats()))

	top, err := c.GetTop(s.ctx, "g1", 0)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(model.RankingEntry{PlayerID: "1", AveragePoints: 8, Rank: 1}, top[0])
	s.Equal(model.RankingEntry{PlayerID: "2", AveragePoints: 6.5, Rank: 2}, top[1])

	top, err = c.GetTop(s.ctx, "g1", 1)
	s.Require().NoError(err)
	s.Len(top, 1)

	rank, err := c.GetRank(s.ctx, "g1", "2")
	s.Require().NoError(err)
	s.Equal(int64(2), rank)

	rank, err = c.GetRank(s.ctx, "g1", "3")
	s.Require().NoError(err)
	s.Equal(int64(-1), rank)
}

func (s *CacheTestSuite) TestRankingCacheReplaceDropsOldMembers() {
	c := NewRankingCache(s.client)
	s.Require().NoError(c.Replace(s.ctx, "g1", sampleStats()))

	s.Require().NoError(c.Replace(s.ctx, "g1", []model.PlayerStat{
		{ID: "3", VoteCount: 1, AveragePoints: 9},
	}))

	top, err := c.GetTop(s.ctx, "g1", 10)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal("3", top[0].PlayerID)

	s.Require().NoError(c.Replace(s.ctx, "g1", nil))
	s.False(s.mr.Exists("group:g1:ranking"))
}

func (s *CacheTestSuite) TestRankingCacheClear() {
	c := NewRankingCache(s.client)
	s.Require().NoError(c.Replace(s.ctx, "g1", sampleStats()))
	s.Require().NoError(c.Clear(s.ctx, "g1"))

	top, err := c.GetTop(s.ctx, "g1", 0)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *CacheTestSuite) TestUnavailableRedis() {
	s.mr.Close()
	c := NewStatsCache(s.client, time.Minute)

	_, err := c.Get(s.ctx, "g1")
	s.Error(err)
}
