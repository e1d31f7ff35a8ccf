package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"teambalancer/internal/cache"
	"teambalancer/internal/common/clock"
	"teambalancer/internal/logger"
	"teambalancer/internal/model"
)

type mockGroupRepo struct {
	mock.Mock
}

func (m *mockGroupRepo) Create(ctx context.Context, group *model.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	args := m.Called(ctx, id)
	group, _ := args.Get(0).(*model.Group)
	return group, args.Error(1)
}

func (m *mockGroupRepo) GetByName(ctx context.Context, name string) (*model.Group, error) {
	args := m.Called(ctx, name)
	group, _ := args.Get(0).(*model.Group)
	return group, args.Error(1)
}

func (m *mockGroupRepo) ListActive(ctx context.Context) ([]*model.Group, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]*model.Group)
	return groups, args.Error(1)
}

func (m *mockGroupRepo) ListAll(ctx context.Context) ([]*model.Group, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]*model.Group)
	return groups, args.Error(1)
}

func (m *mockGroupRepo) Update(ctx context.Context, group *model.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockGroupRepo) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	args := m.Called(ctx, id, active)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepo) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockVoteRepo struct {
	mock.Mock
}

func (m *mockVoteRepo) Upsert(ctx context.Context, vote *model.Vote) error {
	return m.Called(ctx, vote).Error(0)
}

func (m *mockVoteRepo) ListByGroup(ctx context.Context, groupID string) ([]model.Vote, error) {
	args := m.Called(ctx, groupID)
	votes, _ := args.Get(0).([]model.Vote)
	return votes, args.Error(1)
}

func (m *mockVoteRepo) Delete(ctx context.Context, groupID, fromPlayerID, toPlayerID string) (bool, error) {
	args := m.Called(ctx, groupID, fromPlayerID, toPlayerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockVoteRepo) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

type mockSnapshotRepo struct {
	mock.Mock
}

func (m *mockSnapshotRepo) Save(ctx context.Context, snapshot *model.TeamSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *mockSnapshotRepo) Get(ctx context.Context, sessionID string) (*model.TeamSnapshot, error) {
	args := m.Called(ctx, sessionID)
	snapshot, _ := args.Get(0).(*model.TeamSnapshot)
	return snapshot, args.Error(1)
}

func (m *mockSnapshotRepo) List(ctx context.Context, groupID string, limit int64) ([]model.SnapshotMeta, error) {
	args := m.Called(ctx, groupID, limit)
	metas, _ := args.Get(0).([]model.SnapshotMeta)
	return metas, args.Error(1)
}

// seqUUID hands out id-1, id-2, ...
type seqUUID struct {
	n int
}

func (s *seqUUID) NewUUID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type testEnv struct {
	mr           *miniredis.Miniredis
	groups       *mockGroupRepo
	votes        *mockVoteRepo
	snapshots    *mockSnapshotRepo
	statsCache   cache.StatsCache
	groupCache   cache.GroupCache
	rankingCache cache.RankingCache
	sessionCache cache.SessionCache
	clock        *clock.Fixed
	ids          *seqUUID
	log          *logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &testEnv{
		mr:           mr,
		groups:       &mockGroupRepo{},
		votes:        &mockVoteRepo{},
		snapshots:    &mockSnapshotRepo{},
		statsCache:   cache.NewStatsCache(client, 2*time.Minute),
		groupCache:   cache.NewGroupCache(client, 5*time.Minute),
		rankingCache: cache.NewRankingCache(client),
		sessionCache: cache.NewSessionCache(client, 12*time.Hour),
		clock:        &clock.Fixed{At: time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)},
		ids:          &seqUUID{},
		log:          logger.Nop(),
	}
}

func (e *testEnv) assertExpectations(t *testing.T) {
	e.groups.AssertExpectations(t)
	e.votes.AssertExpectations(t)
	e.snapshots.AssertExpectations(t)
}

// fixtureGroup has four active players and one soft-deleted one
func fixtureGroup() *model.Group {
	return &model.Group{
		ID:       "g1",
		Name:     "ICINF-UBB-G20",
		Icon:     model.DefaultGroupIcon,
		Color:    model.DefaultGroupColor,
		IsActive: true,
		Players: []model.Player{
			{ID: "p1", Name: "Ana", Nickname: "Anita", IsActive: true},
			{ID: "p2", Name: "Beto", Nickname: "Beto", IsActive: true},
			{ID: "p3", Name: "Caro", Nickname: "Caro", IsActive: true},
			{ID: "p4", Name: "Dani", Nickname: "Dani", IsActive: true},
			{ID: "p5", Name: "Eli", Nickname: "Eli", IsActive: false},
		},
	}
}

func vote(from, to string, points int) model.Vote {
	return model.Vote{
		ID:           model.VoteID(from, to),
		GroupID:      "g1",
		FromPlayerID: from,
		ToPlayerID:   to,
		Points:       points,
	}
}
