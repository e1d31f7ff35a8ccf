package service

import (
	"context"
	"fmt"
	"sort"

	"teambalancer/internal/balance"
	"teambalancer/internal/cache"
	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/repository"
)

// StatsService derives player stats from the raw votes of a group
type StatsService struct {
	groupRepo    repository.GroupRepo
	voteRepo     repository.VoteRepo
	statsCache   cache.StatsCache
	rankingCache cache.RankingCache
	log          *logger.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	groupRepo repository.GroupRepo,
	voteRepo repository.VoteRepo,
	statsCache cache.StatsCache,
	rankingCache cache.RankingCache,
	log *logger.Logger,
) *StatsService {
	return &StatsService{
		groupRepo:    groupRepo,
		voteRepo:     voteRepo,
		statsCache:   statsCache,
		rankingCache: rankingCache,
		log:          log,
	}
}

// GroupStats returns the stats of every active player, served from cache
// when possible
func (s *StatsService) GroupStats(ctx context.Context, groupID string) ([]model.PlayerStat, error) {
	cached, err := s.statsCache.Get(ctx, groupID)
	if err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("stats cache read failed")
	}
	if cached != nil {
		return cached, nil
	}
	return s.ComputeStats(ctx, groupID)
}

// ComputeStats always aggregates from storage and refreshes the caches
func (s *StatsService) ComputeStats(ctx context.Context, groupID string) ([]model.PlayerStat, error) {
	group, err := findActiveGroup(ctx, s.groupRepo, groupID)
	if err != nil {
		return nil, err
	}
	votes, err := s.voteRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	stats := balance.Aggregate(group.Players, votes)
	for i := range stats {
		stats[i].GroupID = groupID
	}

	if err := s.statsCache.Set(ctx, groupID, stats); err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("stats cache write failed")
	}
	if err := s.rankingCache.Replace(ctx, groupID, stats); err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("ranking refresh failed")
	}
	return stats, nil
}

// Ranking returns voted players by average points, best first. top <= 0
// returns everyone.
func (s *StatsService) Ranking(ctx context.Context, groupID string, top int) ([]model.RankingEntry, error) {
	stats, err := s.GroupStats(ctx, groupID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.PlayerStat, len(stats))
	for _, st := range stats {
		byID[st.ID] = st
	}

	entries, err := s.rankingCache.GetTop(ctx, groupID, top)
	if err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("ranking cache read failed")
		return rankStats(stats, top), nil
	}
	if len(entries) == 0 && hasScored(stats) {
		// ranking key was lost while the stats were still cached
		return rankStats(stats, top), nil
	}

	ranked := make([]model.RankingEntry, 0, len(entries))
	for _, e := range entries {
		st, ok := byID[e.PlayerID]
		if !ok {
			continue
		}
		e.Name = st.Name
		e.Nickname = st.Nickname
		ranked = append(ranked, e)
	}
	return ranked, nil
}

// PlayerRank returns the ranking entry of one active player. Rank stays 0
// while the player has received no votes.
func (s *StatsService) PlayerRank(ctx context.Context, groupID, playerID string) (*model.RankingEntry, error) {
	stats, err := s.GroupStats(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var stat *model.PlayerStat
	for i := range stats {
		if stats[i].ID == playerID {
			stat = &stats[i]
			break
		}
	}
	if stat == nil {
		return nil, playerNotFound()
	}

	entry := &model.RankingEntry{
		PlayerID:      stat.ID,
		Name:          stat.Name,
		Nickname:      stat.Nickname,
		AveragePoints: stat.AveragePoints,
	}
	if stat.VoteCount == 0 {
		return entry, nil
	}

	rank, err := s.rankingCache.GetRank(ctx, groupID, playerID)
	if err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("ranking cache read failed")
	}
	if err != nil || rank < 1 {
		for _, e := range rankStats(stats, 0) {
			if e.PlayerID == playerID {
				entry.Rank = e.Rank
			}
		}
		return entry, nil
	}
	entry.Rank = int(rank)
	return entry, nil
}

func rankStats(stats []model.PlayerStat, top int) []model.RankingEntry {
	scored := make([]model.PlayerStat, 0, len(stats))
	for _, st := range stats {
		if st.VoteCount > 0 {
			scored = append(scored, st)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AveragePoints > scored[j].AveragePoints
	})
	if top > 0 && len(scored) > top {
		scored = scored[:top]
	}

	entries := make([]model.RankingEntry, len(scored))
	for i, st := range scored {
		entries[i] = model.RankingEntry{
			PlayerID:      st.ID,
			Name:          st.Name,
			Nickname:      st.Nickname,
			AveragePoints: st.AveragePoints,
			Rank:          i + 1,
		}
	}
	return entries
}

func hasScored(stats []model.PlayerStat) bool {
	for _, st := range stats {
		if st.VoteCount > 0 {
			return true
		}
	}
	return false
}
