package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teambalancer/internal/apperror"
	"teambalancer/internal/cache"
	"teambalancer/internal/common/uuid"
	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/repository"
)

// AdminService manages groups from the admin panel
type AdminService struct {
	groupRepo    repository.GroupRepo
	voteRepo     repository.VoteRepo
	groupCache   cache.GroupCache
	statsCache   cache.StatsCache
	rankingCache cache.RankingCache
	ids          uuid.UUID
	log          *logger.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	groupRepo repository.GroupRepo,
	voteRepo repository.VoteRepo,
	groupCache cache.GroupCache,
	statsCache cache.StatsCache,
	rankingCache cache.RankingCache,
	ids uuid.UUID,
	log *logger.Logger,
) *AdminService {
	return &AdminService{
		groupRepo:    groupRepo,
		voteRepo:     voteRepo,
		groupCache:   groupCache,
		statsCache:   statsCache,
		rankingCache: rankingCache,
		ids:          ids,
		log:          log,
	}
}

// ListGroups returns every group, inactive ones included, newest first
func (s *AdminService) ListGroups(ctx context.Context) ([]model.GroupSummary, error) {
	groups, err := s.groupRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	summaries := make([]model.GroupSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, model.GroupSummary{
			Group:             *g,
			PlayerCount:       len(g.Players),
			ActivePlayerCount: len(g.ActivePlayers()),
		})
	}
	return summaries, nil
}

// CreateGroup creates an empty active group with a unique name
func (s *AdminService) CreateGroup(ctx context.Context, req *model.CreateGroupRequest) (*model.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidationError("Group name is required", map[string]interface{}{"field": "name"})
	}

	existing, err := s.groupRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check group name: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A group with that name already exists")
	}

	group := &model.Group{
		ID:       s.ids.NewUUID(),
		Name:     name,
		Icon:     strings.TrimSpace(req.Icon),
		Color:    strings.TrimSpace(req.Color),
		Players:  []model.Player{},
		IsActive: true,
	}
	if group.Icon == "" {
		group.Icon = model.DefaultGroupIcon
	}
	if group.Color == "" {
		group.Color = model.DefaultGroupColor
	}

	err = s.groupRepo.Create(ctx, group)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.NewConflictError("A group with that name already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	s.invalidateGroups(ctx)

	s.log.WithFields(map[string]interface{}{
		"groupId": group.ID,
		"name":    group.Name,
	}).Info("group created")
	return group, nil
}

// SetGroupActive shows or hides a group from the public list
func (s *AdminService) SetGroupActive(ctx context.Context, groupID string, active bool) (*model.Group, error) {
	found, err := s.groupRepo.SetActive(ctx, groupID, active)
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	if !found {
		return nil, groupNotFound()
	}
	s.invalidateGroups(ctx)

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, groupNotFound()
	}
	return group, nil
}

// DeleteGroup removes the group together with its votes
func (s *AdminService) DeleteGroup(ctx context.Context, groupID string) error {
	deleted, err := s.groupRepo.Delete(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if !deleted {
		return groupNotFound()
	}

	votes, err := s.voteRepo.DeleteByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group votes: %w", err)
	}
	s.invalidateGroups(ctx)
	if err := s.statsCache.Invalidate(ctx, groupID); err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("stats cache invalidation failed")
	}
	if err := s.rankingCache.Clear(ctx, groupID); err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("ranking cache clear failed")
	}

	s.log.WithFields(map[string]interface{}{
		"groupId": groupID,
		"votes":   votes,
	}).Info("group deleted")
	return nil
}

// Stats counts groups and players across the whole installation
func (s *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	groups, err := s.groupRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	stats := &model.AdminStats{TotalGroups: len(groups)}
	for _, g := range groups {
		if g.IsActive {
			stats.ActiveGroups++
		}
		stats.TotalPlayers += len(g.Players)
		stats.ActivePlayers += len(g.ActivePlayers())
	}
	return stats, nil
}

func (s *AdminService) invalidateGroups(ctx context.Context) {
	if err := s.groupCache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("group cache invalidation failed")
	}
}
