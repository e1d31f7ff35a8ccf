package service

import (
	"context"
	"fmt"
	"strings"

	"teambalancer/internal/apperror"
	"teambalancer/internal/cache"
	"teambalancer/internal/common/uuid"
	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/repository"
)

// GroupService handles the public group list and group rosters
type GroupService struct {
	groupRepo  repository.GroupRepo
	groupCache cache.GroupCache
	statsCache cache.StatsCache
	ids        uuid.UUID
	log        *logger.Logger
}

// NewGroupService creates a new group service
func NewGroupService(
	groupRepo repository.GroupRepo,
	groupCache cache.GroupCache,
	statsCache cache.StatsCache,
	ids uuid.UUID,
	log *logger.Logger,
) *GroupService {
	return &GroupService{
		groupRepo:  groupRepo,
		groupCache: groupCache,
		statsCache: statsCache,
		ids:        ids,
		log:        log,
	}
}

// ListActiveGroups returns active groups sorted by name
func (s *GroupService) ListActiveGroups(ctx context.Context) ([]*model.Group, error) {
	cached, err := s.groupCache.GetActive(ctx)
	if err != nil {
		s.log.WithError(err).Warn("group cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	groups, err := s.groupRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if err := s.groupCache.SetActive(ctx, groups); err != nil {
		s.log.WithError(err).Warn("group cache write failed")
	}
	return groups, nil
}

// GetActivePlayers returns the active players of an active group
func (s *GroupService) GetActivePlayers(ctx context.Context, groupID string) ([]model.Player, error) {
	group, err := s.activeGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group.ActivePlayers(), nil
}

// AddPlayer registers a new player in the group
func (s *GroupService) AddPlayer(ctx context.Context, groupID string, req *model.AddPlayerRequest) (*model.Player, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidationError("Name is required", map[string]interface{}{"field": "name"})
	}

	group, err := s.activeGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	player := model.Player{
		ID:       strings.TrimSpace(req.ID),
		Name:     name,
		Nickname: strings.TrimSpace(req.Nickname),
		Avatar:   req.Avatar,
		IsActive: true,
	}
	if player.ID == "" {
		player.ID = s.ids.NewUUID()
	}
	if player.Nickname == "" {
		player.Nickname = name
	}
	if player.Avatar == "" {
		player.Avatar = model.DefaultPlayerAvatar
	}
	if group.FindPlayer(player.ID) != -1 {
		return nil, apperror.NewConflictError("Player already exists in group")
	}

	group.Players = append(group.Players, player)
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	s.invalidate(ctx, groupID)

	s.log.WithFields(map[string]interface{}{
		"groupId":  groupID,
		"playerId": player.ID,
	}).Info("player added")
	return &player, nil
}

// UpdatePlayer applies the non-nil fields of req
func (s *GroupService) UpdatePlayer(ctx context.Context, groupID, playerID string, req *model.UpdatePlayerRequest) (*model.Player, error) {
	group, err := s.activeGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	idx := group.FindPlayer(playerID)
	if idx == -1 {
		return nil, playerNotFound()
	}

	player := &group.Players[idx]
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.NewValidationError("Name is required", map[string]interface{}{"field": "name"})
		}
		player.Name = name
	}
	if req.Nickname != nil {
		player.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if player.Nickname == "" {
		player.Nickname = player.Name
	}
	if req.Avatar != nil && *req.Avatar != "" {
		player.Avatar = *req.Avatar
	}
	if req.IsActive != nil {
		player.IsActive = *req.IsActive
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	s.invalidate(ctx, groupID)

	updated := *player
	return &updated, nil
}

// DeactivatePlayer soft-deletes a player so their votes stay on record.
// A player cannot remove themselves.
func (s *GroupService) DeactivatePlayer(ctx context.Context, groupID, actorID, playerID string) error {
	if actorID == playerID {
		return apperror.NewValidationError("You cannot remove yourself from the group", nil)
	}

	group, err := s.activeGroup(ctx, groupID)
	if err != nil {
		return err
	}
	idx := group.FindPlayer(playerID)
	if idx == -1 || !group.Players[idx].IsActive {
		return playerNotFound()
	}

	group.Players[idx].IsActive = false
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return fmt.Errorf("failed to remove player: %w", err)
	}
	s.invalidate(ctx, groupID)

	s.log.WithFields(map[string]interface{}{
		"groupId":  groupID,
		"playerId": playerID,
		"by":       actorID,
	}).Info("player deactivated")
	return nil
}

func (s *GroupService) activeGroup(ctx context.Context, groupID string) (*model.Group, error) {
	return findActiveGroup(ctx, s.groupRepo, groupID)
}

func findActiveGroup(ctx context.Context, groupRepo repository.GroupRepo, groupID string) (*model.Group, error) {
	group, err := groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil || !group.IsActive {
		return nil, groupNotFound()
	}
	return group, nil
}

// invalidate drops every cached view derived from the roster
func (s *GroupService) invalidate(ctx context.Context, groupID string) {
	if err := s.statsCache.Invalidate(ctx, groupID); err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("stats cache invalidation failed")
	}
	if err := s.groupCache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("group cache invalidation failed")
	}
}

func isActiveMember(group *model.Group, playerID string) bool {
	idx := group.FindPlayer(playerID)
	return idx != -1 && group.Players[idx].IsActive
}
