package service

import (
	"context"
	"fmt"

	"teambalancer/internal/apperror"
	"teambalancer/internal/cache"
	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/repository"
)

// VoteService validates and stores pairwise votes
type VoteService struct {
	groupRepo    repository.GroupRepo
	voteRepo     repository.VoteRepo
	statsCache   cache.StatsCache
	rankingCache cache.RankingCache
	log          *logger.Logger
}

// NewVoteService creates a new vote service
func NewVoteService(
	groupRepo repository.GroupRepo,
	voteRepo repository.VoteRepo,
	statsCache cache.StatsCache,
	rankingCache cache.RankingCache,
	log *logger.Logger,
) *VoteService {
	return &VoteService{
		groupRepo:    groupRepo,
		voteRepo:     voteRepo,
		statsCache:   statsCache,
		rankingCache: rankingCache,
		log:          log,
	}
}

func invalidVote(message string) *apperror.AppError {
	appErr := apperror.NewValidationError(message, nil)
	appErr.Internal = ErrInvalidVote
	return appErr
}

func validateVote(fromPlayerID, toPlayerID string, points int) error {
	if toPlayerID == "" {
		return invalidVote("toPlayerId is required")
	}
	if fromPlayerID == toPlayerID {
		return invalidVote("Cannot vote for yourself")
	}
	if points < model.MinVotePoints || points > model.MaxVotePoints {
		return invalidVote(fmt.Sprintf("Points must be between %d and %d", model.MinVotePoints, model.MaxVotePoints))
	}
	return nil
}

// SubmitVote stores or overwrites the vote of fromPlayerID for req.ToPlayerID
func (s *VoteService) SubmitVote(ctx context.Context, groupID, fromPlayerID string, req *model.SubmitVoteRequest) (*model.Vote, error) {
	if err := validateVote(fromPlayerID, req.ToPlayerID, req.Points); err != nil {
		return nil, err
	}

	group, err := findActiveGroup(ctx, s.groupRepo, groupID)
	if err != nil {
		return nil, err
	}
	if !isActiveMember(group, fromPlayerID) || !isActiveMember(group, req.ToPlayerID) {
		return nil, apperror.NewNotFoundError("One or both players not found in group")
	}

	vote := &model.Vote{
		GroupID:      groupID,
		FromPlayerID: fromPlayerID,
		ToPlayerID:   req.ToPlayerID,
		Points:       req.Points,
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}
	s.invalidateStats(ctx, groupID)
	return vote, nil
}

// SubmitVotes saves each vote of the batch on its own. Votes that fail are
// reported in the result and do not stop the rest.
func (s *VoteService) SubmitVotes(ctx context.Context, groupID, fromPlayerID string, req *model.BatchVoteRequest) (*model.BatchVoteResult, error) {
	if len(req.Votes) == 0 {
		return nil, invalidVote("No votes to save")
	}

	group, err := findActiveGroup(ctx, s.groupRepo, groupID)
	if err != nil {
		return nil, err
	}
	if !isActiveMember(group, fromPlayerID) {
		return nil, playerNotFound()
	}

	result := &model.BatchVoteResult{Errors: map[string]string{}}
	for _, v := range req.Votes {
		if err := validateVote(fromPlayerID, v.ToPlayerID, v.Points); err != nil {
			result.Errors[v.ToPlayerID] = apperror.From(err).Message
			continue
		}
		if !isActiveMember(group, v.ToPlayerID) {
			result.Errors[v.ToPlayerID] = "Player not found"
			continue
		}

		vote := &model.Vote{
			GroupID:      groupID,
			FromPlayerID: fromPlayerID,
			ToPlayerID:   v.ToPlayerID,
			Points:       v.Points,
		}
		if err := s.voteRepo.Upsert(ctx, vote); err != nil {
			s.log.WithError(err).WithField("voteId", model.VoteID(fromPlayerID, v.ToPlayerID)).Error("failed to save vote")
			result.Errors[v.ToPlayerID] = "Error saving vote"
			continue
		}
		result.Saved++
	}

	if result.Saved > 0 {
		s.invalidateStats(ctx, groupID)
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}

// RetractVote removes a single vote. Retracting a missing vote is a no-op.
func (s *VoteService) RetractVote(ctx context.Context, groupID, fromPlayerID, toPlayerID string) error {
	deleted, err := s.voteRepo.Delete(ctx, groupID, fromPlayerID, toPlayerID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	if deleted {
		s.invalidateStats(ctx, groupID)
	}
	return nil
}

// ListVotes returns the votes of a group, most recent first
func (s *VoteService) ListVotes(ctx context.Context, groupID string) ([]model.Vote, error) {
	if _, err := findActiveGroup(ctx, s.groupRepo, groupID); err != nil {
		return nil, err
	}
	votes, err := s.voteRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

// ResetScores deletes every vote of the group
func (s *VoteService) ResetScores(ctx context.Context, groupID string) (*model.ResetScoresResponse, error) {
	if _, err := findActiveGroup(ctx, s.groupRepo, groupID); err != nil {
		return nil, err
	}

	deleted, err := s.voteRepo.DeleteByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset scores: %w", err)
	}
	s.invalidateStats(ctx, groupID)
	if err := s.rankingCache.Clear(ctx, groupID); err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("ranking cache clear failed")
	}

	s.log.WithFields(map[string]interface{}{
		"groupId": groupID,
		"deleted": deleted,
	}).Info("scores reset")
	return &model.ResetScoresResponse{
		Message:      "Scores reset successfully",
		DeletedCount: deleted,
	}, nil
}

func (s *VoteService) invalidateStats(ctx context.Context, groupID string) {
	if err := s.statsCache.Invalidate(ctx, groupID); err != nil {
		s.log.WithError(err).WithField("groupId", groupID).Warn("stats cache invalidation failed")
	}
}
