package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"teambalancer/internal/apperror"
	"teambalancer/internal/balance"
	"teambalancer/internal/cache"
	"teambalancer/internal/common/clock"
	"teambalancer/internal/common/uuid"
	"teambalancer/internal/logger"
	"teambalancer/internal/model"
	"teambalancer/internal/repository"
)

const defaultSnapshotLimit = 20

// TeamService runs balancing sessions: presence for the day, team
// generation and export
type TeamService struct {
	groupRepo    repository.GroupRepo
	snapshotRepo repository.SnapshotRepo
	sessionCache cache.SessionCache
	stats        *StatsService
	clock        clock.Clock
	ids          uuid.UUID
	log          *logger.Logger

	mu          sync.Mutex // guards partitioner
	partitioner *balance.Partitioner
}

// NewTeamService creates a new team service
func NewTeamService(
	groupRepo repository.GroupRepo,
	snapshotRepo repository.SnapshotRepo,
	sessionCache cache.SessionCache,
	stats *StatsService,
	partitioner *balance.Partitioner,
	clk clock.Clock,
	ids uuid.UUID,
	log *logger.Logger,
) *TeamService {
	return &TeamService{
		groupRepo:    groupRepo,
		snapshotRepo: snapshotRepo,
		sessionCache: sessionCache,
		stats:        stats,
		partitioner:  partitioner,
		clock:        clk,
		ids:          ids,
		log:          log,
	}
}

// StartSession opens a session with every active player marked present
func (s *TeamService) StartSession(ctx context.Context, groupID, ownerID string) (*model.BalancingSession, error) {
	group, err := findActiveGroup(ctx, s.groupRepo, groupID)
	if err != nil {
		return nil, err
	}

	presence := make(map[string]bool, len(group.Players))
	for _, p := range group.ActivePlayers() {
		presence[p.ID] = true
	}

	now := s.clock.Now()
	session := &model.BalancingSession{
		ID:        s.ids.NewUUID(),
		GroupID:   groupID,
		OwnerID:   ownerID,
		Presence:  presence,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"sessionId": session.ID,
		"groupId":   groupID,
		"players":   len(presence),
	}).Info("balancing session started")
	return session, nil
}

// GetSession returns a session of the caller's group
func (s *TeamService) GetSession(ctx context.Context, groupID, sessionID string) (*model.BalancingSession, error) {
	session, err := s.sessionCache.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, sessionNotFound()
	}
	if session.GroupID != groupID {
		return nil, apperror.NewAuthorizationError("Session belongs to another group")
	}
	return session, nil
}

// SetPresence marks an active player of the group as present or absent
func (s *TeamService) SetPresence(ctx context.Context, groupID, sessionID, playerID string, present bool) (*model.BalancingSession, error) {
	session, err := s.GetSession(ctx, groupID, sessionID)
	if err != nil {
		return nil, err
	}
	group, err := findActiveGroup(ctx, s.groupRepo, groupID)
	if err != nil {
		return nil, err
	}
	if !isActiveMember(group, playerID) {
		return nil, playerNotFound()
	}

	if session.Presence == nil {
		session.Presence = map[string]bool{}
	}
	session.Presence[playerID] = present
	return s.save(ctx, session)
}

// GenerateTeams recomputes fresh stats, keeps the present players and
// splits them in two. An empty mode means balanced.
func (s *TeamService) GenerateTeams(ctx context.Context, groupID, sessionID string, mode model.TeamMode) (*model.GenerateTeamsResponse, error) {
	if mode == "" {
		mode = model.TeamModeBalanced
	}
	if !mode.Valid() {
		return nil, apperror.NewValidationError("Unknown mode", map[string]interface{}{"mode": mode})
	}

	session, err := s.GetSession(ctx, groupID, sessionID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.ComputeStats(ctx, groupID)
	if err != nil {
		return nil, err
	}

	present := make([]model.PlayerStat, 0, len(stats))
	for _, st := range stats {
		// players who joined after the session started count as present
		isPresent, known := session.Presence[st.ID]
		st.IsPresent = isPresent || !known
		if st.IsPresent {
			present = append(present, st)
		}
	}

	white, black, err := s.partition(mode, present)
	if errors.Is(err, balance.ErrInsufficientPlayers) {
		return nil, apperror.NewUnprocessableError("At least 2 present players are required to generate teams", err)
	}
	if err != nil {
		return nil, err
	}

	session.Mode = mode
	session.Teams = []model.Team{white, black}
	if _, err := s.save(ctx, session); err != nil {
		return nil, err
	}

	snapshot := &model.TeamSnapshot{
		SessionID: session.ID,
		GroupID:   groupID,
		Mode:      mode,
		Teams:     session.Teams,
	}
	if err := s.snapshotRepo.Save(ctx, snapshot); err != nil {
		s.log.WithError(err).WithField("sessionId", session.ID).Warn("snapshot save failed")
	}

	diff := balance.Round2(math.Abs(white.AveragePoints - black.AveragePoints))
	s.log.WithFields(map[string]interface{}{
		"sessionId":  session.ID,
		"mode":       mode,
		"present":    len(present),
		"difference": diff,
	}).Info("teams generated")

	return &model.GenerateTeamsResponse{
		SessionID:  session.ID,
		Mode:       mode,
		Teams:      session.Teams,
		Difference: diff,
	}, nil
}

func (s *TeamService) partition(mode model.TeamMode, present []model.PlayerStat) (model.Team, model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == model.TeamModeRandom {
		return s.partitioner.PartitionRandom(present)
	}
	return s.partitioner.PartitionBalanced(present)
}

// ClearTeams forgets the generated teams, presence is kept
func (s *TeamService) ClearTeams(ctx context.Context, groupID, sessionID string) (*model.BalancingSession, error) {
	session, err := s.GetSession(ctx, groupID, sessionID)
	if err != nil {
		return nil, err
	}
	session.Mode = ""
	session.Teams = nil
	return s.save(ctx, session)
}

// ExportTeams renders the session teams as shareable text
func (s *TeamService) ExportTeams(ctx context.Context, groupID, sessionID string) (string, error) {
	session, err := s.GetSession(ctx, groupID, sessionID)
	if err != nil {
		return "", err
	}
	if len(session.Teams) != 2 {
		return "", apperror.NewNotFoundError("No teams generated yet")
	}
	return balance.FormatTeamsDated(s.clock.Now(), session.Teams[0], session.Teams[1]), nil
}

// ListSnapshots returns the latest snapshots of the group
func (s *TeamService) ListSnapshots(ctx context.Context, groupID string, limit int64) ([]model.SnapshotMeta, error) {
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}
	metas, err := s.snapshotRepo.List(ctx, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return metas, nil
}

// GetSnapshot returns the stored teams of a session, even after the
// session itself expired
func (s *TeamService) GetSnapshot(ctx context.Context, groupID, sessionID string) (*model.TeamSnapshot, error) {
	snapshot, err := s.snapshotRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, apperror.NewNotFoundError("Snapshot not found")
	}
	if snapshot.GroupID != groupID {
		return nil, apperror.NewAuthorizationError("Snapshot belongs to another group")
	}
	return snapshot, nil
}

func (s *TeamService) save(ctx context.Context, session *model.BalancingSession) (*model.BalancingSession, error) {
	session.UpdatedAt = s.clock.Now()
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, nil
}
