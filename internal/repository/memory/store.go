// Package memory holds in-process implementations of the repositories.
// They back local runs without MongoDB and the HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"teambalancer/internal/model"
	"teambalancer/internal/repository"
)

func now() time.Time {
	return time.Now().UTC()
}

func copyGroup(g model.Group) *model.Group {
	g.Players = append([]model.Player{}, g.Players...)
	return &g
}

// GroupStore implements repository.GroupRepo
type GroupStore struct {
	mu     sync.RWMutex
	groups map[string]model.Group
}

func NewGroupStore() *GroupStore {
	return &GroupStore{groups: make(map[string]model.Group)}
}

var _ repository.GroupRepo = (*GroupStore)(nil)

func (s *GroupStore) Create(_ context.Context, group *model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[group.ID]; exists {
		return repository.ErrDuplicate
	}
	t := now()
	group.CreatedAt = t
	group.UpdatedAt = t
	if group.Players == nil {
		group.Players = []model.Player{}
	}
	s.groups[group.ID] = *copyGroup(*group)
	return nil
}

func (s *GroupStore) GetByID(_ context.Context, id string) (*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, nil
	}
	return copyGroup(g), nil
}

func (s *GroupStore) GetByName(_ context.Context, name string) (*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.Name == name {
			return copyGroup(g), nil
		}
	}
	return nil, nil
}

func (s *GroupStore) ListActive(_ context.Context) ([]*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := []*model.Group{}
	for _, g := range s.groups {
		if g.IsActive {
			groups = append(groups, copyGroup(g))
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

func (s *GroupStore) ListAll(_ context.Context) ([]*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*model.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, copyGroup(g))
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].CreatedAt.After(groups[j].CreatedAt) })
	return groups, nil
}

func (s *GroupStore) Update(_ context.Context, group *model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[group.ID]; !ok {
		return nil
	}
	group.UpdatedAt = now()
	s.groups[group.ID] = *copyGroup(*group)
	return nil
}

func (s *GroupStore) SetActive(_ context.Context, id string, active bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[id]
	if !ok {
		return false, nil
	}
	g.IsActive = active
	g.UpdatedAt = now()
	s.groups[id] = g
	return true, nil
}

func (s *GroupStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return false, nil
	}
	delete(s.groups, id)
	return true, nil
}

func (s *GroupStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups = make(map[string]model.Group)
	return nil
}

// VoteStore implements repository.VoteRepo
type VoteStore struct {
	mu    sync.RWMutex
	votes map[string]model.Vote // groupId/voteId
}

func NewVoteStore() *VoteStore {
	return &VoteStore{votes: make(map[string]model.Vote)}
}

var _ repository.VoteRepo = (*VoteStore)(nil)

func voteKey(groupID, fromPlayerID, toPlayerID string) string {
	return groupID + "/" + model.VoteID(fromPlayerID, toPlayerID)
}

func (s *VoteStore) Upsert(_ context.Context, vote *model.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := now()
	key := voteKey(vote.GroupID, vote.FromPlayerID, vote.ToPlayerID)
	vote.ID = model.VoteID(vote.FromPlayerID, vote.ToPlayerID)
	vote.UpdatedAt = t
	if existing, ok := s.votes[key]; ok {
		vote.CreatedAt = existing.CreatedAt
	} else {
		vote.CreatedAt = t
	}
	s.votes[key] = *vote
	return nil
}

func (s *VoteStore) ListByGroup(_ context.Context, groupID string) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	votes := []model.Vote{}
	for _, v := range s.votes {
		if v.GroupID == groupID {
			votes = append(votes, v)
		}
	}
	sort.Slice(votes, func(i, j int) bool { return votes[i].UpdatedAt.After(votes[j].UpdatedAt) })
	return votes, nil
}

func (s *VoteStore) Delete(_ context.Context, groupID, fromPlayerID, toPlayerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voteKey(groupID, fromPlayerID, toPlayerID)
	if _, ok := s.votes[key]; !ok {
		return false, nil
	}
	delete(s.votes, key)
	return true, nil
}

func (s *VoteStore) DeleteByGroup(_ context.Context, groupID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for key, v := range s.votes {
		if v.GroupID == groupID {
			delete(s.votes, key)
			n++
		}
	}
	return n, nil
}

// SnapshotStore implements repository.SnapshotRepo
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]model.TeamSnapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string]model.TeamSnapshot)}
}

var _ repository.SnapshotRepo = (*SnapshotStore)(nil)

func (s *SnapshotStore) Save(_ context.Context, snapshot *model.TeamSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := now()
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = t
	}
	snapshot.UpdatedAt = t
	s.snapshots[snapshot.SessionID] = *snapshot
	return nil
}

func (s *SnapshotStore) Get(_ context.Context, sessionID string) (*model.TeamSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[sessionID]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

func (s *SnapshotStore) List(_ context.Context, groupID string, limit int64) ([]model.SnapshotMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metas := []model.SnapshotMeta{}
	for _, snap := range s.snapshots {
		if snap.GroupID != groupID {
			continue
		}
		metas = append(metas, model.SnapshotMeta{
			SessionID: snap.SessionID,
			GroupID:   snap.GroupID,
			CreatedAt: snap.CreatedAt,
			UpdatedAt: snap.UpdatedAt,
		})
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].UpdatedAt.After(metas[j].UpdatedAt) })
	if limit > 0 && int64(len(metas)) > limit {
		metas = metas[:limit]
	}
	return metas, nil
}
