package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teambalancer/internal/model"
)

// SnapshotRepo keeps the last generated teams of each balancing session
type SnapshotRepo interface {
	Save(ctx context.Context, snapshot *model.TeamSnapshot) error
	Get(ctx context.Context, sessionID string) (*model.TeamSnapshot, error)
	List(ctx context.Context, groupID string, limit int64) ([]model.SnapshotMeta, error)
}

type snapshotRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewSnapshotRepo creates a new snapshot repository
func NewSnapshotRepo(db *mongo.Database) SnapshotRepo {
	return &snapshotRepo{
		collection: db.Collection(TeamBalancesCollection),
		now:        systemNow,
	}
}

func (r *snapshotRepo) Save(ctx context.Context, snapshot *model.TeamSnapshot) error {
	now := r.now()
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = now
	}
	snapshot.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"sessionId": snapshot.SessionID}, snapshot, opts)
	return err
}

func (r *snapshotRepo) Get(ctx context.Context, sessionID string) (*model.TeamSnapshot, error) {
	var snapshot model.TeamSnapshot
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&snapshot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// List returns snapshot metadata of a group, most recently updated first
func (r *snapshotRepo) List(ctx context.Context, groupID string, limit int64) ([]model.SnapshotMeta, error) {
	opts := options.Find().
		SetProjection(bson.M{"sessionId": 1, "groupId": 1, "createdAt": 1, "updatedAt": 1}).
		SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"groupId": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	metas := []model.SnapshotMeta{}
	if err := cursor.All(ctx, &metas); err != nil {
		return nil, err
	}
	return metas, nil
}
