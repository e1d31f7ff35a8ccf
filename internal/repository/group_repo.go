package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teambalancer/internal/model"
)

// ErrDuplicate is returned when a unique index rejects a write
var ErrDuplicate = errors.New("duplicate key")

// GroupRepo handles MongoDB operations for groups and their embedded players
type GroupRepo interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	GetByName(ctx context.Context, name string) (*model.Group, error)
	ListActive(ctx context.Context) ([]*model.Group, error)
	ListAll(ctx context.Context) ([]*model.Group, error)
	Update(ctx context.Context, group *model.Group) error
	SetActive(ctx context.Context, id string, active bool) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
}

type groupRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewGroupRepo creates a new group repository
func NewGroupRepo(db *mongo.Database) GroupRepo {
	return &groupRepo{
		collection: db.Collection(GroupsCollection),
		now:        systemNow,
	}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	now := r.now()
	group.CreatedAt = now
	group.UpdatedAt = now
	if group.Players == nil {
		group.Players = []model.Player{}
	}

	_, err := r.collection.InsertOne(ctx, group)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *groupRepo) GetByName(ctx context.Context, name string) (*model.Group, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *groupRepo) findOne(ctx context.Context, filter bson.M) (*model.Group, error) {
	var group model.Group
	err := r.collection.FindOne(ctx, filter).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) ListActive(ctx context.Context) ([]*model.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return r.find(ctx, bson.M{"isActive": true}, opts)
}

func (r *groupRepo) ListAll(ctx context.Context) ([]*model.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *groupRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Group, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	groups := []*model.Group{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepo) Update(ctx context.Context, group *model.Group) error {
	group.UpdatedAt = r.now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"id": group.ID}, group)
	return err
}

func (r *groupRepo) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	update := bson.M{"$set": bson.M{"isActive": active, "updatedAt": r.now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (r *groupRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *groupRepo) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
