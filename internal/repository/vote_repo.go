package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"teambalancer/internal/model"
)

// VoteRepo handles MongoDB operations for pairwise votes
type VoteRepo interface {
	Upsert(ctx context.Context, vote *model.Vote) error
	ListByGroup(ctx context.Context, groupID string) ([]model.Vote, error)
	Delete(ctx context.Context, groupID, fromPlayerID, toPlayerID string) (bool, error)
	DeleteByGroup(ctx context.Context, groupID string) (int64, error)
}

type voteRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewVoteRepo creates a new vote repository
func NewVoteRepo(db *mongo.Database) VoteRepo {
	return &voteRepo{
		collection: db.Collection(VotesCollection),
		now:        systemNow,
	}
}

// Upsert stores the vote, overwriting any earlier vote of the same pair
func (r *voteRepo) Upsert(ctx context.Context, vote *model.Vote) error {
	now := r.now()
	vote.ID = model.VoteID(vote.FromPlayerID, vote.ToPlayerID)
	vote.UpdatedAt = now

	filter := bson.M{
		"groupId":      vote.GroupID,
		"fromPlayerId": vote.FromPlayerID,
		"toPlayerId":   vote.ToPlayerID,
	}
	update := bson.M{
		"$set": bson.M{
			"id":        vote.ID,
			"points":    vote.Points,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *voteRepo) ListByGroup(ctx context.Context, groupID string) ([]model.Vote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"groupId": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	votes := []model.Vote{}
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *voteRepo) Delete(ctx context.Context, groupID, fromPlayerID, toPlayerID string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"groupId":      groupID,
		"fromPlayerId": fromPlayerID,
		"toPlayerId":   toPlayerID,
	})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *voteRepo) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
