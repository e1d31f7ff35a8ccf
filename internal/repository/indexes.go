package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	GroupsCollection       = "groups"
	VotesCollection        = "votes"
	TeamBalancesCollection = "team_balances"
)

func systemNow() time.Time {
	return time.Now().UTC()
}

// EnsureIndexes creates the indexes the repositories rely on.
// The unique vote index is what makes Upsert last-write-wins per pair.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		GroupsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "isActive", Value: 1}}},
		},
		VotesCollection: {
			{
				Keys: bson.D{
					{Key: "groupId", Value: 1},
					{Key: "fromPlayerId", Value: 1},
					{Key: "toPlayerId", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "groupId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		},
		TeamBalancesCollection: {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "groupId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}
	return nil
}
