package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	organizationsCollection = "organizations"
	assessmentsCollection   = "assessments"
	participantsCollection  = "participants"
	teamReportsCollection   = "team_reports"
	summariesCollection     = "organization_summaries"
)

// EnsureIndexes creates the indexes the repositories rely on. Failures are logged, not fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) {
	createIndex(ctx, logger, db.Collection(organizationsCollection), bson.D{{Key: "parentId", Value: 1}}, false)
	createIndex(ctx, logger, db.Collection(assessmentsCollection), bson.D{
		{Key: "organizationId", Value: 1},
		{Key: "createdAt", Value: 1},
	}, false)

	// codes are the only credential respondents have
	createIndex(ctx, logger, db.Collection(participantsCollection), bson.D{{Key: "code", Value: 1}}, true)
	createIndex(ctx, logger, db.Collection(participantsCollection), bson.D{{Key: "assessmentId", Value: 1}}, false)

	createIndex(ctx, logger, db.Collection(teamReportsCollection), bson.D{{Key: "assessmentId", Value: 1}}, true)
	createIndex(ctx, logger, db.Collection(teamReportsCollection), bson.D{{Key: "organizationId", Value: 1}}, false)
	createIndex(ctx, logger, db.Collection(summariesCollection), bson.D{{Key: "organizationId", Value: 1}}, true)
}

func createIndex(ctx context.Context, logger *zap.Logger, coll *mongo.Collection, keys bson.D, unique bool) {
	opts := options.Index().SetUnique(unique)
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys, Options: opts}); err != nil {
		logger.Warn("failed to create index",
			zap.String("collection", coll.Name()),
			zap.Any("keys", keys),
			zap.Error(err))
	}
}
