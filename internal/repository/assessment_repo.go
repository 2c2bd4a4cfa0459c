package repository

import (
	"context"
	"teamhealth/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssessmentRepo handles MongoDB operations for assessments
type AssessmentRepo interface {
	Create(ctx context.Context, a *model.Assessment) error
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*model.Assessment, error)
	CountByOrganization(ctx context.Context, orgID string) (int64, error)
	Update(ctx context.Context, a *model.Assessment) error
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection(assessmentsCollection),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, a *model.Assessment) error {
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt

	_, err := r.collection.InsertOne(ctx, a)
	return err
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepo) ListByOrganization(ctx context.Context, orgID string) ([]*model.Assessment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"organizationId": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assessments := []*model.Assessment{}
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepo) CountByOrganization(ctx context.Context, orgID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"organizationId": orgID})
}

func (r *assessmentRepo) Update(ctx context.Context, a *model.Assessment) error {
	a.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	return err
}
