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

// OrganizationRepo handles MongoDB operations for the organization tree
type OrganizationRepo interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id string) (*model.Organization, error)
	List(ctx context.Context) ([]*model.Organization, error)
	ListChildren(ctx context.Context, parentID string) ([]*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
}

type organizationRepo struct {
	collection *mongo.Collection
}

// NewOrganizationRepo creates a new organization repository
func NewOrganizationRepo(db *mongo.Database) OrganizationRepo {
	return &organizationRepo{
		collection: db.Collection(organizationsCollection),
	}
}

func (r *organizationRepo) Create(ctx context.Context, org *model.Organization) error {
	if org.ID == "" {
		org.ID = primitive.NewObjectID().Hex()
	}
	org.CreatedAt = time.Now().UTC()
	org.UpdatedAt = org.CreatedAt

	_, err := r.collection.InsertOne(ctx, org)
	return err
}

func (r *organizationRepo) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	var org model.Organization
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) List(ctx context.Context) ([]*model.Organization, error) {
	return r.find(ctx, bson.M{})
}

func (r *organizationRepo) ListChildren(ctx context.Context, parentID string) ([]*model.Organization, error) {
	return r.find(ctx, bson.M{"parentId": parentID})
}

func (r *organizationRepo) find(ctx context.Context, filter bson.M) ([]*model.Organization, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orgs := []*model.Organization{}
	if err := cursor.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *model.Organization) error {
	org.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": org.ID}, org)
	return err
}

func (r *organizationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *organizationRepo) CountChildren(ctx context.Context, id string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"parentId": id})
}
