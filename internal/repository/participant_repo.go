package repository

import (
	"context"
	"errors"
	"teamhealth/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrAlreadySubmitted is returned when a code that already carries a result is submitted again
var ErrAlreadySubmitted = errors.New("participant already submitted")

type ParticipantRepo interface {
	CreateMany(ctx context.Context, participants []*model.Participant) error
	GetByCode(ctx context.Context, code string) (*model.Participant, error)
	ListByAssessment(ctx context.Context, assessmentID string) ([]*model.Participant, error)
	// SaveSubmission stores responses and result only if the code has not been submitted yet
	SaveSubmission(ctx context.Context, code string, responses model.ResponseSet, result *model.PersonalResult, at time.Time) error
	MarkInvited(ctx context.Context, code string, at time.Time) error
}

type participantRepo struct {
	collection *mongo.Collection
}

func NewParticipantRepo(db *mongo.Database) ParticipantRepo {
	return &participantRepo{
		collection: db.Collection(participantsCollection),
	}
}

func (r *participantRepo) CreateMany(ctx context.Context, participants []*model.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	docs := make([]interface{}, len(participants))
	now := time.Now().UTC()
	for i, p := range participants {
		p.CreatedAt = now
		docs[i] = p
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *participantRepo) GetByCode(ctx context.Context, code string) (*model.Participant, error) {
	var p model.Participant
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *participantRepo) ListByAssessment(ctx context.Context, assessmentID string) ([]*model.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "code", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"assessmentId": assessmentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	participants := []*model.Participant{}
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *participantRepo) SaveSubmission(ctx context.Context, code string, responses model.ResponseSet, result *model.PersonalResult, at time.Time) error {
	filter := bson.M{"code": code, "submittedAt": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{
		"responses":   responses,
		"result":      result,
		"submittedAt": at,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadySubmitted
	}
	return nil
}

func (r *participantRepo) MarkInvited(ctx context.Context, code string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": bson.M{"invitedAt": at}})
	return err
}
