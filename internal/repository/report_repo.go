package repository

import (
	"context"
	"teamhealth/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportRepo handles MongoDB operations for team reports and organization summaries
type ReportRepo interface {
	SaveTeamReport(ctx context.Context, report *model.TeamReport) error
	GetTeamReport(ctx context.Context, assessmentID string) (*model.TeamReport, error)
	SaveSummary(ctx context.Context, summary *model.OrganizationSummary) error
	GetSummary(ctx context.Context, orgID string) (*model.OrganizationSummary, error)
	MarkSummaryEmailed(ctx context.Context, orgID string) error
}

type reportRepo struct {
	teamReports *mongo.Collection
	summaries   *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{
		teamReports: db.Collection(teamReportsCollection),
		summaries:   db.Collection(summariesCollection),
	}
}

func (r *reportRepo) SaveTeamReport(ctx context.Context, report *model.TeamReport) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.teamReports.ReplaceOne(ctx, bson.M{"assessmentId": report.AssessmentID}, report, opts)
	return err
}

func (r *reportRepo) GetTeamReport(ctx context.Context, assessmentID string) (*model.TeamReport, error) {
	var report model.TeamReport
	err := r.teamReports.FindOne(ctx, bson.M{"assessmentId": assessmentID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) SaveSummary(ctx context.Context, summary *model.OrganizationSummary) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.summaries.ReplaceOne(ctx, bson.M{"organizationId": summary.OrganizationID}, summary, opts)
	return err
}

func (r *reportRepo) GetSummary(ctx context.Context, orgID string) (*model.OrganizationSummary, error) {
	var summary model.OrganizationSummary
	err := r.summaries.FindOne(ctx, bson.M{"organizationId": orgID}).Decode(&summary)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepo) MarkSummaryEmailed(ctx context.Context, orgID string) error {
	_, err := r.summaries.UpdateOne(ctx, bson.M{"organizationId": orgID}, bson.M{"$set": bson.M{"emailSent": true}})
	return err
}
