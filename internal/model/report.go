package model

import "time"

// TeamReport is the stored team score of one assessment (replaced on every recompute)
type TeamReport struct {
	AssessmentID       string          `json:"assessmentId" bson:"assessmentId"`
	OrganizationID     string          `json:"organizationId,omitempty" bson:"organizationId,omitempty"`
	TeamName           string          `json:"teamName" bson:"teamName"`
	TeamScore          `bson:",inline"`
	DimensionScores    DimensionScores `json:"dimensionScores" bson:"dimensionScores"` // averages over members
	ParticipationCount int             `json:"participationCount" bson:"participationCount"`
	ParticipationRate  float64         `json:"participationRate" bson:"participationRate"` // percent of issued codes
	ComputedAt         time.Time       `json:"computedAt" bson:"computedAt"`
}

// TeamResult is one team's input to an organization rollup. Report is nil while pending.
type TeamResult struct {
	AssessmentID string      `json:"assessmentId"`
	TeamName     string      `json:"teamName"`
	Report       *TeamReport `json:"report,omitempty"`
}

// TeamComparison is a ranked row of the organization summary
type TeamComparison struct {
	Rank              int             `json:"rank" bson:"rank"`
	AssessmentID      string          `json:"assessmentId" bson:"assessmentId"`
	TeamName          string          `json:"teamName" bson:"teamName"`
	TeamScore         float64         `json:"teamScore" bson:"teamScore"`
	HealthGrade       string          `json:"healthGrade" bson:"healthGrade"`
	ParticipationRate float64         `json:"participationRate" bson:"participationRate"`
	DimensionScores   DimensionScores `json:"dimensionScores" bson:"dimensionScores"`
}

// TopPerformer is the highest-scoring team of an organization
type TopPerformer struct {
	AssessmentID       string   `json:"assessmentId" bson:"assessmentId"`
	TeamName           string   `json:"teamName" bson:"teamName"`
	TeamScore          float64  `json:"teamScore" bson:"teamScore"`
	StandoutDimensions []string `json:"standoutDimensions" bson:"standoutDimensions"`
}

// AttentionTeam is a low-scoring team with the reasons it was flagged
type AttentionTeam struct {
	AssessmentID string   `json:"assessmentId" bson:"assessmentId"`
	TeamName     string   `json:"teamName" bson:"teamName"`
	TeamScore    float64  `json:"teamScore" bson:"teamScore"`
	Issues       []string `json:"issues" bson:"issues"`
}

// OrganizationInsights is the templated narrative of an organization summary
type OrganizationInsights struct {
	Strengths       []string        `json:"strengths" bson:"strengths"`
	Concerns        []string        `json:"concerns" bson:"concerns"`
	TopPerformer    *TopPerformer   `json:"topPerformer,omitempty" bson:"topPerformer,omitempty"`
	NeedsAttention  []AttentionTeam `json:"needsAttention" bson:"needsAttention"`
	Recommendations []string        `json:"recommendations" bson:"recommendations"`
	CrossTeamTrends []string        `json:"crossTeamTrends" bson:"crossTeamTrends"`
}

// OrganizationSummary is the cross-team rollup of an organization (replaced on regeneration)
type OrganizationSummary struct {
	OrganizationID    string               `json:"organizationId" bson:"organizationId"`
	TotalTeams        int                  `json:"totalTeams" bson:"totalTeams"`
	CompletedTeams    int                  `json:"completedTeams" bson:"completedTeams"`
	PendingTeams      int                  `json:"pendingTeams" bson:"pendingTeams"`
	AverageTeamScore  float64              `json:"averageTeamScore" bson:"averageTeamScore"`
	HighestScore      float64              `json:"highestScore" bson:"highestScore"`
	LowestScore       float64              `json:"lowestScore" bson:"lowestScore"`
	ScoreStdDev       float64              `json:"scoreStdDev" bson:"scoreStdDev"`
	AvgParticipation  float64              `json:"averageParticipation" bson:"averageParticipation"`
	DimensionAverages DimensionAverages    `json:"dimensionAverages" bson:"dimensionAverages"`
	TeamComparisons   []TeamComparison     `json:"teamComparisons" bson:"teamComparisons"`
	Insights          OrganizationInsights `json:"insights" bson:"insights"`
	EmailSent         bool                 `json:"emailSent" bson:"emailSent"`
	GeneratedAt       time.Time            `json:"generatedAt" bson:"generatedAt"`
}
