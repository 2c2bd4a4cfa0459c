package model

import "time"

type AssessmentStatus string

const (
	AssessmentOpen   AssessmentStatus = "open"
	AssessmentClosed AssessmentStatus = "closed"
)

// Assessment is one survey run for one team
type Assessment struct {
	ID                   string           `json:"id" bson:"_id,omitempty"`
	OrganizationID       string           `json:"organizationId,omitempty" bson:"organizationId,omitempty"`
	TeamName             string           `json:"teamName" bson:"teamName"`
	ExpectedParticipants int              `json:"expectedParticipants" bson:"expectedParticipants"`
	Status               AssessmentStatus `json:"status" bson:"status"`
	CreatedAt            time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt" bson:"updatedAt"`
}
