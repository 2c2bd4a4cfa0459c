package model

import "time"

// Participant is an access code issued for one respondent of an assessment
type Participant struct {
	Code         string          `json:"code" bson:"code"`
	AssessmentID string          `json:"assessmentId" bson:"assessmentId"`
	Email        string          `json:"email,omitempty" bson:"email,omitempty"`
	Responses    ResponseSet     `json:"responses,omitempty" bson:"responses,omitempty"`
	Result       *PersonalResult `json:"result,omitempty" bson:"result,omitempty"`
	InvitedAt    *time.Time      `json:"invitedAt,omitempty" bson:"invitedAt,omitempty"`
	SubmittedAt  *time.Time      `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt"`
}

// Submitted reports whether the participant has answered the survey
func (p *Participant) Submitted() bool {
	return p.SubmittedAt != nil && p.Result != nil
}

// ParticipantStatus is the public view of a code returned to respondents
type ParticipantStatus struct {
	Code         string          `json:"code"`
	AssessmentID string          `json:"assessmentId"`
	TeamName     string          `json:"teamName"`
	Submitted    bool            `json:"submitted"`
	Result       *PersonalResult `json:"result,omitempty"`
}
