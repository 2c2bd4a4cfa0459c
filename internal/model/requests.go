package model

// CreateOrganizationRequest is the body of POST /v1/organizations
type CreateOrganizationRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

// UpdateOrganizationRequest changes only the fields that are present.
// An empty ParentID moves the organization to the root.
type UpdateOrganizationRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}

// CreateAssessmentRequest is the body of POST /v1/assessments
type CreateAssessmentRequest struct {
	OrganizationID       string   `json:"organizationId,omitempty"`
	TeamName             string   `json:"teamName"`
	ExpectedParticipants int      `json:"expectedParticipants"`
	Emails               []string `json:"emails,omitempty"`
}

type AddParticipantsRequest struct {
	Count  int      `json:"count"`
	Emails []string `json:"emails,omitempty"`
}

// CreateAssessmentResponse returns the assessment with the codes issued for it
type CreateAssessmentResponse struct {
	Assessment   *Assessment    `json:"assessment"`
	Participants []*Participant `json:"participants"`
}

type SubmitResponsesRequest struct {
	Responses ResponseSet `json:"responses"`
}

type SummaryEmailRequest struct {
	Recipients []string `json:"recipients"`
}
