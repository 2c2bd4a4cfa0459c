package service

// Event types pushed to dashboard subscribers
const (
	EventSubmissionReceived = "submission_received"
	EventTeamReportUpdated  = "team_report_updated"
	EventSummaryRegenerated = "summary_regenerated"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	Broadcast(topic string, msgType string, payload interface{})
}

func AssessmentTopic(id string) string {
	return "assessment:" + id
}

func OrganizationTopic(id string) string {
	return "organization:" + id
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, interface{}) {}
