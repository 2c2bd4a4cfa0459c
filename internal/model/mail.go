package model

// MailMessage is a single transactional email
type MailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// MailFailure records one failed send of a bulk dispatch
type MailFailure struct {
	To    string `json:"to"`
	Error string `json:"error"`
}

// BulkMailResult summarizes a bulk dispatch
type BulkMailResult struct {
	Attempted int           `json:"attempted"`
	Sent      int           `json:"sent"`
	Failures  []MailFailure `json:"failures"`
}
