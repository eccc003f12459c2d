package model

import "time"

type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryContacted  InquiryStatus = "contacted"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryCompleted  InquiryStatus = "completed"
	InquiryRejected   InquiryStatus = "rejected"
)

func (s InquiryStatus) String() string { return string(s) }

type NotificationStatus string

const (
	NotificationQueued NotificationStatus = "queued"
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

func (s NotificationStatus) String() string { return string(s) }

func (s NotificationStatus) Valid() bool {
	return s == NotificationQueued || s == NotificationSent || s == NotificationFailed
}

// Inquiry is a prospective client's submitted project request.
type Inquiry struct {
	ID                 string             `db:"id"                  json:"id"`
	ClientName         string             `db:"client_name"         json:"client_name"`
	ClientEmail        string             `db:"client_email"        json:"client_email"`
	ClientPhone        string             `db:"client_phone"        json:"client_phone"`
	ClientCompany      string             `db:"client_company"      json:"client_company"`
	ServiceID          *string            `db:"service_id"          json:"service_id"`
	ProjectDescription string             `db:"project_description" json:"project_description"`
	BudgetRange        string             `db:"budget_range"        json:"budget_range"`
	Timeline           string             `db:"timeline"            json:"timeline"`
	Status             InquiryStatus      `db:"status"              json:"status"`
	NotificationStatus NotificationStatus `db:"notification_status" json:"notification_status"`
	CreatedAt          time.Time          `db:"created_at"          json:"created_at"`
}
