package model

// InquiryEnvelope is the outbox payload published to Kafka when an inquiry is
// created. Its shape is what the notification function accepts.
type InquiryEnvelope struct {
	ID                 string `json:"id"`
	ClientName         string `json:"client_name"`
	ClientEmail        string `json:"client_email"`
	ProjectDescription string `json:"project_description"`
}

func EnvelopeFor(i Inquiry) InquiryEnvelope {
	return InquiryEnvelope{
		ID:                 i.ID,
		ClientName:         i.ClientName,
		ClientEmail:        i.ClientEmail,
		ProjectDescription: i.ProjectDescription,
	}
}
