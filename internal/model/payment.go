package model

import "time"

type Payment struct {
	ID               string     `db:"id"                json:"id"`
	InquiryID        string     `db:"inquiry_id"        json:"inquiry_id"`
	Amount           int64      `db:"amount"            json:"amount"`
	Currency         string     `db:"currency"          json:"currency"`
	PaymentMethod    string     `db:"payment_method"    json:"payment_method"`
	PaymentReference string     `db:"payment_reference" json:"payment_reference"`
	Status           string     `db:"status"            json:"status"`
	CreatedAt        time.Time  `db:"created_at"        json:"created_at"`
	CompletedAt      *time.Time `db:"completed_at"      json:"completed_at"`
}
