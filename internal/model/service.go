package model

import "time"

type Service struct {
	ID            string    `db:"id"             json:"id"`
	Name          string    `db:"name"           json:"name"`
	Slug          string    `db:"slug"           json:"slug"`
	Description   string    `db:"description"    json:"description"`
	IconName      string    `db:"icon_name"      json:"icon_name"`
	OrderPosition int       `db:"order_position" json:"order_position"`
	IsActive      bool      `db:"is_active"      json:"is_active"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

// PricingTier is one priced package offered under a Service.
type PricingTier struct {
	ID            string     `db:"id"             json:"id"`
	ServiceID     string     `db:"service_id"     json:"service_id"`
	Name          string     `db:"name"           json:"name"`
	Description   string     `db:"description"    json:"description"`
	Price         int64      `db:"price"          json:"price"`
	Currency      string     `db:"currency"       json:"currency"`
	Features      StringList `db:"features"       json:"features"`
	IsFeatured    bool       `db:"is_featured"    json:"is_featured"`
	OrderPosition int        `db:"order_position" json:"order_position"`
}
