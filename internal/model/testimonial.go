package model

import "time"

type Testimonial struct {
	ID             string     `db:"id"               json:"id"`
	ClientName     string     `db:"client_name"      json:"client_name"`
	ClientRole     string     `db:"client_role"      json:"client_role"`
	ClientCompany  string     `db:"client_company"   json:"client_company"`
	ClientImageURL string     `db:"client_image_url" json:"client_image_url"`
	Content        string     `db:"content"          json:"content"`
	Rating         int        `db:"rating"           json:"rating"`
	ProjectID      *string    `db:"project_id"       json:"project_id"`
	IsFeatured     bool       `db:"is_featured"      json:"is_featured"`
	IsVideo        bool       `db:"is_video"         json:"is_video"`
	VideoURL       *string    `db:"video_url"        json:"video_url,omitempty"`
	ArchivedAt     *time.Time `db:"archived_at"      json:"archived_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at"       json:"created_at"`
}

// Stars returns the rating to display; unrated testimonials show five.
func (t Testimonial) Stars() int {
	if t.Rating <= 0 {
		return 5
	}
	return t.Rating
}
