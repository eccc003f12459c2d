package model

import "time"

const ProjectStatusPublished = "published"

// Project is a portfolio entry.
type Project struct {
	ID              string     `db:"id"               json:"id"`
	Title           string     `db:"title"            json:"title"`
	Slug            string     `db:"slug"             json:"slug"`
	Description     string     `db:"description"      json:"description"`
	LongDescription string     `db:"long_description" json:"long_description"`
	ImageURL        string     `db:"image_url"        json:"image_url"`
	GalleryURLs     StringList `db:"gallery_urls"     json:"gallery_urls"`
	Technologies    StringList `db:"technologies"     json:"technologies"`
	ClientName      string     `db:"client_name"      json:"client_name"`
	ProblemContext  string     `db:"problem_context"  json:"problem_context"`
	Approach        string     `db:"approach"         json:"approach"`
	DeliveredImpact string     `db:"delivered_impact" json:"delivered_impact"`
	ServiceTags     StringList `db:"service_tags"     json:"service_tags"`
	Featured        bool       `db:"featured"         json:"featured"`
	Status          string     `db:"status"           json:"status"`
	CreatedAt       time.Time  `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"       json:"updated_at"`
}
