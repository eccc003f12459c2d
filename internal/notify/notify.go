// Package notify builds the inquiry emails. Nothing is delivered: callers get
// the rendered HTML and decide what to do with it.
package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/model"
)

//go:embed templates/*.html
var files embed.FS

var tpl = template.Must(template.ParseFS(files, "templates/*.html"))

type Message struct {
	Subject string
	To      string
	HTML    string
}

// Emails holds the two messages produced for one inquiry.
type Emails struct {
	Client Message
	Admin  Message
}

type Builder struct {
	site config.SiteConfig
}

func NewBuilder(site config.SiteConfig) *Builder {
	return &Builder{site: site}
}

// Build renders the client confirmation and the admin alert. Inquiry values
// are HTML-escaped.
func (b *Builder) Build(inq model.InquiryEnvelope) (Emails, error) {
	data := struct {
		Inquiry model.InquiryEnvelope
		Site    config.SiteConfig
	}{inq, b.site}

	client, err := render("client_confirmation.html", data)
	if err != nil {
		return Emails{}, err
	}
	admin, err := render("admin_alert.html", data)
	if err != nil {
		return Emails{}, err
	}
	return Emails{
		Client: Message{
			Subject: "We've received your inquiry",
			To:      inq.ClientEmail,
			HTML:    client,
		},
		Admin: Message{
			Subject: fmt.Sprintf("New project inquiry from %s", inq.ClientName),
			To:      b.site.Email,
			HTML:    admin,
		},
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
