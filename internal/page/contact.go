package page

import (
	"context"
	"strings"
	"time"

	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/validation"
)

// ConfirmationWindow is how long the confirmation replaces the form after a
// successful submission.
const ConfirmationWindow = 5 * time.Second

type Option struct {
	Value string
	Label string
}

var ServiceOptions = []Option{
	{"web-software-engineering", "Web & Software Engineering"},
	{"ecommerce-automation", "E-Commerce & Automation"},
	{"it-consulting", "IT Consulting"},
	{"digital-marketing-seo", "Digital Marketing & SEO"},
	{"hardware-infrastructure", "Hardware & Infrastructure"},
	{"audio-visual-production", "Audio-Visual Production"},
}

var TimelineOptions = []Option{
	{"immediate", "Immediate (ASAP)"},
	{"1-month", "Within 1 month"},
	{"1-3-months", "1-3 months"},
	{"3-6-months", "3-6 months"},
	{"flexible", "Flexible"},
}

var BudgetOptions = []Option{
	{"0-50k", "50,000 - 100,000 KES"},
	{"50-150k", "100,000 - 200,000 KES"},
	{"150-300k", "200,000 - 500,000 KES"},
	{"300k+", "500,000+ KES"},
}

// ContactForm is the raw contact form input.
type ContactForm struct {
	Name        string `form:"name"        json:"client_name"`
	Email       string `form:"email"       json:"client_email"`
	Phone       string `form:"phone"       json:"client_phone"`
	Company     string `form:"company"     json:"client_company"`
	Service     string `form:"service"     json:"service_id"`
	Description string `form:"description" json:"project_description"`
	Budget      string `form:"budget"      json:"budget_range"`
	Timeline    string `form:"timeline"    json:"timeline"`
}

func optionValues(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// Validate checks the required fields (name, email, description), bounds
// the free-text ones and keeps the select fields to their listed options.
func (f ContactForm) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", f.Name, v)
	validation.Required("email", f.Email, v)
	validation.Required("description", f.Description, v)
	validation.Email("email", f.Email, v)
	validation.MaxLen("name", f.Name, 255, v)
	validation.MaxLen("company", f.Company, 255, v)
	validation.MaxLen("phone", f.Phone, 32, v)
	validation.MaxLen("description", f.Description, 5000, v)
	validation.OneOf("service", strings.TrimSpace(f.Service), optionValues(ServiceOptions), v)
	validation.OneOf("budget", f.Budget, optionValues(BudgetOptions), v)
	validation.OneOf("timeline", f.Timeline, optionValues(TimelineOptions), v)
	return v
}

// Inquiry maps the form onto the record to insert. A blank service becomes NULL.
func (f ContactForm) Inquiry() model.Inquiry {
	inq := model.Inquiry{
		ClientName:         f.Name,
		ClientEmail:        f.Email,
		ClientPhone:        f.Phone,
		ClientCompany:      f.Company,
		ProjectDescription: f.Description,
		BudgetRange:        f.Budget,
		Timeline:           f.Timeline,
	}
	if s := strings.TrimSpace(f.Service); s != "" {
		inq.ServiceID = &s
	}
	return inq
}

// Submitter stores one inquiry and returns its id.
type Submitter interface {
	Submit(ctx context.Context, inq model.Inquiry) (string, error)
}

type ContactState struct {
	Form        ContactForm
	Violations  validation.Violations
	Error       string
	InquiryID   string
	SubmittedAt time.Time
}

// Submitted reports whether the confirmation is showing at now: true from the
// moment of submission for exactly ConfirmationWindow.
func (s ContactState) Submitted(now time.Time) bool {
	if s.SubmittedAt.IsZero() {
		return false
	}
	return !now.Before(s.SubmittedAt) && now.Before(s.SubmittedAt.Add(ConfirmationWindow))
}

func (s ContactState) HasError(field string) bool {
	_, ok := s.Violations[field]
	return ok
}

type Contact struct {
	submitter Submitter
	now       func() time.Time
}

func NewContact(s Submitter) *Contact {
	return &Contact{submitter: s, now: time.Now}
}

// Submit validates and inserts. On success the form is cleared and the
// confirmation window opens; on failure the input is kept and the error text
// is passed through unchanged.
func (c *Contact) Submit(ctx context.Context, form ContactForm) ContactState {
	st := ContactState{Form: form}
	if v := form.Validate(); !v.Empty() {
		st.Violations = v
		return st
	}
	id, err := c.submitter.Submit(ctx, form.Inquiry())
	if err != nil {
		st.Error = err.Error()
		return st
	}
	return ContactState{InquiryID: id, SubmittedAt: c.now()}
}
