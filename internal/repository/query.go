package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Collection names a record collection the site reads or writes.
type Collection string

const (
	Projects     Collection = "projects"
	Services     Collection = "services"
	PricingTiers Collection = "pricing_tiers"
	Testimonials Collection = "testimonials"
	Inquiries    Collection = "inquiries"
	Payments     Collection = "payments"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidColumn     = errors.New("invalid column")
)

// columns lists the selectable columns per collection, in struct order.
var columns = map[Collection]string{
	Projects: `id, title, slug, description, long_description, image_url, gallery_urls, technologies,
		client_name, problem_context, approach, delivered_impact, service_tags, featured, status,
		created_at, updated_at`,
	Services:     `id, name, slug, description, icon_name, order_position, is_active, created_at, updated_at`,
	PricingTiers: `id, service_id, name, description, price, currency, features, is_featured, order_position`,
	Testimonials: `id, client_name, client_role, client_company, client_image_url, content, rating, project_id,
		is_featured, is_video, video_url, archived_at, created_at`,
	Inquiries: `id, client_name, client_email, client_phone, client_company, service_id, project_description,
		budget_range, timeline, status, notification_status, created_at`,
	Payments: `id, inquiry_id, amount, currency, payment_method, payment_reference, status, created_at, completed_at`,
}

func (c Collection) Valid() bool {
	_, ok := columns[c]
	return ok
}

func (c Collection) String() string { return string(c) }

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type filterOp int

const (
	opEq filterOp = iota
	opIsNull
)

// Filter narrows a query to rows matching one column condition.
type Filter struct {
	Column string
	op     filterOp
	Value  any
}

func Eq(column string, value any) Filter { return Filter{Column: column, op: opEq, Value: value} }

func IsNull(column string) Filter { return Filter{Column: column, op: opIsNull} }

type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Query is a filter and ordering over one collection. Filters are
// ANDed. Offset only applies when Limit is set.
type Query struct {
	Filters []Filter
	Order   []Order
	Limit   int
	Offset  int
}

func (q Query) Where(f ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), f...)
	return q
}

func (q Query) OrderBy(o ...Order) Query {
	q.Order = append(append([]Order(nil), q.Order...), o...)
	return q
}

func (q Query) Take(limit int) Query {
	q.Limit = limit
	return q
}

func (q Query) Skip(offset int) Query {
	q.Offset = offset
	return q
}

func (q Query) where() (string, []any, error) {
	if len(q.Filters) == 0 {
		return "", nil, nil
	}
	parts := make([]string, 0, len(q.Filters))
	args := make([]any, 0, len(q.Filters))
	for _, f := range q.Filters {
		if !identRe.MatchString(f.Column) {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidColumn, f.Column)
		}
		switch f.op {
		case opIsNull:
			parts = append(parts, f.Column+" IS NULL")
		default:
			parts = append(parts, f.Column+" = ?")
			args = append(args, f.Value)
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func buildSelect(c Collection, q Query) (string, []any, error) {
	cols, ok := columns[c]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}

	where, args, err := q.where()
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	sb.WriteString(string(c))
	sb.WriteString(where)

	for i, o := range q.Order {
		if !identRe.MatchString(o.Column) {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidColumn, o.Column)
		}
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(o.Column)
		if o.Desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
		if q.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, q.Offset)
		}
	}

	return sb.String(), args, nil
}

func buildCount(c Collection, q Query) (string, []any, error) {
	if !c.Valid() {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	where, args, err := q.where()
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM " + string(c) + where, args, nil
}
