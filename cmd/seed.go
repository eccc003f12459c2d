package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"github.com/meki101/mekitech.co.ke/internal/session"
	"github.com/meki101/mekitech.co.ke/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the admin user and the demo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		sqlDB, err := openMySQL(ctx, cfg)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if cfg.Admin.Password == "" {
			return errors.New("admin.password is empty; set MEKI_ADMIN_PASSWORD")
		}
		hash, err := session.HashPassword(cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if err := repository.NewAdminsRepository(sqlDB).Upsert(ctx, cfg.Admin.Email, cfg.Admin.Name, hash); err != nil {
			return fmt.Errorf("upsert admin: %w", err)
		}
		logger.Log.Info("admin seeded", zap.String("email", cfg.Admin.Email))

		if err := seedServices(ctx, sqlDB); err != nil {
			return err
		}
		if err := seedProjects(ctx, sqlDB); err != nil {
			return err
		}
		if err := seedTestimonials(ctx, sqlDB); err != nil {
			return err
		}

		logger.Log.Info("seed completed")
		return nil
	},
}

type seedService struct {
	model.Service
	Tiers []model.PricingTier
}

var demoServices = []seedService{
	{
		Service: model.Service{Name: "Web & Software Engineering", Slug: "web-software-engineering", IconName: "code",
			Description: "Custom websites, web apps and internal tools built to last."},
		Tiers: []model.PricingTier{
			{Name: "Starter Site", Price: 50000, Description: "A fast marketing site for a small business.",
				Features: model.StringList{"Up to 5 pages", "Mobile friendly", "Contact form"}},
			{Name: "Business Platform", Price: 200000, IsFeatured: true, Description: "A web app with accounts and an admin area.",
				Features: model.StringList{"User accounts", "Admin dashboard", "M-Pesa integration"}},
		},
	},
	{
		Service: model.Service{Name: "E-Commerce & Automation", Slug: "ecommerce-automation", IconName: "shopping-cart",
			Description: "Online shops and the automations that keep orders flowing."},
		Tiers: []model.PricingTier{
			{Name: "Shop Launch", Price: 100000, Description: "A complete online store.",
				Features: model.StringList{"Product catalog", "M-Pesa and card checkout", "Order notifications"}},
		},
	},
	{
		Service: model.Service{Name: "IT Consulting", Slug: "it-consulting", IconName: "briefcase",
			Description: "Technology strategy, audits and vendor selection."},
	},
	{
		Service: model.Service{Name: "Digital Marketing & SEO", Slug: "digital-marketing-seo", IconName: "trending-up",
			Description: "Search visibility, analytics and campaigns that convert."},
	},
	{
		Service: model.Service{Name: "Hardware & Infrastructure", Slug: "hardware-infrastructure", IconName: "server",
			Description: "Networks, servers and workstations set up and maintained."},
	},
	{
		Service: model.Service{Name: "Audio-Visual Production", Slug: "audio-visual-production", IconName: "video",
			Description: "Product videos, event coverage and brand photography."},
	},
}

// seedServices upserts services by slug and replaces their pricing tiers.
func seedServices(ctx context.Context, dbx *sqlx.DB) error {
	const upsert = `
INSERT INTO services (id, name, slug, description, icon_name, order_position, is_active)
VALUES (?, ?, ?, ?, ?, ?, TRUE)
ON DUPLICATE KEY UPDATE
    name           = VALUES(name),
    description    = VALUES(description),
    icon_name      = VALUES(icon_name),
    order_position = VALUES(order_position),
    is_active      = TRUE
`
	const insertTier = `
INSERT INTO pricing_tiers (id, service_id, name, description, price, currency, features, is_featured, order_position)
VALUES (?, ?, ?, ?, ?, 'KES', ?, ?, ?)
`
	tx, err := dbx.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, s := range demoServices {
		if _, err := tx.ExecContext(ctx, upsert, util.NewID(), s.Name, s.Slug, s.Description, s.IconName, i+1); err != nil {
			return fmt.Errorf("upsert service %q: %w", s.Slug, err)
		}
		var id string
		if err := tx.GetContext(ctx, &id, `SELECT id FROM services WHERE slug = ?`, s.Slug); err != nil {
			return fmt.Errorf("lookup service %q: %w", s.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM pricing_tiers WHERE service_id = ?`, id); err != nil {
			return fmt.Errorf("clear tiers %q: %w", s.Slug, err)
		}
		for j, t := range s.Tiers {
			features, err := json.Marshal(t.Features)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, insertTier,
				util.NewID(), id, t.Name, t.Description, t.Price, features, t.IsFeatured, j+1,
			); err != nil {
				return fmt.Errorf("insert tier %q: %w", t.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit services: %w", err)
	}
	return nil
}

var demoProjects = []model.Project{
	{
		Title: "Duka Online", Slug: "duka-online", ClientName: "Duka Fresh Groceries", Featured: true,
		Description:     "Grocery store with M-Pesa checkout and same-day delivery slots.",
		LongDescription: "A full online grocery store for a Nairobi retailer, from catalog to rider dispatch.",
		ProblemContext:  "Phone orders were lost and stock counts never matched.",
		Approach:        "A web shop backed by a single inventory, with STK push payments and order SMS.",
		DeliveredImpact: "Online orders reached 30% of revenue within three months.",
		Technologies:    model.StringList{"Go", "MySQL", "Redis", "M-Pesa Daraja", "Tailwind"},
		ServiceTags:     model.StringList{"ecommerce-automation", "web-software-engineering"},
	},
	{
		Title: "Clinic Booking", Slug: "clinic-booking", ClientName: "Afya Plus Clinic", Featured: true,
		Description:     "Appointment booking and patient reminders for a two-branch clinic.",
		LongDescription: "Online booking with doctor calendars, SMS reminders and a reception dashboard.",
		ProblemContext:  "No-shows and double bookings cost the clinic hours every week.",
		Approach:        "Shared calendars per doctor and reminders sent a day ahead.",
		DeliveredImpact: "No-shows dropped by half.",
		Technologies:    model.StringList{"Go", "PostgreSQL", "Africa's Talking"},
		ServiceTags:     model.StringList{"web-software-engineering"},
	},
	{
		Title: "Office Network Refresh", Slug: "office-network-refresh", ClientName: "Kilimo Sacco",
		Description:     "Structured cabling, Wi-Fi and backups for a 40-seat office.",
		LongDescription: "Replaced ad-hoc switches with a managed network and nightly offsite backups.",
		ProblemContext:  "Frequent outages and no backups of member records.",
		Approach:        "Site survey, phased cutover over two weekends.",
		DeliveredImpact: "No unplanned downtime since go-live.",
		Technologies:    model.StringList{"UniFi", "pfSense", "Synology"},
		ServiceTags:     model.StringList{"hardware-infrastructure", "it-consulting"},
	},
}

// seedProjects upserts published demo projects by slug.
func seedProjects(ctx context.Context, dbx *sqlx.DB) error {
	const q = `
INSERT INTO projects
    (id, title, slug, description, long_description, image_url, gallery_urls, technologies, client_name,
     problem_context, approach, delivered_impact, service_tags, featured, status)
VALUES
    (?, ?, ?, ?, ?, '', '[]', ?, ?, ?, ?, ?, ?, ?, 'published')
ON DUPLICATE KEY UPDATE
    title            = VALUES(title),
    description      = VALUES(description),
    long_description = VALUES(long_description),
    technologies     = VALUES(technologies),
    client_name      = VALUES(client_name),
    problem_context  = VALUES(problem_context),
    approach         = VALUES(approach),
    delivered_impact = VALUES(delivered_impact),
    service_tags     = VALUES(service_tags),
    featured         = VALUES(featured),
    status           = 'published'
`
	for _, p := range demoProjects {
		tech, err := p.Technologies.Value()
		if err != nil {
			return err
		}
		tags, err := p.ServiceTags.Value()
		if err != nil {
			return err
		}
		if _, err := dbx.ExecContext(ctx, q,
			util.NewID(), p.Title, p.Slug, p.Description, p.LongDescription, tech, p.ClientName,
			p.ProblemContext, p.Approach, p.DeliveredImpact, tags, p.Featured,
		); err != nil {
			return fmt.Errorf("upsert project %q: %w", p.Slug, err)
		}
	}
	return nil
}

var demoTestimonials = []model.Testimonial{
	{ClientName: "Grace Wambui", ClientRole: "Owner", ClientCompany: "Duka Fresh Groceries", Rating: 5, IsFeatured: true,
		Content: "Our online orders took off within weeks. The team understood our business from day one."},
	{ClientName: "Dr. Peter Otieno", ClientRole: "Medical Director", ClientCompany: "Afya Plus Clinic", Rating: 5,
		Content: "Patients book themselves now and the reminders have cut our no-shows in half."},
	{ClientName: "Faith Njeri", ClientRole: "Operations Manager", ClientCompany: "Kilimo Sacco", Rating: 4,
		Content: "The network just works. Backups run every night and we finally sleep well."},
}

// seedTestimonials inserts the demo testimonials only into an empty table.
func seedTestimonials(ctx context.Context, dbx *sqlx.DB) error {
	var n int
	if err := dbx.GetContext(ctx, &n, `SELECT COUNT(*) FROM testimonials`); err != nil {
		return fmt.Errorf("count testimonials: %w", err)
	}
	if n > 0 {
		return nil
	}
	const q = `
INSERT INTO testimonials (id, client_name, client_role, client_company, content, rating, is_featured)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	for _, t := range demoTestimonials {
		if _, err := dbx.ExecContext(ctx, q,
			util.NewID(), t.ClientName, t.ClientRole, t.ClientCompany, t.Content, t.Rating, t.IsFeatured,
		); err != nil {
			return fmt.Errorf("insert testimonial %q: %w", t.ClientName, err)
		}
	}
	return nil
}
