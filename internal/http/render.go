package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/http/middleware"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates
var templateFS embed.FS

// view is the data every page template receives.
type view struct {
	Title   string
	Section string
	Path    string
	Refresh int // seconds; 0 disables the meta refresh
	Site    config.SiteConfig
	Admin   *model.AdminUser
	Data    any
}

type navItem struct {
	ID, Label, Href string
}

var navItems = []navItem{
	{"home", "Home", "/"},
	{"about", "About", "/about"},
	{"portfolio", "Portfolio", "/portfolio"},
	{"services", "Services", "/services"},
	{"contact", "Contact", "/contact"},
}

var printer = message.NewPrinter(language.English)

var funcs = template.FuncMap{
	"nav":      func() []navItem { return navItems },
	"year":     func() int { return time.Now().Year() },
	"add":      func(a, b int) int { return a + b },
	"tagLabel": page.TagLabel,
	"stars":    func(n int) []struct{} { return make([]struct{}, n) },
	"techShown": func(p model.Project, n int) []string {
		shown, _ := page.TechPreview(p, n)
		return shown
	},
	"techMore": func(p model.Project, n int) int {
		_, more := page.TechPreview(p, n)
		return more
	},
	"money": func(amount int64, currency string) string {
		if currency == "" {
			currency = "KES"
		}
		return printer.Sprintf("%s %d", currency, amount)
	},
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			return t.Format("2 Jan 2006")
		case *time.Time:
			if t == nil {
				return ""
			}
			return t.Format("2 Jan 2006")
		default:
			return ""
		}
	},
}

// Renderer executes the layout with one page template. Every page is parsed
// once at startup into its own set so "content" blocks do not collide.
type Renderer struct {
	site  config.SiteConfig
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func NewRenderer(site config.SiteConfig) (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	names, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, n := range names {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, n); err != nil {
			return nil, fmt.Errorf("parse %s: %w", n, err)
		}
		pages[path.Base(n)] = t
	}
	return &Renderer{site: site, pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	v, ok := data.(*view)
	if !ok {
		v = &view{Data: data}
	}
	v.Site = r.site
	if c != nil {
		v.Path = c.Request().URL.Path
		if a, ok := middleware.AdminFromCtx(c); ok {
			v.Admin = a
		}
	}
	return t.ExecuteTemplate(w, "layout.html", v)
}
