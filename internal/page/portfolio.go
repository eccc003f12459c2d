package page

import (
	"strings"

	"github.com/meki101/mekitech.co.ke/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AllTags selects the unfiltered portfolio.
const AllTags = "all"

type Portfolio struct {
	Projects []model.Project
	// Tags is the distinct set of service tags in first-seen order.
	Tags []string
}

func NewPortfolio(projects []model.Project) Portfolio {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range projects {
		for _, t := range p.ServiceTags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return Portfolio{Projects: projects, Tags: tags}
}

// Filter returns the projects whose tags contain tag. An empty tag or AllTags
// returns every project.
func (p Portfolio) Filter(tag string) []model.Project {
	if tag == "" || tag == AllTags {
		return p.Projects
	}
	out := make([]model.Project, 0, len(p.Projects))
	for _, pr := range p.Projects {
		if pr.ServiceTags.Contains(tag) {
			out = append(out, pr)
		}
	}
	return out
}

// HasTag reports whether tag is one of the derived tags.
func (p Portfolio) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// TagLabel renders "web-software-engineering" as "Web Software Engineering".
func TagLabel(tag string) string {
	return titleCaser.String(strings.ReplaceAll(tag, "-", " "))
}

// TechPreview returns at most n technologies and how many were left out.
func TechPreview(p model.Project, n int) ([]string, int) {
	if len(p.Technologies) <= n {
		return p.Technologies, 0
	}
	return p.Technologies[:n], len(p.Technologies) - n
}
