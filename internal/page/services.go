package page

import "github.com/meki101/mekitech.co.ke/internal/model"

type ServiceCard struct {
	Service  model.Service
	Tiers    []model.PricingTier
	Expanded bool
}

// Services groups pricing tiers under their services and tracks the single
// expanded card.
type Services struct {
	Cards    []ServiceCard
	expanded string
}

func NewServices(services []model.Service, tiers []model.PricingTier) *Services {
	byService := make(map[string][]model.PricingTier, len(services))
	for _, t := range tiers {
		byService[t.ServiceID] = append(byService[t.ServiceID], t)
	}
	cards := make([]ServiceCard, 0, len(services))
	for _, s := range services {
		cards = append(cards, ServiceCard{Service: s, Tiers: byService[s.ID]})
	}
	return &Services{Cards: cards}
}

// Toggle expands the service with id, collapsing any other. Toggling the
// expanded service collapses it. Unknown ids collapse everything.
func (s *Services) Toggle(id string) {
	if s.expanded == id {
		s.expanded = ""
	} else {
		s.expanded = id
	}
	found := false
	for i := range s.Cards {
		s.Cards[i].Expanded = s.Cards[i].Service.ID == s.expanded
		found = found || s.Cards[i].Expanded
	}
	if !found {
		s.expanded = ""
	}
}

// Expanded returns the id of the expanded service, or "".
func (s *Services) Expanded() string { return s.expanded }

// TiersFor returns the tiers of one service in display order.
func (s *Services) TiersFor(id string) []model.PricingTier {
	for _, c := range s.Cards {
		if c.Service.ID == id {
			return c.Tiers
		}
	}
	return nil
}
