package clients

import (
	"context"
	"slices"

	"github.com/parlakisik/buildex-matching/internal/model"
	"github.com/shopspring/decimal"
)

// StaticCatalog serves a fixed candidate pool. It backs local runs and tests
// when no discovery service is configured.
type StaticCatalog struct {
	providers []model.CandidateProvider
}

func NewStaticCatalog(providers []model.CandidateProvider) *StaticCatalog {
	return &StaticCatalog{providers: slices.Clone(providers)}
}

// NewDefaultCatalog returns the built-in construction catalog.
func NewDefaultCatalog() *StaticCatalog {
	return NewStaticCatalog(DefaultCatalog())
}

// Candidates returns a copy of the whole catalog; location is not used.
func (c *StaticCatalog) Candidates(ctx context.Context, req model.ResourceRequest) ([]model.CandidateProvider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(c.providers), nil
}

func DefaultCatalog() []model.CandidateProvider {
	p := func(id, name string, cat model.ResourceType, dist, rating float64, price string, avail model.Availability) model.CandidateProvider {
		return model.CandidateProvider{
			ID:           id,
			Name:         name,
			Category:     cat,
			Distance:     dist,
			Rating:       rating,
			BasePrice:    decimal.RequireFromString(price),
			Availability: avail,
		}
	}
	const (
		free = model.AvailabilityAvailable
		busy = model.AvailabilityBusy
	)
	return []model.CandidateProvider{
		p("prov_lab_01", "Ironside Framing Crew", model.ResourceLabor, 3.2, 4.8, "1800", free),
		p("prov_lab_02", "Northgate Concrete Finishers", model.ResourceLabor, 7.5, 4.5, "1500", free),
		p("prov_lab_03", "Summit Electrical Team", model.ResourceLabor, 12.0, 4.9, "2400", busy),
		p("prov_lab_04", "Riverbend Masonry", model.ResourceLabor, 1.4, 3.9, "1250", free),
		p("prov_lab_05", "Keystone Plumbing Crew", model.ResourceLabor, 18.3, 4.2, "1650", free),
		p("prov_lab_06", "Brightline Drywall", model.ResourceLabor, 5.9, 3.6, "950", busy),
		p("prov_mac_01", "Granite Excavator Rentals", model.ResourceMachinery, 4.1, 4.7, "850", free),
		p("prov_mac_02", "Hilltop Crane Services", model.ResourceMachinery, 22.5, 4.9, "3200", free),
		p("prov_mac_03", "Dustline Skid Steer Hire", model.ResourceMachinery, 2.3, 4.1, "420", free),
		p("prov_mac_04", "Meridian Boom Lifts", model.ResourceMachinery, 9.8, 4.4, "610", busy),
		p("prov_mac_05", "Ridgeway Compactor Rental", model.ResourceMachinery, 6.7, 3.8, "300", free),
		p("prov_mat_01", "Cornerstone Ready-Mix", model.ResourceMaterials, 8.4, 4.6, "1350", free),
		p("prov_mat_02", "Timberline Lumber Yard", model.ResourceMaterials, 3.0, 4.3, "2100", free),
		p("prov_mat_03", "Steelworks Rebar Supply", model.ResourceMaterials, 14.6, 4.8, "2750", free),
		p("prov_mat_04", "Bayside Aggregates", model.ResourceMaterials, 0.8, 3.5, "640", busy),
		p("prov_mat_05", "Union Roofing Supply", model.ResourceMaterials, 11.2, 4.0, "1180", free),
	}
}
