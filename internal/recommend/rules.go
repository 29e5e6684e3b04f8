// Package recommend maps a client's hair description to suggested salon
// services via a keyword rule table.
package recommend

import "strings"

// Maintenance is the upkeep level of a recommended service.
type Maintenance string

const (
	MaintenanceLow    Maintenance = "Low"
	MaintenanceMedium Maintenance = "Medium"
	MaintenanceHigh   Maintenance = "High"
)

// Service is one recommended salon service.
type Service struct {
	Title       string      `json:"title"`
	Duration    string      `json:"duration"`
	Maintenance Maintenance `json:"maintenance"`
	Notes       string      `json:"notes"`
}

type rule struct {
	keywords []string
	services []Service
}

// Rules are matched in order; the first rule with any keyword hit wins.
var rules = []rule{
	{
		keywords: []string{"blonde", "highlight", "bright", "foil"},
		services: []Service{
			{
				Title:       "Dimensional blonding",
				Duration:    "3-3.5 hrs",
				Maintenance: MaintenanceMedium,
				Notes:       "Foils + root melt for softer grow out.",
			},
			{
				Title:       "Gloss + cut",
				Duration:    "1.5 hrs",
				Maintenance: MaintenanceLow,
				Notes:       "Tone refresh and shape-up between blonding visits.",
			},
		},
	},
	{
		keywords: []string{"brunette", "brown", "balayage", "caramel"},
		services: []Service{
			{
				Title:       "Lived-in balayage",
				Duration:    "2.5 hrs",
				Maintenance: MaintenanceLow,
				Notes:       "Hand-painted lift with root shadow for longevity.",
			},
			{
				Title:       "Gloss + trim",
				Duration:    "1.5 hrs",
				Maintenance: MaintenanceLow,
				Notes:       "Tone and tidy every 8-10 weeks.",
			},
		},
	},
	{
		keywords: []string{"copper", "red", "warm"},
		services: []Service{
			{
				Title:       "Copper refresh",
				Duration:    "2 hrs",
				Maintenance: MaintenanceMedium,
				Notes:       "All-over color with shine treatment.",
			},
		},
	},
	{
		keywords: []string{"protective", "twist", "braid", "knotless", "silk press"},
		services: []Service{
			{
				Title:       "Protective styling consult",
				Duration:    "30 mins",
				Maintenance: MaintenanceLow,
				Notes:       "Hair/scalp prep plan and style selection.",
			},
			{
				Title:       "Protective style install",
				Duration:    "3-4 hrs",
				Maintenance: MaintenanceLow,
				Notes:       "Hydrating prep, knotless / twists with tension control.",
			},
		},
	},
	{
		keywords: []string{"silver", "grey", "gray", "platinum"},
		services: []Service{
			{
				Title:       "Grey blending",
				Duration:    "2.5 hrs",
				Maintenance: MaintenanceMedium,
				Notes:       "Foils + lowlights to soften demarcation.",
			},
		},
	},
}

// ForDescription returns the services of the first rule whose keywords match
// the description, or an empty slice.
func ForDescription(description string) []Service {
	lower := strings.ToLower(description)
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(lower, keyword) {
				return r.services
			}
		}
	}
	return []Service{}
}
