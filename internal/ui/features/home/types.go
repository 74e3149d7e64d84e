// Package home provides the landing page feature for the UI.
package home

import (
	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/session"
)

// LatestCount is how many vehicles the landing page features.
const LatestCount = 6

const homeDescription = "Browse new and used vehicles from trusted dealers across South Africa."

func recentCards(recent []session.RecentVehicle) []common.VehicleCard {
	cards := make([]common.VehicleCard, 0, len(recent))
	for _, v := range recent {
		cards = append(cards, common.VehicleCard{
			ID:        v.ID,
			Title:     v.Title,
			Href:      common.VehicleHref(v.ID),
			Thumbnail: v.Thumbnail,
			Price:     v.Price,
		})
	}
	return cards
}

func latestCards(page *listing.Page, images listing.ImageConfig) []common.VehicleCard {
	cards := make([]common.VehicleCard, 0, len(page.Vehicles))
	for _, v := range page.Vehicles {
		cards = append(cards, common.NewVehicleCard(v, images))
	}
	return cards
}
