package pages

import "github.com/leapstack-labs/autohub/internal/ui/features/common"

// HomeView is the content of the landing page.
type HomeView struct {
	Latest []common.VehicleCard
	Recent []common.VehicleCard
}
