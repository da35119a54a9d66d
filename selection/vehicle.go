package selection

import "strings"

// Vehicle quality ranks, best first.
const (
	RankPremium  = 0
	RankStandard = 1
	RankEconomy  = 2
	RankUnknown  = 3
)

var vehicleRanks = []struct {
	markers []string
	rank    int
}{
	{[]string{"VIP", "PREMIUM", "LUXURY"}, RankPremium},
	{[]string{"VAN", "STANDARD", "COMFORT"}, RankStandard},
	{[]string{"SHUTTLE", "ECONOMY"}, RankEconomy},
}

// VehicleRank ranks a vehicle category tag. The first matching marker
// group wins, so "VAN_VIP" ranks as premium.
func VehicleRank(category string) int {
	c := strings.ToUpper(category)
	for _, vr := range vehicleRanks {
		for _, m := range vr.markers {
			if strings.Contains(c, m) {
				return vr.rank
			}
		}
	}
	return RankUnknown
}
