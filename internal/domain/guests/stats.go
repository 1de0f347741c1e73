package guests

import "math"

// Aggregate summarises RSVP progress over a directory snapshot.
func Aggregate(directory []Guest) Stats {
	stats := Stats{TotalInvited: len(directory)}
	for _, g := range directory {
		if !g.HasRSVPed {
			continue
		}
		stats.TotalRSVPed++
		if g.RSVPResponse == nil {
			continue
		}
		switch *g.RSVPResponse {
		case ResponseYes:
			stats.Attending++
			stats.TotalAttending += max(g.RSVPGuestCount, 1)
		case ResponseNo:
			stats.NotAttending++
		case ResponseMaybe:
			stats.Maybe++
		}
	}
	stats.Pending = stats.TotalInvited - stats.TotalRSVPed
	if stats.TotalInvited > 0 {
		stats.PercentRSVPed = int(math.Round(100 * float64(stats.TotalRSVPed) / float64(stats.TotalInvited)))
	}
	return stats
}
