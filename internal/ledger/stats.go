package ledger

import "sync/atomic"

// counters track process-lifetime activity. Readers may see a mix of
// old and new values across fields; each field on its own is exact.
type counters struct {
	logins          atomic.Int64
	accountsCreated atomic.Int64
	draws           atomic.Int64
	pointsSpent     atomic.Int64
	prismsSpent     atomic.Int64
	pointsEarned    atomic.Int64
	prismsEarned    atomic.Int64
	extractions     atomic.Int64
	volumesSold     atomic.Int64
}

// Stats is a point-in-time activity snapshot.
type Stats struct {
	Accounts        int   `json:"accounts"`
	Logins          int64 `json:"logins"`
	AccountsCreated int64 `json:"accountsCreated"`
	Draws           int64 `json:"draws"`
	PointsSpent     int64 `json:"pointsSpent"`
	PrismsSpent     int64 `json:"prismsSpent"`
	PointsEarned    int64 `json:"pointsEarned"`
	PrismsEarned    int64 `json:"prismsEarned"`
	Extractions     int64 `json:"extractions"`
	VolumesSold     int64 `json:"volumesSold"`
}

// Stats returns the current activity counters.
func (s *Service) Stats() Stats {
	return Stats{
		Accounts:        s.store.Len(),
		Logins:          s.stats.logins.Load(),
		AccountsCreated: s.stats.accountsCreated.Load(),
		Draws:           s.stats.draws.Load(),
		PointsSpent:     s.stats.pointsSpent.Load(),
		PrismsSpent:     s.stats.prismsSpent.Load(),
		PointsEarned:    s.stats.pointsEarned.Load(),
		PrismsEarned:    s.stats.prismsEarned.Load(),
		Extractions:     s.stats.extractions.Load(),
		VolumesSold:     s.stats.volumesSold.Load(),
	}
}
