package entities

import "time"

// MinContestDuration is the smallest allowed distance between a contest's
// start and end timestamps.
const MinContestDuration = 24 * time.Hour

// PriceSchedule is a pair of fee amounts in platform minor-currency units.
// The global schedule is mutable through SetPrice; the copy snapshotted into
// a contest at creation never changes for that contest's lifetime.
type PriceSchedule struct {
	ParticipationFee uint64
	CreationFee      uint64
}

type Contest struct {
	ContestID      int64
	Owner          string
	Title          string
	BannerURL      string
	StartsAt       time.Time
	EndsAt         time.Time
	Price          PriceSchedule
	ProfitsAccrued uint64
	RewardPool     uint64
	Ended          bool
	Settling       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InProgress reports whether entries and votes are still accepted:
// not ended and the end time has not passed.
func (c Contest) InProgress(now time.Time) bool {
	return !c.Ended && now.UTC().Before(c.EndsAt.UTC())
}

// Expired reports whether the contest has outlived its end time without
// being settled yet.
func (c Contest) Expired(now time.Time) bool {
	return !c.Ended && !now.UTC().Before(c.EndsAt.UTC())
}

// ValidWindow enforces endsAt > startsAt and the minimum duration.
func ValidWindow(startsAt time.Time, endsAt time.Time) bool {
	if !endsAt.After(startsAt) {
		return false
	}
	return endsAt.Sub(startsAt) >= MinContestDuration
}

// Obligations is the amount of held balance earmarked for this contest:
// the reward pool plus the contest owner's accrued profits.
func (c Contest) Obligations() (uint64, bool) {
	return AddChecked(c.RewardPool, c.ProfitsAccrued)
}

// AddChecked adds two ledger amounts and reports overflow instead of
// wrapping.
func AddChecked(a uint64, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// MulChecked multiplies a ledger amount by a count, reporting overflow.
func MulChecked(a uint64, n uint64) (uint64, bool) {
	if a == 0 || n == 0 {
		return 0, true
	}
	product := a * n
	if product/a != n {
		return 0, false
	}
	return product, true
}
