package entities

import "time"

type Vote struct {
	EntryKey  string
	Voter     string
	Message   string
	CreatedAt time.Time
}

// Settings is the engine-global ledger state: the platform owner identity
// captured once at initialization, the current price schedule, and the
// accumulated platform fee revenue.
type Settings struct {
	PlatformOwner   string
	Price           PriceSchedule
	PlatformProfits uint64
	Initialized     bool
	UpdatedAt       time.Time
}

func (s Settings) IsPlatformOwner(caller string) bool {
	return s.Initialized && s.PlatformOwner == caller
}
