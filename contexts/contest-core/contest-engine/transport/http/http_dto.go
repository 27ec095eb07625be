package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InitializeRequest struct {
	ParticipationFee uint64 `json:"participation_fee"`
	CreationFee      uint64 `json:"creation_fee"`
}

type SetPriceRequest struct {
	ParticipationFee uint64 `json:"participation_fee"`
	CreationFee      uint64 `json:"creation_fee"`
}

type PriceResponse struct {
	ParticipationFee uint64 `json:"participation_fee"`
	CreationFee      uint64 `json:"creation_fee"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

type ProfitsResponse struct {
	Profits uint64 `json:"profits"`
}

type WithdrawProfitsResponse struct {
	Amount uint64 `json:"amount"`
}

type CreateContestRequest struct {
	Title                 string `json:"title"`
	BannerURL             string `json:"banner_url"`
	StartsAt              string `json:"starts_at"`
	EndsAt                string `json:"ends_at"`
	EntryCreationFee      uint64 `json:"entry_creation_fee"`
	EntryParticipationFee uint64 `json:"entry_participation_fee"`
	Payment               uint64 `json:"payment"`
}

type CreateContestResponse struct {
	Contest ContestDTO `json:"contest"`
}

type ContestDTO struct {
	ContestID             int64  `json:"contest_id"`
	Owner                 string `json:"owner"`
	Title                 string `json:"title"`
	BannerURL             string `json:"banner_url,omitempty"`
	StartsAt              string `json:"starts_at"`
	EndsAt                string `json:"ends_at"`
	EntryCreationFee      uint64 `json:"entry_creation_fee"`
	EntryParticipationFee uint64 `json:"entry_participation_fee"`
	ProfitsAccrued        uint64 `json:"profits_accrued"`
	RewardPool            uint64 `json:"reward_pool"`
	Ended                 bool   `json:"ended"`
	CreatedAt             string `json:"created_at"`
	UpdatedAt             string `json:"updated_at"`
}

type GetContestResponse struct {
	Contest ContestDTO `json:"contest"`
}

type ListContestsResponse struct {
	Items []ContestDTO `json:"items"`
}

type ContestInProgressResponse struct {
	InProgress bool `json:"in_progress"`
}

type HasContestInProgressResponse struct {
	HasContestInProgress bool `json:"has_contest_in_progress"`
}

type EndOutdatedResponse struct {
	EndedContestIDs []int64 `json:"ended_contest_ids"`
}

type AddEntryRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Payment  uint64 `json:"payment"`
}

type AddEntryResponse struct {
	Entry EntryDTO `json:"entry"`
}

type EntryDTO struct {
	EntryID   int64  `json:"entry_id"`
	EntryKey  string `json:"entry_key"`
	ContestID int64  `json:"contest_id"`
	Owner     string `json:"owner"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	VoteCount uint64 `json:"vote_count"`
	CreatedAt string `json:"created_at"`
}

type ListEntriesResponse struct {
	Items []EntryDTO `json:"items"`
}

type HasEntryResponse struct {
	HasEntry bool `json:"has_entry"`
}

type WinningEntryResponse struct {
	Entry   *EntryDTO `json:"entry,omitempty"`
	Decided bool      `json:"decided"`
}

type CastVoteRequest struct {
	Message string `json:"message"`
}

type CastVoteResponse struct {
	Entry EntryDTO `json:"entry"`
}

type VoteDTO struct {
	EntryKey  string `json:"entry_key"`
	Voter     string `json:"voter"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ListVotesResponse struct {
	Items []VoteDTO `json:"items"`
}

type HasVotedResponse struct {
	HasVoted bool `json:"has_voted"`
}
