package errors

import "errors"

var (
	ErrNotInitialized       = errors.New("engine is not initialized")
	ErrAlreadyInitialized   = errors.New("engine is already initialized")
	ErrNotPlatformOwner     = errors.New("caller is not the platform owner")
	ErrNotAuthorized        = errors.New("caller is not the contest owner or the platform owner")
	ErrInvalidContestInput  = errors.New("invalid contest input")
	ErrInvalidContestWindow = errors.New("contest must run for at least one day and end after it starts")
	ErrInvalidEntryInput    = errors.New("invalid entry input")
	ErrInvalidVoteInput     = errors.New("invalid vote input")
	ErrContestNotFound      = errors.New("contest not found")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrDuplicateTitle       = errors.New("contest title is already taken")
	ErrDuplicateEntry       = errors.New("owner already has an entry in this contest")
	ErrDuplicateVote        = errors.New("voter already voted for this entry")
	ErrContestEnded         = errors.New("contest is already ended")
	ErrContestNotInProgress = errors.New("contest is not in progress")
	ErrContestNotExpired    = errors.New("contest end time has not passed")
	ErrContestLimitReached  = errors.New("caller already has a contest in progress")
	ErrNoRunningContest     = errors.New("caller has no contest in progress")
	ErrInsufficientPayment  = errors.New("payment does not cover the required fees")
	ErrInsufficientBalance  = errors.New("held balance does not cover the pending obligations")
	ErrTransferRejected     = errors.New("value transfer was rejected by the recipient")
	ErrNoProfitsAvailable   = errors.New("no platform profits available")
	ErrSettlementInProgress = errors.New("settlement is already in progress for this contest")
	ErrAmountOverflow       = errors.New("amount arithmetic overflow")
)
