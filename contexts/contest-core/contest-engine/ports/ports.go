package ports

import (
	"context"
	"time"

	"pictora/contexts/contest-core/contest-engine/domain/entities"
	contractsv1 "pictora/contracts/gen/events/v1"
)

// Repository is the engine's single storage space. Entities are append-only:
// contests and entries are created with ids equal to the current sequence
// length, votes are appended per entry key, nothing is ever deleted.
type Repository interface {
	GetSettings(ctx context.Context) (entities.Settings, error)
	SaveSettings(ctx context.Context, settings entities.Settings) error

	CreateContest(ctx context.Context, contest entities.Contest) (int64, error)
	UpdateContest(ctx context.Context, contest entities.Contest) error
	GetContest(ctx context.Context, contestID int64) (entities.Contest, error)
	ListContests(ctx context.Context) ([]entities.Contest, error)
	ListContestsByOwner(ctx context.Context, owner string) ([]entities.Contest, error)
	TitleExists(ctx context.Context, title string) (bool, error)

	AppendEntry(ctx context.Context, entry entities.Entry) (int64, error)
	UpdateEntry(ctx context.Context, entry entities.Entry) error
	GetEntry(ctx context.Context, contestID int64, entryID int64) (entities.Entry, error)
	GetEntryByOwner(ctx context.Context, contestID int64, owner string) (entities.Entry, bool, error)
	ListEntries(ctx context.Context, contestID int64) ([]entities.Entry, error)

	AppendVote(ctx context.Context, vote entities.Vote) error
	ListVotes(ctx context.Context, entryKey string) ([]entities.Vote, error)
	HasVoted(ctx context.Context, entryKey string, voter string) (bool, error)

	SetWinningEntry(ctx context.Context, contestID int64, entryID int64) error
	GetWinningEntry(ctx context.Context, contestID int64) (entities.Entry, bool, error)

	// BeginSettlement sets the per-contest reentrancy guard. It fails with
	// ErrSettlementInProgress when the guard is already set. The guard is
	// part of transactional state: an aborted settlement rolls it back.
	BeginSettlement(ctx context.Context, contestID int64) error
	FinishSettlement(ctx context.Context, contestID int64) error

	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

// Treasury is the engine's value custody. Deposit moves a caller payment
// into the held balance; Payout moves held funds to an external account and
// may be rejected by the recipient, which must abort the whole operation.
type Treasury interface {
	HeldBalance(ctx context.Context) (uint64, error)
	Deposit(ctx context.Context, from string, amount uint64) error
	Payout(ctx context.Context, recipient string, amount uint64) error
}

// UnitOfWork is the engine's single atomicity boundary: fn either fully
// applies or fully aborts, including every treasury movement it made.
type UnitOfWork interface {
	InTransaction(ctx context.Context, fn func(repo Repository, treasury Treasury) error) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
