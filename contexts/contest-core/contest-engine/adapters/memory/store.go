package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"pictora/contexts/contest-core/contest-engine/domain/entities"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

type storeState struct {
	settings entities.Settings
	contests []entities.Contest
	entries  map[int64][]entities.Entry
	byOwner  map[int64]map[string]int64
	votes    map[string][]entities.Vote
	voters   map[string]map[string]bool
	winners  map[int64]int64
	outbox   []outboxRecord

	held     uint64
	accounts map[string]uint64
	frozen   map[string]bool
}

// Store is the in-memory adapter backing unit tests and local wiring. It
// implements the repository, treasury, unit-of-work, clock, and id-generator
// ports over one mutex-guarded state, with snapshot/rollback transactions
// honoring the engine's all-or-nothing boundary.
type Store struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state storeState

	now *time.Time

	// PayoutHook runs before a payout commits. A non-nil error rejects the
	// transfer. Tests use it to model recipients that refuse or misbehave.
	// The hook runs inside the surrounding transaction while txMu is held,
	// so it must not start another InTransaction or invoke a use case; it
	// may call the store's repository methods directly.
	PayoutHook func(recipient string, amount uint64) error
}

func NewStore(seed []entities.Contest) *Store {
	contests := make([]entities.Contest, 0, len(seed))
	for i, contest := range seed {
		contest.ContestID = int64(i)
		contests = append(contests, contest)
	}
	return &Store{
		state: storeState{
			contests: contests,
			entries:  make(map[int64][]entities.Entry),
			byOwner:  make(map[int64]map[string]int64),
			votes:    make(map[string][]entities.Vote),
			voters:   make(map[string]map[string]bool),
			winners:  make(map[int64]int64),
			accounts: make(map[string]uint64),
			frozen:   make(map[string]bool),
		},
	}
}

// SetNow pins the store clock for tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pinned := now.UTC()
	s.now = &pinned
}

// FreezeAccount makes every payout to the account fail as rejected.
func (s *Store) FreezeAccount(account string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.frozen[strings.TrimSpace(account)] = true
}

// AccountBalance reports the credited balance of an external account.
func (s *Store) AccountBalance(account string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.accounts[strings.TrimSpace(account)]
}

func (s *Store) InTransaction(ctx context.Context, fn func(repo ports.Repository, treasury ports.Treasury) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.state.clone()
	s.mu.Unlock()

	if err := fn(s, s); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now != nil {
		return *s.now
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) GetSettings(_ context.Context) (entities.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.settings.Initialized {
		return entities.Settings{}, domainerrors.ErrNotInitialized
	}
	return s.state.settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings entities.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.settings = settings
	return nil
}

func (s *Store) CreateContest(_ context.Context, contest entities.Contest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contest.ContestID = int64(len(s.state.contests))
	s.state.contests = append(s.state.contests, contest)
	return contest.ContestID, nil
}

func (s *Store) UpdateContest(_ context.Context, contest entities.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contest.ContestID < 0 || contest.ContestID >= int64(len(s.state.contests)) {
		return domainerrors.ErrContestNotFound
	}
	s.state.contests[contest.ContestID] = contest
	return nil
}

func (s *Store) GetContest(_ context.Context, contestID int64) (entities.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if contestID < 0 || contestID >= int64(len(s.state.contests)) {
		return entities.Contest{}, domainerrors.ErrContestNotFound
	}
	return s.state.contests[contestID], nil
}

func (s *Store) ListContests(_ context.Context) ([]entities.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Contest(nil), s.state.contests...), nil
}

func (s *Store) ListContestsByOwner(_ context.Context, owner string) ([]entities.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner = strings.TrimSpace(owner)
	var owned []entities.Contest
	for _, contest := range s.state.contests {
		if contest.Owner == owner {
			owned = append(owned, contest)
		}
	}
	return owned, nil
}

func (s *Store) TitleExists(_ context.Context, title string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	title = strings.TrimSpace(title)
	for _, contest := range s.state.contests {
		if contest.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) AppendEntry(_ context.Context, entry entities.Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.EntryID = int64(len(s.state.entries[entry.ContestID]))
	s.state.entries[entry.ContestID] = append(s.state.entries[entry.ContestID], entry)
	if s.state.byOwner[entry.ContestID] == nil {
		s.state.byOwner[entry.ContestID] = make(map[string]int64)
	}
	s.state.byOwner[entry.ContestID][entry.Owner] = entry.EntryID
	return entry.EntryID, nil
}

func (s *Store) UpdateEntry(_ context.Context, entry entities.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.state.entries[entry.ContestID]
	if entry.EntryID < 0 || entry.EntryID >= int64(len(list)) {
		return domainerrors.ErrEntryNotFound
	}
	list[entry.EntryID] = entry
	return nil
}

func (s *Store) GetEntry(_ context.Context, contestID int64, entryID int64) (entities.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.state.entries[contestID]
	if entryID < 0 || entryID >= int64(len(list)) {
		return entities.Entry{}, domainerrors.ErrEntryNotFound
	}
	return list[entryID], nil
}

func (s *Store) GetEntryByOwner(_ context.Context, contestID int64, owner string) (entities.Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index, ok := s.state.byOwner[contestID][strings.TrimSpace(owner)]
	if !ok {
		return entities.Entry{}, false, nil
	}
	return s.state.entries[contestID][index], true, nil
}

func (s *Store) ListEntries(_ context.Context, contestID int64) ([]entities.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Entry(nil), s.state.entries[contestID]...), nil
}

func (s *Store) AppendVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.votes[vote.EntryKey] = append(s.state.votes[vote.EntryKey], vote)
	if s.state.voters[vote.EntryKey] == nil {
		s.state.voters[vote.EntryKey] = make(map[string]bool)
	}
	s.state.voters[vote.EntryKey][vote.Voter] = true
	return nil
}

func (s *Store) ListVotes(_ context.Context, entryKey string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Vote(nil), s.state.votes[strings.TrimSpace(entryKey)]...), nil
}

func (s *Store) HasVoted(_ context.Context, entryKey string, voter string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.voters[strings.TrimSpace(entryKey)][strings.TrimSpace(voter)], nil
}

func (s *Store) SetWinningEntry(_ context.Context, contestID int64, entryID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.winners[contestID] = entryID
	return nil
}

func (s *Store) GetWinningEntry(_ context.Context, contestID int64) (entities.Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entryID, ok := s.state.winners[contestID]
	if !ok {
		return entities.Entry{}, false, nil
	}
	list := s.state.entries[contestID]
	if entryID < 0 || entryID >= int64(len(list)) {
		return entities.Entry{}, false, nil
	}
	return list[entryID], true, nil
}

func (s *Store) BeginSettlement(_ context.Context, contestID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contestID < 0 || contestID >= int64(len(s.state.contests)) {
		return domainerrors.ErrContestNotFound
	}
	if s.state.contests[contestID].Settling {
		return domainerrors.ErrSettlementInProgress
	}
	s.state.contests[contestID].Settling = true
	return nil
}

func (s *Store) FinishSettlement(_ context.Context, contestID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contestID < 0 || contestID >= int64(len(s.state.contests)) {
		return domainerrors.ErrContestNotFound
	}
	s.state.contests[contestID].Settling = false
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.outbox = append(s.state.outbox, outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     envelope.EventID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 100
	}
	var pending []ports.OutboxMessage
	for _, record := range s.state.outbox {
		if record.published {
			continue
		}
		pending = append(pending, record.message)
		if len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, record := range s.state.outbox {
		if record.message.OutboxID == outboxID {
			s.state.outbox[i].published = true
			return nil
		}
	}
	return nil
}

func (s *Store) HeldBalance(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.held, nil
}

func (s *Store) Deposit(_ context.Context, _ string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	held, ok := entities.AddChecked(s.state.held, amount)
	if !ok {
		return domainerrors.ErrAmountOverflow
	}
	s.state.held = held
	return nil
}

func (s *Store) Payout(_ context.Context, recipient string, amount uint64) error {
	recipient = strings.TrimSpace(recipient)

	s.mu.Lock()
	if s.state.held < amount {
		s.mu.Unlock()
		return domainerrors.ErrInsufficientBalance
	}
	if s.state.frozen[recipient] {
		s.mu.Unlock()
		return domainerrors.ErrTransferRejected
	}
	hook := s.PayoutHook
	s.mu.Unlock()

	// The hook models a recipient acting during the transfer; it runs with
	// mu released and before any balance moves. Repository calls from the
	// hook are fine, a nested InTransaction is not (txMu is held).
	if hook != nil {
		if err := hook(recipient, amount); err != nil {
			return domainerrors.ErrTransferRejected
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.held < amount {
		return domainerrors.ErrInsufficientBalance
	}
	s.state.held -= amount
	credited, ok := entities.AddChecked(s.state.accounts[recipient], amount)
	if !ok {
		return domainerrors.ErrAmountOverflow
	}
	s.state.accounts[recipient] = credited
	return nil
}

func (st storeState) clone() storeState {
	cloned := storeState{
		settings: st.settings,
		contests: append([]entities.Contest(nil), st.contests...),
		entries:  make(map[int64][]entities.Entry, len(st.entries)),
		byOwner:  make(map[int64]map[string]int64, len(st.byOwner)),
		votes:    make(map[string][]entities.Vote, len(st.votes)),
		voters:   make(map[string]map[string]bool, len(st.voters)),
		winners:  make(map[int64]int64, len(st.winners)),
		outbox:   append([]outboxRecord(nil), st.outbox...),
		held:     st.held,
		accounts: make(map[string]uint64, len(st.accounts)),
		frozen:   make(map[string]bool, len(st.frozen)),
	}
	for contestID, list := range st.entries {
		cloned.entries[contestID] = append([]entities.Entry(nil), list...)
	}
	for contestID, owners := range st.byOwner {
		copied := make(map[string]int64, len(owners))
		for owner, entryID := range owners {
			copied[owner] = entryID
		}
		cloned.byOwner[contestID] = copied
	}
	for entryKey, list := range st.votes {
		cloned.votes[entryKey] = append([]entities.Vote(nil), list...)
	}
	for entryKey, set := range st.voters {
		copied := make(map[string]bool, len(set))
		for voter := range set {
			copied[voter] = true
		}
		cloned.voters[entryKey] = copied
	}
	for contestID, entryID := range st.winners {
		cloned.winners[contestID] = entryID
	}
	for account, balance := range st.accounts {
		cloned.accounts[account] = balance
	}
	for account := range st.frozen {
		cloned.frozen[account] = true
	}
	return cloned
}
