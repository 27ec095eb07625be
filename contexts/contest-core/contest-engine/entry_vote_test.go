package contestengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pictora/contexts/contest-core/contest-engine/domain/entities"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	httptransport "pictora/contexts/contest-core/contest-engine/transport/http"
)

func TestAddEntryFundsRewardPoolWhenContestChargesNoParticipationFee(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	contest := createContest(t, module, "carol", "Golden Hour", 5, 0, 100)

	// Required payment: contest creation fee 5 + contest participation fee 0
	// + platform participation fee 10.
	entry := addEntry(t, module, "alice", contest.ContestID, "Dunes", 15)
	if entry.EntryID != 0 {
		t.Fatalf("expected first entry id 0, got %d", entry.EntryID)
	}
	if entry.EntryKey != entities.DeriveEntryKey("alice", contest.ContestID) {
		t.Fatalf("unexpected entry key %q", entry.EntryKey)
	}

	got, err := module.Handler.GetContestHandler(ctx, contest.ContestID)
	if err != nil {
		t.Fatalf("get contest failed: %v", err)
	}
	if got.Contest.ProfitsAccrued != 5 {
		t.Fatalf("expected creation fee 5 accrued to owner, got %d", got.Contest.ProfitsAccrued)
	}
	if got.Contest.RewardPool != 110 {
		t.Fatalf("expected platform participation fee in reward pool (110), got %d", got.Contest.RewardPool)
	}
	if held := heldBalance(t, module); held != 115 {
		t.Fatalf("expected 115 held, got %d", held)
	}

	profits, err := module.Handler.ProfitsHandler(ctx)
	if err != nil || profits.Profits != 0 {
		t.Fatalf("expected no platform profits in this split, got %+v err=%v", profits, err)
	}
}

func TestAddEntrySplitsPlatformFeeWhenContestChargesParticipationFee(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	contest := createContest(t, module, "carol", "Golden Hour", 5, 7, 100)

	// Required payment: 5 + 7 + 10.
	addEntry(t, module, "alice", contest.ContestID, "Dunes", 22)

	got, err := module.Handler.GetContestHandler(ctx, contest.ContestID)
	if err != nil {
		t.Fatalf("get contest failed: %v", err)
	}
	if got.Contest.ProfitsAccrued != 5 {
		t.Fatalf("expected creation fee 5 accrued to owner, got %d", got.Contest.ProfitsAccrued)
	}
	if got.Contest.RewardPool != 107 {
		t.Fatalf("expected contest participation fee in reward pool (107), got %d", got.Contest.RewardPool)
	}

	profits, err := module.Handler.ProfitsHandler(ctx)
	if err != nil {
		t.Fatalf("profits query failed: %v", err)
	}
	if profits.Profits != globalParticipationFee {
		t.Fatalf("expected platform fee %d recorded as profits, got %d", globalParticipationFee, profits.Profits)
	}
}

func TestAddEntryRejectsDuplicateAndUnderpayment(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	contest := createContest(t, module, "carol", "Golden Hour", 5, 0, 100)
	addEntry(t, module, "alice", contest.ContestID, "Dunes", 15)

	_, err := module.Handler.AddEntryHandler(ctx, "alice", contest.ContestID, httptransport.AddEntryRequest{
		Title:   "Dunes Again",
		Payment: 15,
	})
	if !errors.Is(err, domainerrors.ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}

	heldBefore := heldBalance(t, module)
	_, err = module.Handler.AddEntryHandler(ctx, "bob", contest.ContestID, httptransport.AddEntryRequest{
		Title:   "Harbor",
		Payment: 14,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientPayment) {
		t.Fatalf("expected ErrInsufficientPayment, got %v", err)
	}
	if held := heldBalance(t, module); held != heldBefore {
		t.Fatalf("underpaid entry must not move funds: held %d, want %d", held, heldBefore)
	}
}

func TestAddEntryRequiresRunningContest(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	contest := createContest(t, module, "carol", "Golden Hour", 5, 0, 100)

	_, err := module.Handler.AddEntryHandler(ctx, "alice", 42, httptransport.AddEntryRequest{Title: "Dunes", Payment: 15})
	if !errors.Is(err, domainerrors.ErrContestNotFound) {
		t.Fatalf("expected ErrContestNotFound, got %v", err)
	}

	module.Store.SetNow(testBase.Add(49 * time.Hour))
	_, err = module.Handler.AddEntryHandler(ctx, "alice", contest.ContestID, httptransport.AddEntryRequest{Title: "Dunes", Payment: 15})
	if !errors.Is(err, domainerrors.ErrContestNotInProgress) {
		t.Fatalf("expected ErrContestNotInProgress, got %v", err)
	}
}

func TestCastVote(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	contest := createContest(t, module, "carol", "Golden Hour", 5, 0, 100)
	entry := addEntry(t, module, "alice", contest.ContestID, "Dunes", 15)

	voted, err := module.Handler.CastVoteHandler(ctx, "victor", contest.ContestID, entry.EntryID, httptransport.CastVoteRequest{
		Message: "love the light",
	})
	if err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if voted.Entry.VoteCount != 1 {
		t.Fatalf("expected vote count 1, got %d", voted.Entry.VoteCount)
	}

	_, err = module.Handler.CastVoteHandler(ctx, "victor", contest.ContestID, entry.EntryID, httptransport.CastVoteRequest{})
	if !errors.Is(err, domainerrors.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}

	_, err = module.Handler.CastVoteHandler(ctx, "victor", contest.ContestID, 42, httptransport.CastVoteRequest{})
	if !errors.Is(err, domainerrors.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	has, err := module.Handler.HasVotedHandler(ctx, "victor", entry.EntryKey)
	if err != nil || !has.HasVoted {
		t.Fatalf("expected victor to have voted, got %+v err=%v", has, err)
	}
	has, err = module.Handler.HasVotedHandler(ctx, "wanda", entry.EntryKey)
	if err != nil || has.HasVoted {
		t.Fatalf("expected wanda to not have voted, got %+v err=%v", has, err)
	}

	votes, err := module.Handler.ListVotesHandler(ctx, entry.EntryKey)
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes.Items) != 1 || votes.Items[0].Voter != "victor" || votes.Items[0].Message != "love the light" {
		t.Fatalf("unexpected votes: %+v", votes.Items)
	}

	module.Store.SetNow(testBase.Add(49 * time.Hour))
	_, err = module.Handler.CastVoteHandler(ctx, "wanda", contest.ContestID, entry.EntryID, httptransport.CastVoteRequest{})
	if !errors.Is(err, domainerrors.ErrContestNotInProgress) {
		t.Fatalf("expected ErrContestNotInProgress after end time, got %v", err)
	}
}

func TestEntryQueries(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	contest := createContest(t, module, "carol", "Golden Hour", 5, 0, 100)
	addEntry(t, module, "alice", contest.ContestID, "Dunes", 15)
	addEntry(t, module, "bob", contest.ContestID, "Harbor", 15)

	list, err := module.Handler.ListEntriesHandler(ctx, contest.ContestID)
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if len(list.Items) != 2 || list.Items[0].Owner != "alice" || list.Items[1].Owner != "bob" {
		t.Fatalf("unexpected entries: %+v", list.Items)
	}

	has, err := module.Handler.HasEntryHandler(ctx, "alice", contest.ContestID)
	if err != nil || !has.HasEntry {
		t.Fatalf("expected alice to have an entry, got %+v err=%v", has, err)
	}
	has, err = module.Handler.HasEntryHandler(ctx, "dave", contest.ContestID)
	if err != nil || has.HasEntry {
		t.Fatalf("expected dave to have no entry, got %+v err=%v", has, err)
	}

	winner, err := module.Handler.WinningEntryHandler(ctx, contest.ContestID)
	if err != nil {
		t.Fatalf("winning entry query failed: %v", err)
	}
	if winner.Decided || winner.Entry != nil {
		t.Fatalf("expected no winner while contest runs, got %+v", winner)
	}
}
