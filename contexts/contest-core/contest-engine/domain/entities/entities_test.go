package entities

import (
	"testing"
	"time"
)

func TestSelectWinnerFirstMaxWinsTies(t *testing.T) {
	entries := []Entry{
		{EntryID: 0, Owner: "a", VoteCount: 2},
		{EntryID: 1, Owner: "b", VoteCount: 5},
		{EntryID: 2, Owner: "c", VoteCount: 5},
		{EntryID: 3, Owner: "d", VoteCount: 1},
	}
	winner, found := SelectWinner(entries)
	if !found {
		t.Fatalf("expected a winner")
	}
	if winner.EntryID != 1 {
		t.Fatalf("expected earliest entry at the maximum to win, got entry %d", winner.EntryID)
	}
}

func TestSelectWinnerNoEntries(t *testing.T) {
	if _, found := SelectWinner(nil); found {
		t.Fatalf("expected no winner for empty entry list")
	}
}

func TestSelectWinnerSingleEntryWithZeroVotes(t *testing.T) {
	winner, found := SelectWinner([]Entry{{EntryID: 0, Owner: "solo"}})
	if !found || winner.Owner != "solo" {
		t.Fatalf("expected the only entry to win, got found=%v winner=%+v", found, winner)
	}
}

func TestDeriveEntryKeyDeterministic(t *testing.T) {
	key := DeriveEntryKey("user-1", 3)
	if key != DeriveEntryKey("user-1", 3) {
		t.Fatalf("expected stable key for same owner and contest")
	}
	if len(key) != 64 {
		t.Fatalf("expected sha256 hex key, got %d chars", len(key))
	}
	if key == DeriveEntryKey("user-2", 3) {
		t.Fatalf("expected different key for different owner")
	}
	if key == DeriveEntryKey("user-1", 4) {
		t.Fatalf("expected different key for different contest")
	}
	if key != DeriveEntryKey("  user-1  ", 3) {
		t.Fatalf("expected owner to be trimmed before hashing")
	}
}

func TestContestLifecyclePredicates(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	contest := Contest{StartsAt: start, EndsAt: end}

	if !contest.InProgress(end.Add(-time.Second)) {
		t.Fatalf("expected contest in progress before end time")
	}
	if contest.InProgress(end) {
		t.Fatalf("expected contest no longer in progress at end time")
	}
	if contest.Expired(end.Add(-time.Second)) {
		t.Fatalf("expected contest not expired before end time")
	}
	if !contest.Expired(end) {
		t.Fatalf("expected contest expired at end time")
	}

	contest.Ended = true
	if contest.InProgress(start) || contest.Expired(end) {
		t.Fatalf("ended contest must be neither in progress nor expired")
	}
}

func TestValidWindow(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if ValidWindow(start, start.Add(23*time.Hour)) {
		t.Fatalf("expected window shorter than the minimum duration to be invalid")
	}
	if !ValidWindow(start, start.Add(MinContestDuration)) {
		t.Fatalf("expected window of exactly the minimum duration to be valid")
	}
	if ValidWindow(start, start) || ValidWindow(start, start.Add(-time.Hour)) {
		t.Fatalf("expected non-positive window to be invalid")
	}
}

func TestAddCheckedOverflow(t *testing.T) {
	if _, ok := AddChecked(^uint64(0), 1); ok {
		t.Fatalf("expected overflow on max uint64 + 1")
	}
	sum, ok := AddChecked(40, 2)
	if !ok || sum != 42 {
		t.Fatalf("expected 42, got %d ok=%v", sum, ok)
	}
}

func TestMulCheckedOverflow(t *testing.T) {
	if _, ok := MulChecked(^uint64(0), 2); ok {
		t.Fatalf("expected overflow on max uint64 * 2")
	}
	product, ok := MulChecked(6, 7)
	if !ok || product != 42 {
		t.Fatalf("expected 42, got %d ok=%v", product, ok)
	}
	if product, ok := MulChecked(0, ^uint64(0)); !ok || product != 0 {
		t.Fatalf("expected zero product without overflow")
	}
}

func TestObligations(t *testing.T) {
	contest := Contest{RewardPool: 100, ProfitsAccrued: 25}
	total, ok := contest.Obligations()
	if !ok || total != 125 {
		t.Fatalf("expected obligations 125, got %d ok=%v", total, ok)
	}
	contest = Contest{RewardPool: ^uint64(0), ProfitsAccrued: 1}
	if _, ok := contest.Obligations(); ok {
		t.Fatalf("expected obligations overflow to be reported")
	}
}
