package contestengine_test

import (
	"context"
	"testing"
	"time"

	contestengine "pictora/contexts/contest-core/contest-engine"
	httptransport "pictora/contexts/contest-core/contest-engine/transport/http"
)

const (
	platformOwner          = "platform-owner"
	globalParticipationFee = uint64(10)
	globalCreationFee      = uint64(50)
)

var testBase = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func newInitializedModule(t *testing.T) contestengine.Module {
	t.Helper()
	module := contestengine.NewInMemoryModule(nil, nil)
	module.Store.SetNow(testBase)
	err := module.Handler.InitializeHandler(context.Background(), platformOwner, httptransport.InitializeRequest{
		ParticipationFee: globalParticipationFee,
		CreationFee:      globalCreationFee,
	})
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	return module
}

func createContest(
	t *testing.T,
	module contestengine.Module,
	owner string,
	title string,
	creationFee uint64,
	participationFee uint64,
	payment uint64,
) httptransport.ContestDTO {
	t.Helper()
	resp, err := module.Handler.CreateContestHandler(context.Background(), owner, httptransport.CreateContestRequest{
		Title:                 title,
		StartsAt:              testBase.Format(time.RFC3339),
		EndsAt:                testBase.Add(48 * time.Hour).Format(time.RFC3339),
		EntryCreationFee:      creationFee,
		EntryParticipationFee: participationFee,
		Payment:               payment,
	})
	if err != nil {
		t.Fatalf("create contest %q failed: %v", title, err)
	}
	return resp.Contest
}

func addEntry(
	t *testing.T,
	module contestengine.Module,
	owner string,
	contestID int64,
	title string,
	payment uint64,
) httptransport.EntryDTO {
	t.Helper()
	resp, err := module.Handler.AddEntryHandler(context.Background(), owner, contestID, httptransport.AddEntryRequest{
		Title:   title,
		Payment: payment,
	})
	if err != nil {
		t.Fatalf("add entry for %s failed: %v", owner, err)
	}
	return resp.Entry
}

func castVotes(t *testing.T, module contestengine.Module, contestID int64, entryID int64, voters ...string) {
	t.Helper()
	for _, voter := range voters {
		_, err := module.Handler.CastVoteHandler(context.Background(), voter, contestID, entryID, httptransport.CastVoteRequest{})
		if err != nil {
			t.Fatalf("vote by %s on entry %d failed: %v", voter, entryID, err)
		}
	}
}

func heldBalance(t *testing.T, module contestengine.Module) uint64 {
	t.Helper()
	held, err := module.Store.HeldBalance(context.Background())
	if err != nil {
		t.Fatalf("held balance failed: %v", err)
	}
	return held
}
