package contestengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	contestengine "pictora/contexts/contest-core/contest-engine"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	httptransport "pictora/contexts/contest-core/contest-engine/transport/http"
)

func TestInitializeOnce(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	err := module.Handler.InitializeHandler(ctx, "someone-else", httptransport.InitializeRequest{
		ParticipationFee: 1,
		CreationFee:      2,
	})
	if !errors.Is(err, domainerrors.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}

	price, err := module.Handler.PriceHandler(ctx)
	if err != nil {
		t.Fatalf("price query failed: %v", err)
	}
	if price.ParticipationFee != globalParticipationFee || price.CreationFee != globalCreationFee {
		t.Fatalf("unexpected price schedule: %+v", price)
	}

	owner, err := module.Handler.OwnerHandler(ctx)
	if err != nil {
		t.Fatalf("owner query failed: %v", err)
	}
	if owner.Owner != platformOwner {
		t.Fatalf("expected platform owner %q, got %q", platformOwner, owner.Owner)
	}
}

func TestOperationsRequireInitialization(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil, nil)
	module.Store.SetNow(testBase)
	ctx := context.Background()

	_, err := module.Handler.CreateContestHandler(ctx, "alice", httptransport.CreateContestRequest{
		Title:    "Sunset Shots",
		StartsAt: testBase.Format(time.RFC3339),
		EndsAt:   testBase.Add(48 * time.Hour).Format(time.RFC3339),
		Payment:  100,
	})
	if !errors.Is(err, domainerrors.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := module.Handler.PriceHandler(ctx); !errors.Is(err, domainerrors.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from price query, got %v", err)
	}
}

func TestSetPriceRequiresPlatformOwner(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	err := module.Handler.SetPriceHandler(ctx, "stranger", httptransport.SetPriceRequest{
		ParticipationFee: 3,
		CreationFee:      30,
	})
	if !errors.Is(err, domainerrors.ErrNotPlatformOwner) {
		t.Fatalf("expected ErrNotPlatformOwner, got %v", err)
	}

	err = module.Handler.SetPriceHandler(ctx, platformOwner, httptransport.SetPriceRequest{
		ParticipationFee: 3,
		CreationFee:      30,
	})
	if err != nil {
		t.Fatalf("set price failed: %v", err)
	}
	price, err := module.Handler.PriceHandler(ctx)
	if err != nil {
		t.Fatalf("price query failed: %v", err)
	}
	if price.ParticipationFee != 3 || price.CreationFee != 30 {
		t.Fatalf("expected updated schedule 3/30, got %+v", price)
	}
}

func TestCreateContestValidation(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	_, err := module.Handler.CreateContestHandler(ctx, "alice", httptransport.CreateContestRequest{
		Title:    "Too Short",
		StartsAt: testBase.Format(time.RFC3339),
		EndsAt:   testBase.Add(23 * time.Hour).Format(time.RFC3339),
		Payment:  100,
	})
	if !errors.Is(err, domainerrors.ErrInvalidContestWindow) {
		t.Fatalf("expected ErrInvalidContestWindow, got %v", err)
	}

	_, err = module.Handler.CreateContestHandler(ctx, "alice", httptransport.CreateContestRequest{
		Title:    "Bad Timestamp",
		StartsAt: "yesterday",
		EndsAt:   testBase.Add(48 * time.Hour).Format(time.RFC3339),
		Payment:  100,
	})
	if !errors.Is(err, domainerrors.ErrInvalidContestInput) {
		t.Fatalf("expected ErrInvalidContestInput for bad timestamp, got %v", err)
	}

	_, err = module.Handler.CreateContestHandler(ctx, "alice", httptransport.CreateContestRequest{
		Title:    "Underpaid",
		StartsAt: testBase.Format(time.RFC3339),
		EndsAt:   testBase.Add(48 * time.Hour).Format(time.RFC3339),
		Payment:  globalCreationFee - 1,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientPayment) {
		t.Fatalf("expected ErrInsufficientPayment, got %v", err)
	}
	if held := heldBalance(t, module); held != 0 {
		t.Fatalf("expected no funds held after rejected create, got %d", held)
	}
}

func TestCreateContestAssignsSequentialIDs(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	first := createContest(t, module, "alice", "Sunset Shots", 5, 0, 100)
	if first.ContestID != 0 {
		t.Fatalf("expected first contest id 0, got %d", first.ContestID)
	}
	if first.RewardPool != 100 {
		t.Fatalf("expected full payment in reward pool, got %d", first.RewardPool)
	}
	if held := heldBalance(t, module); held != 100 {
		t.Fatalf("expected 100 held after create, got %d", held)
	}

	_, err := module.Handler.CreateContestHandler(ctx, "bob", httptransport.CreateContestRequest{
		Title:    "Sunset Shots",
		StartsAt: testBase.Format(time.RFC3339),
		EndsAt:   testBase.Add(48 * time.Hour).Format(time.RFC3339),
		Payment:  100,
	})
	if !errors.Is(err, domainerrors.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}

	second := createContest(t, module, "bob", "City Lights", 5, 0, 100)
	if second.ContestID != 1 {
		t.Fatalf("expected second contest id 1, got %d", second.ContestID)
	}
}

func TestCreateContestLimitsOneRunningPerOwner(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	createContest(t, module, "alice", "Sunset Shots", 5, 0, 100)
	_, err := module.Handler.CreateContestHandler(ctx, "alice", httptransport.CreateContestRequest{
		Title:    "Second One",
		StartsAt: testBase.Format(time.RFC3339),
		EndsAt:   testBase.Add(48 * time.Hour).Format(time.RFC3339),
		Payment:  100,
	})
	if !errors.Is(err, domainerrors.ErrContestLimitReached) {
		t.Fatalf("expected ErrContestLimitReached, got %v", err)
	}

	// The platform owner is exempt from the one-running-contest limit.
	createContest(t, module, platformOwner, "Official Weekly", 5, 0, 100)
	createContest(t, module, platformOwner, "Official Monthly", 5, 0, 100)

	// Once alice's contest is past its end time she may open another.
	module.Store.SetNow(testBase.Add(49 * time.Hour))
	_, err = module.Handler.CreateContestHandler(ctx, "alice", httptransport.CreateContestRequest{
		Title:    "Second One",
		StartsAt: testBase.Add(49 * time.Hour).Format(time.RFC3339),
		EndsAt:   testBase.Add(97 * time.Hour).Format(time.RFC3339),
		Payment:  100,
	})
	if err != nil {
		t.Fatalf("expected create to succeed after previous contest expired, got %v", err)
	}
}

func TestContestQueries(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	created := createContest(t, module, "alice", "Sunset Shots", 5, 0, 100)

	got, err := module.Handler.GetContestHandler(ctx, created.ContestID)
	if err != nil {
		t.Fatalf("get contest failed: %v", err)
	}
	if got.Contest.Title != "Sunset Shots" || got.Contest.Owner != "alice" {
		t.Fatalf("unexpected contest: %+v", got.Contest)
	}
	if _, err := module.Handler.GetContestHandler(ctx, 42); !errors.Is(err, domainerrors.ErrContestNotFound) {
		t.Fatalf("expected ErrContestNotFound, got %v", err)
	}

	list, err := module.Handler.ListContestsHandler(ctx)
	if err != nil {
		t.Fatalf("list contests failed: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("expected 1 contest, got %d", len(list.Items))
	}

	mine, err := module.Handler.MyContestsHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("my contests failed: %v", err)
	}
	if len(mine.Items) != 1 {
		t.Fatalf("expected 1 contest for alice, got %d", len(mine.Items))
	}

	running, err := module.Handler.MyRunningContestHandler(ctx, "alice")
	if err != nil {
		t.Fatalf("my running contest failed: %v", err)
	}
	if running.Contest.ContestID != created.ContestID {
		t.Fatalf("expected running contest %d, got %d", created.ContestID, running.Contest.ContestID)
	}
	if _, err := module.Handler.MyRunningContestHandler(ctx, "bob"); !errors.Is(err, domainerrors.ErrNoRunningContest) {
		t.Fatalf("expected ErrNoRunningContest, got %v", err)
	}

	has, err := module.Handler.HasContestInProgressHandler(ctx, "alice")
	if err != nil || !has.HasContestInProgress {
		t.Fatalf("expected alice to have a contest in progress, got %+v err=%v", has, err)
	}

	inProgress, err := module.Handler.ContestInProgressHandler(ctx, created.ContestID)
	if err != nil || !inProgress.InProgress {
		t.Fatalf("expected contest in progress, got %+v err=%v", inProgress, err)
	}

	module.Store.SetNow(testBase.Add(49 * time.Hour))
	inProgress, err = module.Handler.ContestInProgressHandler(ctx, created.ContestID)
	if err != nil || inProgress.InProgress {
		t.Fatalf("expected contest past end time to not be in progress, got %+v err=%v", inProgress, err)
	}
}
