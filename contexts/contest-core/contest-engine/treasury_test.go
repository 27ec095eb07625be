package contestengine_test

import (
	"context"
	"errors"
	"testing"

	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
)

func TestWithdrawProfitsAuthorization(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	if _, err := module.Handler.WithdrawProfitsHandler(ctx, "stranger"); !errors.Is(err, domainerrors.ErrNotPlatformOwner) {
		t.Fatalf("expected ErrNotPlatformOwner, got %v", err)
	}
	if _, err := module.Handler.WithdrawProfitsHandler(ctx, platformOwner); !errors.Is(err, domainerrors.ErrNoProfitsAvailable) {
		t.Fatalf("expected ErrNoProfitsAvailable with no revenue, got %v", err)
	}
}

func TestWithdrawProfitsRepeatsUntilCustodyRunsDry(t *testing.T) {
	module := newInitializedModule(t)
	ctx := context.Background()

	// Two entries at a contest participation fee of 7 route 2 * 10 platform
	// fees into the profits counter. Custody holds 100 + 2 * 22 = 144.
	contest := createContest(t, module, "carol", "Golden Hour", 5, 7, 100)
	addEntry(t, module, "alice", contest.ContestID, "Dunes", 22)
	addEntry(t, module, "bob", contest.ContestID, "Harbor", 22)

	// The profits counter is not debited by a withdrawal, so the same 20 pays
	// out on every call while the held balance covers it: 144 down to 4 in
	// seven steps.
	for i := 0; i < 7; i++ {
		result, err := module.Handler.WithdrawProfitsHandler(ctx, platformOwner)
		if err != nil {
			t.Fatalf("withdrawal %d failed: %v", i+1, err)
		}
		if result.Amount != 20 {
			t.Fatalf("withdrawal %d: expected amount 20, got %d", i+1, result.Amount)
		}
	}
	if _, err := module.Handler.WithdrawProfitsHandler(ctx, platformOwner); !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance once custody cannot cover, got %v", err)
	}

	if got := module.Store.AccountBalance(platformOwner); got != 140 {
		t.Fatalf("expected 7 * 20 credited to the platform owner, got %d", got)
	}
	if held := heldBalance(t, module); held != 4 {
		t.Fatalf("expected 4 left in custody, got %d", held)
	}

	// The counter still reports the undebited figure.
	profits, err := module.Handler.ProfitsHandler(ctx)
	if err != nil || profits.Profits != 20 {
		t.Fatalf("expected profits counter still at 20, got %+v err=%v", profits, err)
	}
}
