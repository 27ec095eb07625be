package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pictora/contexts/contest-core/contest-engine/application"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"
)

// WithdrawProfitsCommand pays the accumulated platform fee revenue to the
// platform owner. The counter is deliberately not debited afterwards: a
// later call resends the same amount whenever the held balance covers it
// again. The repeat-payment behavior is part of the ledger contract and is
// asserted in tests.
type WithdrawProfitsCommand struct {
	Caller string
}

type WithdrawProfitsResult struct {
	Amount uint64
}

type WithdrawProfitsUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc WithdrawProfitsUseCase) Execute(ctx context.Context, cmd WithdrawProfitsCommand) (WithdrawProfitsResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	var amount uint64
	err := uc.UoW.InTransaction(ctx, func(repo ports.Repository, treasury ports.Treasury) error {
		settings, err := repo.GetSettings(ctx)
		if err != nil {
			return err
		}
		if !settings.IsPlatformOwner(caller) {
			return domainerrors.ErrNotPlatformOwner
		}
		if settings.PlatformProfits == 0 {
			return domainerrors.ErrNoProfitsAvailable
		}
		held, err := treasury.HeldBalance(ctx)
		if err != nil {
			return err
		}
		if held < settings.PlatformProfits {
			return domainerrors.ErrInsufficientBalance
		}
		amount = settings.PlatformProfits
		return treasury.Payout(ctx, settings.PlatformOwner, amount)
	})
	if err != nil {
		return WithdrawProfitsResult{}, err
	}

	logger.Info("platform profits withdrawn",
		"event", "contest_platform_profits_withdrawn",
		"module", "contest-core/contest-engine",
		"layer", "application",
		"amount", amount,
	)
	return WithdrawProfitsResult{Amount: amount}, nil
}
