package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pictora/contexts/contest-core/contest-engine/application"
	"pictora/contexts/contest-core/contest-engine/domain/entities"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"
)

// SetPriceCommand replaces the global price schedule. Contests keep the
// schedule snapshotted at their creation time.
type SetPriceCommand struct {
	Caller           string
	ParticipationFee uint64
	CreationFee      uint64
}

type SetPriceUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc SetPriceUseCase) Execute(ctx context.Context, cmd SetPriceCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	err := uc.UoW.InTransaction(ctx, func(repo ports.Repository, _ ports.Treasury) error {
		settings, err := repo.GetSettings(ctx)
		if err != nil {
			return err
		}
		if !settings.IsPlatformOwner(caller) {
			return domainerrors.ErrNotPlatformOwner
		}
		settings.Price = entities.PriceSchedule{
			ParticipationFee: cmd.ParticipationFee,
			CreationFee:      cmd.CreationFee,
		}
		settings.UpdatedAt = uc.Clock.Now().UTC()
		return repo.SaveSettings(ctx, settings)
	})
	if err != nil {
		return err
	}

	logger.Info("price schedule replaced",
		"event", "contest_price_schedule_replaced",
		"module", "contest-core/contest-engine",
		"layer", "application",
		"participation_fee", cmd.ParticipationFee,
		"creation_fee", cmd.CreationFee,
	)
	return nil
}
