package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "pictora/contexts/contest-core/contest-engine/application"
	"pictora/contexts/contest-core/contest-engine/domain/entities"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"
)

// InitializeCommand captures the platform owner identity exactly once.
type InitializeCommand struct {
	Caller           string
	ParticipationFee uint64
	CreationFee      uint64
}

type InitializeUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc InitializeUseCase) Execute(ctx context.Context, cmd InitializeCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" {
		return domainerrors.ErrInvalidContestInput
	}

	err := uc.UoW.InTransaction(ctx, func(repo ports.Repository, _ ports.Treasury) error {
		if _, err := repo.GetSettings(ctx); err == nil {
			return domainerrors.ErrAlreadyInitialized
		} else if !errors.Is(err, domainerrors.ErrNotInitialized) {
			return err
		}
		return repo.SaveSettings(ctx, entities.Settings{
			PlatformOwner: caller,
			Price: entities.PriceSchedule{
				ParticipationFee: cmd.ParticipationFee,
				CreationFee:      cmd.CreationFee,
			},
			PlatformProfits: 0,
			Initialized:     true,
			UpdatedAt:       uc.Clock.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	logger.Info("engine initialized",
		"event", "contest_engine_initialized",
		"module", "contest-core/contest-engine",
		"layer", "application",
		"platform_owner", caller,
		"participation_fee", cmd.ParticipationFee,
		"creation_fee", cmd.CreationFee,
	)
	return nil
}
