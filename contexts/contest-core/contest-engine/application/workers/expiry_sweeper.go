package workers

import (
	"context"
	"errors"
	"log/slog"

	application "pictora/contexts/contest-core/contest-engine/application"
	"pictora/contexts/contest-core/contest-engine/application/commands"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"
)

// ExpirySweeper periodically invokes the batch settlement of expired
// contests on behalf of the platform owner. The engine itself never
// self-triggers: the sweeper is an ordinary caller, and a failing batch
// leaves every contest untouched until the next cycle.
type ExpirySweeper struct {
	Repo        ports.Repository
	EndOutdated commands.EndOutdatedUseCase
	Logger      *slog.Logger
}

func (s ExpirySweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)

	settings, err := s.Repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotInitialized) {
			return nil
		}
		return err
	}

	result, err := s.EndOutdated.Execute(ctx, commands.EndOutdatedCommand{Caller: settings.PlatformOwner})
	if err != nil {
		logger.Error("expiry sweep failed",
			"event", "contest_expiry_sweep_failed",
			"module", "contest-core/contest-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(result.EndedContestIDs) > 0 {
		logger.Info("expiry sweep completed",
			"event", "contest_expiry_sweep_completed",
			"module", "contest-core/contest-engine",
			"layer", "worker",
			"ended_count", len(result.EndedContestIDs),
		)
	}
	return nil
}
