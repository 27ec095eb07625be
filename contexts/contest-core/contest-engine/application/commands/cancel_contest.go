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

// CancelContestCommand refunds every entrant and closes the contest without
// a winner. Callable by the contest owner or the platform owner at any time
// before the contest is ended.
type CancelContestCommand struct {
	Caller    string
	ContestID int64
}

type CancelContestUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc CancelContestUseCase) Execute(ctx context.Context, cmd CancelContestCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	now := uc.Clock.Now().UTC()
	err := uc.UoW.InTransaction(ctx, func(repo ports.Repository, treasury ports.Treasury) error {
		settings, err := repo.GetSettings(ctx)
		if err != nil {
			return err
		}
		contest, err := repo.GetContest(ctx, cmd.ContestID)
		if err != nil {
			return err
		}
		if contest.Ended {
			return domainerrors.ErrContestEnded
		}
		if caller != contest.Owner && !settings.IsPlatformOwner(caller) {
			return domainerrors.ErrNotAuthorized
		}
		if err := repo.BeginSettlement(ctx, contest.ContestID); err != nil {
			return err
		}

		obligations, ok := contest.Obligations()
		if !ok {
			return domainerrors.ErrAmountOverflow
		}
		held, err := treasury.HeldBalance(ctx)
		if err != nil {
			return err
		}
		if held < obligations {
			return domainerrors.ErrInsufficientBalance
		}

		// Each entrant gets back the contest-level fee portion only. The
		// platform participation fee collected through the entry stays in
		// engine custody.
		refund, ok := entities.AddChecked(contest.Price.CreationFee, contest.Price.ParticipationFee)
		if !ok {
			return domainerrors.ErrAmountOverflow
		}
		entries, err := repo.ListEntries(ctx, contest.ContestID)
		if err != nil {
			return err
		}
		if refund > 0 {
			total, ok := entities.MulChecked(refund, uint64(len(entries)))
			if !ok {
				return domainerrors.ErrAmountOverflow
			}
			if held < total {
				return domainerrors.ErrInsufficientBalance
			}
			for _, entry := range entries {
				if err := treasury.Payout(ctx, entry.Owner, refund); err != nil {
					return err
				}
			}
		}

		contest.Ended = true
		contest.UpdatedAt = now
		if err := repo.UpdateContest(ctx, contest); err != nil {
			return err
		}
		if err := repo.FinishSettlement(ctx, contest.ContestID); err != nil {
			return err
		}

		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		envelope, err := newContestEnvelope(eventID, "contest.canceled", contest.ContestID, now, map[string]any{
			"contest_id": contest.ContestID,
		})
		if err != nil {
			return err
		}
		return repo.AppendOutbox(ctx, envelope)
	})
	if err != nil {
		return err
	}

	logger.Info("contest canceled",
		"event", "contest_canceled",
		"module", "contest-core/contest-engine",
		"layer", "application",
		"contest_id", cmd.ContestID,
		"caller", caller,
	)
	return nil
}
