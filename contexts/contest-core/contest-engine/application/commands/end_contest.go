package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "pictora/contexts/contest-core/contest-engine/application"
	"pictora/contexts/contest-core/contest-engine/domain/entities"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"
)

// EndContestCommand settles a contest whose end time has passed: the reward
// pool goes to the highest-voted entry's owner and the accrued profits go to
// the contest owner.
type EndContestCommand struct {
	Caller    string
	ContestID int64
}

type EndContestUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc EndContestUseCase) Execute(ctx context.Context, cmd EndContestCommand) error {
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
		if caller != contest.Owner && !settings.IsPlatformOwner(caller) {
			return domainerrors.ErrNotAuthorized
		}
		return settleEndedContest(ctx, repo, treasury, uc.IDGen, contest, now)
	})
	if err != nil {
		return err
	}

	logger.Info("contest ended",
		"event", "contest_ended",
		"module", "contest-core/contest-engine",
		"layer", "application",
		"contest_id", cmd.ContestID,
		"caller", caller,
	)
	return nil
}

// settleEndedContest is the natural-ending settlement shared by EndContest
// and the batch sweep. Payouts are issued before the ended flag flips, part
// of the ledger's settlement contract; the guard set by BeginSettlement
// keeps a reentrant payout recipient from re-triggering it.
func settleEndedContest(
	ctx context.Context,
	repo ports.Repository,
	treasury ports.Treasury,
	idGen ports.IDGenerator,
	contest entities.Contest,
	now time.Time,
) error {
	if contest.Ended {
		return domainerrors.ErrContestEnded
	}
	if !contest.Expired(now) {
		return domainerrors.ErrContestNotExpired
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

	entries, err := repo.ListEntries(ctx, contest.ContestID)
	if err != nil {
		return err
	}
	if winner, found := entities.SelectWinner(entries); found {
		if contest.RewardPool > 0 {
			if err := treasury.Payout(ctx, winner.Owner, contest.RewardPool); err != nil {
				return err
			}
		}
		if err := repo.SetWinningEntry(ctx, contest.ContestID, winner.EntryID); err != nil {
			return err
		}
		if contest.ProfitsAccrued > 0 {
			if err := treasury.Payout(ctx, contest.Owner, contest.ProfitsAccrued); err != nil {
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

	eventID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newContestEnvelope(eventID, "contest.ended", contest.ContestID, now, map[string]any{
		"contest_id": contest.ContestID,
	})
	if err != nil {
		return err
	}
	return repo.AppendOutbox(ctx, envelope)
}
