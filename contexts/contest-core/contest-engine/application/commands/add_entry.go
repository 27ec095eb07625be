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

// AddEntryCommand submits one entry to an in-progress contest. Payment must
// cover the contest creation fee, the contest participation fee, and the
// global platform participation fee.
type AddEntryCommand struct {
	Caller    string
	ContestID int64
	Title     string
	ImageURL  string
	Payment   uint64
}

type AddEntryResult struct {
	Entry entities.Entry
}

type AddEntryUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc AddEntryUseCase) Execute(ctx context.Context, cmd AddEntryCommand) (AddEntryResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" || strings.TrimSpace(cmd.Title) == "" {
		return AddEntryResult{}, domainerrors.ErrInvalidEntryInput
	}

	now := uc.Clock.Now().UTC()
	var created entities.Entry
	err := uc.UoW.InTransaction(ctx, func(repo ports.Repository, treasury ports.Treasury) error {
		settings, err := repo.GetSettings(ctx)
		if err != nil {
			return err
		}
		contest, err := repo.GetContest(ctx, cmd.ContestID)
		if err != nil {
			return err
		}
		if !contest.InProgress(now) {
			return domainerrors.ErrContestNotInProgress
		}
		if _, found, err := repo.GetEntryByOwner(ctx, contest.ContestID, caller); err != nil {
			return err
		} else if found {
			return domainerrors.ErrDuplicateEntry
		}

		contestFees, ok := entities.AddChecked(contest.Price.CreationFee, contest.Price.ParticipationFee)
		if !ok {
			return domainerrors.ErrAmountOverflow
		}
		required, ok := entities.AddChecked(contestFees, settings.Price.ParticipationFee)
		if !ok {
			return domainerrors.ErrAmountOverflow
		}
		if cmd.Payment < required {
			return domainerrors.ErrInsufficientPayment
		}

		if err := treasury.Deposit(ctx, caller, cmd.Payment); err != nil {
			return err
		}

		// Fee split: the contest creation fee accrues to the contest owner.
		// The platform participation fee funds the prize when the contest
		// charges no participation fee of its own; otherwise it is platform
		// revenue and the contest fee funds the prize.
		profits, ok := entities.AddChecked(contest.ProfitsAccrued, contest.Price.CreationFee)
		if !ok {
			return domainerrors.ErrAmountOverflow
		}
		contest.ProfitsAccrued = profits
		if contest.Price.ParticipationFee == 0 {
			pool, ok := entities.AddChecked(contest.RewardPool, settings.Price.ParticipationFee)
			if !ok {
				return domainerrors.ErrAmountOverflow
			}
			contest.RewardPool = pool
		} else {
			revenue, ok := entities.AddChecked(settings.PlatformProfits, settings.Price.ParticipationFee)
			if !ok {
				return domainerrors.ErrAmountOverflow
			}
			settings.PlatformProfits = revenue
			if err := repo.SaveSettings(ctx, settings); err != nil {
				return err
			}
			pool, ok := entities.AddChecked(contest.RewardPool, contest.Price.ParticipationFee)
			if !ok {
				return domainerrors.ErrAmountOverflow
			}
			contest.RewardPool = pool
		}
		contest.UpdatedAt = now
		if err := repo.UpdateContest(ctx, contest); err != nil {
			return err
		}

		created = entities.Entry{
			EntryKey:  entities.DeriveEntryKey(caller, contest.ContestID),
			ContestID: contest.ContestID,
			Owner:     caller,
			Title:     strings.TrimSpace(cmd.Title),
			ImageURL:  strings.TrimSpace(cmd.ImageURL),
			VoteCount: 0,
			CreatedAt: now,
		}
		entryID, err := repo.AppendEntry(ctx, created)
		if err != nil {
			return err
		}
		created.EntryID = entryID

		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		envelope, err := newContestEnvelope(eventID, "entry.created", contest.ContestID, now, map[string]any{
			"owner":      created.Owner,
			"contest_id": contest.ContestID,
			"entry_id":   entryID,
		})
		if err != nil {
			return err
		}
		return repo.AppendOutbox(ctx, envelope)
	})
	if err != nil {
		return AddEntryResult{}, err
	}

	logger.Info("entry added",
		"event", "contest_entry_added",
		"module", "contest-core/contest-engine",
		"layer", "application",
		"contest_id", created.ContestID,
		"entry_id", created.EntryID,
		"owner", created.Owner,
	)
	return AddEntryResult{Entry: created}, nil
}
