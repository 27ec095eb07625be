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

// CastVoteCommand records one voter's endorsement of one entry. At most one
// vote per (voter, entry key).
type CastVoteCommand struct {
	Caller    string
	ContestID int64
	EntryID   int64
	Message   string
}

type CastVoteResult struct {
	Entry entities.Entry
}

type CastVoteUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc CastVoteUseCase) Execute(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" {
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}

	now := uc.Clock.Now().UTC()
	var updated entities.Entry
	err := uc.UoW.InTransaction(ctx, func(repo ports.Repository, _ ports.Treasury) error {
		contest, err := repo.GetContest(ctx, cmd.ContestID)
		if err != nil {
			return err
		}
		if !contest.InProgress(now) {
			return domainerrors.ErrContestNotInProgress
		}
		entry, err := repo.GetEntry(ctx, cmd.ContestID, cmd.EntryID)
		if err != nil {
			return err
		}
		voted, err := repo.HasVoted(ctx, entry.EntryKey, caller)
		if err != nil {
			return err
		}
		if voted {
			return domainerrors.ErrDuplicateVote
		}

		if err := repo.AppendVote(ctx, entities.Vote{
			EntryKey:  entry.EntryKey,
			Voter:     caller,
			Message:   strings.TrimSpace(cmd.Message),
			CreatedAt: now,
		}); err != nil {
			return err
		}
		count, ok := entities.AddChecked(entry.VoteCount, 1)
		if !ok {
			return domainerrors.ErrAmountOverflow
		}
		entry.VoteCount = count
		if err := repo.UpdateEntry(ctx, entry); err != nil {
			return err
		}
		updated = entry

		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		envelope, err := newContestEnvelope(eventID, "vote.cast", contest.ContestID, now, map[string]any{
			"voter":      caller,
			"contest_id": contest.ContestID,
			"entry_id":   entry.EntryID,
		})
		if err != nil {
			return err
		}
		return repo.AppendOutbox(ctx, envelope)
	})
	if err != nil {
		return CastVoteResult{}, err
	}

	logger.Info("vote cast",
		"event", "contest_vote_cast",
		"module", "contest-core/contest-engine",
		"layer", "application",
		"contest_id", cmd.ContestID,
		"entry_id", cmd.EntryID,
		"voter", caller,
	)
	return CastVoteResult{Entry: updated}, nil
}
