package commands

import (
	"context"
	"log/slog"
	"strings"

	application "pictora/contexts/contest-core/contest-engine/application"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"
)

// EndOutdatedCommand settles every contest that is past its end time and not
// yet ended, in one atomic batch. One failing settlement aborts the whole
// batch with no contest settled.
type EndOutdatedCommand struct {
	Caller string
}

type EndOutdatedResult struct {
	EndedContestIDs []int64
}

type EndOutdatedUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc EndOutdatedUseCase) Execute(ctx context.Context, cmd EndOutdatedCommand) (EndOutdatedResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)

	now := uc.Clock.Now().UTC()
	var ended []int64
	err := uc.UoW.InTransaction(ctx, func(repo ports.Repository, treasury ports.Treasury) error {
		settings, err := repo.GetSettings(ctx)
		if err != nil {
			return err
		}
		if !settings.IsPlatformOwner(caller) {
			return domainerrors.ErrNotPlatformOwner
		}
		contests, err := repo.ListContests(ctx)
		if err != nil {
			return err
		}
		ended = ended[:0]
		for _, contest := range contests {
			if !contest.Expired(now) {
				continue
			}
			if err := settleEndedContest(ctx, repo, treasury, uc.IDGen, contest, now); err != nil {
				return err
			}
			ended = append(ended, contest.ContestID)
		}
		return nil
	})
	if err != nil {
		return EndOutdatedResult{}, err
	}

	if len(ended) > 0 {
		logger.Info("outdated contests ended",
			"event", "contest_outdated_batch_ended",
			"module", "contest-core/contest-engine",
			"layer", "application",
			"ended_count", len(ended),
		)
	}
	return EndOutdatedResult{EndedContestIDs: ended}, nil
}
