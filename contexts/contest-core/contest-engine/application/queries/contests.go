package queries

import (
	"context"
	"log/slog"
	"strings"

	"pictora/contexts/contest-core/contest-engine/domain/entities"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"
)

type GetContestUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc GetContestUseCase) Execute(ctx context.Context, contestID int64) (entities.Contest, error) {
	return uc.Repo.GetContest(ctx, contestID)
}

type ListContestsUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc ListContestsUseCase) Execute(ctx context.Context) ([]entities.Contest, error) {
	return uc.Repo.ListContests(ctx)
}

type MyContestsUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc MyContestsUseCase) Execute(ctx context.Context, caller string) ([]entities.Contest, error) {
	return uc.Repo.ListContestsByOwner(ctx, strings.TrimSpace(caller))
}

// MyRunningContestUseCase returns the caller's single in-progress contest
// and fails when none exists.
type MyRunningContestUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc MyRunningContestUseCase) Execute(ctx context.Context, caller string) (entities.Contest, error) {
	owned, err := uc.Repo.ListContestsByOwner(ctx, strings.TrimSpace(caller))
	if err != nil {
		return entities.Contest{}, err
	}
	now := uc.Clock.Now().UTC()
	for _, contest := range owned {
		if contest.InProgress(now) {
			return contest, nil
		}
	}
	return entities.Contest{}, domainerrors.ErrNoRunningContest
}

type HasContestInProgressUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc HasContestInProgressUseCase) Execute(ctx context.Context, caller string) (bool, error) {
	owned, err := uc.Repo.ListContestsByOwner(ctx, strings.TrimSpace(caller))
	if err != nil {
		return false, err
	}
	now := uc.Clock.Now().UTC()
	for _, contest := range owned {
		if contest.InProgress(now) {
			return true, nil
		}
	}
	return false, nil
}

type ContestInProgressUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc ContestInProgressUseCase) Execute(ctx context.Context, contestID int64) (bool, error) {
	contest, err := uc.Repo.GetContest(ctx, contestID)
	if err != nil {
		return false, err
	}
	return contest.InProgress(uc.Clock.Now().UTC()), nil
}
