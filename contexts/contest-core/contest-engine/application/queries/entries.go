package queries

import (
	"context"
	"log/slog"
	"strings"

	"pictora/contexts/contest-core/contest-engine/domain/entities"
	"pictora/contexts/contest-core/contest-engine/ports"
)

type ListEntriesUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc ListEntriesUseCase) Execute(ctx context.Context, contestID int64) ([]entities.Entry, error) {
	if _, err := uc.Repo.GetContest(ctx, contestID); err != nil {
		return nil, err
	}
	return uc.Repo.ListEntries(ctx, contestID)
}

type HasEntryUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc HasEntryUseCase) Execute(ctx context.Context, contestID int64, caller string) (bool, error) {
	if _, err := uc.Repo.GetContest(ctx, contestID); err != nil {
		return false, err
	}
	_, found, err := uc.Repo.GetEntryByOwner(ctx, contestID, strings.TrimSpace(caller))
	if err != nil {
		return false, err
	}
	return found, nil
}

// WinningEntryUseCase reports the recorded winner of a naturally ended
// contest. Canceled and still-running contests have none.
type WinningEntryUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc WinningEntryUseCase) Execute(ctx context.Context, contestID int64) (entities.Entry, bool, error) {
	if _, err := uc.Repo.GetContest(ctx, contestID); err != nil {
		return entities.Entry{}, false, err
	}
	return uc.Repo.GetWinningEntry(ctx, contestID)
}
