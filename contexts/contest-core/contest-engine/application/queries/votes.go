package queries

import (
	"context"
	"log/slog"
	"strings"

	"pictora/contexts/contest-core/contest-engine/domain/entities"
	"pictora/contexts/contest-core/contest-engine/ports"
)

// HasVotedUseCase answers the vote dedup check for a caller against an
// entry's ledger key.
type HasVotedUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc HasVotedUseCase) Execute(ctx context.Context, entryKey string, caller string) (bool, error) {
	return uc.Repo.HasVoted(ctx, strings.TrimSpace(entryKey), strings.TrimSpace(caller))
}

type ListVotesUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc ListVotesUseCase) Execute(ctx context.Context, entryKey string) ([]entities.Vote, error) {
	return uc.Repo.ListVotes(ctx, strings.TrimSpace(entryKey))
}
