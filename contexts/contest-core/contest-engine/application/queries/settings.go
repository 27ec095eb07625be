package queries

import (
	"context"
	"log/slog"

	"pictora/contexts/contest-core/contest-engine/domain/entities"
	"pictora/contexts/contest-core/contest-engine/ports"
)

type PriceUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc PriceUseCase) Execute(ctx context.Context) (entities.PriceSchedule, error) {
	settings, err := uc.Repo.GetSettings(ctx)
	if err != nil {
		return entities.PriceSchedule{}, err
	}
	return settings.Price, nil
}

type OwnerUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc OwnerUseCase) Execute(ctx context.Context) (string, error) {
	settings, err := uc.Repo.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.PlatformOwner, nil
}

type ProfitsUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (uc ProfitsUseCase) Execute(ctx context.Context) (uint64, error) {
	settings, err := uc.Repo.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	return settings.PlatformProfits, nil
}
