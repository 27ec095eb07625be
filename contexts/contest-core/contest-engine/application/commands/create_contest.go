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

// CreateContestCommand opens a new contest. Payment is the full amount the
// caller sent with the operation; all of it becomes the reward pool.
type CreateContestCommand struct {
	Caller                string
	Title                 string
	BannerURL             string
	StartsAt              time.Time
	EndsAt                time.Time
	EntryCreationFee      uint64
	EntryParticipationFee uint64
	Payment               uint64
}

type CreateContestResult struct {
	Contest entities.Contest
}

type CreateContestUseCase struct {
	UoW    ports.UnitOfWork
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc CreateContestUseCase) Execute(ctx context.Context, cmd CreateContestCommand) (CreateContestResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	title := strings.TrimSpace(cmd.Title)
	if caller == "" || title == "" {
		return CreateContestResult{}, domainerrors.ErrInvalidContestInput
	}
	if !entities.ValidWindow(cmd.StartsAt, cmd.EndsAt) {
		return CreateContestResult{}, domainerrors.ErrInvalidContestWindow
	}

	now := uc.Clock.Now().UTC()
	var created entities.Contest
	err := uc.UoW.InTransaction(ctx, func(repo ports.Repository, treasury ports.Treasury) error {
		settings, err := repo.GetSettings(ctx)
		if err != nil {
			return err
		}
		if cmd.Payment < settings.Price.CreationFee {
			return domainerrors.ErrInsufficientPayment
		}
		taken, err := repo.TitleExists(ctx, title)
		if err != nil {
			return err
		}
		if taken {
			return domainerrors.ErrDuplicateTitle
		}
		if !settings.IsPlatformOwner(caller) {
			owned, err := repo.ListContestsByOwner(ctx, caller)
			if err != nil {
				return err
			}
			for _, contest := range owned {
				if contest.InProgress(now) {
					return domainerrors.ErrContestLimitReached
				}
			}
		}

		if err := treasury.Deposit(ctx, caller, cmd.Payment); err != nil {
			return err
		}
		created = entities.Contest{
			Owner:     caller,
			Title:     title,
			BannerURL: strings.TrimSpace(cmd.BannerURL),
			StartsAt:  cmd.StartsAt.UTC(),
			EndsAt:    cmd.EndsAt.UTC(),
			Price: entities.PriceSchedule{
				ParticipationFee: cmd.EntryParticipationFee,
				CreationFee:      cmd.EntryCreationFee,
			},
			ProfitsAccrued: 0,
			RewardPool:     cmd.Payment,
			Ended:          false,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		contestID, err := repo.CreateContest(ctx, created)
		if err != nil {
			return err
		}
		created.ContestID = contestID

		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		envelope, err := newContestEnvelope(eventID, "contest.created", contestID, now, map[string]any{
			"owner":      created.Owner,
			"contest_id": contestID,
		})
		if err != nil {
			return err
		}
		return repo.AppendOutbox(ctx, envelope)
	})
	if err != nil {
		return CreateContestResult{}, err
	}

	logger.Info("contest created",
		"event", "contest_created",
		"module", "contest-core/contest-engine",
		"layer", "application",
		"contest_id", created.ContestID,
		"owner", created.Owner,
		"reward_pool", created.RewardPool,
	)
	return CreateContestResult{Contest: created}, nil
}
