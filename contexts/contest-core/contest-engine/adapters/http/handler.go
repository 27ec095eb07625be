package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pictora/contexts/contest-core/contest-engine/application/commands"
	"pictora/contexts/contest-core/contest-engine/application/queries"
	"pictora/contexts/contest-core/contest-engine/domain/entities"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	httptransport "pictora/contexts/contest-core/contest-engine/transport/http"
)

type Handler struct {
	Initialize      commands.InitializeUseCase
	SetPrice        commands.SetPriceUseCase
	CreateContest   commands.CreateContestUseCase
	AddEntry        commands.AddEntryUseCase
	CastVote        commands.CastVoteUseCase
	CancelContest   commands.CancelContestUseCase
	EndContest      commands.EndContestUseCase
	EndOutdated     commands.EndOutdatedUseCase
	WithdrawProfits commands.WithdrawProfitsUseCase

	GetContest           queries.GetContestUseCase
	ListContests         queries.ListContestsUseCase
	MyContests           queries.MyContestsUseCase
	MyRunningContest     queries.MyRunningContestUseCase
	HasContestInProgress queries.HasContestInProgressUseCase
	ContestInProgress    queries.ContestInProgressUseCase
	ListEntries          queries.ListEntriesUseCase
	HasEntry             queries.HasEntryUseCase
	WinningEntry         queries.WinningEntryUseCase
	HasVoted             queries.HasVotedUseCase
	ListVotes            queries.ListVotesUseCase
	Price                queries.PriceUseCase
	Owner                queries.OwnerUseCase
	Profits              queries.ProfitsUseCase

	Logger *slog.Logger
}

func (h Handler) InitializeHandler(ctx context.Context, userID string, req httptransport.InitializeRequest) error {
	return h.Initialize.Execute(ctx, commands.InitializeCommand{
		Caller:           userID,
		ParticipationFee: req.ParticipationFee,
		CreationFee:      req.CreationFee,
	})
}

func (h Handler) SetPriceHandler(ctx context.Context, userID string, req httptransport.SetPriceRequest) error {
	return h.SetPrice.Execute(ctx, commands.SetPriceCommand{
		Caller:           userID,
		ParticipationFee: req.ParticipationFee,
		CreationFee:      req.CreationFee,
	})
}

func (h Handler) CreateContestHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateContestRequest,
) (httptransport.CreateContestResponse, error) {
	startsAt, err := parseTimestamp(req.StartsAt)
	if err != nil {
		return httptransport.CreateContestResponse{}, domainerrors.ErrInvalidContestInput
	}
	endsAt, err := parseTimestamp(req.EndsAt)
	if err != nil {
		return httptransport.CreateContestResponse{}, domainerrors.ErrInvalidContestInput
	}
	result, err := h.CreateContest.Execute(ctx, commands.CreateContestCommand{
		Caller:                userID,
		Title:                 req.Title,
		BannerURL:             req.BannerURL,
		StartsAt:              startsAt,
		EndsAt:                endsAt,
		EntryCreationFee:      req.EntryCreationFee,
		EntryParticipationFee: req.EntryParticipationFee,
		Payment:               req.Payment,
	})
	if err != nil {
		return httptransport.CreateContestResponse{}, err
	}
	return httptransport.CreateContestResponse{Contest: mapContest(result.Contest)}, nil
}

func (h Handler) GetContestHandler(ctx context.Context, contestID int64) (httptransport.GetContestResponse, error) {
	item, err := h.GetContest.Execute(ctx, contestID)
	if err != nil {
		return httptransport.GetContestResponse{}, err
	}
	return httptransport.GetContestResponse{Contest: mapContest(item)}, nil
}

func (h Handler) ListContestsHandler(ctx context.Context) (httptransport.ListContestsResponse, error) {
	items, err := h.ListContests.Execute(ctx)
	if err != nil {
		return httptransport.ListContestsResponse{}, err
	}
	return httptransport.ListContestsResponse{Items: mapContests(items)}, nil
}

func (h Handler) MyContestsHandler(ctx context.Context, userID string) (httptransport.ListContestsResponse, error) {
	items, err := h.MyContests.Execute(ctx, userID)
	if err != nil {
		return httptransport.ListContestsResponse{}, err
	}
	return httptransport.ListContestsResponse{Items: mapContests(items)}, nil
}

func (h Handler) MyRunningContestHandler(ctx context.Context, userID string) (httptransport.GetContestResponse, error) {
	item, err := h.MyRunningContest.Execute(ctx, userID)
	if err != nil {
		return httptransport.GetContestResponse{}, err
	}
	return httptransport.GetContestResponse{Contest: mapContest(item)}, nil
}

func (h Handler) HasContestInProgressHandler(ctx context.Context, userID string) (httptransport.HasContestInProgressResponse, error) {
	has, err := h.HasContestInProgress.Execute(ctx, userID)
	if err != nil {
		return httptransport.HasContestInProgressResponse{}, err
	}
	return httptransport.HasContestInProgressResponse{HasContestInProgress: has}, nil
}

func (h Handler) ContestInProgressHandler(ctx context.Context, contestID int64) (httptransport.ContestInProgressResponse, error) {
	inProgress, err := h.ContestInProgress.Execute(ctx, contestID)
	if err != nil {
		return httptransport.ContestInProgressResponse{}, err
	}
	return httptransport.ContestInProgressResponse{InProgress: inProgress}, nil
}

func (h Handler) CancelContestHandler(ctx context.Context, userID string, contestID int64) error {
	return h.CancelContest.Execute(ctx, commands.CancelContestCommand{
		Caller:    userID,
		ContestID: contestID,
	})
}

func (h Handler) EndContestHandler(ctx context.Context, userID string, contestID int64) error {
	return h.EndContest.Execute(ctx, commands.EndContestCommand{
		Caller:    userID,
		ContestID: contestID,
	})
}

func (h Handler) EndOutdatedHandler(ctx context.Context, userID string) (httptransport.EndOutdatedResponse, error) {
	result, err := h.EndOutdated.Execute(ctx, commands.EndOutdatedCommand{Caller: userID})
	if err != nil {
		return httptransport.EndOutdatedResponse{}, err
	}
	return httptransport.EndOutdatedResponse{
		EndedContestIDs: append([]int64(nil), result.EndedContestIDs...),
	}, nil
}

func (h Handler) AddEntryHandler(
	ctx context.Context,
	userID string,
	contestID int64,
	req httptransport.AddEntryRequest,
) (httptransport.AddEntryResponse, error) {
	result, err := h.AddEntry.Execute(ctx, commands.AddEntryCommand{
		Caller:    userID,
		ContestID: contestID,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Payment:   req.Payment,
	})
	if err != nil {
		return httptransport.AddEntryResponse{}, err
	}
	return httptransport.AddEntryResponse{Entry: mapEntry(result.Entry)}, nil
}

func (h Handler) ListEntriesHandler(ctx context.Context, contestID int64) (httptransport.ListEntriesResponse, error) {
	items, err := h.ListEntries.Execute(ctx, contestID)
	if err != nil {
		return httptransport.ListEntriesResponse{}, err
	}
	result := make([]httptransport.EntryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapEntry(item))
	}
	return httptransport.ListEntriesResponse{Items: result}, nil
}

func (h Handler) HasEntryHandler(ctx context.Context, userID string, contestID int64) (httptransport.HasEntryResponse, error) {
	has, err := h.HasEntry.Execute(ctx, contestID, userID)
	if err != nil {
		return httptransport.HasEntryResponse{}, err
	}
	return httptransport.HasEntryResponse{HasEntry: has}, nil
}

func (h Handler) WinningEntryHandler(ctx context.Context, contestID int64) (httptransport.WinningEntryResponse, error) {
	entry, decided, err := h.WinningEntry.Execute(ctx, contestID)
	if err != nil {
		return httptransport.WinningEntryResponse{}, err
	}
	if !decided {
		return httptransport.WinningEntryResponse{Decided: false}, nil
	}
	mapped := mapEntry(entry)
	return httptransport.WinningEntryResponse{Entry: &mapped, Decided: true}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	userID string,
	contestID int64,
	entryID int64,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	result, err := h.CastVote.Execute(ctx, commands.CastVoteCommand{
		Caller:    userID,
		ContestID: contestID,
		EntryID:   entryID,
		Message:   req.Message,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{Entry: mapEntry(result.Entry)}, nil
}

func (h Handler) ListVotesHandler(ctx context.Context, entryKey string) (httptransport.ListVotesResponse, error) {
	items, err := h.ListVotes.Execute(ctx, entryKey)
	if err != nil {
		return httptransport.ListVotesResponse{}, err
	}
	result := make([]httptransport.VoteDTO, 0, len(items))
	for _, item := range items {
		result = append(result, httptransport.VoteDTO{
			EntryKey:  item.EntryKey,
			Voter:     item.Voter,
			Message:   item.Message,
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.ListVotesResponse{Items: result}, nil
}

func (h Handler) HasVotedHandler(ctx context.Context, userID string, entryKey string) (httptransport.HasVotedResponse, error) {
	has, err := h.HasVoted.Execute(ctx, entryKey, userID)
	if err != nil {
		return httptransport.HasVotedResponse{}, err
	}
	return httptransport.HasVotedResponse{HasVoted: has}, nil
}

func (h Handler) PriceHandler(ctx context.Context) (httptransport.PriceResponse, error) {
	schedule, err := h.Price.Execute(ctx)
	if err != nil {
		return httptransport.PriceResponse{}, err
	}
	return httptransport.PriceResponse{
		ParticipationFee: schedule.ParticipationFee,
		CreationFee:      schedule.CreationFee,
	}, nil
}

func (h Handler) OwnerHandler(ctx context.Context) (httptransport.OwnerResponse, error) {
	owner, err := h.Owner.Execute(ctx)
	if err != nil {
		return httptransport.OwnerResponse{}, err
	}
	return httptransport.OwnerResponse{Owner: owner}, nil
}

func (h Handler) ProfitsHandler(ctx context.Context) (httptransport.ProfitsResponse, error) {
	profits, err := h.Profits.Execute(ctx)
	if err != nil {
		return httptransport.ProfitsResponse{}, err
	}
	return httptransport.ProfitsResponse{Profits: profits}, nil
}

func (h Handler) WithdrawProfitsHandler(ctx context.Context, userID string) (httptransport.WithdrawProfitsResponse, error) {
	result, err := h.WithdrawProfits.Execute(ctx, commands.WithdrawProfitsCommand{Caller: userID})
	if err != nil {
		return httptransport.WithdrawProfitsResponse{}, err
	}
	return httptransport.WithdrawProfitsResponse{Amount: result.Amount}, nil
}

func mapContest(item entities.Contest) httptransport.ContestDTO {
	return httptransport.ContestDTO{
		ContestID:             item.ContestID,
		Owner:                 item.Owner,
		Title:                 item.Title,
		BannerURL:             item.BannerURL,
		StartsAt:              item.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:                item.EndsAt.UTC().Format(time.RFC3339),
		EntryCreationFee:      item.Price.CreationFee,
		EntryParticipationFee: item.Price.ParticipationFee,
		ProfitsAccrued:        item.ProfitsAccrued,
		RewardPool:            item.RewardPool,
		Ended:                 item.Ended,
		CreatedAt:             item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:             item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapContests(items []entities.Contest) []httptransport.ContestDTO {
	result := make([]httptransport.ContestDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapContest(item))
	}
	return result
}

func mapEntry(item entities.Entry) httptransport.EntryDTO {
	return httptransport.EntryDTO{
		EntryID:   item.EntryID,
		EntryKey:  item.EntryKey,
		ContestID: item.ContestID,
		Owner:     item.Owner,
		Title:     item.Title,
		ImageURL:  item.ImageURL,
		VoteCount: item.VoteCount,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func parseTimestamp(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
