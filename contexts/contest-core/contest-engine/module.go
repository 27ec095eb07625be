package contestengine

import (
	"log/slog"

	httpadapter "pictora/contexts/contest-core/contest-engine/adapters/http"
	"pictora/contexts/contest-core/contest-engine/adapters/memory"
	"pictora/contexts/contest-core/contest-engine/application/commands"
	"pictora/contexts/contest-core/contest-engine/application/queries"
	"pictora/contexts/contest-core/contest-engine/domain/entities"
	"pictora/contexts/contest-core/contest-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo        ports.Repository
	Treasury    ports.Treasury
	UoW         ports.UnitOfWork
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	initialize := commands.InitializeUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	setPrice := commands.SetPriceUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	createContest := commands.CreateContestUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	addEntry := commands.AddEntryUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	castVote := commands.CastVoteUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	cancelContest := commands.CancelContestUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	endContest := commands.EndContestUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	endOutdated := commands.EndOutdatedUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	withdrawProfits := commands.WithdrawProfitsUseCase{
		UoW:    deps.UoW,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}

	getContest := queries.GetContestUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	listContests := queries.ListContestsUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	myContests := queries.MyContestsUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	myRunningContest := queries.MyRunningContestUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	hasContestInProgress := queries.HasContestInProgressUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	contestInProgress := queries.ContestInProgressUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	listEntries := queries.ListEntriesUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	hasEntry := queries.HasEntryUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	winningEntry := queries.WinningEntryUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	hasVoted := queries.HasVotedUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	listVotes := queries.ListVotesUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	price := queries.PriceUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	owner := queries.OwnerUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	profits := queries.ProfitsUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Initialize:           initialize,
			SetPrice:             setPrice,
			CreateContest:        createContest,
			AddEntry:             addEntry,
			CastVote:             castVote,
			CancelContest:        cancelContest,
			EndContest:           endContest,
			EndOutdated:          endOutdated,
			WithdrawProfits:      withdrawProfits,
			GetContest:           getContest,
			ListContests:         listContests,
			MyContests:           myContests,
			MyRunningContest:     myRunningContest,
			HasContestInProgress: hasContestInProgress,
			ContestInProgress:    contestInProgress,
			ListEntries:          listEntries,
			HasEntry:             hasEntry,
			WinningEntry:         winningEntry,
			HasVoted:             hasVoted,
			ListVotes:            listVotes,
			Price:                price,
			Owner:                owner,
			Profits:              profits,
			Logger:               deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Contest, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repo:        store,
		Treasury:    store,
		UoW:         store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
