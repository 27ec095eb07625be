package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	contestengine "pictora/contexts/contest-core/contest-engine"
	contestdomainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	contesthttp "pictora/contexts/contest-core/contest-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "pictora/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	engine contestengine.Module
}

func New(engine contestengine.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		engine: engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the routing table for in-process tests.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/contest/v1/initialize", s.handleInitialize)
	s.mux.HandleFunc("GET /api/contest/v1/price", s.handleGetPrice)
	s.mux.HandleFunc("POST /api/contest/v1/price", s.handleSetPrice)
	s.mux.HandleFunc("GET /api/contest/v1/owner", s.handleGetOwner)
	s.mux.HandleFunc("GET /api/contest/v1/profits", s.handleGetProfits)
	s.mux.HandleFunc("POST /api/contest/v1/profits/withdraw", s.handleWithdrawProfits)

	s.mux.HandleFunc("POST /api/contest/v1/contests", s.handleCreateContest)
	s.mux.HandleFunc("GET /api/contest/v1/contests", s.handleListContests)
	s.mux.HandleFunc("GET /api/contest/v1/contests/mine", s.handleMyContests)
	s.mux.HandleFunc("GET /api/contest/v1/contests/mine/running", s.handleMyRunningContest)
	s.mux.HandleFunc("GET /api/contest/v1/contests/mine/in-progress", s.handleHasContestInProgress)
	s.mux.HandleFunc("POST /api/contest/v1/contests/end-outdated", s.handleEndOutdated)
	s.mux.HandleFunc("GET /api/contest/v1/contests/{contest_id}", s.handleGetContest)
	s.mux.HandleFunc("GET /api/contest/v1/contests/{contest_id}/in-progress", s.handleContestInProgress)
	s.mux.HandleFunc("POST /api/contest/v1/contests/{contest_id}/cancel", s.handleCancelContest)
	s.mux.HandleFunc("POST /api/contest/v1/contests/{contest_id}/end", s.handleEndContest)

	s.mux.HandleFunc("POST /api/contest/v1/contests/{contest_id}/entries", s.handleAddEntry)
	s.mux.HandleFunc("GET /api/contest/v1/contests/{contest_id}/entries", s.handleListEntries)
	s.mux.HandleFunc("GET /api/contest/v1/contests/{contest_id}/entries/mine", s.handleHasEntry)
	s.mux.HandleFunc("GET /api/contest/v1/contests/{contest_id}/winner", s.handleWinningEntry)
	s.mux.HandleFunc("POST /api/contest/v1/contests/{contest_id}/entries/{entry_id}/votes", s.handleCastVote)

	s.mux.HandleFunc("GET /api/contest/v1/entries/{entry_key}/votes", s.handleListVotes)
	s.mux.HandleFunc("GET /api/contest/v1/entries/{entry_key}/votes/mine", s.handleHasVoted)
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req contesthttp.InitializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContestError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.InitializeHandler(r.Context(), userID, req); err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct{}{})
}

func (s *Server) handleGetPrice(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.PriceHandler(r.Context())
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPrice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req contesthttp.SetPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContestError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.SetPriceHandler(r.Context(), userID, req); err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.OwnerHandler(r.Context())
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProfits(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.ProfitsHandler(r.Context())
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdrawProfits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.WithdrawProfitsHandler(r.Context(), userID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateContest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req contesthttp.CreateContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContestError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.CreateContestHandler(r.Context(), userID, req)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListContests(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.ListContestsHandler(r.Context())
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyContests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.MyContestsHandler(r.Context(), userID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyRunningContest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.MyRunningContestHandler(r.Context(), userID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasContestInProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.HasContestInProgressHandler(r.Context(), userID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetContest(w http.ResponseWriter, r *http.Request) {
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.GetContestHandler(r.Context(), contestID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContestInProgress(w http.ResponseWriter, r *http.Request) {
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.ContestInProgressHandler(r.Context(), contestID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelContest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	if err := s.engine.Handler.CancelContestHandler(r.Context(), userID, contestID); err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleEndContest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	if err := s.engine.Handler.EndContestHandler(r.Context(), userID, contestID); err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleEndOutdated(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.EndOutdatedHandler(r.Context(), userID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	var req contesthttp.AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeContestError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.AddEntryHandler(r.Context(), userID, contestID, req)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.ListEntriesHandler(r.Context(), contestID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.HasEntryHandler(r.Context(), userID, contestID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWinningEntry(w http.ResponseWriter, r *http.Request) {
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.WinningEntryHandler(r.Context(), contestID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	contestID, ok := parseContestID(w, r)
	if !ok {
		return
	}
	entryID, err := strconv.ParseInt(r.PathValue("entry_id"), 10, 64)
	if err != nil {
		writeContestError(w, http.StatusBadRequest, "invalid_entry_id", "entry_id must be an integer")
		return
	}
	var req contesthttp.CastVoteRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeContestError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}
	resp, err := s.engine.Handler.CastVoteHandler(r.Context(), userID, contestID, entryID, req)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListVotes(w http.ResponseWriter, r *http.Request) {
	entryKey := r.PathValue("entry_key")
	resp, err := s.engine.Handler.ListVotesHandler(r.Context(), entryKey)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasVoted(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	entryKey := r.PathValue("entry_key")
	resp, err := s.engine.Handler.HasVotedHandler(r.Context(), userID, entryKey)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeContestDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contestdomainerrors.ErrNotInitialized):
		writeContestError(w, http.StatusConflict, "not_initialized", err.Error())
	case errors.Is(err, contestdomainerrors.ErrAlreadyInitialized):
		writeContestError(w, http.StatusConflict, "already_initialized", err.Error())
	case errors.Is(err, contestdomainerrors.ErrNotPlatformOwner),
		errors.Is(err, contestdomainerrors.ErrNotAuthorized):
		writeContestError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, contestdomainerrors.ErrInvalidContestInput),
		errors.Is(err, contestdomainerrors.ErrInvalidContestWindow),
		errors.Is(err, contestdomainerrors.ErrInvalidEntryInput),
		errors.Is(err, contestdomainerrors.ErrInvalidVoteInput):
		writeContestError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, contestdomainerrors.ErrContestNotFound),
		errors.Is(err, contestdomainerrors.ErrEntryNotFound),
		errors.Is(err, contestdomainerrors.ErrNoRunningContest):
		writeContestError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, contestdomainerrors.ErrDuplicateTitle):
		writeContestError(w, http.StatusConflict, "duplicate_title", err.Error())
	case errors.Is(err, contestdomainerrors.ErrDuplicateEntry):
		writeContestError(w, http.StatusConflict, "duplicate_entry", err.Error())
	case errors.Is(err, contestdomainerrors.ErrDuplicateVote):
		writeContestError(w, http.StatusConflict, "duplicate_vote", err.Error())
	case errors.Is(err, contestdomainerrors.ErrContestLimitReached):
		writeContestError(w, http.StatusConflict, "contest_limit_reached", err.Error())
	case errors.Is(err, contestdomainerrors.ErrContestEnded),
		errors.Is(err, contestdomainerrors.ErrContestNotInProgress),
		errors.Is(err, contestdomainerrors.ErrContestNotExpired),
		errors.Is(err, contestdomainerrors.ErrSettlementInProgress):
		writeContestError(w, http.StatusConflict, "contest_state_conflict", err.Error())
	case errors.Is(err, contestdomainerrors.ErrInsufficientPayment):
		writeContestError(w, http.StatusPaymentRequired, "insufficient_payment", err.Error())
	case errors.Is(err, contestdomainerrors.ErrInsufficientBalance):
		writeContestError(w, http.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, contestdomainerrors.ErrTransferRejected):
		writeContestError(w, http.StatusConflict, "transfer_rejected", err.Error())
	case errors.Is(err, contestdomainerrors.ErrNoProfitsAvailable):
		writeContestError(w, http.StatusConflict, "no_profits_available", err.Error())
	case errors.Is(err, contestdomainerrors.ErrAmountOverflow):
		writeContestError(w, http.StatusUnprocessableEntity, "amount_overflow", err.Error())
	default:
		writeContestError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeContestError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, contesthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeContestError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func parseContestID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	contestID, err := strconv.ParseInt(r.PathValue("contest_id"), 10, 64)
	if err != nil || contestID < 0 {
		writeContestError(w, http.StatusBadRequest, "invalid_contest_id", "contest_id must be a non-negative integer")
		return 0, false
	}
	return contestID, true
}
