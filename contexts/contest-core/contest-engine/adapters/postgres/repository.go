package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pictora/contexts/contest-core/contest-engine/domain/entities"
	domainerrors "pictora/contexts/contest-core/contest-engine/domain/errors"
	"pictora/contexts/contest-core/contest-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// settingsRowID and treasuryRowID pin the singleton rows holding the global
// schedule and the held balance.
const (
	settingsRowID = 1
	treasuryRowID = 1
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates or updates the engine's schema. Both process builders
// run it right after connecting, before the first repository call.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(migrationModels()...)
}

// migrationModels is the full set of row models the repository reads or
// writes. A model missing here leaves its table uncreated at bootstrap.
func migrationModels() []any {
	return []any{
		&settingsModel{},
		&contestModel{},
		&entryModel{},
		&voteModel{},
		&winnerModel{},
		&treasuryModel{},
		&accountModel{},
		&outboxModel{},
	}
}

// InTransaction runs fn inside one database transaction. The repository and
// treasury handed to fn are scoped to that transaction, so every write and
// every balance movement commits or rolls back together.
func (r *Repository) InTransaction(ctx context.Context, fn func(repo ports.Repository, treasury ports.Treasury) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := &Repository{db: tx, logger: r.logger}
		return fn(scoped, scoped)
	})
}

func (r *Repository) GetSettings(ctx context.Context) (entities.Settings, error) {
	var row settingsModel
	err := r.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Settings{}, domainerrors.ErrNotInitialized
		}
		return entities.Settings{}, r.logError("contest_repo_get_settings_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings entities.Settings) error {
	row := settingsModelFromEntity(settings)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"platform_owner":    row.PlatformOwner,
			"participation_fee": row.ParticipationFee,
			"creation_fee":      row.CreationFee,
			"platform_profits":  row.PlatformProfits,
			"updated_at":        row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("contest_repo_save_settings_failed", create.Error)
	}
	return nil
}

func (r *Repository) CreateContest(ctx context.Context, contest entities.Contest) (int64, error) {
	// Contest ids are the zero-based position in the creation sequence.
	// The surrounding transaction serializes concurrent creators; the
	// primary key catches a lost race as a unique violation.
	var count int64
	if err := r.db.WithContext(ctx).Model(&contestModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("contest_repo_count_contests_failed", err)
	}
	contest.ContestID = count
	row := contestModelFromEntity(contest)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, domainerrors.ErrDuplicateTitle
		}
		return 0, r.logError("contest_repo_create_contest_failed", err,
			"contest_id", contest.ContestID,
			"owner", contest.Owner,
		)
	}
	return contest.ContestID, nil
}

func (r *Repository) UpdateContest(ctx context.Context, contest entities.Contest) error {
	row := contestModelFromEntity(contest)
	result := r.db.WithContext(ctx).
		Model(&contestModel{}).
		Where("contest_id = ?", contest.ContestID).
		Updates(map[string]any{
			"banner_url":        row.BannerURL,
			"starts_at":         row.StartsAt,
			"ends_at":           row.EndsAt,
			"participation_fee": row.ParticipationFee,
			"creation_fee":      row.CreationFee,
			"profits_accrued":   row.ProfitsAccrued,
			"reward_pool":       row.RewardPool,
			"ended":             row.Ended,
			"settling":          row.Settling,
			"updated_at":        row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("contest_repo_update_contest_failed", result.Error, "contest_id", contest.ContestID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContestNotFound
	}
	return nil
}

func (r *Repository) GetContest(ctx context.Context, contestID int64) (entities.Contest, error) {
	var row contestModel
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contest{}, domainerrors.ErrContestNotFound
		}
		return entities.Contest{}, r.logError("contest_repo_get_contest_failed", err, "contest_id", contestID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListContests(ctx context.Context) ([]entities.Contest, error) {
	var rows []contestModel
	if err := r.db.WithContext(ctx).
		Order("contest_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("contest_repo_list_contests_failed", err)
	}
	return toContestEntities(rows), nil
}

func (r *Repository) ListContestsByOwner(ctx context.Context, owner string) ([]entities.Contest, error) {
	var rows []contestModel
	if err := r.db.WithContext(ctx).
		Where("owner = ?", strings.TrimSpace(owner)).
		Order("contest_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("contest_repo_list_contests_by_owner_failed", err, "owner", strings.TrimSpace(owner))
	}
	return toContestEntities(rows), nil
}

func (r *Repository) TitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&contestModel{}).
		Where("title = ?", strings.TrimSpace(title)).
		Count(&count).Error; err != nil {
		return false, r.logError("contest_repo_title_exists_failed", err)
	}
	return count > 0, nil
}

func (r *Repository) AppendEntry(ctx context.Context, entry entities.Entry) (int64, error) {
	// Entry ids restart at zero per contest: the id is the current length
	// of that contest's entry sequence.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entryModel{}).
		Where("contest_id = ?", entry.ContestID).
		Count(&count).Error; err != nil {
		return 0, r.logError("contest_repo_count_entries_failed", err, "contest_id", entry.ContestID)
	}
	entry.EntryID = count
	row := entryModelFromEntity(entry)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, domainerrors.ErrDuplicateEntry
		}
		return 0, r.logError("contest_repo_append_entry_failed", err,
			"contest_id", entry.ContestID,
			"owner", entry.Owner,
		)
	}
	return entry.EntryID, nil
}

func (r *Repository) UpdateEntry(ctx context.Context, entry entities.Entry) error {
	row := entryModelFromEntity(entry)
	result := r.db.WithContext(ctx).
		Model(&entryModel{}).
		Where("contest_id = ?", entry.ContestID).
		Where("entry_id = ?", entry.EntryID).
		Updates(map[string]any{
			"vote_count": row.VoteCount,
		})
	if result.Error != nil {
		return r.logError("contest_repo_update_entry_failed", result.Error,
			"contest_id", entry.ContestID,
			"entry_id", entry.EntryID,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEntryNotFound
	}
	return nil
}

func (r *Repository) GetEntry(ctx context.Context, contestID int64, entryID int64) (entities.Entry, error) {
	var row entryModel
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Where("entry_id = ?", entryID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Entry{}, domainerrors.ErrEntryNotFound
		}
		return entities.Entry{}, r.logError("contest_repo_get_entry_failed", err,
			"contest_id", contestID,
			"entry_id", entryID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetEntryByOwner(ctx context.Context, contestID int64, owner string) (entities.Entry, bool, error) {
	var row entryModel
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Where("owner = ?", strings.TrimSpace(owner)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Entry{}, false, nil
		}
		return entities.Entry{}, false, r.logError("contest_repo_get_entry_by_owner_failed", err,
			"contest_id", contestID,
			"owner", strings.TrimSpace(owner),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListEntries(ctx context.Context, contestID int64) ([]entities.Entry, error) {
	var rows []entryModel
	if err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("entry_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("contest_repo_list_entries_failed", err, "contest_id", contestID)
	}
	items := make([]entities.Entry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AppendVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateVote
		}
		return r.logError("contest_repo_append_vote_failed", err,
			"entry_key", vote.EntryKey,
			"voter", vote.Voter,
		)
	}
	return nil
}

func (r *Repository) ListVotes(ctx context.Context, entryKey string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("entry_key = ?", strings.TrimSpace(entryKey)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("contest_repo_list_votes_failed", err, "entry_key", strings.TrimSpace(entryKey))
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) HasVoted(ctx context.Context, entryKey string, voter string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("entry_key = ?", strings.TrimSpace(entryKey)).
		Where("voter = ?", strings.TrimSpace(voter)).
		Count(&count).Error; err != nil {
		return false, r.logError("contest_repo_has_voted_failed", err,
			"entry_key", strings.TrimSpace(entryKey),
			"voter", strings.TrimSpace(voter),
		)
	}
	return count > 0, nil
}

func (r *Repository) SetWinningEntry(ctx context.Context, contestID int64, entryID int64) error {
	row := winnerModel{ContestID: contestID, EntryID: entryID}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contest_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("contest_repo_set_winning_entry_failed", create.Error,
			"contest_id", contestID,
			"entry_id", entryID,
		)
	}
	return nil
}

func (r *Repository) GetWinningEntry(ctx context.Context, contestID int64) (entities.Entry, bool, error) {
	var row winnerModel
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Entry{}, false, nil
		}
		return entities.Entry{}, false, r.logError("contest_repo_get_winning_entry_failed", err, "contest_id", contestID)
	}
	entry, err := r.GetEntry(ctx, contestID, row.EntryID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrEntryNotFound) {
			return entities.Entry{}, false, nil
		}
		return entities.Entry{}, false, err
	}
	return entry, true, nil
}

func (r *Repository) BeginSettlement(ctx context.Context, contestID int64) error {
	result := r.db.WithContext(ctx).
		Model(&contestModel{}).
		Where("contest_id = ?", contestID).
		Where("settling = ?", false).
		Update("settling", true)
	if result.Error != nil {
		return r.logError("contest_repo_begin_settlement_failed", result.Error, "contest_id", contestID)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetContest(ctx, contestID); err != nil {
			return err
		}
		return domainerrors.ErrSettlementInProgress
	}
	return nil
}

func (r *Repository) FinishSettlement(ctx context.Context, contestID int64) error {
	result := r.db.WithContext(ctx).
		Model(&contestModel{}).
		Where("contest_id = ?", contestID).
		Update("settling", false)
	if result.Error != nil {
		return r.logError("contest_repo_finish_settlement_failed", result.Error, "contest_id", contestID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContestNotFound
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("contest_repo_append_outbox_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("contest_repo_append_outbox_insert_failed", create.Error, "outbox_id", row.OutboxID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("contest_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("contest_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	return nil
}

func (r *Repository) HeldBalance(ctx context.Context) (uint64, error) {
	var row treasuryModel
	err := r.db.WithContext(ctx).
		Where("id = ?", treasuryRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("contest_treasury_held_balance_failed", err)
	}
	return row.Held, nil
}

func (r *Repository) Deposit(ctx context.Context, from string, amount uint64) error {
	held, err := r.HeldBalance(ctx)
	if err != nil {
		return err
	}
	next, ok := entities.AddChecked(held, amount)
	if !ok {
		return domainerrors.ErrAmountOverflow
	}
	row := treasuryModel{ID: treasuryRowID, Held: next}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{"held": next}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("contest_treasury_deposit_failed", create.Error,
			"from", strings.TrimSpace(from),
			"amount", amount,
		)
	}
	return nil
}

func (r *Repository) Payout(ctx context.Context, recipient string, amount uint64) error {
	recipient = strings.TrimSpace(recipient)
	held, err := r.HeldBalance(ctx)
	if err != nil {
		return err
	}
	if held < amount {
		return domainerrors.ErrInsufficientBalance
	}
	if err := r.db.WithContext(ctx).
		Model(&treasuryModel{}).
		Where("id = ?", treasuryRowID).
		Update("held", held-amount).Error; err != nil {
		return r.logError("contest_treasury_payout_debit_failed", err,
			"recipient", recipient,
			"amount", amount,
		)
	}

	var account accountModel
	err = r.db.WithContext(ctx).
		Where("account = ?", recipient).
		First(&account).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return r.logError("contest_treasury_payout_load_account_failed", err, "recipient", recipient)
	}
	credited, ok := entities.AddChecked(account.Balance, amount)
	if !ok {
		return domainerrors.ErrAmountOverflow
	}
	row := accountModel{Account: recipient, Balance: credited}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}},
		DoUpdates: clause.Assignments(map[string]any{"balance": credited}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("contest_treasury_payout_credit_failed", create.Error,
			"recipient", recipient,
			"amount", amount,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "contest-core/contest-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("contest repository operation failed", fields...)
	return err
}

type settingsModel struct {
	ID               int       `gorm:"column:id;primaryKey"`
	PlatformOwner    string    `gorm:"column:platform_owner"`
	ParticipationFee uint64    `gorm:"column:participation_fee"`
	CreationFee      uint64    `gorm:"column:creation_fee"`
	PlatformProfits  uint64    `gorm:"column:platform_profits"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (settingsModel) TableName() string {
	return "contest_settings"
}

func settingsModelFromEntity(settings entities.Settings) settingsModel {
	return settingsModel{
		ID:               settingsRowID,
		PlatformOwner:    strings.TrimSpace(settings.PlatformOwner),
		ParticipationFee: settings.Price.ParticipationFee,
		CreationFee:      settings.Price.CreationFee,
		PlatformProfits:  settings.PlatformProfits,
		UpdatedAt:        settings.UpdatedAt.UTC(),
	}
}

func (m settingsModel) toEntity() entities.Settings {
	return entities.Settings{
		PlatformOwner: m.PlatformOwner,
		Price: entities.PriceSchedule{
			ParticipationFee: m.ParticipationFee,
			CreationFee:      m.CreationFee,
		},
		PlatformProfits: m.PlatformProfits,
		Initialized:     true,
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type contestModel struct {
	ContestID        int64     `gorm:"column:contest_id;primaryKey"`
	Owner            string    `gorm:"column:owner;index"`
	Title            string    `gorm:"column:title;uniqueIndex"`
	BannerURL        string    `gorm:"column:banner_url"`
	StartsAt         time.Time `gorm:"column:starts_at"`
	EndsAt           time.Time `gorm:"column:ends_at"`
	ParticipationFee uint64    `gorm:"column:participation_fee"`
	CreationFee      uint64    `gorm:"column:creation_fee"`
	ProfitsAccrued   uint64    `gorm:"column:profits_accrued"`
	RewardPool       uint64    `gorm:"column:reward_pool"`
	Ended            bool      `gorm:"column:ended"`
	Settling         bool      `gorm:"column:settling"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (contestModel) TableName() string {
	return "contests"
}

func contestModelFromEntity(contest entities.Contest) contestModel {
	return contestModel{
		ContestID:        contest.ContestID,
		Owner:            strings.TrimSpace(contest.Owner),
		Title:            strings.TrimSpace(contest.Title),
		BannerURL:        strings.TrimSpace(contest.BannerURL),
		StartsAt:         contest.StartsAt.UTC(),
		EndsAt:           contest.EndsAt.UTC(),
		ParticipationFee: contest.Price.ParticipationFee,
		CreationFee:      contest.Price.CreationFee,
		ProfitsAccrued:   contest.ProfitsAccrued,
		RewardPool:       contest.RewardPool,
		Ended:            contest.Ended,
		Settling:         contest.Settling,
		CreatedAt:        contest.CreatedAt.UTC(),
		UpdatedAt:        contest.UpdatedAt.UTC(),
	}
}

func (m contestModel) toEntity() entities.Contest {
	return entities.Contest{
		ContestID: m.ContestID,
		Owner:     m.Owner,
		Title:     m.Title,
		BannerURL: m.BannerURL,
		StartsAt:  m.StartsAt.UTC(),
		EndsAt:    m.EndsAt.UTC(),
		Price: entities.PriceSchedule{
			ParticipationFee: m.ParticipationFee,
			CreationFee:      m.CreationFee,
		},
		ProfitsAccrued: m.ProfitsAccrued,
		RewardPool:     m.RewardPool,
		Ended:          m.Ended,
		Settling:       m.Settling,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type entryModel struct {
	ContestID int64     `gorm:"column:contest_id;primaryKey"`
	EntryID   int64     `gorm:"column:entry_id;primaryKey"`
	EntryKey  string    `gorm:"column:entry_key;uniqueIndex"`
	Owner     string    `gorm:"column:owner;index"`
	Title     string    `gorm:"column:title"`
	ImageURL  string    `gorm:"column:image_url"`
	VoteCount uint64    `gorm:"column:vote_count"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (entryModel) TableName() string {
	return "contest_entries"
}

func entryModelFromEntity(entry entities.Entry) entryModel {
	return entryModel{
		ContestID: entry.ContestID,
		EntryID:   entry.EntryID,
		EntryKey:  strings.TrimSpace(entry.EntryKey),
		Owner:     strings.TrimSpace(entry.Owner),
		Title:     strings.TrimSpace(entry.Title),
		ImageURL:  strings.TrimSpace(entry.ImageURL),
		VoteCount: entry.VoteCount,
		CreatedAt: entry.CreatedAt.UTC(),
	}
}

func (m entryModel) toEntity() entities.Entry {
	return entities.Entry{
		EntryID:   m.EntryID,
		EntryKey:  m.EntryKey,
		ContestID: m.ContestID,
		Owner:     m.Owner,
		Title:     m.Title,
		ImageURL:  m.ImageURL,
		VoteCount: m.VoteCount,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type voteModel struct {
	EntryKey  string    `gorm:"column:entry_key;primaryKey"`
	Voter     string    `gorm:"column:voter;primaryKey"`
	Message   string    `gorm:"column:message"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "contest_votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		EntryKey:  strings.TrimSpace(vote.EntryKey),
		Voter:     strings.TrimSpace(vote.Voter),
		Message:   vote.Message,
		CreatedAt: vote.CreatedAt.UTC(),
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		EntryKey:  m.EntryKey,
		Voter:     m.Voter,
		Message:   m.Message,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type winnerModel struct {
	ContestID int64 `gorm:"column:contest_id;primaryKey"`
	EntryID   int64 `gorm:"column:entry_id"`
}

func (winnerModel) TableName() string {
	return "contest_winners"
}

type treasuryModel struct {
	ID   int    `gorm:"column:id;primaryKey"`
	Held uint64 `gorm:"column:held"`
}

func (treasuryModel) TableName() string {
	return "contest_treasury"
}

type accountModel struct {
	Account string `gorm:"column:account;primaryKey"`
	Balance uint64 `gorm:"column:balance"`
}

func (accountModel) TableName() string {
	return "contest_accounts"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "contest_outbox"
}

func toContestEntities(rows []contestModel) []entities.Contest {
	items := make([]entities.Contest, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.Treasury = (*Repository)(nil)
var _ ports.UnitOfWork = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
