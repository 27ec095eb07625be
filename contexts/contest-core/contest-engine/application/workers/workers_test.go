package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"pictora/contexts/contest-core/contest-engine/adapters/memory"
	"pictora/contexts/contest-core/contest-engine/application/commands"
	"pictora/contexts/contest-core/contest-engine/domain/entities"
	"pictora/contexts/contest-core/contest-engine/ports"
)

type capturePublisher struct {
	topics []string
	events []ports.EventEnvelope
	fail   error
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.fail != nil {
		return p.fail
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func seedOutbox(t *testing.T, store *memory.Store, eventIDs ...string) {
	t.Helper()
	for _, eventID := range eventIDs {
		err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
			EventID:      eventID,
			EventType:    "contest.created",
			PartitionKey: "0",
			OccurredAt:   time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("seed outbox failed: %v", err)
		}
	}
}

func TestOutboxRelayPublishesAndMarks(t *testing.T) {
	store := memory.NewStore(nil)
	seedOutbox(t, store, "evt-1", "evt-2")
	publisher := &capturePublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	if publisher.topics[0] != "contest.created" {
		t.Fatalf("expected event type as topic, got %q", publisher.topics[0])
	}

	// Published rows stay marked: a second cycle is a no-op.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected no republication, got %d events", len(publisher.events))
	}
}

func TestOutboxRelayStopsOnPublishFailure(t *testing.T) {
	store := memory.NewStore(nil)
	seedOutbox(t, store, "evt-1")
	wantErr := errors.New("broker unavailable")
	relay := OutboxRelay{Outbox: store, Publisher: &capturePublisher{fail: wantErr}, Clock: store}

	if err := relay.RunOnce(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected publish error surfaced, got %v", err)
	}

	// The row stays pending for the next cycle.
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected 1 pending row after failure, got %d err=%v", len(pending), err)
	}
}

func TestOutboxRelayHonorsBatchSize(t *testing.T) {
	store := memory.NewStore(nil)
	seedOutbox(t, store, "evt-1", "evt-2", "evt-3")
	publisher := &capturePublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, Clock: store, BatchSize: 2}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(publisher.events))
	}
}

func TestExpirySweeperNoopBeforeInitialization(t *testing.T) {
	store := memory.NewStore(nil)
	sweeper := ExpirySweeper{
		Repo: store,
		EndOutdated: commands.EndOutdatedUseCase{
			UoW:   store,
			Clock: store,
			IDGen: store,
		},
	}
	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("expected silent no-op before initialization, got %v", err)
	}
}

func TestExpirySweeperSettlesExpiredContests(t *testing.T) {
	base := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.Contest{{
		Owner:      "carol",
		Title:      "Golden Hour",
		StartsAt:   base,
		EndsAt:     base.Add(48 * time.Hour),
		RewardPool: 0,
		CreatedAt:  base,
		UpdatedAt:  base,
	}})
	store.SetNow(base.Add(72 * time.Hour))
	err := store.SaveSettings(context.Background(), entities.Settings{
		Initialized:   true,
		PlatformOwner: "platform-owner",
		Price:         entities.PriceSchedule{ParticipationFee: 10, CreationFee: 50},
	})
	if err != nil {
		t.Fatalf("seed settings failed: %v", err)
	}

	sweeper := ExpirySweeper{
		Repo: store,
		EndOutdated: commands.EndOutdatedUseCase{
			UoW:   store,
			Clock: store,
			IDGen: store,
		},
	}
	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	contest, err := store.GetContest(context.Background(), 0)
	if err != nil || !contest.Ended {
		t.Fatalf("expected contest settled by sweeper, got %+v err=%v", contest, err)
	}
}
