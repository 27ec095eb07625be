package commands

import (
	"encoding/json"
	"strconv"
	"time"

	"pictora/contexts/contest-core/contest-engine/ports"
)

func newContestEnvelope(
	eventID string,
	eventType string,
	contestID int64,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "contest-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "contest_id",
		PartitionKey:     strconv.FormatInt(contestID, 10),
		Data:             payload,
	}, nil
}
