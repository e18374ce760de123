package dto

import (
	"encoding/json"
	"time"
)

// BusinessEventEnvelope is the at-least-once delivery format of the upstream
// event bus. EventType selects the consumer handler; Data carries the typed
// payload for that event.
type BusinessEventEnvelope struct {
	EventType        string          `json:"eventType" binding:"required"`
	SourceDocumentID string          `json:"sourceDocumentId" binding:"required"`
	SourceDocument   string          `json:"sourceDocument"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
	CreatedBy        string          `json:"createdBy"`
	Data             json.RawMessage `json:"data" binding:"required"`
}
