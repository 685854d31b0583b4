package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"farmdash/internal/core"
)

// Event kinds published by the dashboard.
const (
	KindProjectCreated = "project.created"
	KindRecordCreated  = "record.created"
)

// Event is the audit message published after a successful create. Consumers
// that need full detail fetch it from the backend by ID.
type Event struct {
	EventID    string          `json:"event_id"`
	Kind       string          `json:"kind"`
	UserID     int64           `json:"user_id"`
	ProjectID  int64           `json:"project_id"`
	RecordID   int64           `json:"record_id,omitempty"`
	RecordType core.RecordType `json:"record_type,omitempty"`
	Amount     float64         `json:"amount,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewProjectCreated builds an audit event for a freshly created project.
func NewProjectCreated(p core.Project) *Event {
	return &Event{
		EventID:   uuid.NewString(),
		Kind:      KindProjectCreated,
		UserID:    p.UserID,
		ProjectID: p.ID,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordCreated builds an audit event for a freshly created record.
func NewRecordCreated(userID int64, r core.FinancialRecord) *Event {
	return &Event{
		EventID:    uuid.NewString(),
		Kind:       KindRecordCreated,
		UserID:     userID,
		ProjectID:  r.ProjectID,
		RecordID:   r.ID,
		RecordType: r.Type,
		Amount:     r.Amount,
		Timestamp:  time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON creates an event from JSON bytes.
func EventFromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
