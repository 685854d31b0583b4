package events

import (
	"testing"
	"time"

	"farmdash/internal/core"
)

func TestNewProjectCreated(t *testing.T) {
	p := core.Project{ID: 7, Name: "Broiler batch", UserID: 42}
	e := NewProjectCreated(p)

	if e.Kind != KindProjectCreated {
		t.Errorf("kind = %q", e.Kind)
	}
	if e.ProjectID != 7 || e.UserID != 42 {
		t.Errorf("event = %+v", e)
	}
	if e.EventID == "" {
		t.Error("missing event id")
	}
	if time.Since(e.Timestamp) > time.Second {
		t.Error("timestamp should be recent")
	}
}

func TestNewRecordCreated(t *testing.T) {
	r := core.FinancialRecord{ID: 99, ProjectID: 7, Type: core.Income, Amount: 300}
	e := NewRecordCreated(42, r)

	if e.Kind != KindRecordCreated {
		t.Errorf("kind = %q", e.Kind)
	}
	if e.RecordID != 99 || e.RecordType != core.Income || e.Amount != 300 {
		t.Errorf("event = %+v", e)
	}
}

func TestEventJSONRoundTrip(t *testing.T) {
	e := NewRecordCreated(42, core.FinancialRecord{ID: 1, ProjectID: 2, Type: core.Expense, Amount: 10})
	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	parsed, err := EventFromJSON(data)
	if err != nil {
		t.Fatalf("EventFromJSON: %v", err)
	}
	if parsed.EventID != e.EventID || parsed.Kind != e.Kind || parsed.RecordID != e.RecordID {
		t.Errorf("parsed = %+v, want %+v", parsed, e)
	}
}

func TestEventFromInvalidJSON(t *testing.T) {
	if _, err := EventFromJSON([]byte(`{"record_id": "nope"}`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
