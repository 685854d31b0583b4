package core

import (
	"errors"
	"testing"
)

func TestRecordDraftValidate(t *testing.T) {
	valid := RecordDraft{
		ProjectID:   7,
		Type:        Expense,
		Amount:      50,
		Description: "Feed",
		Category:    CategoryFeed,
		Date:        "2024-01-15",
	}

	cases := []struct {
		name   string
		mutate func(d *RecordDraft)
		want   error
	}{
		{"valid", func(d *RecordDraft) {}, nil},
		{"bad type", func(d *RecordDraft) { d.Type = "transfer" }, ErrInvalidRecordType},
		{"zero amount", func(d *RecordDraft) { d.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(d *RecordDraft) { d.Amount = -3 }, ErrInvalidAmount},
		{"empty description", func(d *RecordDraft) { d.Description = "  " }, ErrEmptyDescription},
		{"missing category", func(d *RecordDraft) { d.Category = "" }, ErrMissingCategory},
		{"unknown category", func(d *RecordDraft) { d.Category = "fuel" }, ErrUnknownCategory},
		{"missing date", func(d *RecordDraft) { d.Date = "" }, ErrMissingDate},
		{"bad date", func(d *RecordDraft) { d.Date = "15/01/2024" }, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid
			tc.mutate(&d)
			err := d.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestProjectDraftValidate(t *testing.T) {
	if err := (ProjectDraft{Name: "Layers 2024"}).Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	if err := (ProjectDraft{Name: "   "}).Validate(); !errors.Is(err, ErrEmptyProjectName) {
		t.Fatalf("expected ErrEmptyProjectName, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-01-15"); err != nil {
		t.Fatalf("plain date rejected: %v", err)
	}
	if _, err := ParseDate("2024-01-15T10:30:00Z"); err != nil {
		t.Fatalf("RFC3339 date rejected: %v", err)
	}
	if _, err := ParseDate("yesterday"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestCategoryEnumeration(t *testing.T) {
	if len(Categories()) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(Categories()))
	}
	for _, c := range Categories() {
		if !c.IsValid() {
			t.Fatalf("enumerated category %q reported invalid", c)
		}
	}
	if Category("fuel").IsValid() {
		t.Fatal("unknown category reported valid")
	}
	if Category(FilterAll).IsValid() {
		t.Fatal("filter sentinel must not be a valid category")
	}
}
