package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense RecordType = "expense"
	Income  RecordType = "income"
)

type (
	// RecordType discriminates the two kinds of financial records.
	RecordType string

	// Project is a user-owned unit of farm-finance tracking.
	Project struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		UserID    int64  `json:"user_id"`
	}

	// FinancialRecord is a dated, categorized monetary entry scoped to one
	// project. Amount is the backend's wire representation; use Money for
	// form input parsing.
	FinancialRecord struct {
		ID          int64      `json:"id"`
		ProjectID   int64      `json:"project_id"`
		Type        RecordType `json:"type"`
		Amount      float64    `json:"amount"`
		Description string     `json:"description"`
		Category    Category   `json:"category"`
		Date        string     `json:"date"`
	}

	// ProjectDraft holds the fields of a pending create-project submission.
	ProjectDraft struct {
		Name      string `json:"name"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		UserID    int64  `json:"user_id"`
	}

	// RecordDraft holds the fields of a pending create-record submission.
	RecordDraft struct {
		ProjectID   int64      `json:"project_id"`
		Type        RecordType `json:"type"`
		Amount      float64    `json:"amount"`
		Description string     `json:"description"`
		Category    Category   `json:"category"`
		Date        string     `json:"date"`
	}
)

var (
	ErrEmptyProjectName  = errors.New("project name cannot be empty")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyDescription  = errors.New("empty description")
	ErrMissingCategory   = errors.New("missing category")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrMissingDate       = errors.New("missing date")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidRecordType = errors.New("invalid record type")
)

// DateLayout is the wire format for record and project dates.
const DateLayout = "2006-01-02"

// IsValid returns true for the two known record types.
func (t RecordType) IsValid() bool {
	return t == Expense || t == Income
}

// String implements fmt.Stringer.
func (t RecordType) String() string {
	return string(t)
}

// ParseDate parses a wire date, accepting the plain date layout first and
// RFC 3339 as a fallback for backends that return full timestamps.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, nil
	}
	return time.Time{}, ErrInvalidDate
}

// Validate checks the presence rules for a project create submission.
func (d ProjectDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyProjectName
	}
	return nil
}

// Validate checks the presence rules for a record create submission. Every
// required field is checked before any network call is made.
func (d RecordDraft) Validate() error {
	if !d.Type.IsValid() {
		return ErrInvalidRecordType
	}
	if d.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	if d.Category == "" {
		return ErrMissingCategory
	}
	if !d.Category.IsValid() {
		return ErrUnknownCategory
	}
	if _, err := ParseDate(d.Date); err != nil {
		return err
	}
	return nil
}
