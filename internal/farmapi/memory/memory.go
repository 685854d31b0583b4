// Package memory provides an in-memory farm API for local development and
// handler tests. It mimics the remote service's behavior, including its
// error taxonomy, without any network.
package memory

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"farmdash/internal/core"
	"farmdash/internal/farmapi"
)

type user struct {
	id       int64
	name     string
	email    string
	password string
}

// Store is a mutex-guarded in-memory backend.
type Store struct {
	mu sync.Mutex

	users    map[string]*user // keyed by email
	tokens   map[string]int64 // token -> user id
	projects map[int64]core.Project
	records  map[int64]core.FinancialRecord

	nextUserID    int64
	nextProjectID int64
	nextRecordID  int64
}

var _ farmapi.Backend = (*Store)(nil)

// NewStore creates a memory backend seeded with one demo account
// (demo@farm.local / demo).
func NewStore() *Store {
	s := &Store{
		users:    make(map[string]*user),
		tokens:   make(map[string]int64),
		projects: make(map[int64]core.Project),
		records:  make(map[int64]core.FinancialRecord),
	}
	s.nextUserID = 1
	s.users["demo@farm.local"] = &user{
		id:       1,
		name:     "Demo Farmer",
		email:    "demo@farm.local",
		password: "demo",
	}
	return s
}

// Login implements farmapi.Authenticator.
func (s *Store) Login(_ context.Context, email, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok || u.password != password {
		return "", &farmapi.FetchError{
			Operation:  "login",
			StatusCode: http.StatusUnauthorized,
			Message:    "Invalid email or password",
		}
	}
	token := uuid.NewString()
	s.tokens[token] = u.id
	return token, nil
}

// Register implements farmapi.Authenticator.
func (s *Store) Register(_ context.Context, name, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return &farmapi.FetchError{
			Operation:  "register",
			StatusCode: http.StatusConflict,
			Message:    "An account with this email already exists",
		}
	}
	s.nextUserID++
	s.users[email] = &user{
		id:       s.nextUserID,
		name:     name,
		email:    email,
		password: password,
	}
	return nil
}

// UserID implements farmapi.UserDirectory.
func (s *Store) UserID(_ context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return 0, &farmapi.LookupError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("no user for %s", email),
		}
	}
	return u.id, nil
}

// ListProjects implements farmapi.ProjectStore.
func (s *Store) ListProjects(_ context.Context, userID int64) ([]core.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Project
	for _, p := range s.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// CreateProject implements farmapi.ProjectStore.
func (s *Store) CreateProject(_ context.Context, draft core.ProjectDraft) (core.Project, error) {
	if err := draft.Validate(); err != nil {
		return core.Project{}, &farmapi.ValidationError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProjectID++
	p := core.Project{
		ID:        s.nextProjectID,
		Name:      draft.Name,
		StartDate: draft.StartDate,
		EndDate:   draft.EndDate,
		UserID:    draft.UserID,
	}
	s.projects[p.ID] = p
	return p, nil
}

// ListRecords implements farmapi.RecordStore.
func (s *Store) ListRecords(_ context.Context, projectID int64, t core.RecordType) ([]core.FinancialRecord, error) {
	if !t.IsValid() {
		return nil, &farmapi.ValidationError{Err: core.ErrInvalidRecordType}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.FinancialRecord
	for _, r := range s.records {
		if r.ProjectID == projectID && r.Type == t {
			out = append(out, r)
		}
	}
	return out, nil
}

// CreateRecord implements farmapi.RecordStore.
func (s *Store) CreateRecord(_ context.Context, draft core.RecordDraft) (core.FinancialRecord, error) {
	if err := draft.Validate(); err != nil {
		return core.FinancialRecord{}, &farmapi.ValidationError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[draft.ProjectID]; !ok {
		return core.FinancialRecord{}, &farmapi.FetchError{
			Operation:  "create record",
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("project %d not found", draft.ProjectID),
		}
	}

	s.nextRecordID++
	r := core.FinancialRecord{
		ID:          s.nextRecordID,
		ProjectID:   draft.ProjectID,
		Type:        draft.Type,
		Amount:      draft.Amount,
		Description: draft.Description,
		Category:    draft.Category,
		Date:        draft.Date,
	}
	s.records[r.ID] = r
	return r, nil
}
