package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"farmdash/internal/core"
	"farmdash/internal/farmapi"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["email"] != "farmer@example.com" || body["password"] != "secret" {
			t.Errorf("unexpected credentials: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	token, err := c.Login(context.Background(), "farmer@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
}

func TestLoginFailureUsesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "wrong password"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "farmer@example.com", "nope")
	var fetchErr *farmapi.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if fetchErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", fetchErr.StatusCode)
	}
	if fetchErr.Message != "wrong password" {
		t.Errorf("message = %q", fetchErr.Message)
	}
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "a@b.c", "x")
	var fetchErr *farmapi.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T", err)
	}
	if fetchErr.Message != "Invalid credentials." {
		t.Errorf("message = %q, want fallback", fetchErr.Message)
	}
}

func TestLoginNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "a@b.c", "x")
	var netErr *farmapi.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestUserIDLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/userid" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("email"); got != "farmer@example.com" {
			t.Errorf("email = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]int64{"userid": 42})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	id, err := c.UserID(context.Background(), "farmer@example.com")
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}

func TestUserIDLookupError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "no such user"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UserID(context.Background(), "ghost@example.com")
	var lookupErr *farmapi.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected LookupError, got %T: %v", err, err)
	}
	if lookupErr.Message != "no such user" {
		t.Errorf("message = %q", lookupErr.Message)
	}
}

func TestListProjectsSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("user_id"); got != "42" {
			t.Errorf("user_id = %q", got)
		}
		json.NewEncoder(w).Encode([]core.Project{
			{ID: 1, Name: "Broiler batch 7", UserID: 42},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := farmapi.WithToken(context.Background(), "tok-123")
	projects, err := c.ListProjects(ctx, 42)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Broiler batch 7" {
		t.Errorf("projects = %+v", projects)
	}
}

func TestCreateProjectValidatesBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CreateProject(context.Background(), core.ProjectDraft{Name: "   "})
	var valErr *farmapi.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if !errors.Is(err, core.ErrEmptyProjectName) {
		t.Errorf("expected ErrEmptyProjectName, got %v", err)
	}
	if called {
		t.Error("server should not have been called")
	}
}

func TestCreateProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/projects" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var draft core.ProjectDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(core.Project{
			ID: 7, Name: draft.Name, StartDate: draft.StartDate, EndDate: draft.EndDate, UserID: draft.UserID,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	project, err := c.CreateProject(context.Background(), core.ProjectDraft{
		Name: "Layer house", StartDate: "2026-09-01", EndDate: "2026-09-01", UserID: 42,
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if project.ID != 7 || project.Name != "Layer house" {
		t.Errorf("project = %+v", project)
	}
}

func TestListRecordsPerTypeEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/finance/expense/7" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]core.FinancialRecord{
			{ID: 1, ProjectID: 7, Type: core.Expense, Amount: 120, Category: core.CategoryFeed, Date: "2026-08-30"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	records, err := c.ListRecords(context.Background(), 7, core.Expense)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 1 || records[0].Category != core.CategoryFeed {
		t.Errorf("records = %+v", records)
	}
}

func TestListRecordsRejectsUnknownType(t *testing.T) {
	c := NewClient("http://unused.invalid")
	_, err := c.ListRecords(context.Background(), 7, core.RecordType("loan"))
	if !errors.Is(err, core.ErrInvalidRecordType) {
		t.Fatalf("expected ErrInvalidRecordType, got %v", err)
	}
}

func TestCreateRecordValidationMatrix(t *testing.T) {
	valid := core.RecordDraft{
		ProjectID:   7,
		Type:        core.Expense,
		Amount:      120.50,
		Description: "Starter feed",
		Category:    core.CategoryFeed,
		Date:        "2026-08-30",
	}

	cases := []struct {
		name    string
		mutate  func(*core.RecordDraft)
		wantErr error
	}{
		{"zero amount", func(d *core.RecordDraft) { d.Amount = 0 }, core.ErrInvalidAmount},
		{"negative amount", func(d *core.RecordDraft) { d.Amount = -5 }, core.ErrInvalidAmount},
		{"empty description", func(d *core.RecordDraft) { d.Description = "  " }, core.ErrEmptyDescription},
		{"missing category", func(d *core.RecordDraft) { d.Category = "" }, core.ErrMissingCategory},
		{"unknown category", func(d *core.RecordDraft) { d.Category = "fuel" }, core.ErrUnknownCategory},
		{"missing date", func(d *core.RecordDraft) { d.Date = "" }, core.ErrMissingDate},
	}

	c := NewClient("http://unused.invalid")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := valid
			tc.mutate(&draft)
			_, err := c.CreateRecord(context.Background(), draft)
			var valErr *farmapi.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/finance" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var draft core.RecordDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(core.FinancialRecord{
			ID: 99, ProjectID: draft.ProjectID, Type: draft.Type,
			Amount: draft.Amount, Description: draft.Description,
			Category: draft.Category, Date: draft.Date,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	record, err := c.CreateRecord(context.Background(), core.RecordDraft{
		ProjectID: 7, Type: core.Income, Amount: 300,
		Description: "Egg sales", Category: core.CategoryEgg, Date: "2026-08-31",
	})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if record.ID != 99 || record.Type != core.Income {
		t.Errorf("record = %+v", record)
	}
}

func TestCreateRecordBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "project closed"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.CreateRecord(context.Background(), core.RecordDraft{
		ProjectID: 7, Type: core.Expense, Amount: 10,
		Description: "Late feed", Category: core.CategoryFeed, Date: "2026-08-31",
	})
	var fetchErr *farmapi.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if fetchErr.Message != "project closed" {
		t.Errorf("message = %q", fetchErr.Message)
	}
}
