// Package farmapi defines the ports and error taxonomy for the farm API,
// the remote REST service that owns users, projects, and financial records.
package farmapi

import (
	"context"

	"farmdash/internal/core"
)

// Ports for the remote farm API.
type (
	Authenticator interface {
		// Login exchanges credentials for an auth token.
		Login(ctx context.Context, email, password string) (token string, err error)
		// Register creates a new account.
		Register(ctx context.Context, name, email, password string) error
	}

	UserDirectory interface {
		// UserID resolves the opaque numeric identity for an email.
		UserID(ctx context.Context, email string) (int64, error)
	}

	ProjectStore interface {
		ListProjects(ctx context.Context, userID int64) ([]core.Project, error)
		CreateProject(ctx context.Context, draft core.ProjectDraft) (core.Project, error)
	}

	RecordStore interface {
		// ListRecords fetches all records of one type for a project.
		ListRecords(ctx context.Context, projectID int64, t core.RecordType) ([]core.FinancialRecord, error)
		CreateRecord(ctx context.Context, draft core.RecordDraft) (core.FinancialRecord, error)
	}
)

// Backend is the unified interface the dashboard depends on.
type Backend interface {
	Authenticator
	UserDirectory
	ProjectStore
	RecordStore
}

type tokenKey struct{}

// WithToken returns a context carrying the session's auth token. The REST
// client sends it as a bearer credential on protected calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the auth token stored by WithToken, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
