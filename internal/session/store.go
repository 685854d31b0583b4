// Package session keeps server-side login state. Each browser gets an
// opaque sid cookie; the sid maps to the backend auth token and account
// email. Sessions are persisted to SQLite so restarts don't log everyone
// out, with a memory-only fallback when the database is unavailable.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"farmdash/internal/log"
)

// CookieName is the sid cookie the dashboard sets on login.
const CookieName = "farmdash_sid"

// Session is one authenticated browser session.
type Session struct {
	SID       string
	Token     string
	Email     string
	CreatedAt time.Time
}

// Store holds sessions in memory, mirrored to SQLite when available.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session

	db     *sql.DB
	logger *log.Logger
}

// Open creates a session store backed by the SQLite file at dbPath. It
// never fails: if the database cannot be opened or migrated the store runs
// memory-only and logs the degradation. An empty dbPath skips persistence.
func Open(dbPath string, logger *log.Logger) *Store {
	s := &Store{
		sessions: make(map[string]Session),
		logger:   logger,
	}

	if dbPath == "" {
		return s
	}

	db, err := openDB(dbPath)
	if err != nil {
		logger.Warn("Session persistence unavailable, running memory-only", log.FieldError, err.Error())
		return s
	}
	s.db = db
	s.loadPersisted()
	return s
}

func openDB(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func (s *Store) loadPersisted() {
	rows, err := s.db.Query(`SELECT sid, token, email, created_at FROM sessions`)
	if err != nil {
		s.logger.Warn("Failed to load persisted sessions", log.FieldError, err.Error())
		return
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.SID, &sess.Token, &sess.Email, &sess.CreatedAt); err != nil {
			s.logger.Warn("Skipping unreadable session row", log.FieldError, err.Error())
			continue
		}
		s.sessions[sess.SID] = sess
		count++
	}
	if count > 0 {
		s.logger.Info("Restored persisted sessions", "count", count)
	}
}

// Login stores a new session and returns its sid.
func (s *Store) Login(ctx context.Context, token, email string) (string, error) {
	sess := Session{
		SID:       uuid.NewString(),
		Token:     token,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.SID] = sess
	s.mu.Unlock()

	if s.db != nil {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO sessions (sid, token, email, created_at) VALUES (?, ?, ?, ?)`,
			sess.SID, sess.Token, sess.Email, sess.CreatedAt)
		if err != nil {
			// The session still works, it just won't survive a restart.
			s.logger.Warn("Failed to persist session",
				log.FieldSessionID, sess.SID,
				log.FieldError, err.Error())
		}
	}

	return sess.SID, nil
}

// Logout discards the session for sid. Unknown sids are a no-op.
func (s *Store) Logout(ctx context.Context, sid string) {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()

	if s.db != nil {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE sid = ?`, sid); err != nil {
			s.logger.Warn("Failed to delete persisted session",
				log.FieldSessionID, sid,
				log.FieldError, err.Error())
		}
	}
}

// Get returns the session for sid.
func (s *Store) Get(sid string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sid]
	return sess, ok
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close releases the underlying database, if any.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
