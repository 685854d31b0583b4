package session

import (
	"context"
	"path/filepath"
	"testing"

	"farmdash/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestMemoryOnlyLifecycle(t *testing.T) {
	s := Open("", testLogger())
	defer s.Close()

	sid, err := s.Login(context.Background(), "tok-1", "farmer@example.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	sess, ok := s.Get(sid)
	if !ok {
		t.Fatal("session not found after login")
	}
	if sess.Token != "tok-1" || sess.Email != "farmer@example.com" {
		t.Errorf("session = %+v", sess)
	}

	s.Logout(context.Background(), sid)
	if _, ok := s.Get(sid); ok {
		t.Error("session still present after logout")
	}
}

func TestUnknownSID(t *testing.T) {
	s := Open("", testLogger())
	defer s.Close()

	if _, ok := s.Get("nope"); ok {
		t.Error("expected miss for unknown sid")
	}
	// Logout of an unknown sid must not panic or error.
	s.Logout(context.Background(), "nope")
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	s1 := Open(dbPath, testLogger())
	sid, err := s1.Login(context.Background(), "tok-9", "ada@example.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2 := Open(dbPath, testLogger())
	defer s2.Close()

	sess, ok := s2.Get(sid)
	if !ok {
		t.Fatal("session not restored from disk")
	}
	if sess.Token != "tok-9" || sess.Email != "ada@example.com" {
		t.Errorf("restored session = %+v", sess)
	}
}

func TestLogoutRemovesPersistedRow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	s1 := Open(dbPath, testLogger())
	sid, err := s1.Login(context.Background(), "tok-2", "b@example.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	s1.Logout(context.Background(), sid)
	s1.Close()

	s2 := Open(dbPath, testLogger())
	defer s2.Close()
	if _, ok := s2.Get(sid); ok {
		t.Error("logged-out session came back after reopen")
	}
}

func TestOpenBadPathFallsBackToMemory(t *testing.T) {
	// A directory path cannot be opened as a database file.
	s := Open(t.TempDir(), testLogger())
	defer s.Close()

	sid, err := s.Login(context.Background(), "tok-3", "c@example.com")
	if err != nil {
		t.Fatalf("Login should succeed memory-only: %v", err)
	}
	if _, ok := s.Get(sid); !ok {
		t.Error("memory-only session missing")
	}
}
