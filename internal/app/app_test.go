package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/bkspace/internal/config"
	"github.com/sadopc/bkspace/internal/content"
)

func TestNewSourceUnconfigured(t *testing.T) {
	src, closeSource, err := newSource(context.Background(), config.Remote{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != nil {
		t.Fatalf("expected no source, got %T", src)
	}
	closeSource()
}

func TestNewSourceREST(t *testing.T) {
	src, closeSource, err := newSource(context.Background(), config.Remote{
		URL:     "https://example.supabase.co",
		AnonKey: "anon",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeSource()
	if _, ok := src.(*content.RESTSource); !ok {
		t.Fatalf("expected REST source, got %T", src)
	}
}

func TestNewSourcePostgresBadDSN(t *testing.T) {
	_, _, err := newSource(context.Background(), config.Remote{
		URL:         "https://example.supabase.co",
		AnonKey:     "anon",
		PostgresDSN: "postgres://localhost:99999999/content",
	})
	if err == nil || !strings.Contains(err.Error(), "parse dsn") {
		t.Fatalf("expected dsn parse error, got %v", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("db_path = [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Run(context.Background(), Options{ConfigPath: path})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("expected config error, got %v", err)
	}
}
