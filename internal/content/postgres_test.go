package content

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// silentListener accepts connections and never answers, like a hung server.
func silentListener(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	return ln.Addr().String()
}

func TestNewPostgresSourceBadDSN(t *testing.T) {
	_, err := NewPostgresSource(context.Background(), "postgres://localhost:99999999/content", time.Second)
	if err == nil || !strings.Contains(err.Error(), "parse dsn") {
		t.Fatalf("expected dsn parse error, got %v", err)
	}
}

func TestNewPostgresSourceHungServerTimesOut(t *testing.T) {
	addr := silentListener(t)
	dsn := fmt.Sprintf("postgres://reader@%s/content?sslmode=disable", addr)

	start := time.Now()
	_, err := NewPostgresSource(context.Background(), dsn, 200*time.Millisecond)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected connect error from a server that never answers")
	}
	if elapsed > 3*time.Second {
		t.Fatalf("connect was not bounded by the timeout: took %v", elapsed)
	}
}
