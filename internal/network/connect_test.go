package network

import (
	"context"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewConnectorPorts(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://api.tfl.gov.uk", "api.tfl.gov.uk:443"},
		{"http://example.com/feed.pb", "example.com:80"},
		{"http://127.0.0.1:8080", "127.0.0.1:8080"},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			c, err := NewConnector(tc.url, time.Second, zap.NewNop().Sugar())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.address != tc.expected {
				t.Errorf("address = %q, expected %q", c.address, tc.expected)
			}
		})
	}
}

func TestNewConnectorRejectsMissingHost(t *testing.T) {
	if _, err := NewConnector("not a url", time.Second, zap.NewNop().Sugar()); err == nil {
		t.Error("expected error for URL without host")
	}
}

func TestConnectReturnsLocalIP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	c, err := NewConnector("http://"+ln.Addr().String(), 10*time.Millisecond, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}

	ip, err := c.Connect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ip.IsLoopback() {
		t.Errorf("expected loopback address, got %v", ip)
	}
}

func TestConnectStopsOnCancel(t *testing.T) {
	// Grab a free port, then close the listener so nothing accepts on it
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c, err := NewConnector("http://"+addr, 10*time.Millisecond, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if _, err := c.Connect(ctx); err == nil {
		t.Error("expected error after context cancellation")
	}
}
