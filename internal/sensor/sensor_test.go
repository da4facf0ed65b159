package sensor

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseSample(t *testing.T) {
	tests := []struct {
		line     string
		expected uint16
		wantErr  bool
	}{
		{"0\n", 0, false},
		{"  32768\r\n", 32768, false},
		{"65535", 65535, false},
		{"70000", 65535, false},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		t.Run(strings.TrimSpace(tc.line), func(t *testing.T) {
			got, err := ParseSample(tc.line)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseSample(%q) expected error, got %d", tc.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSample(%q) unexpected error: %v", tc.line, err)
			}
			if got != tc.expected {
				t.Errorf("ParseSample(%q) = %d, expected %d", tc.line, got, tc.expected)
			}
		})
	}
}

func TestLineReaderSkipsGarbage(t *testing.T) {
	input := "boot ok\n\n12000\n13000\n"
	l := newLineReader(strings.NewReader(input), zap.NewNop().Sugar())

	got, err := l.readSample(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 12000 {
		t.Errorf("expected 12000, got %d", got)
	}
}

func TestLineReaderLastLineWithoutNewline(t *testing.T) {
	l := newLineReader(strings.NewReader("4096"), zap.NewNop().Sugar())

	got, err := l.readSample(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4096 {
		t.Errorf("expected 4096, got %d", got)
	}
}

func TestLineReaderEOF(t *testing.T) {
	l := newLineReader(strings.NewReader("noise\n"), zap.NewNop().Sugar())

	if _, err := l.readSample(context.Background()); err == nil {
		t.Error("expected error at end of input")
	}
}

func TestLineReaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := newLineReader(strings.NewReader("100\n"), zap.NewNop().Sugar())
	if _, err := l.readSample(ctx); err == nil {
		t.Error("expected context error")
	}
}

func TestFixed(t *testing.T) {
	got, err := Fixed{Value: 40000}.Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 40000 {
		t.Errorf("expected 40000, got %d", got)
	}
}
