package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/viewtree/internal/config"
	vterrors "github.com/vango-dev/viewtree/internal/errors"
	"github.com/vango-dev/viewtree/pkg/journal"
)

func testCLI(t *testing.T) *cli {
	t.Helper()
	cfg := config.New()
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.db")
	return &cli{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRunRender(t *testing.T) {
	c := testCLI(t)
	var buf bytes.Buffer
	if err := runRender(context.Background(), c, "lifecycle", false, &buf); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	want := "<!DOCTYPE html><html><head></head><body><section><p>sibling</p></section><aside></aside></body></html>\n"
	if got := buf.String(); got != want {
		t.Errorf("runRender() =\n%q\nwant\n%q", got, want)
	}
}

func TestRunRenderUnknownScenario(t *testing.T) {
	c := testCLI(t)
	err := runRender(context.Background(), c, "nope", false, io.Discard)
	if err == nil || !strings.Contains(err.Error(), `unknown scenario "nope"`) {
		t.Errorf("runRender() error = %v", err)
	}
}

func TestParseSessionID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSessionID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSessionID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseSessionID(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestRunDemoRecordsSessions(t *testing.T) {
	c := testCLI(t)
	if err := runDemo(context.Background(), c, []string{"lifecycle", "router"}, true, true); err != nil {
		t.Fatalf("runDemo() error: %v", err)
	}

	j, err := journal.Open(c.cfg.JournalPath())
	if err != nil {
		t.Fatalf("journal.Open() error: %v", err)
	}
	defer j.Close()

	sessions, err := j.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 || sessions[0].Name != "lifecycle" || sessions[1].Name != "router" {
		t.Fatalf("sessions = %+v", sessions)
	}
	events, _ := j.Events(sessions[0].ID)
	if len(events) != 5 {
		t.Errorf("lifecycle events = %d, want 5", len(events))
	}
}

func TestRunDemoUnknownScenario(t *testing.T) {
	c := testCLI(t)
	err := runDemo(context.Background(), c, []string{"lifecycle", "nope"}, false, false)
	var e *vterrors.Error
	if !errors.As(err, &e) || e.Category != vterrors.CategoryCLI {
		t.Fatalf("runDemo() error = %v, want CLI error", err)
	}
}
