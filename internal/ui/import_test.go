package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/taqvim/internal/db"
	"github.com/javiermolinar/taqvim/internal/event"
)

const holidaysICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//taqvim//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:nowruz-1403\r\n" +
	"DTSTAMP:20240301T080000Z\r\n" +
	"DTSTART;VALUE=DATE:20240320\r\n" +
	"DTEND;VALUE=DATE:20240324\r\n" +
	"SUMMARY:Nowruz\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:sizdah-1403\r\n" +
	"DTSTAMP:20240301T080000Z\r\n" +
	"DTSTART:20240401T090000Z\r\n" +
	"DTEND:20240401T170000Z\r\n" +
	"SUMMARY:Sizdah Bedar\r\n" +
	"DESCRIPTION:Picnic\r\n" +
	"COLOR:green\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:broken\r\n" +
	"DTSTAMP:20240301T080000Z\r\n" +
	"SUMMARY:No start\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImportCalendar(t *testing.T) {
	repo := newTestRepo(t)
	path := filepath.Join(t.TempDir(), "holidays.ics")
	if err := os.WriteFile(path, []byte(holidaysICS), 0o644); err != nil {
		t.Fatalf("writing calendar: %v", err)
	}

	out := mustRun(t, repo, "import", path)
	if !strings.Contains(out, "Imported 2 events") || !strings.Contains(out, `skipped "broken"`) {
		t.Errorf("unexpected output:\n%s", out)
	}

	ctx := context.Background()
	sizdah, err := repo.GetEvent(ctx, "sizdah-1403")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if sizdah.Color != event.ColorEmerald || sizdah.Description != "Picnic" {
		t.Errorf("unexpected event %+v", sizdah)
	}
	nowruz, err := repo.GetEvent(ctx, "nowruz-1403")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if nowruz.Duration() != 4*24*time.Hour {
		t.Errorf("expected a four day event, got %v", nowruz.Duration())
	}

	out = mustRun(t, repo, "import", path)
	if !strings.Contains(out, "Imported 0 events") || !strings.Contains(out, "2 already present") {
		t.Errorf("expected a second import to skip existing events:\n%s", out)
	}
}

func TestImportDatabase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")

	sourceRepo, err := db.New(sourcePath, db.WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("creating source repo: %v", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	start := time.Date(2024, 4, 3, 9, 0, 0, 0, time.UTC)
	shared := &event.Event{
		ID: "shared", Title: "Shared", Description: "in both",
		Start: start, End: start.Add(time.Hour), Color: event.ColorBlue, CreatedAt: start,
	}
	only := &event.Event{
		ID: "only", Title: "Only source", Description: "new",
		Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour), Color: event.ColorPink, CreatedAt: start,
	}
	if err := sourceRepo.CreateEvents(ctx, []*event.Event{shared, only}); err != nil {
		t.Fatalf("CreateEvents failed: %v", err)
	}

	destRepo := newTestRepo(t)
	if err := destRepo.CreateEvent(ctx, shared); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	res, err := importDatabase(ctx, destRepo, sourcePath)
	if err != nil {
		t.Fatalf("importDatabase failed: %v", err)
	}
	if res.Imported != 1 || len(res.Duplicates) != 1 || res.Duplicates[0] != "shared" {
		t.Fatalf("unexpected result %+v", res)
	}

	imported, err := destRepo.GetEvent(ctx, "only")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if imported.Title != "Only source" || imported.Color != event.ColorPink || !imported.Start.Equal(only.Start) {
		t.Errorf("unexpected imported event %+v", imported)
	}
}

func TestIsDatabase(t *testing.T) {
	tests := map[string]bool{
		"cal.ics":       false,
		"/tmp/other.db": true,
		"backup.SQLITE": true,
		"x.sqlite3":     true,
		"no-extension":  false,
	}
	for path, want := range tests {
		if got := isDatabase(path); got != want {
			t.Errorf("isDatabase(%q) = %t, want %t", path, got, want)
		}
	}
}
