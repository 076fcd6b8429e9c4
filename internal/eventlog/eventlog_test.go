package eventlog

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/hertelukas/synctui/internal/syncthing"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := Open(filepath.Join(t.TempDir(), "events", "log.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestAppendAndRecent(t *testing.T) {
	log := openTestLog(t)

	for i := int64(1); i <= 3; i++ {
		ev := syncthing.Event{
			ID:   i,
			Type: "FolderSummary",
			Data: json.RawMessage(`{"folder":"f1"}`),
		}
		if err := log.Append(ev); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}

	events, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	// Newest first.
	for i, want := range []int64{3, 2, 1} {
		if events[i].ID != want {
			t.Errorf("events[%d].ID = %d, want %d", i, events[i].ID, want)
		}
	}
	if string(events[0].Data) != `{"folder":"f1"}` {
		t.Errorf("payload = %s", events[0].Data)
	}
}

func TestRecentLimit(t *testing.T) {
	log := openTestLog(t)
	for i := int64(1); i <= 5; i++ {
		if err := log.Append(syncthing.Event{ID: i, Type: "Ping"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	events, err := log.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 || events[0].ID != 5 || events[1].ID != 4 {
		t.Errorf("events = %+v, want IDs 5 then 4", events)
	}

	if events, _ := log.Recent(0); events != nil {
		t.Errorf("Recent(0) = %+v, want nil", events)
	}
}

func TestLogSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.db")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := log.Append(syncthing.Event{ID: 1, Type: "StartupComplete"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	n, err := reopened.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
	events, err := reopened.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 1 || events[0].Type != "StartupComplete" {
		t.Errorf("events = %+v", events)
	}
}
