package game

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func quietLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestSaveRunLog(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	rl := newRunLog(7)
	rl.Cleared = true
	rl.TurnsPlayed = 42
	rl.Decomposed["tin_can"] = 3
	rl.Crafts["lantern"] = 1
	rl.visit("beach")
	saveRunLog(rl, quietLogger())

	data, err := os.ReadFile(filepath.Join(tmp, "trash-alchemy", "runs.jsonl"))
	if err != nil {
		t.Fatalf("runs.jsonl not created: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Errorf("log entry should end with newline; got: %q", data)
	}
	var got RunLog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if !got.Cleared || got.TurnsPlayed != 42 || got.Seed != 7 || got.Decomposed["tin_can"] != 3 {
		t.Errorf("entry = %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp should be filled in")
	}
}

func TestSaveRunLogAppendsMultiple(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	for i := range 3 {
		rl := newRunLog(int64(i))
		rl.TurnsPlayed = i
		saveRunLog(rl, quietLogger())
	}

	data, err := os.ReadFile(filepath.Join(tmp, "trash-alchemy", "runs.jsonl"))
	if err != nil {
		t.Fatalf("runs.jsonl not found: %v", err)
	}
	// Each call appends one JSON line; count the newlines.
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 log lines, got %d", len(lines))
	}
}

func TestSaveRunLogUnwritableDirIsHarmless(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	// XDG_DATA_HOME points below a regular file, so MkdirAll fails.
	t.Setenv("XDG_DATA_HOME", blocker)
	saveRunLog(newRunLog(1), quietLogger())
}

func TestVisitRecordsEachSceneOnce(t *testing.T) {
	rl := newRunLog(0)
	for _, s := range []string{"beach", "town", "beach", "workshop", "town"} {
		rl.visit(s)
	}
	if got := strings.Join(rl.ScenesVisited, ","); got != "beach,town,workshop" {
		t.Errorf("visited = %q", got)
	}
}
