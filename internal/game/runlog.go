package game

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"trash-alchemy/internal/config"
)

// RunLog records statistics for one run, from the first step on the beach
// to the game clear or quit.
type RunLog struct {
	Timestamp      time.Time      `json:"timestamp"`
	Seed           int64          `json:"seed"`
	Cleared        bool           `json:"cleared"`
	TurnsPlayed    int            `json:"turns_played"`
	TrashCollected int            `json:"trash_collected"`
	Decomposed     map[string]int `json:"decomposed"` // item ID → count
	Merges         int            `json:"merges"`
	Crafts         map[string]int `json:"crafts"` // result item ID → count
	Discarded      int            `json:"discarded"`
	Expansions     int            `json:"expansions"`
	ScenesVisited  []string       `json:"scenes_visited"`
}

func newRunLog(seed int64) RunLog {
	return RunLog{
		Seed:       seed,
		Decomposed: make(map[string]int),
		Crafts:     make(map[string]int),
	}
}

// visit records sceneID the first time it is entered.
func (rl *RunLog) visit(sceneID string) {
	for _, s := range rl.ScenesVisited {
		if s == sceneID {
			return
		}
	}
	rl.ScenesVisited = append(rl.ScenesVisited, sceneID)
}

// saveRunLog appends the completed run as a single JSON line to runs.jsonl.
// Errors are logged but never end the game.
func saveRunLog(rl RunLog, logger *slog.Logger) {
	dir, err := config.DataDir()
	if err != nil {
		logger.Warn("run log: cannot determine data dir", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("run log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("run log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	if rl.Timestamp.IsZero() {
		rl.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(rl)
	if err != nil {
		logger.Warn("run log: cannot marshal JSON", "error", err)
		return
	}
	f.Write(data)         //nolint:errcheck
	f.Write([]byte("\n")) //nolint:errcheck
}
