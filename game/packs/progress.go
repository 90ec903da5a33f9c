package packs

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// LevelCompletion records the completion data for a single level
type LevelCompletion struct {
	BestTimeSecs   float64 `json:"best_time_secs"`
	TimesCompleted int     `json:"times_completed"`
}

// PackProgress tracks completed levels of one pack, keyed by level ID
type PackProgress struct {
	Completed map[int]*LevelCompletion `json:"completed"`
}

// MarkCompleted records a completion of a level, keeps the best time, and
// persists the updated progress to disk
func (m *Manager) MarkCompleted(packID string, levelID int, timeSecs float64) {
	m.mu.Lock()

	progress, exists := m.progress[packID]
	if !exists {
		progress = &PackProgress{Completed: make(map[int]*LevelCompletion)}
		m.progress[packID] = progress
	}

	completion, exists := progress.Completed[levelID]
	if !exists {
		completion = &LevelCompletion{BestTimeSecs: math.MaxFloat64}
		progress.Completed[levelID] = completion
	}

	completion.TimesCompleted++
	if timeSecs < completion.BestTimeSecs {
		completion.BestTimeSecs = timeSecs
	}
	m.mu.Unlock()

	if m.progressPath != "" {
		if err := m.SaveProgress(m.progressPath); err != nil {
			fmt.Printf("Warning: failed to save progress: %v\n", err)
		}
	}
}

// IsLevelCompleted reports whether a level has ever been completed
func (m *Manager) IsLevelCompleted(packID string, levelID int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	progress, exists := m.progress[packID]
	if !exists {
		return false
	}
	_, completed := progress.Completed[levelID]
	return completed
}

// Progress returns the progress for a pack, or nil when nothing is recorded
func (m *Manager) Progress(packID string) *PackProgress {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.progress[packID]
}

// SaveProgress writes all progress to a single JSON file
func (m *Manager) SaveProgress(path string) error {
	m.mu.RLock()
	data, err := json.MarshalIndent(m.progress, "", "  ")
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write progress file: %w", err)
	}
	return nil
}

// LoadProgress reads progress from disk. A missing file is not an error.
func (m *Manager) LoadProgress(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read progress file: %w", err)
	}

	progress := make(map[string]*PackProgress)
	if err := json.Unmarshal(data, &progress); err != nil {
		return fmt.Errorf("failed to parse progress file: %w", err)
	}

	m.mu.Lock()
	m.progress = progress
	m.mu.Unlock()
	return nil
}
