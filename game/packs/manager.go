package packs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/proofgrid/proofgrid/game/board"
	"github.com/proofgrid/proofgrid/game/service"
)

var (
	ErrPackNotFound = errors.New("level pack not found")
	ErrInvalidPack  = errors.New("invalid level pack")
)

// Manager handles level pack loading and caching. The built-in tutorial pack
// is always present and serves as the default.
type Manager struct {
	packsDir     string
	packs        map[string]*board.LevelPack
	progress     map[string]*PackProgress
	progressPath string
	mu           sync.RWMutex
}

// NewManager creates a new pack manager. The packs directory is created when
// missing so user packs can be saved into it later.
func NewManager(packsDir string) (*Manager, error) {
	if err := os.MkdirAll(packsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create packs directory: %w", err)
	}

	m := &Manager{
		packsDir:     packsDir,
		packs:        make(map[string]*board.LevelPack),
		progress:     make(map[string]*PackProgress),
		progressPath: filepath.Join(packsDir, "progress.json"),
	}

	builtin := BuiltinTutorialPack()
	m.packs[builtin.ID] = builtin

	if err := m.LoadProgress(m.progressPath); err != nil {
		fmt.Printf("Warning: failed to load progress: %v\n", err)
	}

	return m, nil
}

// LoadPack loads a pack by ID, consulting the cache first
func (m *Manager) LoadPack(id string) (*board.LevelPack, error) {
	m.mu.RLock()
	if pack, exists := m.packs[id]; exists {
		m.mu.RUnlock()
		return pack, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if pack, exists := m.packs[id]; exists {
		return pack, nil
	}

	packPath := filepath.Join(m.packsDir, id+".json")
	data, err := os.ReadFile(packPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	var pack board.LevelPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack: %w", err)
	}

	if err := board.ValidatePack(&pack); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	m.packs[id] = &pack
	return &pack, nil
}

// ListPacks returns information about all available packs: the built-in pack
// plus every loadable .json pack in the packs directory
func (m *Manager) ListPacks() ([]*service.PackInfo, error) {
	builtin := BuiltinTutorialPack()
	infos := []*service.PackInfo{packInfo("", builtin)}

	entries, err := os.ReadDir(m.packsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read packs directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		pack, err := m.LoadPack(id)
		if err != nil {
			// Skip invalid packs
			continue
		}
		infos = append(infos, packInfo(entry.Name(), pack))
	}

	return infos, nil
}

// GetDefault returns the built-in tutorial pack
func (m *Manager) GetDefault() *board.LevelPack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.packs["tutorial"]
}

// SavePack writes a pack to the packs directory and caches it
func (m *Manager) SavePack(id string, pack *board.LevelPack) error {
	if err := board.ValidatePack(pack); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pack: %w", err)
	}

	packPath := filepath.Join(m.packsDir, id+".json")
	if err := os.WriteFile(packPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write pack file: %w", err)
	}

	m.mu.Lock()
	m.packs[id] = pack
	m.mu.Unlock()

	return nil
}

// GetLevel returns one level of a pack by ID
func (m *Manager) GetLevel(packID string, levelID int) (*board.Level, error) {
	pack, err := m.LoadPack(packID)
	if err != nil {
		return nil, err
	}
	level := pack.LevelByID(levelID)
	if level == nil {
		return nil, fmt.Errorf("level %d not found in pack '%s'", levelID, packID)
	}
	return level, nil
}

// RefreshCache drops every cached pack except the built-in one
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.packs = make(map[string]*board.LevelPack)
	builtin := BuiltinTutorialPack()
	m.packs[builtin.ID] = builtin
}

func packInfo(filename string, pack *board.LevelPack) *service.PackInfo {
	return &service.PackInfo{
		Filename:    filename,
		PackID:      pack.ID,
		Name:        pack.Name,
		Author:      pack.Author,
		Description: pack.Description,
		Version:     pack.Version,
		Difficulty:  pack.Difficulty,
		LevelCount:  len(pack.Levels),
	}
}
