// Package config manages editor settings and named settings profiles
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tinyed/pkg/screen"
)

// Settings holds the tunable editor behavior
type Settings struct {
	Banner          string `json:"banner"`
	ShowLineNumbers bool   `json:"show_line_numbers"`
	ShowStatus      bool   `json:"show_status"`
	TraceSize       int    `json:"trace_size"`
	DebugLog        string `json:"debug_log,omitempty"`
}

// DefaultSettings returns the stock editor settings
func DefaultSettings() Settings {
	return Settings{
		Banner:          screen.DefaultBanner,
		ShowLineNumbers: true,
		ShowStatus:      true,
		TraceSize:       512,
	}
}

// Validate checks if the settings are usable
func (s Settings) Validate() error {
	if s.TraceSize <= 0 {
		return fmt.Errorf("trace size must be positive, got: %d", s.TraceSize)
	}

	return nil
}

// ProfileInfo contains a saved settings profile and its metadata
type ProfileInfo struct {
	Name        string    `json:"name"`
	Settings    Settings  `json:"settings"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsedAt  time.Time `json:"last_used_at"`
	Description string    `json:"description,omitempty"`
}

// Validate checks if the profile info is valid
func (p ProfileInfo) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if err := p.Settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if p.CreatedAt.IsZero() {
		return fmt.Errorf("created_at timestamp cannot be zero")
	}

	return nil
}

// ProfileStorage represents the on-disk format for profiles
type ProfileStorage struct {
	Profiles map[string]ProfileInfo `json:"profiles"`
	Version  string                 `json:"version"`
}

// ProfileManager interface defines the contract for profile operations
type ProfileManager interface {
	SaveProfile(name string, settings Settings) error
	LoadProfile(name string) (Settings, error)
	ListProfiles() ([]ProfileInfo, error)
	DeleteProfile(name string) error
	ProfileExists(name string) bool
	StoragePath() string
}

// FileProfileManager implements ProfileManager using file storage
type FileProfileManager struct {
	profileDir  string
	profileFile string
}

// NewFileProfileManager creates a file-based profile manager rooted at
// the given directory
func NewFileProfileManager(profileDir string) *FileProfileManager {
	return &FileProfileManager{
		profileDir:  profileDir,
		profileFile: "profiles.json",
	}
}

// DefaultProfileDir returns the per-user profile directory
func DefaultProfileDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".tinyed"), nil
}

// Initialize creates the profile directory and storage file if needed
func (fpm *FileProfileManager) Initialize() error {
	if err := os.MkdirAll(fpm.profileDir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	if _, err := os.Stat(fpm.StoragePath()); os.IsNotExist(err) {
		storage := ProfileStorage{
			Profiles: make(map[string]ProfileInfo),
			Version:  "1.0",
		}

		if err := fpm.saveStorage(storage); err != nil {
			return fmt.Errorf("failed to initialize profile file: %w", err)
		}
	}

	return nil
}

// SaveProfile saves settings under the given name. Overwriting an
// existing profile preserves its creation time and description.
func (fpm *FileProfileManager) SaveProfile(name string, settings Settings) error {
	if err := fpm.Initialize(); err != nil {
		return err
	}

	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	storage, err := fpm.loadStorage()
	if err != nil {
		return fmt.Errorf("failed to load existing profiles: %w", err)
	}

	now := time.Now()
	info := ProfileInfo{
		Name:       name,
		Settings:   settings,
		CreatedAt:  now,
		LastUsedAt: now,
	}

	if existing, exists := storage.Profiles[name]; exists {
		info.CreatedAt = existing.CreatedAt
		info.Description = existing.Description
	}

	storage.Profiles[name] = info

	if err := fpm.saveStorage(storage); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// LoadProfile loads the settings saved under the given name
func (fpm *FileProfileManager) LoadProfile(name string) (Settings, error) {
	if name == "" {
		return Settings{}, fmt.Errorf("profile name cannot be empty")
	}

	storage, err := fpm.loadStorage()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load profiles: %w", err)
	}

	info, exists := storage.Profiles[name]
	if !exists {
		return Settings{}, fmt.Errorf("profile '%s' not found", name)
	}

	// Bump last used; a failure to persist it is not worth failing the load
	info.LastUsedAt = time.Now()
	storage.Profiles[name] = info
	fpm.saveStorage(storage)

	return info.Settings, nil
}

// ListProfiles returns all saved profiles
func (fpm *FileProfileManager) ListProfiles() ([]ProfileInfo, error) {
	storage, err := fpm.loadStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	profiles := make([]ProfileInfo, 0, len(storage.Profiles))
	for _, info := range storage.Profiles {
		profiles = append(profiles, info)
	}

	return profiles, nil
}

// DeleteProfile deletes the profile with the given name
func (fpm *FileProfileManager) DeleteProfile(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	storage, err := fpm.loadStorage()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if _, exists := storage.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' not found", name)
	}

	delete(storage.Profiles, name)

	if err := fpm.saveStorage(storage); err != nil {
		return fmt.Errorf("failed to save profiles after deletion: %w", err)
	}

	return nil
}

// ProfileExists checks if a profile with the given name exists
func (fpm *FileProfileManager) ProfileExists(name string) bool {
	if name == "" {
		return false
	}

	storage, err := fpm.loadStorage()
	if err != nil {
		return false
	}

	_, exists := storage.Profiles[name]
	return exists
}

// SetProfileDescription sets the description for a profile
func (fpm *FileProfileManager) SetProfileDescription(name, description string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	storage, err := fpm.loadStorage()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	info, exists := storage.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' not found", name)
	}

	info.Description = description
	storage.Profiles[name] = info

	if err := fpm.saveStorage(storage); err != nil {
		return fmt.Errorf("failed to save profile description: %w", err)
	}

	return nil
}

// GetProfile returns the full stored record for a profile
func (fpm *FileProfileManager) GetProfile(name string) (ProfileInfo, error) {
	if name == "" {
		return ProfileInfo{}, fmt.Errorf("profile name cannot be empty")
	}

	storage, err := fpm.loadStorage()
	if err != nil {
		return ProfileInfo{}, fmt.Errorf("failed to load profiles: %w", err)
	}

	info, exists := storage.Profiles[name]
	if !exists {
		return ProfileInfo{}, fmt.Errorf("profile '%s' not found", name)
	}

	return info, nil
}

// StoragePath returns the full path to the profile storage file
func (fpm *FileProfileManager) StoragePath() string {
	return filepath.Join(fpm.profileDir, fpm.profileFile)
}

// loadStorage loads the profile storage from file
func (fpm *FileProfileManager) loadStorage() (ProfileStorage, error) {
	data, err := os.ReadFile(fpm.StoragePath())
	if err != nil {
		if os.IsNotExist(err) {
			return ProfileStorage{
				Profiles: make(map[string]ProfileInfo),
				Version:  "1.0",
			}, nil
		}
		return ProfileStorage{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	var storage ProfileStorage
	if err := json.Unmarshal(data, &storage); err != nil {
		return ProfileStorage{}, fmt.Errorf("failed to parse profile file: %w", err)
	}

	if storage.Profiles == nil {
		storage.Profiles = make(map[string]ProfileInfo)
	}

	return storage, nil
}

// saveStorage saves the profile storage to file. The write goes to a
// temporary file first so a crash cannot leave a half-written store.
func (fpm *FileProfileManager) saveStorage(storage ProfileStorage) error {
	data, err := json.MarshalIndent(storage, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile data: %w", err)
	}

	path := fpm.StoragePath()
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary profile file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary profile file: %w", err)
	}

	return nil
}
