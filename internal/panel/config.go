package panel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/timerange"
	"github.com/wandb/wandb/timeline/internal/window"
)

const (
	ConfigFileName = "panel.yaml"

	// Drag feedback frame rate bounds.
	MinDragFPS, MaxDragFPS = 1, 120
	DefaultDragFPS         = 30
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the persisted panel UI state.
type Config struct {
	// DefaultPreset is applied when the panel starts. It is a preset value
	// such as "7d" or any duration token.
	DefaultPreset string `yaml:"default_preset" json:"default_preset"`

	// RepositionBrush keeps the brush at the same relative position when
	// the visible window changes through a preset or an absolute range.
	RepositionBrush bool `yaml:"reposition_brush" json:"reposition_brush"`

	// DragFPS caps how often the selection rectangle is redrawn while
	// dragging.
	DragFPS int `yaml:"drag_fps" json:"drag_fps"`

	// Timezone is used for absolute timestamps without an offset.
	// Empty means the local zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	BrushColor  string `yaml:"brush_color" json:"brush_color"`
	HandleColor string `yaml:"handle_color" json:"handle_color"`
	SeriesColor string `yaml:"series_color" json:"series_color"`
}

func defaultConfig() Config {
	return Config{
		DefaultPreset:   window.Presets[2].Value,
		RepositionBrush: true,
		DragFPS:         DefaultDragFPS,
		BrushColor:      DefaultBrushColor,
		HandleColor:     DefaultHandleColor,
		SeriesColor:     DefaultSeriesColor,
	}
}

// ConfigManager manages the panel configuration with thread-safe access
// and automatic persistence.
//
// All setter methods save changes immediately.
type ConfigManager struct {
	mu     sync.RWMutex
	fs     afero.Fs
	path   string
	config Config
	logger *observability.CoreLogger
}

// NewConfigManager loads the config at path from fs, creating it with
// defaults if missing. A nil fs means the OS filesystem.
func NewConfigManager(
	fs afero.Fs,
	path string,
	logger *observability.CoreLogger,
) *ConfigManager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}

	cm := &ConfigManager{
		fs:     fs,
		path:   path,
		config: defaultConfig(),
		logger: logger,
	}
	if err := cm.loadOrCreate(); err != nil {
		cm.logger.Error(fmt.Sprintf("config: error loading or creating: %v", err))
	}
	return cm
}

func (cm *ConfigManager) loadOrCreate() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.path == "" {
		return nil
	}

	data, err := afero.ReadFile(cm.fs, cm.path)
	if errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(cm.path); dir != "" {
			_ = cm.fs.MkdirAll(dir, 0o755)
		}
		return cm.save()
	}
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &cm.config); err != nil {
		return err
	}
	cm.normalize()
	return nil
}

// normalize replaces out-of-range values with defaults.
func (cm *ConfigManager) normalize() {
	defaults := defaultConfig()

	if _, err := timerange.ParseDuration(cm.config.DefaultPreset); err != nil {
		cm.config.DefaultPreset = defaults.DefaultPreset
	}
	if cm.config.DragFPS < MinDragFPS || cm.config.DragFPS > MaxDragFPS {
		cm.config.DragFPS = defaults.DragFPS
	}
	if cm.config.Timezone != "" {
		if _, err := time.LoadLocation(cm.config.Timezone); err != nil {
			cm.config.Timezone = ""
		}
	}
	if !hexColor.MatchString(cm.config.BrushColor) {
		cm.config.BrushColor = defaults.BrushColor
	}
	if !hexColor.MatchString(cm.config.HandleColor) {
		cm.config.HandleColor = defaults.HandleColor
	}
	if !hexColor.MatchString(cm.config.SeriesColor) {
		cm.config.SeriesColor = defaults.SeriesColor
	}
}

// save writes the config atomically.
//
// Must be called while holding the lock.
func (cm *ConfigManager) save() error {
	if cm.path == "" {
		return nil
	}

	data, err := yaml.Marshal(cm.config)
	if err != nil {
		return err
	}

	tempPath := cm.path + ".tmp"
	if err := afero.WriteFile(cm.fs, tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp config file: %v", err)
	}
	if err := cm.fs.Rename(tempPath, cm.path); err != nil {
		return fmt.Errorf("failed to rename tmp config file: %v", err)
	}
	return nil
}

// Path returns the config file path.
func (cm *ConfigManager) Path() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.path
}

// Snapshot returns a copy of the current config.
func (cm *ConfigManager) Snapshot() Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

func (cm *ConfigManager) DefaultPreset() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.DefaultPreset
}

// SetDefaultPreset stores the preset applied at startup.
func (cm *ConfigManager) SetDefaultPreset(token string) error {
	if _, err := timerange.ParseDuration(token); err != nil {
		return err
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.DefaultPreset = token
	return cm.save()
}

func (cm *ConfigManager) RepositionBrush() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.RepositionBrush
}

func (cm *ConfigManager) SetRepositionBrush(on bool) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.RepositionBrush = on
	return cm.save()
}

func (cm *ConfigManager) DragFPS() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.DragFPS
}

func (cm *ConfigManager) SetDragFPS(fps int) error {
	if fps < MinDragFPS || fps > MaxDragFPS {
		return fmt.Errorf("drag fps must be between %d and %d, got %d", MinDragFPS, MaxDragFPS, fps)
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.DragFPS = fps
	return cm.save()
}

// Location returns the zone for absolute timestamps.
func (cm *ConfigManager) Location() *time.Location {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if cm.config.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(cm.config.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Colors returns the brush, handle and series colors.
func (cm *ConfigManager) Colors() (brush, handle, series string) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.BrushColor, cm.config.HandleColor, cm.config.SeriesColor
}
