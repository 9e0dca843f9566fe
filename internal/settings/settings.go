// Package settings provides JSON-based application settings stored in
// the user's config directory.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	appDirName   = "pasport"
	settingsFile = "settings.json"

	// DefaultAspectRatio is the crop/export aspect (portrait).
	DefaultAspectRatio = "2:3"
	// DefaultOutputWidth is the export width in pixels.
	DefaultOutputWidth = 800

	MinOutputWidth = 400
	MaxOutputWidth = 2400
)

// AspectChoices are the ratios offered in the settings dialog.
var AspectChoices = []string{"2:3", "3:4", "4:5"}

// Settings holds the user-adjustable configuration.
type Settings struct {
	DBPath        string `json:"db_path"`
	AspectRatio   string `json:"aspect_ratio"`
	OutputWidthPx int    `json:"output_width_px"`

	path string
}

func appDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDirName)
}

// DefaultDBPath is where the card database lives unless the user picks
// another location.
func DefaultDBPath() string {
	return filepath.Join(appDir(), "pasport.db")
}

func defaults() *Settings {
	return &Settings{
		DBPath:        DefaultDBPath(),
		AspectRatio:   DefaultAspectRatio,
		OutputWidthPx: DefaultOutputWidth,
		path:          filepath.Join(appDir(), settingsFile),
	}
}

// Load reads settings from disk, falling back to defaults when the
// file is missing or unreadable.
func Load() *Settings {
	s := defaults()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		return defaults()
	}
	s.Normalize()
	return s
}

// Save writes the settings to disk, creating the directory if needed.
func (s *Settings) Save() error {
	s.Normalize()
	if s.path == "" {
		s.path = filepath.Join(appDir(), settingsFile)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Normalize replaces missing or out-of-range values with defaults.
func (s *Settings) Normalize() {
	if strings.TrimSpace(s.DBPath) == "" {
		s.DBPath = DefaultDBPath()
	}
	if _, _, err := parseAspect(s.AspectRatio); err != nil {
		s.AspectRatio = DefaultAspectRatio
	}
	if s.OutputWidthPx < MinOutputWidth || s.OutputWidthPx > MaxOutputWidth {
		s.OutputWidthPx = DefaultOutputWidth
	}
}

// Aspect returns the crop aspect as a (width, height) pair.
func (s *Settings) Aspect() (int, int) {
	w, h, err := parseAspect(s.AspectRatio)
	if err != nil {
		return parseMust(DefaultAspectRatio)
	}
	return w, h
}

// OutputSize derives the export pixel dimensions from the configured
// width and aspect ratio.
func (s *Settings) OutputSize() (int, int) {
	aw, ah := s.Aspect()
	w := s.OutputWidthPx
	if w <= 0 {
		w = DefaultOutputWidth
	}
	h := int(float64(w)*float64(ah)/float64(aw) + 0.5)
	return w, h
}

func parseAspect(ratio string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(ratio), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("aspect %q: want W:H", ratio)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("aspect width %q", parts[0])
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("aspect height %q", parts[1])
	}
	return w, h, nil
}

func parseMust(ratio string) (int, int) {
	w, h, _ := parseAspect(ratio)
	return w, h
}
