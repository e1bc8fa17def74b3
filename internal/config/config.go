package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type DeleteMode string

const (
	DeleteModeArchive DeleteMode = "archive"
	DeleteModeHard    DeleteMode = "hard"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Delete   DeleteConfig   `toml:"delete"`
	Timeline TimelineConfig `toml:"timeline"`
	Palette  []PaletteEntry `toml:"palette"`
	Create   CreateConfig   `toml:"create"`
	Keys     KeyConfig      `toml:"keys"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

type DeleteConfig struct {
	DefaultMode DeleteMode `toml:"default_mode"`
}

// TimelineConfig bounds the date axis and scroll behavior.
type TimelineConfig struct {
	ChunkMonths   int  `toml:"chunk_months"`
	CapDays       int  `toml:"cap_days"`
	PageDays      int  `toml:"page_days"`
	ThresholdDays int  `toml:"threshold_days"`
	DayCellWidth  int  `toml:"day_cell_width"`
	DimWeekends   bool `toml:"dim_weekends"`
}

// PaletteEntry maps one priority to a bar color.
type PaletteEntry struct {
	Priority string `toml:"priority"`
	Color    string `toml:"color"`
}

type CreateConfig struct {
	DefaultPriority string `toml:"default_priority"`
}

type KeyConfig struct {
	Today       string `toml:"today"`
	PageEarlier string `toml:"page_earlier"`
	PageLater   string `toml:"page_later"`
	NewTask     string `toml:"new_task"`
	Delete      string `toml:"delete"`
	Yank        string `toml:"yank"`
}

func defaultPalette() []PaletteEntry {
	return []PaletteEntry{
		{Priority: "none", Color: "#6272a4"},
		{Priority: "low", Color: "#50fa7b"},
		{Priority: "medium", Color: "#f1fa8c"},
		{Priority: "high", Color: "#ffb86c"},
		{Priority: "urgent", Color: "#ff5555"},
	}
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Delete: DeleteConfig{
			DefaultMode: DeleteModeArchive,
		},
		Timeline: TimelineConfig{
			ChunkMonths:   2,
			CapDays:       365,
			PageDays:      30,
			ThresholdDays: 20,
			DayCellWidth:  3,
			DimWeekends:   true,
		},
		Palette: defaultPalette(),
		Create: CreateConfig{
			DefaultPriority: "none",
		},
		Keys: KeyConfig{
			Today:       "t",
			PageEarlier: "[",
			PageLater:   "]",
			NewTask:     "n",
			Delete:      "x",
			Yank:        "y",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = defaults.Palette
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	switch c.Delete.DefaultMode {
	case DeleteModeArchive, DeleteModeHard:
	default:
		return fmt.Errorf("invalid delete.default_mode: %q", c.Delete.DefaultMode)
	}

	tl := c.Timeline
	if tl.ChunkMonths < 1 || tl.ChunkMonths > 12 {
		return fmt.Errorf("timeline.chunk_months must be between 1 and 12, got %d", tl.ChunkMonths)
	}
	if tl.CapDays < tl.ChunkMonths*31 {
		return fmt.Errorf("timeline.cap_days must cover at least one chunk, got %d", tl.CapDays)
	}
	if tl.PageDays < 1 || tl.PageDays > tl.CapDays {
		return fmt.Errorf("timeline.page_days must be between 1 and cap_days, got %d", tl.PageDays)
	}
	if tl.ThresholdDays < 1 || tl.ThresholdDays > tl.CapDays {
		return fmt.Errorf("timeline.threshold_days must be between 1 and cap_days, got %d", tl.ThresholdDays)
	}
	if tl.DayCellWidth < 1 || tl.DayCellWidth > 10 {
		return fmt.Errorf("timeline.day_cell_width must be between 1 and 10, got %d", tl.DayCellWidth)
	}

	if len(c.Palette) == 0 {
		return errors.New("palette must include at least one entry")
	}
	seen := map[string]struct{}{}
	for i, entry := range c.Palette {
		priority := strings.TrimSpace(strings.ToLower(entry.Priority))
		if priority == "" {
			return fmt.Errorf("palette[%d].priority is required", i)
		}
		if _, ok := seen[priority]; ok {
			return fmt.Errorf("palette[%d].priority is duplicated: %s", i, priority)
		}
		seen[priority] = struct{}{}
		if !isHexColor(entry.Color) {
			return fmt.Errorf("palette[%d].color is not a hex color: %q", i, entry.Color)
		}
	}

	return nil
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for _, r := range strings.ToLower(s) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
