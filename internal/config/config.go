package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the planner.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	DailyMinutes  int
	LookaheadDays int
	ReviewOffsets []int
	PlanTime      string // HH:MM, local time, for the nightly planning job
	SeedDemo      bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DailyMinutes:  parsePositiveInt(os.Getenv("DAILY_MINUTES"), 120),
		LookaheadDays: parsePositiveInt(os.Getenv("LOOKAHEAD_DAYS"), 60),
		ReviewOffsets: parseOffsets(os.Getenv("REVIEW_OFFSETS")),
		PlanTime:      strings.TrimSpace(os.Getenv("PLAN_TIME")),
		SeedDemo:      parseBool(os.Getenv("SEED_DEMO"), true),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "smart_learning.db"
	}

	if cfg.PlanTime == "" {
		cfg.PlanTime = "06:00"
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func parsePositiveInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseOffsets reads a comma-separated list of day offsets, e.g. "1,3,7".
// Invalid or non-positive entries are skipped; an empty result falls back to
// the default spaced-repetition intervals.
func parseOffsets(raw string) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int{1, 3, 7}
	}
	var offsets []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}
		offsets = append(offsets, n)
	}
	if len(offsets) == 0 {
		return []int{1, 3, 7}
	}
	return offsets
}

func parseBool(raw string, def bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}
