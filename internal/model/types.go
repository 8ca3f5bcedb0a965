// Package model defines shared data structures.
package model

import "time"

// Config defines timer session settings.
type Config struct {
	PresetKey     string
	CustomMinutes int
	AlertDuration time.Duration
	AlertBackend  string
	History       bool
}

// HistoryConfig defines filters for run history.
type HistoryConfig struct {
	Since         *time.Time
	Last          int
	CompletedOnly bool
}

// Run captures one started countdown.
type Run struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Planned   time.Duration
	Elapsed   time.Duration
	Completed bool
}

// DayTotal sums runs ending on one local calendar day.
type DayTotal struct {
	Day       time.Time
	Runs      int
	Completed int
	Focus     time.Duration
}
