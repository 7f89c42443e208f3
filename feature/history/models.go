package history

import "time"

// Run is one persisted reconciliation run.
type Run struct {
	// ID is the run UUID, shared with log events.
	ID string `gorm:"primaryKey"`
	// Status is the final run status (ok, conflict, failed).
	Status string `gorm:"not null;index"`
	// Paths is the number of distinct relative paths reconciled.
	Paths int
	// Copied is the number of destination files written.
	Copied int
	// Skipped is the number of already-synced destination files.
	Skipped int
	// Conflicts is the number of merge conflicts recorded.
	Conflicts int
	// Errors is the number of errors recorded.
	Errors int

	StartedAt  time.Time
	FinishedAt time.Time
}

// Conflict is one persisted merge conflict belonging to a run.
type Conflict struct {
	ID uint `gorm:"primaryKey"`
	// RunID links the conflict to its run.
	RunID string `gorm:"not null;index"`
	// Kind is "read" or "write".
	Kind string `gorm:"not null"`
	// RelPath is the relative path the conflict was detected at.
	RelPath string `gorm:"not null"`
	// Participants lists the files involved, newline separated.
	Participants string
}
