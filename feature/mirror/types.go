package mirror

import (
	"path/filepath"
	"time"
)

// Status is the tri-state outcome of a run. It only ever escalates:
// OK -> Warn -> Fail, never back down.
type Status int

const (
	// StatusOK means all reads and writes completed with no conflicts.
	StatusOK Status = iota
	// StatusWarn means the run completed but recorded at least one
	// read or write merge conflict.
	StatusWarn
	// StatusFail means a fatal I/O error occurred; the run may have
	// stopped early.
	StatusFail
)

// String returns the human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "conflict"
	case StatusFail:
		return "failed"
	default:
		return "unknown"
	}
}

// ExitCode maps the status to the process exit contract:
// 0 for a clean run, 1 for a fatal error, 2 for a run with conflicts.
func (s Status) ExitCode() int {
	switch s {
	case StatusFail:
		return 1
	case StatusWarn:
		return 2
	default:
		return 0
	}
}

// ConflictKind distinguishes divergence among read roots from collisions
// with existing destination files.
type ConflictKind string

const (
	// ConflictRead marks divergence between same-path files across read roots.
	ConflictRead ConflictKind = "read"
	// ConflictWrite marks a size mismatch with an existing destination file.
	ConflictWrite ConflictKind = "write"
)

// Variant is one concrete file behind a relative path in one read root.
// The digest is computed lazily and only when a group needs it.
type Variant struct {
	Root    string
	RelPath string
	Size    int64
	Digest  string
}

// AbsPath returns the absolute location of the variant on disk.
func (v Variant) AbsPath() string {
	return filepath.Join(v.Root, filepath.FromSlash(v.RelPath))
}

// Group collects all variants sharing one relative path across read roots,
// in configured root order.
type Group struct {
	RelPath  string
	Variants []Variant
}

// OutputItem is the unit of work handed to the write side: a source file and
// the (possibly conflict-renamed) relative path it should land under.
type OutputItem struct {
	RelPath         string
	SrcPath         string
	Size            int64
	ConflictVariant bool
}

// ConflictRecord captures one detected conflict for reporting.
// Records are append-only and never mutated after creation.
type ConflictRecord struct {
	Kind         ConflictKind `json:"kind"`
	RelPath      string       `json:"rel_path"`
	Participants []string     `json:"participants"`
}

// Report summarizes a completed run.
type Report struct {
	// RunID uniquely identifies the run across logs and history.
	RunID string `json:"run_id"`
	// Status is the final, monotonically escalated outcome.
	Status Status `json:"-"`
	// StatusText is the human-readable status, for JSON consumers.
	StatusText string `json:"status"`
	// Conflicts lists every read and write merge conflict recorded.
	Conflicts []ConflictRecord `json:"conflicts"`
	// Errors lists per-file and fatal error messages.
	Errors []string `json:"errors"`
	// Paths is the number of distinct relative paths reconciled.
	Paths int `json:"paths"`
	// Copied is the number of files written across all destinations.
	Copied int `json:"copied"`
	// Skipped is the number of already-synced destination files.
	Skipped int `json:"skipped"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
