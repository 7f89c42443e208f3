package history

import (
	"fmt"
	"strings"

	"ditto/feature/mirror"

	"gorm.io/gorm"
)

// Repository persists run reports and serves the history command.
type Repository struct {
	db *gorm.DB
}

// NewRepository migrates the history schema and returns a repository.
func NewRepository(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&Run{}, &Conflict{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Save records a finished run and its conflicts in one transaction.
func (r *Repository) Save(report *mirror.Report) error {
	run := Run{
		ID:         report.RunID,
		Status:     report.Status.String(),
		Paths:      report.Paths,
		Copied:     report.Copied,
		Skipped:    report.Skipped,
		Conflicts:  len(report.Conflicts),
		Errors:     len(report.Errors),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}

		for _, c := range report.Conflicts {
			row := Conflict{
				RunID:        report.RunID,
				Kind:         string(c.Kind),
				RelPath:      c.RelPath,
				Participants: strings.Join(c.Participants, "\n"),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Recent returns the most recent runs, newest first.
func (r *Repository) Recent(limit int) ([]Run, error) {
	var runs []Run
	result := r.db.
		Order("started_at desc").
		Limit(limit).
		Find(&runs)

	return runs, result.Error
}

// Unclean returns runs that ended with conflicts or a failure, newest first.
func (r *Repository) Unclean() ([]Run, error) {
	var runs []Run
	result := r.db.
		Where("status <> ?", mirror.StatusOK.String()).
		Order("started_at desc").
		Find(&runs)

	return runs, result.Error
}

// ConflictsFor returns the conflicts recorded for one run.
func (r *Repository) ConflictsFor(runID string) ([]Conflict, error) {
	var conflicts []Conflict
	result := r.db.
		Where("run_id = ?", runID).
		Order("id asc").
		Find(&conflicts)

	return conflicts, result.Error
}

// Stats aggregates run counts by outcome.
type Stats struct {
	Total   int64
	Clean   int64
	Unclean int64
}

// GetStats returns aggregate run statistics.
func (r *Repository) GetStats() (Stats, error) {
	var stats Stats
	if err := r.db.Model(&Run{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := r.db.Model(&Run{}).
		Where("status = ?", mirror.StatusOK.String()).
		Count(&stats.Clean).Error; err != nil {
		return stats, err
	}

	stats.Unclean = stats.Total - stats.Clean
	return stats, nil
}
