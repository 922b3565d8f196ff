package repository

import (
	"github.com/scribehire/scribehire/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository interface {
	// Upsert inserts or, keyed by the unique attempt_id, overwrites score,
	// feedback and generated_at in a single statement. Last write wins, and a
	// previously deleted report is revived rather than blocking the attempt.
	Upsert(report *model.Report) error
	FindByIDForOrg(id uint, orgID string) (*model.Report, error)
	FindByAttemptID(attemptID uint) (*model.Report, error)
	FindAllForOrg(orgID string, limit, offset int) ([]model.Report, error)
	DeleteForOrg(id uint, orgID string) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Upsert(report *model.Report) error {
	// The unique attempt_id index still holds soft-deleted rows, so the
	// conflict path must also write deleted_at (NULL on the insert payload) or
	// a deleted report could never be recreated for its attempt.
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "feedback", "generated_at", "updated_at", "deleted_at"}),
	}).Create(report).Error
	if err != nil {
		return err
	}
	// On the conflict path the argument keeps its unsaved zero ID; re-read so
	// callers always see the surviving row.
	return r.db.Where("attempt_id = ?", report.AttemptID).First(report).Error
}

func (r *reportRepository) FindByIDForOrg(id uint, orgID string) (*model.Report, error) {
	var report model.Report
	err := r.db.
		Preload("Attempt.TestLink.Test").
		Preload("Attempt.Candidate").
		Where("organization_id = ?", orgID).
		First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByAttemptID(attemptID uint) (*model.Report, error) {
	var report model.Report
	err := r.db.Where("attempt_id = ?", attemptID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindAllForOrg(orgID string, limit, offset int) ([]model.Report, error) {
	var reports []model.Report
	query := r.db.
		Preload("Attempt.Candidate").
		Where("organization_id = ?", orgID).
		Order("generated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&reports).Error
	return reports, err
}

func (r *reportRepository) DeleteForOrg(id uint, orgID string) error {
	// Deleting an id that does not exist (or is not yours) is a no-op, not an
	// error: the caller observes idempotent deletes either way.
	return r.db.Where("organization_id = ?", orgID).Delete(&model.Report{}, id).Error
}
