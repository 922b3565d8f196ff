package repository

import (
	"github.com/scribehire/scribehire/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CandidateRepository interface {
	// GetOrCreate inserts the candidate or, when (organization_id, email)
	// already exists, loads the surviving row into the argument.
	GetOrCreate(candidate *model.Candidate) error
	FindByEmailForOrg(orgID, email string) (*model.Candidate, error)
	FindAllForOrg(orgID string, limit, offset int) ([]model.Candidate, error)
	UpdateName(id uint, name string) error
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// GetOrCreate relies on the unique (organization_id, email) index instead of
// a read-then-insert: two concurrent calls with the same new address race to
// insert, the loser's DO NOTHING leaves zero rows affected, and both end up
// reading the same row back.
func (r *candidateRepository) GetOrCreate(candidate *model.Candidate) error {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "organization_id"}, {Name: "email"}},
		DoNothing: true,
	}).Create(candidate)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.db.
			Where("organization_id = ? AND email = ?", candidate.OrganizationID, candidate.Email).
			First(candidate).Error
	}
	return nil
}

func (r *candidateRepository) FindByEmailForOrg(orgID, email string) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.Where("organization_id = ? AND email = ?", orgID, email).First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) FindAllForOrg(orgID string, limit, offset int) ([]model.Candidate, error) {
	var candidates []model.Candidate
	query := r.db.Where("organization_id = ?", orgID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepository) UpdateName(id uint, name string) error {
	return r.db.Model(&model.Candidate{}).Where("id = ?", id).Update("name", name).Error
}
