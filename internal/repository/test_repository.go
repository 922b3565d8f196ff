package repository

import (
	"github.com/scribehire/scribehire/internal/model"
	"gorm.io/gorm"
)

// TestRepository persists writing tests. Every lookup is organization-scoped;
// a test from another tenant behaves exactly like a missing one.
type TestRepository interface {
	Create(test *model.Test) error
	FindByIDForOrg(id uint, orgID string) (*model.Test, error)
	FindAllForOrg(orgID, status string, limit, offset int) ([]model.Test, error)
	Update(test *model.Test) error
	DeleteForOrg(id uint, orgID string) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) FindByIDForOrg(id uint, orgID string) (*model.Test, error) {
	var test model.Test
	err := r.db.Where("organization_id = ?", orgID).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllForOrg(orgID, status string, limit, offset int) ([]model.Test, error) {
	var tests []model.Test
	query := r.db.
		Where("organization_id = ? AND module_key = ?", orgID, model.ModuleKeyWriting).
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&tests).Error
	return tests, err
}

func (r *testRepository) Update(test *model.Test) error {
	return r.db.Save(test).Error
}

func (r *testRepository) DeleteForOrg(id uint, orgID string) error {
	return r.db.Where("organization_id = ?", orgID).Delete(&model.Test{}, id).Error
}
