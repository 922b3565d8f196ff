package repository

import (
	"github.com/scribehire/scribehire/internal/model"
	"gorm.io/gorm"
)

type TestLinkRepository interface {
	Create(link *model.TestLink) error
	// FindByToken loads a link with its owning test. The token is the only
	// key the public submission path ever sees; links whose test was deleted
	// report not found.
	FindByToken(token string) (*model.TestLink, error)
	FindAllByTest(testID uint) ([]model.TestLink, error)
}

type testLinkRepository struct {
	db *gorm.DB
}

func NewTestLinkRepository(db *gorm.DB) TestLinkRepository {
	return &testLinkRepository{db: db}
}

func (r *testLinkRepository) Create(link *model.TestLink) error {
	return r.db.Create(link).Error
}

func (r *testLinkRepository) FindByToken(token string) (*model.TestLink, error) {
	var link model.TestLink
	err := r.db.Preload("Test").Where("token = ?", token).First(&link).Error
	if err != nil {
		return nil, err
	}
	// The preload is soft-delete scoped: a link whose test was deleted comes
	// back with a zero Test and must behave like a missing token.
	if link.Test.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &link, nil
}

func (r *testLinkRepository) FindAllByTest(testID uint) ([]model.TestLink, error) {
	var links []model.TestLink
	err := r.db.Where("test_id = ?", testID).Order("created_at DESC").Find(&links).Error
	return links, err
}
