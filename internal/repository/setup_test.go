package repository

import (
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/scribehire/scribehire/internal/model"
	"gorm.io/gorm"
)

const (
	orgA = "11111111-1111-1111-1111-111111111111"
	orgB = "22222222-2222-2222-2222-222222222222"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "repo.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(&model.Test{}, &model.Candidate{}, &model.TestLink{}, &model.Attempt{}, &model.Report{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func seedTest(t *testing.T, db *gorm.DB, orgID string) *model.Test {
	t.Helper()
	test := &model.Test{
		OrganizationID: orgID,
		ModuleKey:      model.ModuleKeyWriting,
		Title:          "Cover letter exercise",
		Prompt:         "Write a cover letter for a role you want.",
		Status:         model.TestStatusActive,
	}
	if err := db.Create(test).Error; err != nil {
		t.Fatalf("seed test: %v", err)
	}
	return test
}

func seedLink(t *testing.T, db *gorm.DB, testID uint, maxAttempts *int, expiresAt *time.Time) *model.TestLink {
	t.Helper()
	link := &model.TestLink{
		TestID:      testID,
		Token:       uuid.NewString(),
		ExpiresAt:   expiresAt,
		MaxAttempts: maxAttempts,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("seed link: %v", err)
	}
	return link
}
