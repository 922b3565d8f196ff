package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/scribehire/scribehire/config"
	"github.com/scribehire/scribehire/internal/model"
	"github.com/scribehire/scribehire/internal/repository"
	"gorm.io/gorm"
)

const (
	orgA = "11111111-1111-1111-1111-111111111111"
	orgB = "22222222-2222-2222-2222-222222222222"
)

// stubScorer fakes the AI collaborator. Result and Err drive the outcome.
type stubScorer struct {
	Result *ScoringResult
	Err    error
	Calls  int
}

func (s *stubScorer) ScoreWritingTest(_ context.Context, _ ScoringCriteria) (*ScoringResult, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Result, nil
}

// recordingEmail captures every send; Err makes them all fail.
type recordingEmail struct {
	Invitations []InvitationEmail
	Reports     []ReportEmail
	Err         error
}

func (r *recordingEmail) SendTestInvitation(_ context.Context, msg InvitationEmail) error {
	if r.Err != nil {
		return r.Err
	}
	r.Invitations = append(r.Invitations, msg)
	return nil
}

func (r *recordingEmail) SendReportNotification(_ context.Context, msg ReportEmail) error {
	if r.Err != nil {
		return r.Err
	}
	r.Reports = append(r.Reports, msg)
	return nil
}

type serviceFixture struct {
	db            *gorm.DB
	testRepo      repository.TestRepository
	candidateRepo repository.CandidateRepository
	linkRepo      repository.TestLinkRepository
	attemptRepo   repository.AttemptRepository
	reportRepo    repository.ReportRepository
	scorer        *stubScorer
	email         *recordingEmail

	tests       TestService
	invitations InvitationService
	submissions SubmissionService
	reports     ReportService
	attempts    AttemptService
}

func setupServices(t *testing.T) *serviceFixture {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "service.sqlite")
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

	f := &serviceFixture{
		db:            db,
		testRepo:      repository.NewTestRepository(db),
		candidateRepo: repository.NewCandidateRepository(db),
		linkRepo:      repository.NewTestLinkRepository(db),
		attemptRepo:   repository.NewAttemptRepository(db),
		reportRepo:    repository.NewReportRepository(db),
		scorer:        &stubScorer{Result: &ScoringResult{Overall: 75, Grammar: 70, Vocabulary: 72, Coherence: 78, TaskAchievement: 74, Feedback: "solid work"}},
		email:         &recordingEmail{},
	}

	cfg := &config.Config{}
	cfg.App.PublicURL = "https://assess.example.com/"
	cfg.Email.FromAddress = "noreply@example.com"

	f.tests = NewTestService(f.testRepo)
	f.invitations = NewInvitationService(f.testRepo, f.candidateRepo, f.linkRepo, f.attemptRepo, f.email, cfg)
	f.submissions = NewSubmissionService(f.linkRepo, f.candidateRepo, f.attemptRepo)
	f.reports = NewReportService(f.attemptRepo, f.reportRepo, f.scorer, f.email)
	f.attempts = NewAttemptService(f.attemptRepo)
	return f
}

func (f *serviceFixture) seedTest(t *testing.T, orgID string) *model.Test {
	t.Helper()
	test := &model.Test{
		OrganizationID: orgID,
		ModuleKey:      model.ModuleKeyWriting,
		Title:          "Product announcement draft",
		Prompt:         "Announce a fictional product launch to existing customers.",
		Instructions:   "Aim for 200-400 words.",
		Status:         model.TestStatusActive,
	}
	if err := f.testRepo.Create(test); err != nil {
		t.Fatalf("seed test: %v", err)
	}
	return test
}

func (f *serviceFixture) seedLink(t *testing.T, testID uint, maxAttempts *int, expiresAt *time.Time) *model.TestLink {
	t.Helper()
	link := &model.TestLink{
		TestID:      testID,
		Token:       uuid.NewString(),
		ExpiresAt:   expiresAt,
		MaxAttempts: maxAttempts,
	}
	if err := f.linkRepo.Create(link); err != nil {
		t.Fatalf("seed link: %v", err)
	}
	return link
}

func (f *serviceFixture) seedCandidate(t *testing.T, orgID, email, name string) *model.Candidate {
	t.Helper()
	candidate := &model.Candidate{OrganizationID: orgID, Email: email, Name: name}
	if err := f.candidateRepo.GetOrCreate(candidate); err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	return candidate
}

func (f *serviceFixture) seedAttempt(t *testing.T, linkID uint, content string) *model.Attempt {
	t.Helper()
	now := time.Now()
	attempt := &model.Attempt{TestLinkID: linkID, StartedAt: now, SubmittedAt: &now, Content: content}
	if err := f.attemptRepo.CreateWithLimit(attempt, nil); err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
	return attempt
}
