package service

import (
	"context"
	"errors"
	"testing"

	"github.com/scribehire/scribehire/internal/dto"
)

func float(v float64) *float64 { return &v }

func TestCreateOrUpdateReportReplacesScores(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	attempt := f.seedAttempt(t, link.ID, longContent)

	first, err := f.reports.CreateOrUpdate(orgA, dto.ReportUpsertDTO{
		AttemptID: attempt.ID,
		Overall:   float(70),
		Grammar:   float(65),
		Feedback:  "first review",
	})
	if err != nil {
		t.Fatalf("first CreateOrUpdate() error = %v", err)
	}
	if first.Score.Overall == nil || *first.Score.Overall != 70 {
		t.Fatalf("overall = %v, want 70", first.Score.Overall)
	}

	second, err := f.reports.CreateOrUpdate(orgA, dto.ReportUpsertDTO{
		AttemptID: attempt.ID,
		Overall:   float(88),
		Feedback:  "second review",
	})
	if err != nil {
		t.Fatalf("second CreateOrUpdate() error = %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second write created report %d, want %d", second.ID, first.ID)
	}
	if second.Feedback != "second review" {
		t.Fatalf("feedback = %q", second.Feedback)
	}
	// The whole score object is replaced, not merged.
	if second.Score.Grammar != nil {
		t.Fatalf("grammar survived the rewrite: %v", *second.Score.Grammar)
	}
}

func TestCreateOrUpdateReportCrossTenant(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	attempt := f.seedAttempt(t, link.ID, longContent)

	_, err := f.reports.CreateOrUpdate(orgB, dto.ReportUpsertDTO{AttemptID: attempt.ID, Overall: float(50)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestGenerateAIScorePersistsAndClamps(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	attempt := f.seedAttempt(t, link.ID, longContent)

	f.scorer.Result = &ScoringResult{
		Overall:         150,
		Grammar:         -20,
		Vocabulary:      80,
		Coherence:       75,
		TaskAchievement: 90,
		Feedback:        "strong response",
		Strengths:       []string{"clear structure"},
		Improvements:    []string{"tighten the opening"},
	}

	result, err := f.reports.GenerateAIScore(context.Background(), orgA, attempt.ID)
	if err != nil {
		t.Fatalf("GenerateAIScore() error = %v", err)
	}
	if f.scorer.Calls != 1 {
		t.Fatalf("scorer calls = %d, want 1", f.scorer.Calls)
	}
	if *result.Report.Score.Overall != 100 {
		t.Fatalf("overall = %v, want clamped 100", *result.Report.Score.Overall)
	}
	if *result.Report.Score.Grammar != 0 {
		t.Fatalf("grammar = %v, want clamped 0", *result.Report.Score.Grammar)
	}
	if len(result.Strengths) != 1 || len(result.Improvements) != 1 {
		t.Fatalf("narratives = %v / %v", result.Strengths, result.Improvements)
	}

	stored, err := f.reportRepo.FindByAttemptID(attempt.ID)
	if err != nil {
		t.Fatalf("stored report missing: %v", err)
	}
	if stored.Feedback != "strong response" {
		t.Fatalf("stored feedback = %q", stored.Feedback)
	}
}

func TestGenerateAIScoreOverwritesManualReport(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	attempt := f.seedAttempt(t, link.ID, longContent)

	manual, err := f.reports.CreateOrUpdate(orgA, dto.ReportUpsertDTO{AttemptID: attempt.ID, Overall: float(40)})
	if err != nil {
		t.Fatalf("manual report: %v", err)
	}

	result, err := f.reports.GenerateAIScore(context.Background(), orgA, attempt.ID)
	if err != nil {
		t.Fatalf("GenerateAIScore() error = %v", err)
	}
	if result.Report.ID != manual.ID {
		t.Fatalf("AI score created report %d, want it to overwrite %d", result.Report.ID, manual.ID)
	}
}

func TestGenerateAIScoreEmptyAttempt(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	attempt := f.seedAttempt(t, link.ID, "")

	_, err := f.reports.GenerateAIScore(context.Background(), orgA, attempt.ID)
	if !errors.Is(err, ErrAttemptEmpty) {
		t.Fatalf("error = %v, want ErrAttemptEmpty", err)
	}
}

func TestGenerateAIScoreCollaboratorFailure(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	attempt := f.seedAttempt(t, link.ID, longContent)
	f.scorer.Err = errors.New("model overloaded")

	_, err := f.reports.GenerateAIScore(context.Background(), orgA, attempt.ID)
	if !errors.Is(err, ErrScoringFailure) {
		t.Fatalf("error = %v, want ErrScoringFailure", err)
	}
	// Nothing persisted on the failure path.
	if _, err := f.reportRepo.FindByAttemptID(attempt.ID); err == nil {
		t.Fatal("failed scoring must not leave a report behind")
	}
}

func TestGenerateAIScoreNotifiesCandidate(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	candidate := f.seedCandidate(t, orgA, "pat@example.com", "Pat")
	attempt := f.seedAttempt(t, link.ID, longContent)
	if err := f.db.Model(attempt).Update("candidate_id", candidate.ID).Error; err != nil {
		t.Fatalf("attach candidate: %v", err)
	}

	if _, err := f.reports.GenerateAIScore(context.Background(), orgA, attempt.ID); err != nil {
		t.Fatalf("GenerateAIScore() error = %v", err)
	}
	if len(f.email.Reports) != 1 {
		t.Fatalf("sent %d report emails, want 1", len(f.email.Reports))
	}
	if f.email.Reports[0].To != "pat@example.com" {
		t.Fatalf("report email to = %q", f.email.Reports[0].To)
	}

	// An email failure never surfaces to the caller.
	f.email.Err = errors.New("smtp down")
	if _, err := f.reports.GenerateAIScore(context.Background(), orgA, attempt.ID); err != nil {
		t.Fatalf("scoring must survive a notification failure: %v", err)
	}
}

func TestDeleteReportIdempotent(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	attempt := f.seedAttempt(t, link.ID, longContent)

	created, err := f.reports.CreateOrUpdate(orgA, dto.ReportUpsertDTO{AttemptID: attempt.ID, Overall: float(60)})
	if err != nil {
		t.Fatalf("CreateOrUpdate() error = %v", err)
	}

	if err := f.reports.Delete(orgA, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := f.reports.Delete(orgA, created.ID); err != nil {
		t.Fatalf("repeat Delete() error = %v", err)
	}
	if _, err := f.reports.Get(orgA, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestReportCanBeRecreatedAfterDelete(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)
	attempt := f.seedAttempt(t, link.ID, longContent)

	created, err := f.reports.CreateOrUpdate(orgA, dto.ReportUpsertDTO{AttemptID: attempt.ID, Overall: float(60)})
	if err != nil {
		t.Fatalf("CreateOrUpdate() error = %v", err)
	}
	if err := f.reports.Delete(orgA, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	manual, err := f.reports.CreateOrUpdate(orgA, dto.ReportUpsertDTO{AttemptID: attempt.ID, Overall: float(75), Feedback: "second opinion"})
	if err != nil {
		t.Fatalf("CreateOrUpdate() after delete error = %v", err)
	}
	if manual.Feedback != "second opinion" {
		t.Fatalf("feedback = %q", manual.Feedback)
	}
	if _, err := f.reports.Get(orgA, manual.ID); err != nil {
		t.Fatalf("Get() after recreate error = %v", err)
	}

	// The AI path goes through the same upsert and must also succeed.
	if err := f.reports.Delete(orgA, manual.ID); err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
	if _, err := f.reports.GenerateAIScore(context.Background(), orgA, attempt.ID); err != nil {
		t.Fatalf("GenerateAIScore() after delete error = %v", err)
	}
}
