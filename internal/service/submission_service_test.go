package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/scribehire/scribehire/internal/dto"
)

var longContent = strings.Repeat("I would position the launch around customer value. ", 10)

func TestSubmitAttemptUnknownToken(t *testing.T) {
	f := setupServices(t)

	_, err := f.submissions.SubmitAttempt("no-such-token", dto.SubmitAttemptDTO{Content: longContent})
	if !errors.Is(err, ErrInvalidLink) {
		t.Fatalf("error = %v, want ErrInvalidLink", err)
	}
}

func TestSubmitAttemptExpiredLink(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	past := time.Now().Add(-time.Hour)
	link := f.seedLink(t, test.ID, nil, &past)

	_, err := f.submissions.SubmitAttempt(link.Token, dto.SubmitAttemptDTO{Content: longContent})
	if !errors.Is(err, ErrLinkExpired) {
		t.Fatalf("error = %v, want ErrLinkExpired", err)
	}
}

func TestSubmitAttemptAfterTestDeleted(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)

	if err := f.testRepo.DeleteForOrg(test.ID, orgA); err != nil {
		t.Fatalf("delete test: %v", err)
	}

	if _, err := f.submissions.SubmitAttempt(link.Token, dto.SubmitAttemptDTO{Content: longContent}); !errors.Is(err, ErrInvalidLink) {
		t.Fatalf("submit error = %v, want ErrInvalidLink", err)
	}
	if _, err := f.submissions.GetTestByToken(link.Token); !errors.Is(err, ErrInvalidLink) {
		t.Fatalf("view error = %v, want ErrInvalidLink", err)
	}
}

func TestSubmitAttemptEnforcesLimit(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	two := 2
	link := f.seedLink(t, test.ID, &two, nil)

	for i := 0; i < 2; i++ {
		if _, err := f.submissions.SubmitAttempt(link.Token, dto.SubmitAttemptDTO{Content: longContent}); err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	_, err := f.submissions.SubmitAttempt(link.Token, dto.SubmitAttemptDTO{Content: longContent})
	if !errors.Is(err, ErrAttemptLimitReached) {
		t.Fatalf("third attempt error = %v, want ErrAttemptLimitReached", err)
	}

	count, _ := f.attemptRepo.CountByLink(link.ID)
	if count != 2 {
		t.Fatalf("stored attempts = %d, want 2", count)
	}
}

func TestSubmitAttemptRecordsSubmission(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)

	resp, err := f.submissions.SubmitAttempt(link.Token, dto.SubmitAttemptDTO{Content: longContent})
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if resp.SubmittedAt == nil {
		t.Fatal("submitted_at not set")
	}
	if resp.TestID != test.ID || resp.TestTitle != test.Title {
		t.Fatalf("test linkage = %d %q", resp.TestID, resp.TestTitle)
	}
	if resp.CandidateID != nil {
		t.Fatal("attempt without candidate fields must stay anonymous")
	}
}

func TestSubmitAttemptCreatesNamedCandidate(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)

	resp, err := f.submissions.SubmitAttempt(link.Token, dto.SubmitAttemptDTO{
		Content:        longContent,
		CandidateEmail: "new@example.com",
		CandidateName:  "Newcomer",
	})
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if resp.CandidateID == nil {
		t.Fatal("candidate was not attached")
	}

	stored, err := f.candidateRepo.FindByEmailForOrg(orgA, "new@example.com")
	if err != nil {
		t.Fatalf("candidate row missing: %v", err)
	}
	if stored.ID != *resp.CandidateID || stored.Name != "Newcomer" {
		t.Fatalf("stored candidate = %+v", stored)
	}
}

func TestSubmitAttemptReusesKnownEmailWithoutName(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)

	existing := f.seedCandidate(t, orgA, "known@example.com", "Known")

	resp, err := f.submissions.SubmitAttempt(link.Token, dto.SubmitAttemptDTO{
		Content:        longContent,
		CandidateEmail: "known@example.com",
	})
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if resp.CandidateID == nil || *resp.CandidateID != existing.ID {
		t.Fatalf("candidate id = %v, want %d", resp.CandidateID, existing.ID)
	}
}

func TestSubmitAttemptUnknownEmailWithoutNameStaysAnonymous(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	link := f.seedLink(t, test.ID, nil, nil)

	resp, err := f.submissions.SubmitAttempt(link.Token, dto.SubmitAttemptDTO{
		Content:        longContent,
		CandidateEmail: "stranger@example.com",
	})
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if resp.CandidateID != nil {
		t.Fatal("email alone must not create a candidate")
	}
}

func TestGetTestByTokenPublicView(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	three := 3
	future := time.Now().Add(48 * time.Hour)
	link := f.seedLink(t, test.ID, &three, &future)
	f.seedAttempt(t, link.ID, longContent)

	view, err := f.submissions.GetTestByToken(link.Token)
	if err != nil {
		t.Fatalf("GetTestByToken() error = %v", err)
	}
	if view.Title != test.Title || view.Prompt != test.Prompt {
		t.Fatalf("public view = %+v", view)
	}
	if view.AttemptsUsed != 1 {
		t.Fatalf("attempts used = %d, want 1", view.AttemptsUsed)
	}
	if view.MaxAttempts == nil || *view.MaxAttempts != 3 {
		t.Fatalf("max attempts = %v, want 3", view.MaxAttempts)
	}
}

func TestGetTestByTokenGates(t *testing.T) {
	f := setupServices(t)
	test := f.seedTest(t, orgA)
	past := time.Now().Add(-time.Hour)
	expired := f.seedLink(t, test.ID, nil, &past)

	if _, err := f.submissions.GetTestByToken("missing"); !errors.Is(err, ErrInvalidLink) {
		t.Fatalf("unknown token error = %v, want ErrInvalidLink", err)
	}
	if _, err := f.submissions.GetTestByToken(expired.Token); !errors.Is(err, ErrLinkExpired) {
		t.Fatalf("expired token error = %v, want ErrLinkExpired", err)
	}
}
