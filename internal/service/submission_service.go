package service

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/model"
	"github.com/scribehire/scribehire/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionService is the public, token-addressed side of the system: it
// resolves a link token, enforces expiry and the attempt ceiling, and
// persists the candidate's response.
type SubmissionService interface {
	SubmitAttempt(token string, req dto.SubmitAttemptDTO) (*dto.AttemptResponseDTO, error)
	GetTestByToken(token string) (*dto.PublicTestDTO, error)
}

type submissionService struct {
	linkRepo      repository.TestLinkRepository
	candidateRepo repository.CandidateRepository
	attemptRepo   repository.AttemptRepository
}

func NewSubmissionService(
	linkRepo repository.TestLinkRepository,
	candidateRepo repository.CandidateRepository,
	attemptRepo repository.AttemptRepository,
) SubmissionService {
	return &submissionService{
		linkRepo:      linkRepo,
		candidateRepo: candidateRepo,
		attemptRepo:   attemptRepo,
	}
}

func (s *submissionService) SubmitAttempt(token string, req dto.SubmitAttemptDTO) (*dto.AttemptResponseDTO, error) {
	link, err := s.linkRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidLink
		}
		return nil, err
	}

	now := time.Now()
	if link.ExpiresAt != nil && link.ExpiresAt.Before(now) {
		return nil, ErrLinkExpired
	}

	candidateID := s.resolveCandidate(link.Test.OrganizationID, req.CandidateEmail, req.CandidateName)

	attempt := model.Attempt{
		TestLinkID:  link.ID,
		CandidateID: candidateID,
		StartedAt:   now,
		SubmittedAt: &now,
		Content:     req.Content,
		Metadata:    datatypes.JSONMap{},
	}
	if err := s.attemptRepo.CreateWithLimit(&attempt, link.MaxAttempts); err != nil {
		if errors.Is(err, repository.ErrAttemptLimitExceeded) {
			return nil, ErrAttemptLimitReached
		}
		log.Error().Err(err).Uint("linkID", link.ID).Msg("Failed to create attempt")
		return nil, err
	}

	attempt.TestLink = *link
	resp := attemptToDTO(&attempt)
	return &resp, nil
}

// resolveCandidate reuses an existing candidate by email, creates one when a
// name was also supplied, and otherwise leaves the attempt anonymous. A
// failure here never blocks the submission.
func (s *submissionService) resolveCandidate(orgID, email, name string) *uint {
	if email == "" {
		return nil
	}

	existing, err := s.candidateRepo.FindByEmailForOrg(orgID, email)
	if err == nil {
		return &existing.ID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Err(err).Str("email", email).Msg("Candidate lookup failed, submitting anonymously")
		return nil
	}
	if name == "" {
		return nil
	}

	candidate := model.Candidate{
		OrganizationID: orgID,
		Email:          email,
		Name:           name,
		Metadata:       datatypes.JSONMap{},
	}
	if err := s.candidateRepo.GetOrCreate(&candidate); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("Candidate creation failed, submitting anonymously")
		return nil
	}
	return &candidate.ID
}

func (s *submissionService) GetTestByToken(token string) (*dto.PublicTestDTO, error) {
	link, err := s.linkRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidLink
		}
		return nil, err
	}

	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now()) {
		return nil, ErrLinkExpired
	}

	count, err := s.attemptRepo.CountByLink(link.ID)
	if err != nil {
		return nil, err
	}

	return &dto.PublicTestDTO{
		Title:            link.Test.Title,
		Description:      link.Test.Description,
		Prompt:           link.Test.Prompt,
		Instructions:     link.Test.Instructions,
		TimeLimitMinutes: link.Test.TimeLimitMinutes,
		ExpiresAt:        link.ExpiresAt,
		MaxAttempts:      link.MaxAttempts,
		AttemptsUsed:     int(count),
	}, nil
}
