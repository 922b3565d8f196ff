package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/config"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/model"
	"github.com/scribehire/scribehire/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultExpiresInDays = 7
	defaultMaxAttempts   = 1
)

// InvitationService turns an invitation request into a candidate record plus
// a tokenized, expiring, attempt-limited test link.
type InvitationService interface {
	InviteCandidate(ctx context.Context, orgID string, testID uint, req dto.InviteCandidateDTO) (*dto.InviteResponseDTO, error)
	ListLinks(orgID string, testID uint) ([]dto.TestLinkResponseDTO, error)
	ListCandidates(orgID string, q dto.ListQuery) ([]dto.CandidateResponseDTO, error)
}

type invitationService struct {
	testRepo      repository.TestRepository
	candidateRepo repository.CandidateRepository
	linkRepo      repository.TestLinkRepository
	attemptRepo   repository.AttemptRepository
	emailService  EmailService
	publicURL     string
}

func NewInvitationService(
	testRepo repository.TestRepository,
	candidateRepo repository.CandidateRepository,
	linkRepo repository.TestLinkRepository,
	attemptRepo repository.AttemptRepository,
	emailService EmailService,
	cfg *config.Config,
) InvitationService {
	return &invitationService{
		testRepo:      testRepo,
		candidateRepo: candidateRepo,
		linkRepo:      linkRepo,
		attemptRepo:   attemptRepo,
		emailService:  emailService,
		publicURL:     strings.TrimRight(cfg.App.PublicURL, "/"),
	}
}

func (s *invitationService) InviteCandidate(ctx context.Context, orgID string, testID uint, req dto.InviteCandidateDTO) (*dto.InviteResponseDTO, error) {
	test, err := s.testRepo.FindByIDForOrg(testID, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	candidate := model.Candidate{
		OrganizationID: orgID,
		Email:          req.Email,
		Name:           req.Name,
		Metadata:       datatypes.JSONMap{},
	}
	if err := s.candidateRepo.GetOrCreate(&candidate); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create candidate")
		return nil, err
	}
	// The row may predate this invitation with a different name; a new
	// non-empty name wins.
	if req.Name != "" && candidate.Name != req.Name {
		if err := s.candidateRepo.UpdateName(candidate.ID, req.Name); err != nil {
			log.Error().Err(err).Uint("candidateID", candidate.ID).Msg("Failed to update candidate name")
			return nil, err
		}
		candidate.Name = req.Name
	}

	expiresInDays := defaultExpiresInDays
	if req.ExpiresInDays != nil {
		expiresInDays = *req.ExpiresInDays
	}
	maxAttempts := defaultMaxAttempts
	if req.MaxAttempts != nil {
		maxAttempts = *req.MaxAttempts
	}

	now := time.Now()
	expiresAt := now.AddDate(0, 0, expiresInDays)
	link := model.TestLink{
		TestID:      test.ID,
		Token:       uuid.NewString(),
		ExpiresAt:   &expiresAt,
		MaxAttempts: &maxAttempts,
	}
	if err := s.linkRepo.Create(&link); err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("Failed to create test link")
		return nil, err
	}

	inviteURL := s.publicURL + "/test/" + link.Token

	if req.Notify {
		err := s.emailService.SendTestInvitation(ctx, InvitationEmail{
			To:            candidate.Email,
			CandidateName: candidate.Name,
			TestTitle:     test.Title,
			InviteURL:     inviteURL,
			ExpiresAt:     link.ExpiresAt,
			MaxAttempts:   link.MaxAttempts,
		})
		if err != nil {
			// Notification failures never fail the invitation itself.
			log.Warn().Err(err).Str("email", candidate.Email).Msg("Failed to send invitation email")
		}
	}

	return &dto.InviteResponseDTO{
		Candidate: candidateToDTO(&candidate),
		TestLink:  linkToDTO(&link, 0, now),
		InviteURL: inviteURL,
	}, nil
}

func (s *invitationService) ListLinks(orgID string, testID uint) ([]dto.TestLinkResponseDTO, error) {
	if _, err := s.testRepo.FindByIDForOrg(testID, orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	links, err := s.linkRepo.FindAllByTest(testID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dtos := make([]dto.TestLinkResponseDTO, len(links))
	for i := range links {
		count, err := s.attemptRepo.CountByLink(links[i].ID)
		if err != nil {
			return nil, err
		}
		dtos[i] = linkToDTO(&links[i], int(count), now)
	}
	return dtos, nil
}

func (s *invitationService) ListCandidates(orgID string, q dto.ListQuery) ([]dto.CandidateResponseDTO, error) {
	candidates, err := s.candidateRepo.FindAllForOrg(orgID, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.CandidateResponseDTO, len(candidates))
	for i := range candidates {
		dtos[i] = candidateToDTO(&candidates[i])
	}
	return dtos, nil
}
