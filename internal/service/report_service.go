package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/model"
	"github.com/scribehire/scribehire/internal/repository"
	"gorm.io/gorm"
)

// ReportService upserts rubric reports for attempts, either from a manual
// reviewer or from the AI scoring collaborator.
type ReportService interface {
	CreateOrUpdate(orgID string, req dto.ReportUpsertDTO) (*dto.ReportResponseDTO, error)
	GenerateAIScore(ctx context.Context, orgID string, attemptID uint) (*dto.ScoringResultDTO, error)
	Get(orgID string, reportID uint) (*dto.ReportResponseDTO, error)
	List(orgID string, q dto.ListQuery) ([]dto.ReportResponseDTO, error)
	// Delete is idempotent: removing an id that does not exist (or belongs to
	// another organization) succeeds without effect.
	Delete(orgID string, reportID uint) error
}

type reportService struct {
	attemptRepo  repository.AttemptRepository
	reportRepo   repository.ReportRepository
	scorer       ScoringService
	emailService EmailService
}

func NewReportService(
	attemptRepo repository.AttemptRepository,
	reportRepo repository.ReportRepository,
	scorer ScoringService,
	emailService EmailService,
) ReportService {
	return &reportService{
		attemptRepo:  attemptRepo,
		reportRepo:   reportRepo,
		scorer:       scorer,
		emailService: emailService,
	}
}

func (s *reportService) CreateOrUpdate(orgID string, req dto.ReportUpsertDTO) (*dto.ReportResponseDTO, error) {
	if _, err := resolveAttemptForOrg(s.attemptRepo, req.AttemptID, orgID); err != nil {
		return nil, err
	}

	report := model.Report{
		AttemptID:      req.AttemptID,
		OrganizationID: orgID,
		Feedback:       req.Feedback,
		GeneratedAt:    time.Now(),
	}
	score := model.Score{
		Overall:         req.Overall,
		Grammar:         req.Grammar,
		Vocabulary:      req.Vocabulary,
		Coherence:       req.Coherence,
		TaskAchievement: req.TaskAchievement,
	}
	if err := report.SetScore(score); err != nil {
		return nil, err
	}

	if err := s.reportRepo.Upsert(&report); err != nil {
		log.Error().Err(err).Uint("attemptID", req.AttemptID).Msg("Failed to upsert report")
		return nil, err
	}

	resp := reportToDTO(&report)
	return &resp, nil
}

func (s *reportService) GenerateAIScore(ctx context.Context, orgID string, attemptID uint) (*dto.ScoringResultDTO, error) {
	attempt, err := resolveAttemptForOrg(s.attemptRepo, attemptID, orgID)
	if err != nil {
		return nil, err
	}
	if attempt.Content == "" {
		return nil, ErrAttemptEmpty
	}

	test := attempt.TestLink.Test
	result, err := s.scorer.ScoreWritingTest(ctx, ScoringCriteria{
		Prompt:       test.Prompt,
		Instructions: test.Instructions,
		Content:      attempt.Content,
	})
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("AI scoring failed")
		return nil, fmt.Errorf("%w: %s", ErrScoringFailure, "scoring collaborator error")
	}

	// Clamp regardless of what the collaborator returned.
	overall := clampScore(result.Overall)
	grammar := clampScore(result.Grammar)
	vocabulary := clampScore(result.Vocabulary)
	coherence := clampScore(result.Coherence)
	taskAchievement := clampScore(result.TaskAchievement)

	report := model.Report{
		AttemptID:      attemptID,
		OrganizationID: orgID,
		Feedback:       result.Feedback,
		GeneratedAt:    time.Now(),
	}
	if err := report.SetScore(model.Score{
		Overall:         &overall,
		Grammar:         &grammar,
		Vocabulary:      &vocabulary,
		Coherence:       &coherence,
		TaskAchievement: &taskAchievement,
	}); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Upsert(&report); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Failed to persist AI report")
		return nil, err
	}

	// Results notification is best effort; the scoring result stands even
	// when the email does not go out.
	if attempt.Candidate != nil && attempt.Candidate.Email != "" {
		err := s.emailService.SendReportNotification(ctx, ReportEmail{
			To:            attempt.Candidate.Email,
			CandidateName: attempt.Candidate.Name,
			TestTitle:     test.Title,
			OverallScore:  &overall,
			Feedback:      result.Feedback,
		})
		if err != nil {
			log.Warn().Err(err).Str("email", attempt.Candidate.Email).Msg("Failed to send report notification")
		}
	}

	return &dto.ScoringResultDTO{
		Report:       reportToDTO(&report),
		Strengths:    result.Strengths,
		Improvements: result.Improvements,
	}, nil
}

func (s *reportService) Get(orgID string, reportID uint) (*dto.ReportResponseDTO, error) {
	report, err := s.reportRepo.FindByIDForOrg(reportID, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := reportToDTO(report)
	return &resp, nil
}

func (s *reportService) List(orgID string, q dto.ListQuery) ([]dto.ReportResponseDTO, error) {
	reports, err := s.reportRepo.FindAllForOrg(orgID, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.ReportResponseDTO, len(reports))
	for i := range reports {
		dtos[i] = reportToDTO(&reports[i])
	}
	return dtos, nil
}

func (s *reportService) Delete(orgID string, reportID uint) error {
	return s.reportRepo.DeleteForOrg(reportID, orgID)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
