package service

import (
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/repository"
)

// AttemptService is the admin read side over attempts.
type AttemptService interface {
	Get(orgID string, attemptID uint) (*dto.AttemptResponseDTO, error)
	List(orgID string, q dto.AttemptListQuery) ([]dto.AttemptResponseDTO, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
}

func NewAttemptService(attemptRepo repository.AttemptRepository) AttemptService {
	return &attemptService{attemptRepo: attemptRepo}
}

func (s *attemptService) Get(orgID string, attemptID uint) (*dto.AttemptResponseDTO, error) {
	attempt, err := resolveAttemptForOrg(s.attemptRepo, attemptID, orgID)
	if err != nil {
		return nil, err
	}
	resp := attemptToDTO(attempt)
	return &resp, nil
}

func (s *attemptService) List(orgID string, q dto.AttemptListQuery) ([]dto.AttemptResponseDTO, error) {
	attempts, err := s.attemptRepo.FindAllForOrg(orgID, q.TestID, q.Submitted, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.AttemptResponseDTO, len(attempts))
	for i := range attempts {
		dtos[i] = attemptToDTO(&attempts[i])
	}
	return dtos, nil
}
