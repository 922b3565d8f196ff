package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/model"
	"github.com/scribehire/scribehire/internal/repository"
	"gorm.io/gorm"
)

// TestService manages the writing-test templates of one organization.
type TestService interface {
	Create(orgID, createdBy string, req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	Update(orgID string, testID uint, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error)
	Delete(orgID string, testID uint) error
	Get(orgID string, testID uint) (*dto.TestResponseDTO, error)
	List(orgID string, q dto.TestListQuery) ([]dto.TestResponseDTO, error)
}

type testService struct {
	testRepo repository.TestRepository
}

func NewTestService(testRepo repository.TestRepository) TestService {
	return &testService{testRepo: testRepo}
}

func (s *testService) Create(orgID, createdBy string, req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	status := req.Status
	if status == "" {
		status = model.TestStatusDraft
	}

	test := model.Test{
		OrganizationID:   orgID,
		ModuleKey:        model.ModuleKeyWriting,
		Title:            req.Title,
		Description:      req.Description,
		Prompt:           req.Prompt,
		Instructions:     req.Instructions,
		TimeLimitMinutes: req.TimeLimitMinutes,
		Status:           status,
		CreatedBy:        createdBy,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("orgID", orgID).Msg("Failed to create test")
		return nil, err
	}

	resp := testToDTO(&test)
	return &resp, nil
}

func (s *testService) Update(orgID string, testID uint, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDForOrg(testID, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.Prompt != nil {
		test.Prompt = *req.Prompt
	}
	if req.Instructions != nil {
		test.Instructions = *req.Instructions
	}
	if req.TimeLimitMinutes != nil {
		test.TimeLimitMinutes = req.TimeLimitMinutes
	}
	if req.Status != nil {
		test.Status = *req.Status
	}

	if err := s.testRepo.Update(test); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to update test")
		return nil, err
	}

	resp := testToDTO(test)
	return &resp, nil
}

func (s *testService) Delete(orgID string, testID uint) error {
	if _, err := s.testRepo.FindByIDForOrg(testID, orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.testRepo.DeleteForOrg(testID, orgID)
}

func (s *testService) Get(orgID string, testID uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDForOrg(testID, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := testToDTO(test)
	return &resp, nil
}

func (s *testService) List(orgID string, q dto.TestListQuery) ([]dto.TestResponseDTO, error) {
	tests, err := s.testRepo.FindAllForOrg(orgID, q.Status, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.TestResponseDTO, len(tests))
	for i := range tests {
		dtos[i] = testToDTO(&tests[i])
	}
	return dtos, nil
}
