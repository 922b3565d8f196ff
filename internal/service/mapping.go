package service

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/model"
)

func testToDTO(test *model.Test) dto.TestResponseDTO {
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("Failed to copy Test model to DTO")
	}
	return resp
}

func candidateToDTO(candidate *model.Candidate) dto.CandidateResponseDTO {
	var resp dto.CandidateResponseDTO
	if err := copier.Copy(&resp, candidate); err != nil {
		log.Error().Err(err).Uint("candidateID", candidate.ID).Msg("Failed to copy Candidate model to DTO")
	}
	return resp
}

func linkToDTO(link *model.TestLink, attemptCount int, now time.Time) dto.TestLinkResponseDTO {
	var resp dto.TestLinkResponseDTO
	if err := copier.Copy(&resp, link); err != nil {
		log.Error().Err(err).Uint("linkID", link.ID).Msg("Failed to copy TestLink model to DTO")
	}
	resp.AttemptCount = attemptCount
	resp.Status = link.Status(attemptCount, now)
	return resp
}

func attemptToDTO(attempt *model.Attempt) dto.AttemptResponseDTO {
	var resp dto.AttemptResponseDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy Attempt model to DTO")
	}
	if attempt.TestLink.Test.ID != 0 {
		resp.TestID = attempt.TestLink.Test.ID
		resp.TestTitle = attempt.TestLink.Test.Title
	}
	if attempt.Candidate != nil {
		c := candidateToDTO(attempt.Candidate)
		resp.Candidate = &c
	}
	resp.HasReport = attempt.Report != nil
	return resp
}

func reportToDTO(report *model.Report) dto.ReportResponseDTO {
	resp := dto.ReportResponseDTO{
		ID:             report.ID,
		AttemptID:      report.AttemptID,
		OrganizationID: report.OrganizationID,
		Feedback:       report.Feedback,
		GeneratedAt:    report.GeneratedAt,
	}
	score, err := report.ScoreBreakdown()
	if err != nil {
		log.Error().Err(err).Uint("reportID", report.ID).Msg("Failed to parse stored score")
	}
	resp.Score = score
	return resp
}
