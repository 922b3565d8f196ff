package public

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/service"
)

// SubmissionController is the candidate-facing surface. Everything here is
// addressed by link token; no organization header is required.
type SubmissionController struct {
	submissionService service.SubmissionService
}

func NewSubmissionController(submissionService service.SubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// GetTest godoc
// @Summary (Public) Fetch the test behind an invitation link
// @Tags Public
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} dto.PublicTestDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 410 {object} dto.ErrorResponse
// @Router /test/{token} [get]
func (c *SubmissionController) GetTest(ctx *gin.Context) {
	resp, err := c.submissionService.GetTestByToken(ctx.Param("token"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAttempt godoc
// @Summary (Public) Submit a writing attempt
// @Tags Public
// @Accept json
// @Produce json
// @Param token path string true "Invitation token"
// @Param attempt body dto.SubmitAttemptDTO true "Attempt content"
// @Success 201 {object} dto.AttemptResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 410 {object} dto.ErrorResponse
// @Router /test/{token}/attempts [post]
func (c *SubmissionController) SubmitAttempt(ctx *gin.Context) {
	var req dto.SubmitAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}

	resp, err := c.submissionService.SubmitAttempt(ctx.Param("token"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLink):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Test link not found"})
	case errors.Is(err, service.ErrLinkExpired):
		ctx.JSON(http.StatusGone, dto.ErrorResponse{Error: "This test link has expired"})
	case errors.Is(err, service.ErrAttemptLimitReached):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: "The attempt limit for this link has been reached"})
	default:
		log.Error().Err(err).Msg("Unhandled public API error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An unexpected error occurred"})
	}
}
