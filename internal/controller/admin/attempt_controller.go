package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/middleware"
	"github.com/scribehire/scribehire/internal/service"
)

// AttemptController serves the reviewer-facing view of candidate attempts and
// the trigger for AI scoring.
type AttemptController struct {
	attemptService service.AttemptService
	reportService  service.ReportService
}

func NewAttemptController(attemptService service.AttemptService, reportService service.ReportService) *AttemptController {
	return &AttemptController{
		attemptService: attemptService,
		reportService:  reportService,
	}
}

// ListAttempts godoc
// @Summary (Admin) List attempts
// @Tags Admin - Attempts
// @Produce json
// @Param test_id query int false "Filter by test"
// @Param submitted query bool false "Filter by submission state"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.AttemptResponseDTO
// @Router /admin/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	var q dto.AttemptListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}
	resp, err := c.attemptService.List(middleware.OrganizationID(ctx), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttempt godoc
// @Summary (Admin) Get one attempt with its content
// @Tags Admin - Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.attemptService.Get(middleware.OrganizationID(ctx), attemptID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GenerateAIScore godoc
// @Summary (Admin) Score an attempt with the AI rubric
// @Description Runs the writing rubric against the attempt content and upserts the resulting report.
// @Tags Admin - Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.ScoringResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /admin/attempts/{attempt_id}/ai-score [post]
func (c *AttemptController) GenerateAIScore(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.reportService.GenerateAIScore(ctx.Request.Context(), middleware.OrganizationID(ctx), attemptID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
