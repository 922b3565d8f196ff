package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/middleware"
	"github.com/scribehire/scribehire/internal/service"
)

// ReportController lets reviewers record, read and delete manual rubric reports.
type ReportController struct {
	reportService service.ReportService
}

func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// UpsertReport godoc
// @Summary (Admin) Create or replace an attempt's report
// @Description One report per attempt. Posting again for the same attempt replaces the scores and feedback.
// @Tags Admin - Reports
// @Accept json
// @Produce json
// @Param report body dto.ReportUpsertDTO true "Report"
// @Success 200 {object} dto.ReportResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/reports [post]
func (c *ReportController) UpsertReport(ctx *gin.Context) {
	var req dto.ReportUpsertDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}
	resp, err := c.reportService.CreateOrUpdate(middleware.OrganizationID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetReport godoc
// @Summary (Admin) Get one report
// @Tags Admin - Reports
// @Produce json
// @Param report_id path int true "Report ID"
// @Success 200 {object} dto.ReportResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/reports/{report_id} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	reportID, ok := pathID(ctx, "report_id")
	if !ok {
		return
	}
	resp, err := c.reportService.Get(middleware.OrganizationID(ctx), reportID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListReports godoc
// @Summary (Admin) List reports
// @Tags Admin - Reports
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ReportResponseDTO
// @Router /admin/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	var q dto.ListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}
	resp, err := c.reportService.List(middleware.OrganizationID(ctx), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteReport godoc
// @Summary (Admin) Delete a report
// @Description Deleting a report that does not exist is a no-op.
// @Tags Admin - Reports
// @Produce json
// @Param report_id path int true "Report ID"
// @Success 204
// @Router /admin/reports/{report_id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	reportID, ok := pathID(ctx, "report_id")
	if !ok {
		return
	}
	if err := c.reportService.Delete(middleware.OrganizationID(ctx), reportID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
