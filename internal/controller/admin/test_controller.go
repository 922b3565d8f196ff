package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/middleware"
	"github.com/scribehire/scribehire/internal/service"
)

// TestController exposes the admin CRUD surface over writing tests plus
// candidate invitations and link listings.
type TestController struct {
	testService       service.TestService
	invitationService service.InvitationService
}

func NewTestController(testService service.TestService, invitationService service.InvitationService) *TestController {
	return &TestController{
		testService:       testService,
		invitationService: invitationService,
	}
}

// CreateTest godoc
// @Summary (Admin) Create a writing test
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}

	resp, err := c.testService.Create(middleware.OrganizationID(ctx), middleware.UserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateTest godoc
// @Summary (Admin) Update a writing test
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param test body dto.TestUpdateDTO true "Fields to change"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.TestUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}

	resp, err := c.testService.Update(middleware.OrganizationID(ctx), testID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteTest godoc
// @Summary (Admin) Delete a writing test
// @Tags Admin - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	if err := c.testService.Delete(middleware.OrganizationID(ctx), testID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetTest godoc
// @Summary (Admin) Get one writing test
// @Tags Admin - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := c.testService.Get(middleware.OrganizationID(ctx), testID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListTests godoc
// @Summary (Admin) List writing tests
// @Tags Admin - Tests
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, active, archived)
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.TestResponseDTO
// @Router /admin/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	var q dto.TestListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}
	resp, err := c.testService.List(middleware.OrganizationID(ctx), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// InviteCandidate godoc
// @Summary (Admin) Invite a candidate to a test
// @Description Creates (or reuses) the candidate and issues a tokenized test link. Set notify=true to email the invitation.
// @Tags Admin - Invitations
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param invitation body dto.InviteCandidateDTO true "Invitation"
// @Success 201 {object} dto.InviteResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id}/invitations [post]
func (c *TestController) InviteCandidate(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.InviteCandidateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}

	resp, err := c.invitationService.InviteCandidate(ctx.Request.Context(), middleware.OrganizationID(ctx), testID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListLinks godoc
// @Summary (Admin) List a test's invitation links
// @Tags Admin - Invitations
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.TestLinkResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id}/links [get]
func (c *TestController) ListLinks(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := c.invitationService.ListLinks(middleware.OrganizationID(ctx), testID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListCandidates godoc
// @Summary (Admin) List candidates
// @Tags Admin - Invitations
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.CandidateResponseDTO
// @Router /admin/candidates [get]
func (c *TestController) ListCandidates(ctx *gin.Context) {
	var q dto.ListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.FirstValidationError(err)})
		return
	}
	resp, err := c.invitationService.ListCandidates(middleware.OrganizationID(ctx), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// pathID parses a positive integer path parameter, answering 400 itself when
// the segment is malformed.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
