package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/scribehire/scribehire/internal/dto"
	"github.com/scribehire/scribehire/internal/service"
)

// respondError maps service errors to HTTP statuses with the uniform
// {error: message} body. Unknown faults are logged server-side and collapse
// to a generic 500 so no storage detail leaks.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrAttemptEmpty):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrScoringFailure):
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: service.ErrScoringFailure.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unexpected error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An unexpected error occurred"})
	}
}
