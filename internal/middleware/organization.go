package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scribehire/scribehire/internal/dto"
)

// Context keys set for handlers behind RequireOrganization.
const (
	OrganizationIDKey = "organization_id"
	UserIDKey         = "user_id"
)

// RequireOrganization gates admin routes on a resolved active organization.
// Session handling and membership checks live upstream (gateway / auth
// service); by the time a request reaches us the resolved tenant travels in
// X-Organization-ID and the acting user, when known, in X-User-ID.
func RequireOrganization() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orgID := ctx.GetHeader("X-Organization-ID")
		if orgID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "No active organization"})
			return
		}
		ctx.Set(OrganizationIDKey, orgID)
		if userID := ctx.GetHeader("X-User-ID"); userID != "" {
			ctx.Set(UserIDKey, userID)
		}
		ctx.Next()
	}
}

// OrganizationID returns the tenant id stored by RequireOrganization.
func OrganizationID(ctx *gin.Context) string {
	return ctx.GetString(OrganizationIDKey)
}

// UserID returns the acting user id, or empty when the header was absent.
func UserID(ctx *gin.Context) string {
	return ctx.GetString(UserIDKey)
}
