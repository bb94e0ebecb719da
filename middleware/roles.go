package middleware

import (
	"log/slog"
	"net/http"

	"crmsystem-backend/config"
	"crmsystem-backend/models"
	"crmsystem-backend/utils"

	"github.com/gin-gonic/gin"
)

// Landing pages used by the redirecting gates.
const (
	homePath = "/"
	userPath = "/user"
)

// AllowedRoles permits the request when the identity is a superuser or its
// role set intersects the allowed set. Denial is a 403 with a readable
// reason; an identity missing from the context is a 500, never a panic.
func AllowedRoles(logger *slog.Logger, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := CurrentIdentity(c)
		if err != nil {
			logger.Error("role check failed", "error", err, "path", c.Request.URL.Path)
			utils.RespondWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}

		if ident.Superuser {
			c.Next()
			return
		}

		for _, role := range allowed {
			if ident.HasRole(role) {
				c.Next()
				return
			}
		}

		logger.Warn("permission denied",
			"user", ident.Username,
			"roles", ident.Roles,
			"path", c.Request.URL.Path,
		)
		utils.RespondWithError(c, http.StatusForbidden, "You are not authorized to view this page.")
	}
}

// AdminOnly guards the staff dashboard. Customers are redirected to their own
// landing page rather than denied; admins and superusers pass; anyone else is
// forbidden.
func AdminOnly(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := CurrentIdentity(c)
		if err != nil {
			logger.Error("admin check failed", "error", err, "path", c.Request.URL.Path)
			utils.RespondWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}

		switch {
		case ident.Superuser:
			c.Next()
		case ident.HasRole(models.RoleCustomer):
			c.Redirect(http.StatusFound, userPath)
			c.Abort()
		case ident.HasRole(models.RoleAdmin):
			c.Next()
		default:
			logger.Warn("permission denied", "user", ident.Username, "path", c.Request.URL.Path)
			utils.RespondWithError(c, http.StatusForbidden, "You are not authorized to view this page.")
		}
	}
}

// UnauthenticatedOnly inverts the check for login and registration routes:
// an already-authenticated caller is sent to the landing page.
func UnauthenticatedOnly(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if _, err := utils.ParseToken(tokenString, cfg.JWT.Secret); err == nil {
				c.Redirect(http.StatusFound, homePath)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
