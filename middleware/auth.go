package middleware

import (
	"net/http"
	"strings"

	"crmsystem-backend/config"
	"crmsystem-backend/models"
	"crmsystem-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const identityKey = "identity"

// Identity is the authenticated principal a request carries. Gates decide on
// it alone; they never touch the database.
type Identity struct {
	UserID    uuid.UUID
	Username  string
	Email     string
	Superuser bool
	Roles     []string
}

// HasRole reports whether the identity carries the named role. Matching is
// exact and case-sensitive.
func (i Identity) HasRole(name string) bool {
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// SetIdentity stores the authenticated principal on the request context.
func SetIdentity(c *gin.Context, ident Identity) {
	c.Set(identityKey, ident)
}

// CurrentIdentity returns the identity stored by RequireAuth. An absent or
// mistyped value is an unexpected fault, not a denial.
func CurrentIdentity(c *gin.Context) (Identity, error) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, errors.New("identity not found in context")
	}
	ident, ok := v.(Identity)
	if !ok {
		return Identity{}, errors.New("identity has unexpected type")
	}
	return ident, nil
}

// RequireAuth validates the session token, resolves the user and role set
// from the database, and stores the Identity in the context.
func RequireAuth(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.RespondWithError(c, http.StatusUnauthorized, "Authorization required")
			return
		}

		userID, err := utils.ParseToken(tokenString, cfg.JWT.Secret)
		if err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		var user models.User
		if err := db.Preload("Roles").First(&user, "id = ?", userID).Error; err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
			return
		}

		SetIdentity(c, Identity{
			UserID:    user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Superuser: user.Superuser,
			Roles:     user.RoleNames(),
		})
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
