package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/pkg/response"
)

// UserGetter loads a user account by ID.
type UserGetter interface {
	GetUserByID(id int64) (*model.User, error)
}

// Admin rejects requests from non-admin accounts. Must run after Auth.
func Admin(users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		if !user.IsAdmin {
			response.PermissionError(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
